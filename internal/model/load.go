package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// personFile is the on-disk YAML shape for a person description. It is
// deliberately flatter than PersonClaim: the loader expands it into the
// ordered claim sequence the engine consumes.
type personFile struct {
	Name      string `yaml:"name"`
	Region    string `yaml:"region"`
	Education []struct {
		School string `yaml:"school"`
	} `yaml:"education"`
	Employment []struct {
		Company string `yaml:"company"`
		Role    string `yaml:"role"`
	} `yaml:"employment"`
	Social     []string `yaml:"social"`
	Background []string `yaml:"background"`
}

// LoadPersonFile reads a person description from a YAML file and
// expands it into a PersonClaim. Claim order is education first, then
// employment entries, social platforms, and background categories.
func LoadPersonFile(path string) (PersonClaim, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PersonClaim{}, fmt.Errorf("read person file: %w", err)
	}
	return ParsePerson(data)
}

// ParsePerson parses YAML person description bytes
func ParsePerson(data []byte) (PersonClaim, error) {
	var pf personFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return PersonClaim{}, fmt.Errorf("parse person file: %w", err)
	}

	person := PersonClaim{
		Name:   pf.Name,
		Region: pf.Region,
	}
	for _, e := range pf.Education {
		person.Claims = append(person.Claims, ClaimItem{Kind: ClaimEducation, School: e.School})
	}
	for _, e := range pf.Employment {
		person.Claims = append(person.Claims, ClaimItem{Kind: ClaimEmployment, Company: e.Company, Role: e.Role})
	}
	for _, platform := range pf.Social {
		person.Claims = append(person.Claims, ClaimItem{Kind: ClaimSocial, Platform: platform})
	}
	for _, kind := range pf.Background {
		person.Claims = append(person.Claims, ClaimItem{Kind: ClaimBackground, Category: kind})
	}

	if err := person.Validate(); err != nil {
		return PersonClaim{}, err
	}
	return person, nil
}
