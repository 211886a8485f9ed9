package model

import (
	"fmt"
	"strings"
)

// ClaimKind categorizes a verifiable assertion from a person's stated history
type ClaimKind string

const (
	ClaimEducation  ClaimKind = "education"  // Attendance at a school
	ClaimEmployment ClaimKind = "employment" // A position at a company
	ClaimSocial     ClaimKind = "social"     // Presence on a social platform
	ClaimBackground ClaimKind = "background" // An adverse-record category to check
)

// BackgroundKind names a background-check registry category
const (
	BackgroundCourt      = "court"
	BackgroundBankruptcy = "bankruptcy"
	BackgroundSanctions  = "sanctions"
	BackgroundMedia      = "media"
)

// ClaimItem is one verifiable claim. Which fields are meaningful depends
// on Kind: School for education, Company+Role for employment, Platform
// for social, Category for background checks.
type ClaimItem struct {
	Kind     ClaimKind `json:"kind" yaml:"kind"`
	School   string    `json:"school,omitempty" yaml:"school,omitempty"`
	Company  string    `json:"company,omitempty" yaml:"company,omitempty"`
	Role     string    `json:"role,omitempty" yaml:"role,omitempty"`
	Platform string    `json:"platform,omitempty" yaml:"platform,omitempty"`
	Category string    `json:"category,omitempty" yaml:"category,omitempty"`
}

// Validate checks that the claim carries the fields its kind requires.
// A failure here is a configuration problem with the supplied person
// description: it kills the single affected category, never the run.
func (c ClaimItem) Validate() error {
	switch c.Kind {
	case ClaimEducation:
		if strings.TrimSpace(c.School) == "" {
			return fmt.Errorf("education claim missing school")
		}
	case ClaimEmployment:
		if strings.TrimSpace(c.Company) == "" {
			return fmt.Errorf("employment claim missing company")
		}
		if strings.TrimSpace(c.Role) == "" {
			return fmt.Errorf("employment claim missing role")
		}
	case ClaimSocial:
		if strings.TrimSpace(c.Platform) == "" {
			return fmt.Errorf("social claim missing platform")
		}
	case ClaimBackground:
		if strings.TrimSpace(c.Category) == "" {
			return fmt.Errorf("background claim missing category")
		}
	default:
		return fmt.Errorf("unknown claim kind: %q", c.Kind)
	}
	return nil
}

// Label returns a short human-readable identifier for reports
func (c ClaimItem) Label() string {
	switch c.Kind {
	case ClaimEducation:
		return "education: " + c.School
	case ClaimEmployment:
		return fmt.Sprintf("employment: %s (%s)", c.Company, c.Role)
	case ClaimSocial:
		return "social: " + c.Platform
	case ClaimBackground:
		return "background: " + c.Category
	default:
		return string(c.Kind)
	}
}

// PersonClaim is the caller-supplied description of the person to verify.
// It is never mutated by the engine.
type PersonClaim struct {
	Name   string      `json:"name" yaml:"name"`
	Region string      `json:"region" yaml:"region"`
	Claims []ClaimItem `json:"claims" yaml:"claims"`
}

// Validate checks the run-level invariants: a non-empty name and at
// least one claim. Per-claim problems are not checked here; they are
// handled per category during collection.
func (p PersonClaim) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("person name is required")
	}
	if len(p.Claims) == 0 {
		return fmt.Errorf("at least one claim is required")
	}
	return nil
}
