package collect

import (
	"strings"

	"github.com/provenly/vouch/internal/model"
)

// Query templates live here as declarative tables, not inline string
// literals in the collection code, so the vocabulary can be reviewed
// and tested without touching scoring logic. Placeholders: {name},
// {school}, {company}, {role}, {region}, {platform}, {platform_domain}.

var educationTemplates = []string{
	`"{name}" "{school}" graduate`,
	`"{name}" "{school}" alumni`,
	`"{name}" "{school}" degree`,
	`{name} {school} student`,
}

var employmentTemplates = []string{
	`"{name}" "{company}"`,
	`{name} {company} {role}`,
	`"{name}" "{company}" employee`,
}

var socialTemplates = []string{
	`{name} site:{platform_domain}`,
	`{name} {region} {platform}`,
}

// backgroundTemplates map each registry category to the queries that
// constitute one coverage pass over it.
var backgroundTemplates = map[string][]string{
	model.BackgroundCourt: {
		`"{name}" {region} court records`,
		`"{name}" lawsuit`,
		`"{name}" {region} criminal case`,
	},
	model.BackgroundBankruptcy: {
		`"{name}" bankruptcy filing`,
		`"{name}" {region} insolvency`,
	},
	model.BackgroundSanctions: {
		`"{name}" sanctions list`,
		`"{name}" OFAC watchlist`,
	},
	model.BackgroundMedia: {
		`"{name}" {region} fraud`,
		`"{name}" charged OR convicted`,
	},
}

// platformDomains maps a platform name to the site: operator target.
// LinkedIn deliberately points at /in to prefer profile pages over
// company pages.
var platformDomains = map[string]string{
	"linkedin":  "linkedin.com/in",
	"facebook":  "facebook.com",
	"github":    "github.com",
	"twitter":   "twitter.com",
	"instagram": "instagram.com",
	"xing":      "xing.com",
}

// PlatformDomain returns the site: target for a platform name
func PlatformDomain(platform string) string {
	if domain, ok := platformDomains[strings.ToLower(platform)]; ok {
		return domain
	}
	return strings.ToLower(platform) + ".com"
}

// QueriesFor expands the template table for a claim into concrete
// query strings, in the fixed issue order.
func QueriesFor(person model.PersonClaim, claim model.ClaimItem) []string {
	var templates []string
	switch claim.Kind {
	case model.ClaimEducation:
		templates = educationTemplates
	case model.ClaimEmployment:
		templates = employmentTemplates
	case model.ClaimSocial:
		templates = socialTemplates
	case model.ClaimBackground:
		templates = backgroundTemplates[strings.ToLower(claim.Category)]
	}

	replacer := strings.NewReplacer(
		"{name}", person.Name,
		"{region}", person.Region,
		"{school}", claim.School,
		"{company}", claim.Company,
		"{role}", claim.Role,
		"{platform}", claim.Platform,
		"{platform_domain}", PlatformDomain(claim.Platform),
	)

	queries := make([]string, 0, len(templates))
	for _, tpl := range templates {
		queries = append(queries, strings.Join(strings.Fields(replacer.Replace(tpl)), " "))
	}
	return queries
}
