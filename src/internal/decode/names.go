package decode

import "strings"

// PrimaryDomain is the name of the domain whose names are never qualified.
const PrimaryDomain = "PRIMARY"

// DomainSeparator separates the domain from the name in a qualified name.
const DomainSeparator = "/"

// QualifyName prefixes name with the upper-cased domain, unless the domain is
// empty or primary, or the name is already qualified.
func QualifyName(name, domain string) string {
	if domain == "" ||
		strings.EqualFold(domain, PrimaryDomain) ||
		strings.Contains(name, DomainSeparator) {
		return name
	}

	return strings.ToUpper(domain) + DomainSeparator + name
}

// QualifyNames qualifies every name in names, except for those equal to
// anonymous, which are passed through unmodified.
func QualifyNames(names []string, domain, anonymous string) []string {
	qualified := make([]string, len(names))

	for i, n := range names {
		if n == anonymous && anonymous != "" {
			qualified[i] = n
		} else {
			qualified[i] = QualifyName(n, domain)
		}
	}

	return qualified
}
