package skill

import "strings"

// aliases lists common alternative spellings of catalog skill names.
var aliases = map[string][]string{
	"Go":            {"golang"},
	"JavaScript":    {"js", "ecmascript"},
	"TypeScript":    {"ts"},
	"C#":            {"csharp", "c sharp"},
	"C++":           {"cpp"},
	"Node.js":       {"nodejs", "node"},
	"Vue.js":        {"vue", "vuejs"},
	"Next.js":       {"nextjs"},
	"Nuxt.js":       {"nuxt", "nuxtjs"},
	"React":         {"reactjs", "react.js"},
	"React Native":  {"react-native"},
	"Ruby on Rails": {"rails", "ror"},
	"PostgreSQL":    {"postgres", "psql"},
	"MongoDB":       {"mongo"},
	"Kubernetes":    {"k8s"},
	"Google Cloud":  {"gcp", "google cloud platform"},
	"AWS":           {"amazon web services"},
	"Spring Boot":   {"spring"},
}

var aliasIndex = buildAliasIndex()

func buildAliasIndex() map[string]string {
	idx := make(map[string]string)
	for canonical, alts := range aliases {
		key := Normalize(canonical)
		for _, a := range alts {
			idx[Normalize(a)] = key
		}
	}
	return idx
}

// Normalize lowercases name and collapses inner whitespace.
func Normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Canonical returns the comparison key for a skill name. Known aliases map
// to the key of their catalog name, so "golang" and "Go" compare equal.
func Canonical(name string) string {
	key := Normalize(name)
	if c, ok := aliasIndex[key]; ok {
		return c
	}
	return key
}

// Aliases returns the known alternative spellings of a catalog skill name.
func Aliases(name string) []string {
	v, ok := aliases[name]
	if !ok {
		return []string{}
	}
	return append([]string(nil), v...)
}
