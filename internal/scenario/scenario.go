// Package scenario knows the network topologies that benchmark runs are
// grouped under: their display order, legend text and chart labels.
package scenario

import (
	"sort"
	"strings"
)

const NoInjection = "NO INJECTION"

// Scenario is one known topology under test.
type Scenario struct {
	Name        string
	Description string
}

// Known lists the recognized scenario directories in display order:
// the idle baseline first, then the remaining topologies by name.
var Known = []Scenario{
	{NoInjection, "Tests without injected traffic (idle controls and empty measurements)."},
	{"INJ_IPS_WAF_WEB", "Injector → IPS (Suricata) active → WAF (Apache proxy with ModSecurity) active → web backend. Full chain with IPS and WAF inline."},
	{"INJ_IPS_WEB_NO_PROXY", "Injector → IPS active → direct connection to the backend (no WAF proxy). Measures the impact of the IPS alone."},
	{"INJ_IPS_WEB_PROXY", "Injector → IPS active → WAF machine as a plain proxy (ModSecurity disabled) → backend. Measures proxy overhead with the IPS."},
	{"INJ_NFQ_WAF_WEB", "Injector → NFQUEUE installed but Suricata not blocking (traffic accepted) → WAF active → backend."},
	{"INJ_WAF_WEB", "Injector → no IPS → WAF (proxy + ModSecurity) active → backend. Measures the impact of the WAF alone."},
	{"INJ_WEB", "Injector → no IPS → no proxy (direct backend access). Baseline without WAF, proxy or IPS."},
	{"INJ_WEB_PROXY", "Injector → no IPS → WAF machine as reverse proxy (ModSecurity disabled) → backend. Proxy without WAF features."},
}

var rank = func() map[string]int {
	m := make(map[string]int, len(Known))
	for i, s := range Known {
		m[s.Name] = i
	}
	return m
}()

// IsKnown reports whether name is one of the recognized scenarios.
func IsKnown(name string) bool {
	_, ok := rank[name]
	return ok
}

// Less orders scenario names: known scenarios in display order, then
// unknown ones alphabetically.
func Less(a, b string) bool {
	ra, okA := rank[a]
	rb, okB := rank[b]
	switch {
	case okA && okB:
		return ra < rb
	case okA:
		return true
	case okB:
		return false
	default:
		return a < b
	}
}

// Sort orders names in place with Less.
func Sort(names []string) {
	sort.SliceStable(names, func(i, j int) bool { return Less(names[i], names[j]) })
}

// Describe returns the legend text for a scenario. Unknown names are
// described from their underscore-separated tokens.
func Describe(name string) string {
	if i, ok := rank[name]; ok {
		return Known[i].Description
	}

	parts := map[string]bool{}
	for _, p := range strings.FieldsFunc(strings.ToUpper(name), func(r rune) bool { return r == '_' || r == ' ' || r == '-' }) {
		parts[p] = true
	}
	var desc []string
	if parts["INJ"] {
		desc = append(desc, "traffic from the injector")
	}
	if parts["IPS"] {
		desc = append(desc, "IPS (Suricata) active")
	}
	if parts["NFQ"] {
		desc = append(desc, "NFQUEUE present")
	}
	if parts["WAF"] {
		desc = append(desc, "WAF (proxy / ModSecurity) active")
	}
	if parts["WEB"] || parts["BACKEND"] {
		desc = append(desc, "web backend present")
	}
	switch {
	case parts["NO"]:
		desc = append(desc, "direct backend access (no proxy)")
	case parts["PROXY"]:
		desc = append(desc, "reverse proxy in place")
	}
	if len(desc) == 0 {
		return "Undocumented scenario: " + name
	}
	return strings.Join(desc, ", ")
}

// Short abbreviates long scenario names for chart axes:
// INJ_IPS_WEB_NO_PROXY becomes IPS_NO_P.
func Short(name string) string {
	if len(name) <= 15 {
		return name
	}
	s := strings.ReplaceAll(name, "INJ_", "")
	s = strings.ReplaceAll(s, "_WEB", "")
	s = strings.ReplaceAll(s, "_PROXY", "_P")
	if len(s) > 12 {
		parts := strings.Split(s, "_")
		for i, p := range parts {
			if len(p) > 3 {
				parts[i] = p[:3]
			}
		}
		s = strings.Join(parts, "_")
	}
	return s
}
