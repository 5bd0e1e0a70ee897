// Package gateway implements the fabric's single ingress (spec §4.1): an
// httputil.ReverseProxy-based router keyed by a fixed route table,
// chi-routed for prefix matching, with legacy unversioned paths
// redirected rather than proxied.
package gateway

import (
	"regexp"
	"strings"
)

// Route selects a downstream service for a request prefix and rewrites
// the outbound path. Routes are tried in table order; the first match
// wins, mirroring the teacher's longest-match-registered-first registry
// convention (other_examples gateway: auth-ui/passkey registered before
// the auth-ui catch-all).
type Route struct {
	// pattern matches the inbound path; patternRegexp is derived once at
	// table-build time so every request is a single regexp match instead
	// of a repeated Split/prefix scan.
	pattern       string
	patternRegexp *regexp.Regexp
	// Target names the downstream service; it is empty when the service
	// is resolved per match from the captured alias.
	Target string
	// rewrite transforms the matched inbound path into the path to send
	// downstream.
	rewrite func(path string) string
}

// discoveryAliases are the legacy action verbs the mobile clients still
// use in place of a single /discovery/* prefix (spec §4.1's
// `{discover,like,pass,matches,favorites}` alternation).
var discoveryAliases = `discover|like|pass|matches|favorites`

// v1ServiceAliases are the second-generation `/v1/*` prefixes that map
// 1:1 onto a service name after stripping `/v1`.
var v1ServiceAliases = `profiles|profile|discovery|media|chat|admin|notifications`

// BuildRouteTable constructs the authoritative route table from spec
// §4.1. Order matters: /v1/auth is matched before the general /v1/*
// alternation so auth's distinct rewrite rule (preserve root) applies.
func BuildRouteTable() []Route {
	return []Route{
		{
			pattern:       `^/v1/auth(/.*)?$`,
			patternRegexp: regexp.MustCompile(`^/v1/auth(/.*)?$`),
			Target:        "auth",
			rewrite:       stripPrefix(`/v1/auth`),
		},
		{
			pattern:       `^/v1/(` + v1ServiceAliases + `)(/.*)?$`,
			patternRegexp: regexp.MustCompile(`^/v1/(` + v1ServiceAliases + `)(/.*)?$`),
			Target:        "", // resolved per-match from the captured alias
			rewrite:       stripPrefix(`/v1`),
		},
		{
			pattern:       `^/api/v1/auth(/.*)?$`,
			patternRegexp: regexp.MustCompile(`^/api/v1/auth(/.*)?$`),
			Target:        "auth",
			rewrite:       replacePrefix(`/api/v1/auth`, `/auth`),
		},
		{
			pattern:       `^/api/v1/profiles?(/.*)?$`,
			patternRegexp: regexp.MustCompile(`^/api/v1/profiles?(/.*)?$`),
			Target:        "profile",
			rewrite:       replacePrefixRegexp(regexp.MustCompile(`^/api/v1/profiles?`), `/profiles`),
		},
		{
			pattern:       `^/api/v1/(` + discoveryAliases + `)(/.*)?$`,
			patternRegexp: regexp.MustCompile(`^/api/v1/(` + discoveryAliases + `)(/.*)?$`),
			Target:        "discovery",
			rewrite:       replacePrefixRegexp(regexp.MustCompile(`^/api/v1/(`+discoveryAliases+`)`), `/discovery`),
		},
		{
			pattern:       `^/api/v1/photos(/.*)?$`,
			patternRegexp: regexp.MustCompile(`^/api/v1/photos(/.*)?$`),
			Target:        "media",
			rewrite:       replacePrefix(`/api/v1/photos`, `/media`),
		},
		{
			pattern:       `^/api/v1/notifications(/.*)?$`,
			patternRegexp: regexp.MustCompile(`^/api/v1/notifications(/.*)?$`),
			Target:        "notification",
			rewrite:       replacePrefix(`/api/v1/notifications`, `/notifications`),
		},
		{
			pattern:       `^/api/v1/admin(/.*)?$`,
			patternRegexp: regexp.MustCompile(`^/api/v1/admin(/.*)?$`),
			Target:        "admin",
			rewrite:       replacePrefix(`/api/v1/admin`, `/admin-panel`),
		},
	}
}

// v1AliasTarget maps a captured /v1/{alias}/... segment onto its
// downstream service name; "profile" and "profiles" both route to the
// profile service.
func v1AliasTarget(alias string) string {
	switch alias {
	case "profile", "profiles":
		return "profile"
	case "notifications":
		return "notification"
	default:
		return alias
	}
}

func stripPrefix(prefix string) func(string) string {
	return func(path string) string {
		rest := strings.TrimPrefix(path, prefix)
		if rest == "" {
			return "/"
		}
		return rest
	}
}

func replacePrefix(prefix, replacement string) func(string) string {
	return func(path string) string {
		return replacement + strings.TrimPrefix(path, prefix)
	}
}

func replacePrefixRegexp(re *regexp.Regexp, replacement string) func(string) string {
	return func(path string) string {
		loc := re.FindStringIndex(path)
		if loc == nil {
			return replacement + path
		}
		return replacement + path[loc[1]:]
	}
}

// Match returns the target service name and rewritten path for an
// inbound request path, or ok=false if no route in the table applies
// (spec §4.1: every other path returns 404).
func Match(table []Route, path string) (target string, rewritten string, ok bool) {
	for _, route := range table {
		m := route.patternRegexp.FindStringSubmatch(path)
		if m == nil {
			continue
		}
		target = route.Target
		if target == "" {
			// The /v1/{alias}/* row: m[1] is the captured alias.
			target = v1AliasTarget(m[1])
		}
		return target, route.rewrite(path), true
	}
	return "", "", false
}
