// Package policy enforces the origin allow-list for remote documentation fetches.
package policy

import (
	"fmt"
	"net/url"
	"strings"
)

// Wildcard is the allow-list sentinel that permits fetching from any origin.
const Wildcard = "*"

// Origin extracts the scheme://host/ origin string from a URL, with a
// trailing slash (e.g. "https://example.com/"). Returns "" if the URL
// cannot be parsed.
func Origin(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s://%s/", parsed.Scheme, parsed.Host)
}

// AllowedOrigins is the set of origins a remote fetch may target.
type AllowedOrigins struct {
	origins  []string
	wildcard bool
}

// New builds the allowed set from the explicitly configured domains plus the
// origin of every URL in remoteURLs, so a registered source can always fetch
// from its own declared origin. Configured entries are kept verbatim; a
// Wildcard entry anywhere makes every origin permitted.
func New(domains []string, remoteURLs []string) *AllowedOrigins {
	a := &AllowedOrigins{}
	seen := make(map[string]struct{})
	add := func(origin string) {
		if origin == "" {
			return
		}
		if _, ok := seen[origin]; ok {
			return
		}
		seen[origin] = struct{}{}
		a.origins = append(a.origins, origin)
	}

	for _, domain := range domains {
		if domain == Wildcard {
			a.wildcard = true
			continue
		}
		add(domain)
	}
	for _, rawURL := range remoteURLs {
		add(Origin(rawURL))
	}

	return a
}

// Allowed reports whether rawURL may be fetched. The check is a string prefix
// match against the configured origin entries: an entry without a trailing
// slash matches more than its own host. That coarseness is intentional and
// must be kept in mind when configuring the allow-list.
func (a *AllowedOrigins) Allowed(rawURL string) bool {
	if a.wildcard {
		return true
	}
	for _, origin := range a.origins {
		if strings.HasPrefix(rawURL, origin) {
			return true
		}
	}
	return false
}

// List returns the configured origin entries, for denial messages.
func (a *AllowedOrigins) List() []string {
	out := make([]string, len(a.origins))
	copy(out, a.origins)
	return out
}
