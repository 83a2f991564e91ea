package server

import (
	"net/url"
	"strings"
)

// ValidateExternalRedirectURL validates an absolute redirect URL against an
// allowlist of hosts. Returns the canonical URL and true when allowed;
// otherwise returns ("", false). An empty allowlist rejects every absolute
// URL, which is the safe default for redirect targets.
func ValidateExternalRedirectURL(rawURL string, allowedHosts []string) (string, bool) {
	allowlist := normalizeRedirectAllowlist(allowedHosts)
	return validateExternalRedirect(rawURL, allowlist)
}

func normalizeRedirectAllowlist(allowedHosts []string) map[string]struct{} {
	if len(allowedHosts) == 0 {
		return nil
	}
	allowlist := make(map[string]struct{}, len(allowedHosts))
	for _, host := range allowedHosts {
		h := strings.ToLower(strings.TrimSpace(host))
		if h == "" {
			continue
		}
		allowlist[h] = struct{}{}
	}
	return allowlist
}

func validateExternalRedirect(rawURL string, allowlist map[string]struct{}) (string, bool) {
	if allowlist == nil {
		return "", false
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}

	// Only plain web schemes can be redirect targets.
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	if u.User != nil {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", false
	}
	if _, ok := allowlist[host]; !ok {
		return "", false
	}

	return u.String(), true
}

// IsExternalRedirect reports whether target is an absolute URL rather
// than a site-relative path.
func IsExternalRedirect(target string) bool {
	return strings.Contains(target, "://") || strings.HasPrefix(target, "//")
}
