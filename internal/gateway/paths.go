package gateway

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
)

// apiPrefix is the versioned API root below the origin.
const apiPrefix = "/api/v1"

// APIRoot is the versioned API root, e.g. "https://host/api/v1".
func (g *Gateway) APIRoot() string {
	return g.origin + apiPrefix
}

// LocaleRoot is the API root scoped to the gateway's locale, or the API root
// itself when no locale is set.
func (g *Gateway) LocaleRoot() string {
	if g.locale == "" {
		return g.APIRoot()
	}
	return g.APIRoot() + "/" + g.locale
}

// ClipRoot is the root of every clip endpoint.
func (g *Gateway) ClipRoot() string {
	return g.LocaleRoot() + "/clips"
}

// resolve turns a request path into an absolute URL: absolute URLs are kept,
// "/x" is relative to the origin, anything else to the API root.
func (g *Gateway) resolve(path string) string {
	if u, err := url.Parse(path); err == nil && u.IsAbs() {
		return path
	}
	if strings.HasPrefix(path, "/") {
		return g.origin + path
	}
	return g.APIRoot() + "/" + path
}

// sameOrigin reports whether target shares scheme, host and port with the
// API root. A missing port means the scheme's default.
func (g *Gateway) sameOrigin(target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Scheme, g.originURL.Scheme) &&
		strings.EqualFold(u.Hostname(), g.originURL.Hostname()) &&
		effectivePort(u) == effectivePort(g.originURL)
}

func effectivePort(u *url.URL) string {
	if port := u.Port(); port != "" {
		return port
	}
	switch strings.ToLower(u.Scheme) {
	case "http":
		return "80"
	case "https":
		return "443"
	}
	return ""
}

func normalizeBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty address", ErrInvalidOrigin)
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOrigin, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: address must include host and scheme", ErrInvalidOrigin)
	}

	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// canonicalLocale validates a locale and returns its BCP 47 canonical form
// ("pt-br" -> "pt-BR"). The empty locale stays empty.
func canonicalLocale(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	tag, err := language.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrInvalidLocale, raw, err)
	}
	return tag.String(), nil
}
