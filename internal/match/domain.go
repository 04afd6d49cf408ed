package match

import (
	"net/url"
	"strings"
)

// Compound TLDs where the registrable domain spans three labels
// (example.co.uk). Anything else keeps the last two labels.
var (
	compoundTLDLast   = map[string]struct{}{"uk": {}, "au": {}, "jp": {}}
	compoundTLDSecond = map[string]struct{}{
		"co": {}, "com": {}, "org": {}, "net": {}, "gov": {}, "edu": {},
	}
)

// ExtractBaseDomain reduces a raw URL to its registrable base domain:
// scheme and "www." stripped, lowercased, path discarded. Designed for a
// single pass over raw spreadsheet URLs; it never fails hard — blank or
// unparseable input reports ok=false.
func ExtractBaseDomain(raw string) (domain string, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	host := parsed.Hostname()
	if host == "" {
		// Malformed input like "example.com/path" parsed as a bare path.
		host, _, _ = strings.Cut(strings.TrimPrefix(parsed.Path, "/"), "/")
	}
	host = strings.ToLower(host)
	host = strings.TrimPrefix(host, "www.")
	if host == "" {
		return "", false
	}

	parts := strings.Split(host, ".")
	if len(parts) >= 3 {
		_, lastOK := compoundTLDLast[parts[len(parts)-1]]
		_, secondOK := compoundTLDSecond[parts[len(parts)-2]]
		if lastOK && secondOK {
			return strings.Join(parts[len(parts)-3:], "."), true
		}
	}
	if len(parts) >= 2 {
		return strings.Join(parts[len(parts)-2:], "."), true
	}
	return host, true
}
