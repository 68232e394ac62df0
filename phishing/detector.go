package phishing

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Detector is an immutable matcher built from one ListConfig. The service
// swaps in a fresh detector on every list refresh.
type Detector struct {
	tolerance int
	version   int
	allowlist [][]string
	blocklist [][]string
	fuzzylist []string
}

func NewDetector(cfg ListConfig) *Detector {
	return &Detector{
		tolerance: cfg.Tolerance,
		version:   cfg.Version,
		allowlist: toParts(cfg.Allowlist),
		blocklist: toParts(cfg.Blocklist),
		fuzzylist: normalizeAll(cfg.Fuzzylist),
	}
}

// Check matches a hostname against the lists. Allowlist entries win over
// both blocklist and fuzzy matches.
func (d *Detector) Check(hostname string) Result {
	h := normalize(hostname)
	parts := strings.Split(h, ".")

	if match, ok := matchParts(parts, d.allowlist); ok {
		return Result{Hostname: h, Blocked: false, Type: "allowlist", Match: match}
	}

	if match, ok := matchParts(parts, d.blocklist); ok {
		return Result{Hostname: h, Blocked: true, Type: "blocklist", Match: match}
	}

	fuzzTarget := strings.TrimPrefix(h, "www.")
	for _, entry := range d.fuzzylist {
		if levenshtein.ComputeDistance(fuzzTarget, entry) <= d.tolerance {
			return Result{Hostname: h, Blocked: true, Type: "fuzzy", Match: entry}
		}
	}

	return Result{Hostname: h, Blocked: false, Type: "none"}
}

// matchParts reports whether any list entry's labels are a suffix of the
// hostname's labels, so "evil.example.com" matches the entry "example.com".
func matchParts(hostname []string, list [][]string) (string, bool) {
	for _, entry := range list {
		if len(entry) > len(hostname) {
			continue
		}
		offset := len(hostname) - len(entry)
		matched := true
		for i, label := range entry {
			if hostname[offset+i] != label {
				matched = false
				break
			}
		}
		if matched {
			return strings.Join(entry, "."), true
		}
	}
	return "", false
}

func normalize(hostname string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(hostname)), ".")
}

func normalizeAll(entries []string) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = normalize(e)
	}
	return out
}

func toParts(entries []string) [][]string {
	out := make([][]string, len(entries))
	for i, e := range entries {
		out[i] = strings.Split(normalize(e), ".")
	}
	return out
}
