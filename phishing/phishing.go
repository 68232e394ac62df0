// Package phishing flags hostnames that match a periodically refreshed
// blocklist, either exactly, by parent domain or by lookalike distance.
package phishing

// ListConfig is the upstream list format: an allowlist that always wins, a
// blocklist matched by domain suffix and a fuzzylist matched by edit
// distance within Tolerance.
type ListConfig struct {
	Version   int      `json:"version"`
	Tolerance int      `json:"tolerance"`
	Fuzzylist []string `json:"fuzzylist"`
	Allowlist []string `json:"whitelist"`
	Blocklist []string `json:"blacklist"`
}

// Result explains why a hostname was or was not flagged.
type Result struct {
	Hostname string `json:"hostname"`
	Blocked  bool   `json:"blocked"`
	Type     string `json:"type"`            // "allowlist", "blocklist", "fuzzy" or "none"
	Match    string `json:"match,omitempty"` // the list entry that matched
}
