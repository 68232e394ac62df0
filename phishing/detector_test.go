package phishing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testListConfig() ListConfig {
	return ListConfig{
		Version:   2,
		Tolerance: 2,
		Fuzzylist: []string{"myetherwallet.com", "metamask.io"},
		Allowlist: []string{"metamask.io", "myetherwallet.com"},
		Blocklist: []string{"evil-wallet.example", "phishing.site"},
	}
}

func TestDetectorCheck(t *testing.T) {
	d := NewDetector(testListConfig())

	tests := []struct {
		name      string
		hostname  string
		blocked   bool
		matchedBy string
	}{
		{"allowlisted domain", "metamask.io", false, "allowlist"},
		{"subdomain of allowlisted domain", "app.metamask.io", false, "allowlist"},
		{"blocklisted domain", "evil-wallet.example", true, "blocklist"},
		{"subdomain of blocklisted domain", "login.evil-wallet.example", true, "blocklist"},
		{"lookalike within tolerance", "myetherwaIlet.com", true, "fuzzy"},
		{"lookalike with www prefix", "www.metamask.io1", true, "fuzzy"},
		{"unrelated domain", "example.org", false, "none"},
		{"uppercase is normalized", "PHISHING.SITE", true, "blocklist"},
		{"trailing dot is normalized", "phishing.site.", true, "blocklist"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := d.Check(tc.hostname)
			assert.Equal(t, tc.blocked, r.Blocked)
			assert.Equal(t, tc.matchedBy, r.Type)
		})
	}
}

func TestDetectorAllowlistBeatsFuzzy(t *testing.T) {
	// "metamask.io" is within tolerance of itself but allowlisted.
	d := NewDetector(testListConfig())

	r := d.Check("metamask.io")
	assert.False(t, r.Blocked)
	assert.Equal(t, "allowlist", r.Type)
}

func TestDetectorSuffixNeedsLabelBoundary(t *testing.T) {
	d := NewDetector(ListConfig{Blocklist: []string{"phishing.site"}})

	// "notphishing.site" ends with the string but not on a label boundary.
	r := d.Check("notphishing.site")
	assert.False(t, r.Blocked)
}

func TestEmptyDetectorBlocksNothing(t *testing.T) {
	d := NewDetector(ListConfig{})

	r := d.Check("anything.example")
	assert.False(t, r.Blocked)
	assert.Equal(t, "none", r.Type)
}
