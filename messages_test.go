package emblem

import "testing"

func TestMessageBuilders(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"mint", MintMessage("1337"), "Curated Minting: 1337"},
		{"unvault", UnvaultMessage("42"), "Unvault: 42"},
		{"claim", ClaimMessage("42"), "Claim: 42"},
		{"delete", DeleteMessage("1337"), "Delete: 1337"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("message = %q, want %q", tt.got, tt.want)
			}
		})
	}
}
