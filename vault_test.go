package emblem

import "testing"

func TestVaultClassification(t *testing.T) {
	v2 := VaultMetadata{
		TokenID: "99",
		TargetContract: &TargetContract{
			Name:         "Rare Pepe",
			SerialNumber: "123456",
		},
	}
	legacy := VaultMetadata{TokenID: "77"}

	if !IsV2Vault(v2) {
		t.Error("IsV2Vault() = false for named target contract")
	}
	if IsV2Vault(legacy) {
		t.Error("IsV2Vault() = true for vault without target contract")
	}
	if IsV2Vault(VaultMetadata{TargetContract: &TargetContract{}}) {
		t.Error("IsV2Vault() = true for unnamed target contract")
	}

	if !RequiresOnChainUnvault(v2) {
		t.Error("RequiresOnChainUnvault() = false for V2 vault")
	}
	if RequiresOnChainUnvault(legacy) {
		t.Error("RequiresOnChainUnvault() = true for legacy vault")
	}

	if got := ClaimIdentifier(v2); got != "123456" {
		t.Errorf("ClaimIdentifier() = %q, want serial number", got)
	}
	if got := ClaimIdentifier(legacy); got != "77" {
		t.Errorf("ClaimIdentifier() = %q, want token id", got)
	}
}

func TestMintedAndClaimed(t *testing.T) {
	tests := []struct {
		name        string
		meta        VaultMetadata
		wantMinted  bool
		wantClaimed bool
	}{
		{"live vault", VaultMetadata{Live: true}, true, false},
		{"unclaimed status", VaultMetadata{Status: "unclaimed"}, true, false},
		{"claimed status", VaultMetadata{Status: "claimed"}, false, true},
		{"claimedBy set", VaultMetadata{Live: true, ClaimedBy: "0xabc"}, true, true},
		{"fresh vault", VaultMetadata{}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsMinted(tt.meta); got != tt.wantMinted {
				t.Errorf("IsMinted() = %v, want %v", got, tt.wantMinted)
			}
			if got := IsClaimed(tt.meta); got != tt.wantClaimed {
				t.Errorf("IsClaimed() = %v, want %v", got, tt.wantClaimed)
			}
		})
	}
}

func TestTargetContractUnmarshal(t *testing.T) {
	data := []byte(`{
		"name": "Rare Pepe",
		"collectionType": "ERC721A",
		"serialNumber": "555",
		"tokenId": 42,
		"1": "0x1111111111111111111111111111111111111111",
		"137": "0x2222222222222222222222222222222222222222"
	}`)

	var tc TargetContract
	if err := tc.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}

	if tc.Name != "Rare Pepe" || tc.SerialNumber != "555" {
		t.Errorf("fixed fields not captured: %+v", tc)
	}
	if tc.TokenID != "42" {
		t.Errorf("numeric tokenId = %q, want normalized to string", tc.TokenID)
	}
	if got := tc.AddressFor(137); got != "0x2222222222222222222222222222222222222222" {
		t.Errorf("AddressFor(137) = %q", got)
	}
	if got := tc.AddressFor(5); got != "" {
		t.Errorf("AddressFor(5) = %q, want empty", got)
	}
}
