package emblem

// Vault classification helpers. These are pure derivations over the
// VaultMetadata shape; they never perform I/O.

// IsV2Vault reports whether the vault follows the V2 (signed-price unvault)
// flow. A vault is V2 when its metadata carries a named target contract.
func IsV2Vault(meta VaultMetadata) bool {
	return meta.TargetContract != nil && meta.TargetContract.Name != ""
}

// RequiresOnChainUnvault reports whether claiming the vault must first run
// the on-chain unvaultWithSignedPrice step. Legacy vaults release through
// the handler contract's claim call instead.
func RequiresOnChainUnvault(meta VaultMetadata) bool {
	return IsV2Vault(meta)
}

// ClaimIdentifier returns the identifier to embed in the claim message:
// the target contract's serial number when one exists, the vault token ID
// otherwise.
func ClaimIdentifier(meta VaultMetadata) string {
	if meta.TargetContract != nil && meta.TargetContract.SerialNumber != "" {
		return meta.TargetContract.SerialNumber
	}
	return meta.TokenID
}

// IsMinted reports whether the vault has been minted on chain.
func IsMinted(meta VaultMetadata) bool {
	return meta.Live || meta.Status == "unclaimed"
}

// IsClaimed reports whether the vault has already been claimed.
func IsClaimed(meta VaultMetadata) bool {
	return meta.Status == "claimed" || meta.ClaimedBy != ""
}
