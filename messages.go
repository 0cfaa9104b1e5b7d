package emblem

// Canonical message builders. These strings are signed by the user's wallet
// and verified byte-for-byte by the remote attestation service; do not
// change their format.

// MintMessage is the message signed to authorize a curated mint.
func MintMessage(tokenID string) string {
	return "Curated Minting: " + tokenID
}

// UnvaultMessage is the message signed to authorize a V2 unvault.
func UnvaultMessage(id string) string {
	return "Unvault: " + id
}

// ClaimMessage is the message signed to authorize a legacy claim.
func ClaimMessage(id string) string {
	return "Claim: " + id
}

// DeleteMessage is the message signed to authorize vault deletion.
func DeleteMessage(tokenID string) string {
	return "Delete: " + tokenID
}
