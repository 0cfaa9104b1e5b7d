// Package emblem provides types, chain configuration, and helper functions for
// working with curated Emblem vault collections across multiple blockchain
// networks. It is the shared foundation for the collection rule engine
// (rules package) and the mint/claim/unvault sequencer (evm package).
package emblem

import (
	"encoding/json"
	"fmt"
)

// CollectionRecord describes a curated collection as served by the remote
// collection-metadata service. Records are immutable once fetched; the rule
// engine snapshots them by value.
type CollectionRecord struct {
	// Name is the unique, case-sensitive collection identity.
	Name string `json:"name"`

	// AddressChain is the chain the vault deposit address lives on.
	AddressChain string `json:"addressChain"`

	// CollectionChain is the chain the qualifying assets live on.
	CollectionChain string `json:"collectionChain"`

	// CollectionType is the on-chain token standard (e.g., "ERC721A").
	CollectionType string `json:"collectionType"`

	// VaultCollectionType categorizes the eligibility rule family
	// ("protocol", "collection", or empty for name-specific rules).
	VaultCollectionType string `json:"vaultCollectionType"`

	// NativeAssets lists asset names intrinsic to the collection. They are
	// skipped when searching for "the interesting asset" in a vault.
	// A single "*" entry disables filtering entirely.
	NativeAssets []string `json:"nativeAssets"`

	// BalanceQty, when set and positive, requires the vault to hold exactly
	// this quantity of the collection's token. Nil when the service sends null.
	BalanceQty *float64 `json:"balanceQty"`

	// LoadTypes selects presentation behaviors ("detailed", "select", ...).
	LoadTypes []string `json:"loadTypes"`

	// Contracts maps chain ID (decimal string) to the collection's contract.
	Contracts map[string]string `json:"contracts"`

	// ImageHandler, when set, is prefixed onto relative asset image URLs.
	ImageHandler string `json:"imageHandler,omitempty"`

	LoadingImages     []string `json:"loadingImages,omitempty"`
	PlaceholderImages []string `json:"placeholderImages,omitempty"`

	Description string `json:"description"`
	AutoLoad    bool   `json:"autoLoad"`
	Fusion      bool   `json:"fusion"`
}

// Balance is a single asset held at a vault address. Order matters: the rule
// engine treats the first non-native entry as "the" asset of the vault.
type Balance struct {
	Coin        string  `json:"coin"`
	Name        string  `json:"name,omitempty"`
	Project     string  `json:"project,omitempty"`
	Balance     float64 `json:"balance"`
	ContentType string  `json:"content_type,omitempty"`
	Image       string  `json:"image,omitempty"`
	ExternalURL string  `json:"external_url,omitempty"`
}

// Ownership is a read-only snapshot of a vault's ownership state used for
// migration-path decisions (AllowedJump).
type Ownership struct {
	Status   string    `json:"status"`
	Balances []Balance `json:"balances"`
}

// TargetContract describes the contract a V2 vault mints against. The wire
// format mixes fixed fields with dynamic chain-ID keys, so it carries a
// custom unmarshaler that collects the per-chain addresses.
type TargetContract struct {
	Name           string `json:"name,omitempty"`
	CollectionType string `json:"collectionType,omitempty"`
	SerialNumber   string `json:"serialNumber,omitempty"`
	TokenID        string `json:"tokenId,omitempty"`

	// Addresses maps chain ID (decimal string) to contract address.
	Addresses map[string]string `json:"-"`
}

// UnmarshalJSON captures the fixed fields and folds every remaining
// numeric-keyed string value into Addresses.
func (t *TargetContract) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("targetContract: %w", err)
	}

	fixed := map[string]*string{
		"name":           &t.Name,
		"collectionType": &t.CollectionType,
		"serialNumber":   &t.SerialNumber,
		"tokenId":        &t.TokenID,
	}
	for key, dst := range fixed {
		if v, ok := raw[key]; ok {
			// tokenId occasionally arrives as a number
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				var n json.Number
				if err := json.Unmarshal(v, &n); err != nil {
					continue
				}
				s = n.String()
			}
			*dst = s
			delete(raw, key)
		}
	}

	for key, v := range raw {
		if !isDecimalKey(key) {
			continue
		}
		var addr string
		if err := json.Unmarshal(v, &addr); err != nil {
			continue
		}
		if t.Addresses == nil {
			t.Addresses = make(map[string]string)
		}
		t.Addresses[key] = addr
	}

	return nil
}

// AddressFor returns the contract address configured for the given chain ID,
// or "" when none is set.
func (t *TargetContract) AddressFor(chainID int64) string {
	if t == nil {
		return ""
	}
	return t.Addresses[fmt.Sprintf("%d", chainID)]
}

func isDecimalKey(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// VaultAddress is one deposit address belonging to a vault.
type VaultAddress struct {
	Address string `json:"address"`
	Coin    string `json:"coin"`
}

// VaultMetadata is the per-tokenId record fetched from the metadata service.
// It is a read-only snapshot; classification helpers in vault.go derive the
// vault's version and claim path from its shape.
type VaultMetadata struct {
	TokenID           string          `json:"tokenId"`
	Status            string          `json:"status"`
	Live              bool            `json:"live"`
	Sealed            bool            `json:"sealed"`
	ClaimedBy         string          `json:"claimedBy,omitempty"`
	TargetContract    *TargetContract `json:"targetContract,omitempty"`
	OwnershipInfo     *OwnershipInfo  `json:"ownershipInfo,omitempty"`
	CollectionAddress string          `json:"collectionAddress,omitempty"`
	CiphertextV2      string          `json:"ciphertextV2,omitempty"`
	Addresses         []VaultAddress  `json:"addresses,omitempty"`
}

// OwnershipInfo carries the ownership category reported by the service.
type OwnershipInfo struct {
	Category string `json:"category"`
}

// MintSignature is the attestation payload returned by the remote signer for
// a curated mint. Numeric fields arrive as string, hex string, or JSON number
// depending on the server version; they stay untyped here and must be
// normalized through evm.ParseBigInt before use in contract calls.
type MintSignature struct {
	NFTAddress   string `json:"_nftAddress"`
	Price        any    `json:"_price"`
	To           string `json:"_to"`
	TokenID      any    `json:"_tokenId"`
	Nonce        any    `json:"_nonce"`
	Signature    string `json:"_signature"`
	SerialNumber string `json:"serialNumber"`
	Timestamp    any    `json:"_timestamp,omitempty"`
}

// UnvaultSignature is the attestation payload returned by the remote signer
// for a signed-price unvault. Same numeric-normalization rules as
// MintSignature.
type UnvaultSignature struct {
	Success    bool   `json:"success"`
	NFTAddress string `json:"_nftAddress"`
	TokenID    any    `json:"_tokenId"`
	Nonce      any    `json:"_nonce"`
	Price      any    `json:"_price"`
	Signature  string `json:"_signature"`
	Timestamp  any    `json:"_timestamp,omitempty"`
}
