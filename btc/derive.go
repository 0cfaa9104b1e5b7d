// Package btc implements the BIP39/BIP32 key derivation contract of the
// Bitcoin vault layer: given a vault's recovery phrase, it derives the
// payment keys the (external) PSBT construction layer spends from.
package btc

import (
	"fmt"

	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"

	emblem "github.com/EmblemCompany/emblem-vault-sdk-sub000"
)

// Derivation path components for m/44'/0'/0'/0/index.
const (
	purposeBIP44 = bip32.FirstHardenedChild + 44
	coinBitcoin  = bip32.FirstHardenedChild + 0
	accountZero  = bip32.FirstHardenedChild + 0
	changeExtern = 0
)

// VaultKey is a derived key pair for one vault payment address.
type VaultKey struct {
	// Path is the BIP44 derivation path of the key.
	Path string

	// PrivateKey is the base58-serialized extended private key.
	PrivateKey string

	// PublicKey is the base58-serialized extended public key.
	PublicKey string
}

// DeriveVaultKey derives the vault payment key at
// m/44'/0'/0'/0/index from a BIP39 recovery phrase.
func DeriveVaultKey(mnemonic, passphrase string, index uint32) (*VaultKey, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, emblem.ErrInvalidMnemonic
	}

	seed := bip39.NewSeed(mnemonic, passphrase)

	key, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", emblem.ErrInvalidMnemonic, err)
	}

	for _, step := range []uint32{purposeBIP44, coinBitcoin, accountZero, changeExtern, index} {
		key, err = key.NewChildKey(step)
		if err != nil {
			return nil, fmt.Errorf("key derivation failed: %w", err)
		}
	}

	return &VaultKey{
		Path:       fmt.Sprintf("m/44'/0'/0'/0/%d", index),
		PrivateKey: key.B58Serialize(),
		PublicKey:  key.PublicKey().B58Serialize(),
	}, nil
}

// NewMnemonic generates a fresh 12-word recovery phrase for a new vault.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	return mnemonic, nil
}
