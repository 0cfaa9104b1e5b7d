// Package svm implements the Solana message signer used for vaults whose
// claim path is signature-only (Solana vaults never run an on-chain
// unvault step through this SDK).
package svm

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"

	emblem "github.com/EmblemCompany/emblem-vault-sdk-sub000"
)

// Signer implements emblem.Signer for Solana. Canonical vault messages are
// signed ed25519 over the raw message bytes; signatures are returned in
// base58.
type Signer struct {
	privateKey solana.PrivateKey
	publicKey  solana.PublicKey
}

// SignerOption configures a Signer.
type SignerOption func(*Signer) error

// NewSigner creates a new Solana signer with the given options.
func NewSigner(opts ...SignerOption) (*Signer, error) {
	s := &Signer{}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if len(s.privateKey) == 0 {
		return nil, emblem.ErrInvalidKey
	}

	s.publicKey = s.privateKey.PublicKey()
	return s, nil
}

// WithPrivateKey sets the private key from a base58 string.
func WithPrivateKey(base58Key string) SignerOption {
	return func(s *Signer) error {
		privateKey, err := solana.PrivateKeyFromBase58(base58Key)
		if err != nil {
			return emblem.ErrInvalidKey
		}
		s.privateKey = privateKey
		return nil
	}
}

// WithKeygenFile loads a private key from a Solana keygen JSON file.
func WithKeygenFile(path string) SignerOption {
	return func(s *Signer) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%w: %v", emblem.ErrInvalidKeystore, err)
		}

		// Keygen files are a JSON array of byte values: [1, 2, 3, ...]
		var values []uint16
		if err := json.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("%w: invalid JSON format", emblem.ErrInvalidKeystore)
		}
		if len(values) != 64 {
			return fmt.Errorf("%w: invalid key length", emblem.ErrInvalidKeystore)
		}

		keyBytes := make([]byte, len(values))
		for i, v := range values {
			if v > 255 {
				return fmt.Errorf("%w: byte value out of range", emblem.ErrInvalidKeystore)
			}
			keyBytes[i] = byte(v)
		}
		s.privateKey = solana.PrivateKey(keyBytes)
		return nil
	}
}

// WithGeneratedKey creates an ephemeral keypair. Intended for tests.
func WithGeneratedKey() SignerOption {
	return func(s *Signer) error {
		wallet := solana.NewWallet()
		s.privateKey = wallet.PrivateKey
		return nil
	}
}

// Address implements emblem.Signer.
func (s *Signer) Address() string {
	return s.publicKey.String()
}

// PublicKey returns the signer's public key.
func (s *Signer) PublicKey() solana.PublicKey {
	return s.publicKey
}

// SignMessage implements emblem.Signer.
func (s *Signer) SignMessage(_ context.Context, message string) (string, error) {
	sig, err := s.privateKey.Sign([]byte(message))
	if err != nil {
		return "", fmt.Errorf("failed to sign message: %w", err)
	}
	return sig.String(), nil
}

// Verify checks a base58 signature produced by SignMessage against the
// signer's public key.
func (s *Signer) Verify(message, signature string) bool {
	sig, err := solana.SignatureFromBase58(signature)
	if err != nil {
		return false
	}
	return ed25519.Verify(s.publicKey.Bytes(), []byte(message), sig[:])
}
