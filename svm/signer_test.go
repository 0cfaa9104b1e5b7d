package svm

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"

	emblem "github.com/EmblemCompany/emblem-vault-sdk-sub000"
)

func TestSignAndVerify(t *testing.T) {
	signer, err := NewSigner(WithGeneratedKey())
	if err != nil {
		t.Fatal(err)
	}

	message := "Unvault: 1337"
	sig, err := signer.SignMessage(context.Background(), message)
	if err != nil {
		t.Fatal(err)
	}
	if sig == "" {
		t.Fatal("empty signature")
	}

	if !signer.Verify(message, sig) {
		t.Error("signature does not verify")
	}
	if signer.Verify("Unvault: 1338", sig) {
		t.Error("signature verified against a different message")
	}
	if signer.Verify(message, "not-base58-!!") {
		t.Error("malformed signature verified")
	}
}

func TestNewSignerRequiresKey(t *testing.T) {
	_, err := NewSigner()
	if !errors.Is(err, emblem.ErrInvalidKey) {
		t.Errorf("error = %v, want ErrInvalidKey", err)
	}
}

func TestWithPrivateKeyRoundTrip(t *testing.T) {
	wallet := solana.NewWallet()
	signer, err := NewSigner(WithPrivateKey(wallet.PrivateKey.String()))
	if err != nil {
		t.Fatal(err)
	}
	if signer.Address() != wallet.PublicKey().String() {
		t.Errorf("address = %s, want %s", signer.Address(), wallet.PublicKey())
	}
}

func TestWithPrivateKeyInvalid(t *testing.T) {
	_, err := NewSigner(WithPrivateKey("zz-not-a-key"))
	if !errors.Is(err, emblem.ErrInvalidKey) {
		t.Errorf("error = %v, want ErrInvalidKey", err)
	}
}

func TestWithKeygenFile(t *testing.T) {
	wallet := solana.NewWallet()
	values := make([]int, len(wallet.PrivateKey))
	for i, b := range wallet.PrivateKey {
		values[i] = int(b)
	}
	data, err := json.Marshal(values)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "id.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	signer, err := NewSigner(WithKeygenFile(path))
	if err != nil {
		t.Fatal(err)
	}
	if signer.Address() != wallet.PublicKey().String() {
		t.Errorf("address = %s, want %s", signer.Address(), wallet.PublicKey())
	}
}

func TestWithKeygenFileInvalid(t *testing.T) {
	dir := t.TempDir()

	short := filepath.Join(dir, "short.json")
	os.WriteFile(short, []byte("[1,2,3]"), 0o600)
	if _, err := NewSigner(WithKeygenFile(short)); !errors.Is(err, emblem.ErrInvalidKeystore) {
		t.Errorf("short key error = %v, want ErrInvalidKeystore", err)
	}

	garbage := filepath.Join(dir, "garbage.json")
	os.WriteFile(garbage, []byte("not json"), 0o600)
	if _, err := NewSigner(WithKeygenFile(garbage)); !errors.Is(err, emblem.ErrInvalidKeystore) {
		t.Errorf("garbage error = %v, want ErrInvalidKeystore", err)
	}

	if _, err := NewSigner(WithKeygenFile(filepath.Join(dir, "missing.json"))); !errors.Is(err, emblem.ErrInvalidKeystore) {
		t.Errorf("missing file error = %v, want ErrInvalidKeystore", err)
	}
}
