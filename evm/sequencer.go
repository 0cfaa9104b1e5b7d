// Package evm implements the EVM operation sequencer: the multi-step
// sign / attest / submit / confirm / decrypt workflows behind curated
// minting, claiming, and vault deletion, plus the EVM wallet signer they
// drive.
//
// Every operation is a strict linear chain: each step awaits the previous
// one, any failure short-circuits the whole operation, and nothing is
// retried or rolled back. A transaction that confirms before a later step
// fails stays on chain.
package evm

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	emblem "github.com/EmblemCompany/emblem-vault-sdk-sub000"
	"github.com/EmblemCompany/emblem-vault-sdk-sub000/api"
)

// Progress phase strings. These are part of the observable contract:
// callers (and tests) match on them.
const (
	PhaseSigningMessage        = "signing message"
	PhaseRequestingSignature   = "requesting remote signature"
	PhaseSubmittingTransaction = "submitting transaction"
	PhaseAwaitingConfirmation  = "awaiting confirmation"
	PhaseFetchingKeys          = "fetching decryption keys"
	PhaseDecryptingKeys        = "decrypting vault keys"
)

// ProgressFunc receives a phase string at each step boundary. It is purely
// observational: errors are never delivered through it.
type ProgressFunc func(phase string)

// WalletSigner is the wallet capability the sequencer needs for operations
// that submit transactions.
type WalletSigner interface {
	emblem.Signer
	emblem.TransactionSender
}

// DecryptedKeys is the recovered secret material of a claimed vault.
type DecryptedKeys struct {
	// Phrase is the vault's recovery phrase, when one exists.
	Phrase string `json:"phrase,omitempty"`

	// Keys maps coin symbol to the decrypted private key material.
	Keys map[string]string `json:"keys"`
}

// KeyClient is the remote key-retrieval and decryption collaborator (Torus
// TEE shares + local decryption). Consumed as an opaque interface.
type KeyClient interface {
	// RequestRemoteKey exchanges the signer JWT for the vault's remote
	// decryption key. An empty key means the service had nothing for this
	// vault.
	RequestRemoteKey(ctx context.Context, token, tokenID string) (string, error)

	// DecryptVaultKeys decrypts the vault's ciphertext with the remote key.
	DecryptVaultKeys(ctx context.Context, remoteKey, ciphertext string) (*DecryptedKeys, error)
}

// MintResult reports a completed curated mint.
type MintResult struct {
	TxHash  string `json:"txHash"`
	TokenID string `json:"tokenId"`
	ChainID int64  `json:"chainId"`
}

// Sequencer coordinates the curated mint, claim, and delete workflows.
type Sequencer struct {
	api   *api.Client
	torus *api.TorusClient
	keys  KeyClient
}

// NewSequencer creates a sequencer over the given collaborators.
func NewSequencer(apiClient *api.Client, torus *api.TorusClient, keys KeyClient) *Sequencer {
	return &Sequencer{api: apiClient, torus: torus, keys: keys}
}

// PerformMint runs the curated mint flow: sign the mint message, exchange
// it for a signed-price attestation, submit buyWithSignedPrice to the
// chain's handler contract with the attested price as value, and wait for
// confirmation.
func (s *Sequencer) PerformMint(ctx context.Context, signer WalletSigner, tokenID string, chainID int64, progress ProgressFunc) (*MintResult, error) {
	if signer == nil {
		return nil, emblem.NewVaultError(emblem.ErrCodeSignerUnavailable, "no wallet signer", emblem.ErrSignerUnavailable)
	}
	chain, ok := emblem.ChainByID(chainID)
	if !ok {
		return nil, emblem.NewVaultError(emblem.ErrCodeUnsupportedChain, "no contract configuration", emblem.ErrUnsupportedChain).
			WithDetails("chainId", chainID)
	}

	report(progress, PhaseSigningMessage)
	signature, err := signer.SignMessage(ctx, emblem.MintMessage(tokenID))
	if err != nil {
		return nil, fmt.Errorf("failed to sign mint message: %w", err)
	}

	report(progress, PhaseRequestingSignature)
	mintSig, err := s.api.MintCurated(ctx, api.CuratedRequest{
		Method:    "buyWithSignedPrice",
		TokenID:   tokenID,
		Signature: signature,
		ChainID:   emblem.ChainIDString(chainID),
	})
	if err != nil {
		return nil, err
	}

	price, err := ParseBigInt(mintSig.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid _price: %w", err)
	}
	data, err := encodeBuyWithSignedPrice(mintSig, price)
	if err != nil {
		return nil, err
	}

	report(progress, PhaseSubmittingTransaction)
	handle, err := signer.SendTransaction(ctx, emblem.TxRequest{
		To:    chain.HandlerAddress,
		Data:  data,
		Value: price,
	})
	if err != nil {
		return nil, err
	}

	report(progress, PhaseAwaitingConfirmation)
	if err := handle.Wait(ctx); err != nil {
		return nil, err
	}

	return &MintResult{TxHash: handle.Hash(), TokenID: tokenID, ChainID: chainID}, nil
}

// PerformClaim runs the claim flow. Minted, unclaimed vaults first release
// their on-chain lock (signed-price unvault for V2 vaults, legacy claim
// otherwise); already-claimed vaults skip straight to key recovery. The
// claim message is then signed, exchanged for a Torus JWT, and used to
// fetch and decrypt the vault keys.
func (s *Sequencer) PerformClaim(ctx context.Context, signer WalletSigner, tokenID string, chainID int64, meta emblem.VaultMetadata, progress ProgressFunc) (*DecryptedKeys, error) {
	if signer == nil {
		return nil, emblem.NewVaultError(emblem.ErrCodeSignerUnavailable, "no wallet signer", emblem.ErrSignerUnavailable)
	}
	if s.torus == nil {
		return nil, emblem.NewVaultError(emblem.ErrCodeSignerUnavailable, "no torus signer client", emblem.ErrSignerUnavailable)
	}
	if s.keys == nil {
		return nil, emblem.NewVaultError(emblem.ErrCodeKeyMissing, "no key client", emblem.ErrKeyMissing)
	}
	chain, ok := emblem.ChainByID(chainID)
	if !ok {
		return nil, emblem.NewVaultError(emblem.ErrCodeUnsupportedChain, "no contract configuration", emblem.ErrUnsupportedChain).
			WithDetails("chainId", chainID)
	}

	if emblem.IsMinted(meta) && !emblem.IsClaimed(meta) {
		if emblem.RequiresOnChainUnvault(meta) {
			if err := s.performOnChainUnvault(ctx, signer, tokenID, chainID, chain, progress); err != nil {
				return nil, err
			}
		} else {
			if err := s.performLegacyClaim(ctx, signer, meta, chainID, chain, progress); err != nil {
				return nil, err
			}
		}
	}

	id := emblem.ClaimIdentifier(meta)
	message := emblem.ClaimMessage(id)
	if emblem.IsV2Vault(meta) {
		message = emblem.UnvaultMessage(id)
	}

	report(progress, PhaseSigningMessage)
	signature, err := signer.SignMessage(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("failed to sign claim message: %w", err)
	}

	token, err := s.torus.Sign(ctx, signature, tokenID, chainID)
	if err != nil {
		return nil, err
	}

	report(progress, PhaseFetchingKeys)
	remoteKey, err := s.keys.RequestRemoteKey(ctx, token, tokenID)
	if err != nil {
		return nil, err
	}
	if remoteKey == "" {
		return nil, emblem.NewVaultError(emblem.ErrCodeKeyMissing, "remote key service returned nothing", emblem.ErrKeyMissing).
			WithDetails("tokenId", tokenID)
	}

	report(progress, PhaseDecryptingKeys)
	keys, err := s.keys.DecryptVaultKeys(ctx, remoteKey, meta.CiphertextV2)
	if err != nil {
		return nil, err
	}
	if keys == nil {
		return nil, emblem.NewVaultError(emblem.ErrCodeKeyMissing, "decryption produced no keys", emblem.ErrKeyMissing)
	}

	return keys, nil
}

// performOnChainUnvault releases a V2 vault's custodial lock through the
// unvaulting contract's signed-price flow.
func (s *Sequencer) performOnChainUnvault(ctx context.Context, signer WalletSigner, tokenID string, chainID int64, chain emblem.Chain, progress ProgressFunc) error {
	report(progress, PhaseSigningMessage)
	signature, err := signer.SignMessage(ctx, emblem.UnvaultMessage(tokenID))
	if err != nil {
		return fmt.Errorf("failed to sign unvault message: %w", err)
	}

	report(progress, PhaseRequestingSignature)
	unvaultSig, err := s.api.UnvaultCurated(ctx, api.CuratedRequest{
		Method:    "unvaultWithSignedPrice",
		TokenID:   tokenID,
		Signature: signature,
		ChainID:   emblem.ChainIDString(chainID),
	})
	if err != nil {
		return err
	}

	price, err := ParseBigInt(unvaultSig.Price)
	if err != nil {
		return fmt.Errorf("invalid _price: %w", err)
	}
	data, err := encodeUnvaultWithSignedPrice(unvaultSig, price)
	if err != nil {
		return err
	}

	report(progress, PhaseSubmittingTransaction)
	handle, err := signer.SendTransaction(ctx, emblem.TxRequest{
		To:    chain.UnvaultingAddress,
		Data:  data,
		Value: price,
	})
	if err != nil {
		return err
	}

	report(progress, PhaseAwaitingConfirmation)
	return handle.Wait(ctx)
}

// performLegacyClaim releases a legacy vault through the handler contract's
// claim call.
func (s *Sequencer) performLegacyClaim(ctx context.Context, signer WalletSigner, meta emblem.VaultMetadata, chainID int64, chain emblem.Chain, progress ProgressFunc) error {
	nftAddress := meta.CollectionAddress
	if nftAddress == "" {
		nftAddress = meta.TargetContract.AddressFor(chainID)
	}
	if nftAddress == "" {
		return emblem.NewVaultError(emblem.ErrCodeUnsupportedChain, "no collection address for claim", emblem.ErrUnsupportedChain).
			WithDetails("chainId", chainID)
	}

	tokenIDBig, err := ParseBigInt(meta.TokenID)
	if err != nil {
		return fmt.Errorf("invalid tokenId: %w", err)
	}

	data, err := handlerABI.Pack("claim", common.HexToAddress(nftAddress), tokenIDBig)
	if err != nil {
		return fmt.Errorf("failed to encode claim: %w", err)
	}

	report(progress, PhaseSubmittingTransaction)
	handle, err := signer.SendTransaction(ctx, emblem.TxRequest{
		To:   chain.HandlerAddress,
		Data: data,
	})
	if err != nil {
		return err
	}

	report(progress, PhaseAwaitingConfirmation)
	return handle.Wait(ctx)
}

// DeleteVault signs the delete message and asks the metadata service to
// remove the vault record. No on-chain step is involved.
func (s *Sequencer) DeleteVault(ctx context.Context, signer emblem.Signer, tokenID string, chainID int64, progress ProgressFunc) (bool, error) {
	if signer == nil {
		return false, emblem.NewVaultError(emblem.ErrCodeSignerUnavailable, "no wallet signer", emblem.ErrSignerUnavailable)
	}

	report(progress, PhaseSigningMessage)
	signature, err := signer.SignMessage(ctx, emblem.DeleteMessage(tokenID))
	if err != nil {
		return false, fmt.Errorf("failed to sign delete message: %w", err)
	}

	err = s.api.DeleteVault(ctx, api.CuratedRequest{
		TokenID:   tokenID,
		Signature: signature,
		ChainID:   emblem.ChainIDString(chainID),
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func report(progress ProgressFunc, phase string) {
	if progress != nil {
		progress(phase)
	}
}

// zeroAddress is the payment-token slot for native-currency mints.
var zeroAddress = common.Address{}

func encodeBuyWithSignedPrice(sig *emblem.MintSignature, price *big.Int) ([]byte, error) {
	tokenID, err := ParseBigInt(sig.TokenID)
	if err != nil {
		return nil, fmt.Errorf("invalid _tokenId: %w", err)
	}
	nonce, err := ParseBigInt(sig.Nonce)
	if err != nil {
		return nil, fmt.Errorf("invalid _nonce: %w", err)
	}
	sigBytes, err := decodeHexBytes(sig.Signature)
	if err != nil {
		return nil, fmt.Errorf("invalid _signature: %w", err)
	}
	serial, err := decodeHexBytes(sig.SerialNumber)
	if err != nil {
		return nil, fmt.Errorf("invalid serialNumber: %w", err)
	}

	data, err := handlerABI.Pack("buyWithSignedPrice",
		common.HexToAddress(sig.NFTAddress),
		zeroAddress,
		price,
		common.HexToAddress(sig.To),
		tokenID,
		nonce,
		sigBytes,
		serial,
		big.NewInt(1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to encode buyWithSignedPrice: %w", err)
	}
	return data, nil
}

func encodeUnvaultWithSignedPrice(sig *emblem.UnvaultSignature, price *big.Int) ([]byte, error) {
	tokenID, err := ParseBigInt(sig.TokenID)
	if err != nil {
		return nil, fmt.Errorf("invalid _tokenId: %w", err)
	}
	nonce, err := ParseBigInt(sig.Nonce)
	if err != nil {
		return nil, fmt.Errorf("invalid _nonce: %w", err)
	}
	timestamp := big.NewInt(0)
	if sig.Timestamp != nil {
		timestamp, err = ParseBigInt(sig.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("invalid _timestamp: %w", err)
		}
	}
	sigBytes, err := decodeHexBytes(sig.Signature)
	if err != nil {
		return nil, fmt.Errorf("invalid _signature: %w", err)
	}

	data, err := unvaultABI.Pack("unvaultWithSignedPrice",
		common.HexToAddress(sig.NFTAddress),
		tokenID,
		nonce,
		price,
		sigBytes,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to encode unvaultWithSignedPrice: %w", err)
	}
	return data, nil
}

// decodeHexBytes decodes a hex string with or without the 0x prefix.
func decodeHexBytes(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	return hex.DecodeString(s)
}

const handlerABIJSON = `[
	{"type":"function","name":"buyWithSignedPrice","stateMutability":"payable","inputs":[
		{"name":"_nftAddress","type":"address"},
		{"name":"_payment","type":"address"},
		{"name":"_price","type":"uint256"},
		{"name":"_to","type":"address"},
		{"name":"_tokenId","type":"uint256"},
		{"name":"_nonce","type":"uint256"},
		{"name":"_signature","type":"bytes"},
		{"name":"_serialNumber","type":"bytes"},
		{"name":"_amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"claim","stateMutability":"nonpayable","inputs":[
		{"name":"_nftAddress","type":"address"},
		{"name":"tokenId","type":"uint256"}],"outputs":[]}
]`

const unvaultABIJSON = `[
	{"type":"function","name":"unvaultWithSignedPrice","stateMutability":"payable","inputs":[
		{"name":"_nftAddress","type":"address"},
		{"name":"_tokenId","type":"uint256"},
		{"name":"_nonce","type":"uint256"},
		{"name":"_price","type":"uint256"},
		{"name":"_signature","type":"bytes"},
		{"name":"_timestamp","type":"uint256"}],"outputs":[]}
]`

var (
	handlerABI = mustABI(handlerABIJSON)
	unvaultABI = mustABI(unvaultABIJSON)
)

func mustABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(err)
	}
	return parsed
}
