package evm

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	emblem "github.com/EmblemCompany/emblem-vault-sdk-sub000"
)

// Signer implements emblem.Signer and emblem.TransactionSender for
// EVM-compatible chains. Messages are signed with the EIP-191 personal-sign
// scheme the remote attestation service verifies against.
type Signer struct {
	privateKey *ecdsa.PrivateKey
	address    common.Address
	chainID    *big.Int
	rpcURL     string
	client     *ethclient.Client
}

// SignerOption configures a Signer.
type SignerOption func(*Signer) error

// NewSigner creates a new EVM signer with the given options.
func NewSigner(opts ...SignerOption) (*Signer, error) {
	s := &Signer{
		chainID: big.NewInt(emblem.EthereumMainnet.ID),
		rpcURL:  emblem.EthereumMainnet.RPCURL,
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.privateKey == nil {
		return nil, emblem.ErrInvalidKey
	}

	s.address = crypto.PubkeyToAddress(s.privateKey.PublicKey)
	return s, nil
}

// WithPrivateKey sets the private key from a hex string.
func WithPrivateKey(hexKey string) SignerOption {
	return func(s *Signer) error {
		hexKey = strings.TrimPrefix(hexKey, "0x")

		privateKey, err := crypto.HexToECDSA(hexKey)
		if err != nil {
			return emblem.ErrInvalidKey
		}

		s.privateKey = privateKey
		return nil
	}
}

// WithKeystore loads a private key from an encrypted keystore file.
func WithKeystore(keystorePath, password string) SignerOption {
	return func(s *Signer) error {
		data, err := os.ReadFile(keystorePath)
		if err != nil {
			return fmt.Errorf("%w: %v", emblem.ErrInvalidKeystore, err)
		}

		var keyJSON struct {
			Crypto keystore.CryptoJSON `json:"crypto"`
		}
		if err := json.Unmarshal(data, &keyJSON); err != nil {
			return fmt.Errorf("%w: invalid JSON format", emblem.ErrInvalidKeystore)
		}

		privateKeyBytes, err := keystore.DecryptDataV3(keyJSON.Crypto, password)
		if err != nil {
			return fmt.Errorf("%w: decryption failed", emblem.ErrInvalidKeystore)
		}

		privateKey, err := crypto.ToECDSA(privateKeyBytes)
		if err != nil {
			return fmt.Errorf("%w: invalid private key", emblem.ErrInvalidKeystore)
		}

		s.privateKey = privateKey
		return nil
	}
}

// WithChain binds the signer to a chain ID, resolving its RPC endpoint with
// a fallback to Ethereum mainnet's endpoint when the chain is unconfigured.
func WithChain(chainID int64) SignerOption {
	return func(s *Signer) error {
		s.chainID = big.NewInt(chainID)
		s.rpcURL = emblem.RPCFor(chainID)
		return nil
	}
}

// WithRPC overrides the RPC endpoint.
func WithRPC(url string) SignerOption {
	return func(s *Signer) error {
		s.rpcURL = url
		return nil
	}
}

// Address implements emblem.Signer.
func (s *Signer) Address() string {
	return s.address.Hex()
}

// ChainID returns the chain the signer is bound to.
func (s *Signer) ChainID() int64 {
	return s.chainID.Int64()
}

// SignMessage implements emblem.Signer using EIP-191 personal-sign hashing.
// The returned signature uses the Ethereum V offset (27/28).
func (s *Signer) SignMessage(_ context.Context, message string) (string, error) {
	hash := accounts.TextHash([]byte(message))

	sig, err := crypto.Sign(hash, s.privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign message: %w", err)
	}
	sig[64] += 27

	return hexutil.Encode(sig), nil
}

// SendTransaction implements emblem.TransactionSender. The transaction is
// signed locally and broadcast through the signer's RPC endpoint.
func (s *Signer) SendTransaction(ctx context.Context, tx emblem.TxRequest) (emblem.TxHandle, error) {
	client, err := s.dial(ctx)
	if err != nil {
		return nil, err
	}

	nonce, err := client.PendingNonceAt(ctx, s.address)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nonce: %w", err)
	}

	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gas price: %w", err)
	}

	to := common.HexToAddress(tx.To)
	value := tx.Value
	if value == nil {
		value = big.NewInt(0)
	}

	gasLimit, err := client.EstimateGas(ctx, ethereum.CallMsg{
		From:  s.address,
		To:    &to,
		Value: value,
		Data:  tx.Data,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: gas estimation failed: %v", emblem.ErrTxFailed, err)
	}

	signed, err := types.SignNewTx(s.privateKey, types.LatestSignerForChainID(s.chainID), &types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    value,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     tx.Data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := client.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("%w: %v", emblem.ErrTxFailed, err)
	}

	return &txHandle{tx: signed, client: client}, nil
}

func (s *Signer) dial(ctx context.Context) (*ethclient.Client, error) {
	if s.client != nil {
		return s.client, nil
	}

	client, err := ethclient.DialContext(ctx, s.rpcURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", emblem.ErrSignerUnavailable, err)
	}
	s.client = client
	return client, nil
}

// txHandle tracks a broadcast transaction until it is mined.
type txHandle struct {
	tx     *types.Transaction
	client *ethclient.Client
}

func (h *txHandle) Hash() string {
	return h.tx.Hash().Hex()
}

func (h *txHandle) Wait(ctx context.Context) error {
	receipt, err := bind.WaitMined(ctx, h.client, h.tx)
	if err != nil {
		return fmt.Errorf("%w: %v", emblem.ErrTxFailed, err)
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return fmt.Errorf("%w: transaction %s reverted", emblem.ErrTxFailed, h.tx.Hash().Hex())
	}
	return nil
}
