package emblem

import (
	"context"
	"math/big"
)

// Signer represents a wallet capable of signing canonical vault messages.
// Implementations handle chain-specific signing for EVM (evm package),
// Solana (svm package), and test stubs.
type Signer interface {
	// Address returns the signer's account address in its chain-native
	// encoding (hex for EVM, base58 for Solana).
	Address() string

	// SignMessage signs a canonical vault message and returns the
	// signature in the chain's conventional string encoding.
	SignMessage(ctx context.Context, message string) (string, error)
}

// TxRequest describes a transaction to submit.
type TxRequest struct {
	// To is the target contract address.
	To string

	// Data is the ABI-encoded call data.
	Data []byte

	// Value is the native-currency amount to attach, or nil for zero.
	Value *big.Int
}

// TxHandle tracks a submitted transaction.
type TxHandle interface {
	// Hash returns the transaction hash.
	Hash() string

	// Wait blocks until the transaction is confirmed on chain. It returns
	// an error when the transaction reverts or the context is cancelled.
	Wait(ctx context.Context) error
}

// TransactionSender represents a wallet capable of submitting transactions.
type TransactionSender interface {
	// SendTransaction signs and broadcasts the transaction.
	SendTransaction(ctx context.Context, tx TxRequest) (TxHandle, error)
}
