package emblem

import (
	"errors"
	"fmt"
)

// Standard vault SDK error definitions

var (
	// ErrSignerUnavailable indicates no wallet or provider could be obtained.
	ErrSignerUnavailable = errors.New("emblem: no signer available")

	// ErrRemoteRejected indicates the remote attestation service rejected the request.
	ErrRemoteRejected = errors.New("emblem: remote attestation rejected")

	// ErrTxFailed indicates an on-chain transaction reverted or failed to confirm.
	ErrTxFailed = errors.New("emblem: transaction failed")

	// ErrKeyMissing indicates the remote decryption key step returned nothing.
	ErrKeyMissing = errors.New("emblem: decryption key missing")

	// ErrUnsupportedChain indicates the chain ID has no contract configuration.
	ErrUnsupportedChain = errors.New("emblem: unsupported chain")

	// ErrInvalidAmount indicates a numeric attestation field could not be parsed.
	ErrInvalidAmount = errors.New("emblem: invalid amount")

	// ErrInvalidKey indicates an invalid private key.
	ErrInvalidKey = errors.New("emblem: invalid private key")

	// ErrInvalidKeystore indicates an invalid or undecryptable keystore file.
	ErrInvalidKeystore = errors.New("emblem: invalid keystore file")

	// ErrInvalidMnemonic indicates an invalid BIP39 mnemonic phrase.
	ErrInvalidMnemonic = errors.New("emblem: invalid mnemonic phrase")

	// ErrInvalidTemplate indicates a creation template still carries
	// placeholder or empty values.
	ErrInvalidTemplate = errors.New("emblem: invalid template")

	// ErrAPIUnavailable indicates the vault API could not be reached.
	ErrAPIUnavailable = errors.New("emblem: vault api unavailable")
)

// ErrorCode classifies a VaultError for programmatic handling.
type ErrorCode string

const (
	ErrCodeSignerUnavailable ErrorCode = "SIGNER_UNAVAILABLE"
	ErrCodeRemoteRejected    ErrorCode = "REMOTE_REJECTED"
	ErrCodeTxFailed          ErrorCode = "TX_FAILED"
	ErrCodeKeyMissing        ErrorCode = "KEY_MISSING"
	ErrCodeUnsupportedChain  ErrorCode = "UNSUPPORTED_CHAIN"
	ErrCodeInvalidTemplate   ErrorCode = "INVALID_TEMPLATE"
)

// VaultError wraps an underlying error with a classification code and
// optional structured details.
type VaultError struct {
	Code    ErrorCode
	Message string
	Err     error
	Details map[string]any
}

// NewVaultError creates a VaultError with the given code, message and cause.
func NewVaultError(code ErrorCode, message string, err error) *VaultError {
	return &VaultError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *VaultError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *VaultError) Unwrap() error {
	return e.Err
}

// WithDetails attaches a key/value pair to the error and returns it for chaining.
func (e *VaultError) WithDetails(key string, value any) *VaultError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}
