package evm

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	emblem "github.com/EmblemCompany/emblem-vault-sdk-sub000"
)

// ParseBigInt normalizes a numeric attestation field to *big.Int. It is the
// single source of truth for numeric parsing at the sequencer's trust
// boundary: remote signers deliver values as decimal strings, 0x hex
// strings, or JSON numbers depending on deployment, and all of them funnel
// through here before touching a contract call.
func ParseBigInt(v any) (*big.Int, error) {
	switch val := v.(type) {
	case *big.Int:
		if val == nil {
			return nil, fmt.Errorf("%w: nil value", emblem.ErrInvalidAmount)
		}
		return new(big.Int).Set(val), nil

	case string:
		return parseBigIntString(val)

	case json.Number:
		return parseBigIntString(val.String())

	case float64:
		f := new(big.Float).SetFloat64(val)
		n, acc := f.Int(nil)
		if acc != big.Exact {
			return nil, fmt.Errorf("%w: non-integer number %v", emblem.ErrInvalidAmount, val)
		}
		return n, nil

	case int:
		return big.NewInt(int64(val)), nil

	case int64:
		return big.NewInt(val), nil

	case uint64:
		return new(big.Int).SetUint64(val), nil

	default:
		return nil, fmt.Errorf("%w: unsupported type %T", emblem.ErrInvalidAmount, v)
	}
}

func parseBigIntString(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", emblem.ErrInvalidAmount)
	}

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, ok := new(big.Int).SetString(s[2:], 16)
		if !ok {
			return nil, fmt.Errorf("%w: invalid hex %q", emblem.ErrInvalidAmount, s)
		}
		return n, nil
	}

	if n, ok := new(big.Int).SetString(s, 10); ok {
		return n, nil
	}

	// Some server versions emit scientific notation for large prices.
	f, ok := new(big.Float).SetString(s)
	if !ok {
		return nil, fmt.Errorf("%w: invalid number %q", emblem.ErrInvalidAmount, s)
	}
	n, acc := f.Int(nil)
	if acc != big.Exact {
		return nil, fmt.Errorf("%w: non-integer number %q", emblem.ErrInvalidAmount, s)
	}
	return n, nil
}
