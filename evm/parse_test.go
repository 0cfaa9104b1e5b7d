package evm

import (
	"encoding/json"
	"errors"
	"math/big"
	"testing"

	emblem "github.com/EmblemCompany/emblem-vault-sdk-sub000"
)

func TestParseBigInt(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    string
		wantErr bool
	}{
		{name: "decimal string", in: "1000000000000000000", want: "1000000000000000000"},
		{name: "hex string", in: "0xde0b6b3a7640000", want: "1000000000000000000"},
		{name: "uppercase hex prefix", in: "0XFF", want: "255"},
		{name: "scientific notation", in: "1e18", want: "1000000000000000000"},
		{name: "whitespace trimmed", in: "  42  ", want: "42"},
		{name: "negative decimal", in: "-5", want: "-5"},
		{name: "json number", in: json.Number("123456789"), want: "123456789"},
		{name: "integral float64", in: float64(1e15), want: "1000000000000000"},
		{name: "int", in: 7, want: "7"},
		{name: "int64", in: int64(-9), want: "-9"},
		{name: "uint64", in: uint64(18446744073709551615), want: "18446744073709551615"},
		{name: "big.Int passthrough", in: big.NewInt(99), want: "99"},
		{name: "empty string", in: "", wantErr: true},
		{name: "fractional float64", in: 1.5, wantErr: true},
		{name: "fractional string", in: "1.5", wantErr: true},
		{name: "garbage string", in: "not a number", wantErr: true},
		{name: "invalid hex", in: "0xzz", wantErr: true},
		{name: "nil big.Int", in: (*big.Int)(nil), wantErr: true},
		{name: "unsupported type", in: []string{"1"}, wantErr: true},
		{name: "nil", in: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBigInt(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseBigInt(%v) = %v, want error", tt.in, got)
				}
				if !errors.Is(err, emblem.ErrInvalidAmount) {
					t.Errorf("error %v does not wrap ErrInvalidAmount", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBigInt(%v) error: %v", tt.in, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseBigInt(%v) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseBigIntCopiesInput(t *testing.T) {
	orig := big.NewInt(10)
	got, err := ParseBigInt(orig)
	if err != nil {
		t.Fatal(err)
	}
	got.SetInt64(999)
	if orig.Int64() != 10 {
		t.Error("ParseBigInt aliased the caller's big.Int")
	}
}
