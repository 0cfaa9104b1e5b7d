package api

import (
	"encoding/json"
	"errors"
	"testing"

	emblem "github.com/EmblemCompany/emblem-vault-sdk-sub000"
)

func TestRemoteError(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantMsg string
	}{
		{name: "no markers", raw: `{"_price":"100"}`, wantMsg: ""},
		{name: "empty payload", raw: ``, wantMsg: ""},
		{name: "array payload", raw: `[1,2,3]`, wantMsg: ""},
		{name: "string error", raw: `{"error":"vault not found"}`, wantMsg: "vault not found"},
		{name: "object error with message", raw: `{"error":{"message":"bad request"}}`, wantMsg: "bad request"},
		{name: "err with msg", raw: `{"err":{"msg":"insufficient funds"}}`, wantMsg: "insufficient funds"},
		{name: "nested msg", raw: `{"err":{"msg":{"msg":"deep reason"}}}`, wantMsg: "deep reason"},
		{name: "string err", raw: `{"err":"nope"}`, wantMsg: "nope"},
		{name: "null error ignored", raw: `{"error":null}`, wantMsg: ""},
		{name: "success false with msg", raw: `{"success":false,"msg":"expired"}`, wantMsg: "expired"},
		{name: "success false bare", raw: `{"success":false}`, wantMsg: "remote service reported failure"},
		{name: "success true", raw: `{"success":true}`, wantMsg: ""},
		{name: "numeric error stringified", raw: `{"error":500}`, wantMsg: "500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RemoteError(json.RawMessage(tt.raw))
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("RemoteError(%s) = %v, want nil", tt.raw, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("RemoteError(%s) = nil, want %q", tt.raw, tt.wantMsg)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", err.Error(), tt.wantMsg)
			}
			if !errors.Is(err, emblem.ErrRemoteRejected) {
				t.Errorf("error %v does not wrap ErrRemoteRejected", err)
			}
		})
	}
}
