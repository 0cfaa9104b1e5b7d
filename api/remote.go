package api

import (
	"encoding/json"
	"fmt"

	emblem "github.com/EmblemCompany/emblem-vault-sdk-sub000"
)

// RejectionError carries a remote service's rejection reason verbatim.
// Error() returns exactly the extracted message so callers can surface it
// unchanged.
type RejectionError struct {
	Message string
}

func (e *RejectionError) Error() string {
	return e.Message
}

func (e *RejectionError) Unwrap() error {
	return emblem.ErrRemoteRejected
}

// RemoteError inspects a response payload for the service's failure markers.
// The API is inconsistent across deployments: failures arrive under "error"
// or "err", as a bare string or as an object nesting the reason under "msg"
// or "message". success:false with a reason is treated the same way.
// Returns nil when the payload carries no failure marker.
func RemoteError(raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		// Arrays and scalars cannot carry error markers.
		return nil
	}

	for _, key := range []string{"error", "err"} {
		if v, ok := payload[key]; ok && v != nil {
			return &RejectionError{Message: extractMessage(v)}
		}
	}

	if success, ok := payload["success"].(bool); ok && !success {
		if v, ok := payload["msg"]; ok && v != nil {
			return &RejectionError{Message: extractMessage(v)}
		}
		return &RejectionError{Message: "remote service reported failure"}
	}

	return nil
}

// extractMessage pulls a human-readable reason out of a failure value,
// preferring nested msg/message fields over stringifying the whole object.
func extractMessage(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any:
		if inner, ok := val["msg"]; ok && inner != nil {
			return extractMessage(inner)
		}
		if inner, ok := val["message"]; ok && inner != nil {
			return extractMessage(inner)
		}
		return fmt.Sprint(val)
	default:
		return fmt.Sprint(val)
	}
}
