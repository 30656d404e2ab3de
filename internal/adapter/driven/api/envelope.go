package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
)

const invalidResponseMessage = "invalid response from server"

// Envelope is the backend's response wrapper.
type Envelope struct {
	Success bool             `json:"success"`
	Data    json.RawMessage  `json:"data,omitempty"`
	Error   string           `json:"error,omitempty"`
	Message string           `json:"message,omitempty"`
	Token   string           `json:"token,omitempty"`
	Admin   *model.Principal `json:"admin,omitempty"`
}

// HasData reports whether the envelope carries a non-null data field.
func (e Envelope) HasData() bool {
	d := bytes.TrimSpace(e.Data)
	return len(d) > 0 && !bytes.Equal(d, []byte("null"))
}

// decodeEnvelope maps a status code and body onto a Result. Messages prefer
// the server's error text, then the HTTP failure, then the generic fallback.
func decodeEnvelope(status int, body []byte) model.Result[Envelope] {
	body = bytes.TrimSpace(body)
	success := status >= 200 && status < 300

	if !success {
		var env Envelope
		if len(body) > 0 && json.Unmarshal(body, &env) == nil {
			if msg := firstNonEmpty(env.Error, env.Message); msg != "" {
				return model.Err[Envelope](msg)
			}
		}
		return model.Err[Envelope](fmt.Sprintf("request failed with status code %d", status))
	}

	if len(body) == 0 {
		return model.Ok(Envelope{Success: true})
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return model.Err[Envelope](invalidResponseMessage)
	}
	if !env.Success {
		return model.Err[Envelope](firstNonEmpty(env.Error, env.Message))
	}
	return model.Ok(env)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
