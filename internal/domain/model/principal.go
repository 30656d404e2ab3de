package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Principal is the authenticated admin identity returned by a successful login.
// It is immutable once obtained; no further attributes are fetched.
type Principal struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// DisplayName returns the name shown in the admin header.
func (p Principal) DisplayName() string {
	if p.Username != "" {
		return p.Username
	}
	return p.ID
}

// UnmarshalJSON accepts the id as either a JSON string or a JSON number, since
// the backend has returned both over time.
func (p *Principal) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       json.RawMessage `json:"id"`
		Username string          `json:"username"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id := bytes.TrimSpace(raw.ID)
	switch {
	case len(id) == 0 || bytes.Equal(id, []byte("null")):
		p.ID = ""
	case id[0] == '"':
		if err := json.Unmarshal(id, &p.ID); err != nil {
			return fmt.Errorf("principal id: %w", err)
		}
	default:
		var n json.Number
		if err := json.Unmarshal(id, &n); err != nil {
			return fmt.Errorf("principal id: %w", err)
		}
		p.ID = n.String()
	}
	p.Username = raw.Username
	return nil
}

// Credentials are the username/password pair submitted on the login form.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
