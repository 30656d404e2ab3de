package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
)

const loginFailedMessage = "Login failed"

type loginPayload struct {
	Admin *model.Principal `json:"admin"`
	Token string           `json:"token"`
}

// Login posts credentials to /auth/login. The principal and token are read
// from data, falling back to the envelope's top-level admin/token fields.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (model.Principal, string, error) {
	res := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		JSON:   creds,
	})
	env, ok := res.Payload()
	if !ok {
		return model.Principal{}, "", &model.APIError{Message: res.ErrorMessage()}
	}

	var payload loginPayload
	if env.HasData() {
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			c.logger.Warn("decode login response", "error", err)
			return model.Principal{}, "", &model.APIError{Message: invalidResponseMessage}
		}
	}
	if payload.Admin == nil {
		payload.Admin = env.Admin
	}
	if payload.Token == "" {
		payload.Token = env.Token
	}

	if payload.Admin == nil || payload.Admin.ID == "" || payload.Token == "" {
		return model.Principal{}, "", &model.APIError{Message: loginFailedMessage}
	}
	return *payload.Admin, payload.Token, nil
}
