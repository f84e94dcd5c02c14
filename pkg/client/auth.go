package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/docsync/userdocs/pkg/constants"
)

// LoginRequest is the body of a login call.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginData struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a session token.
//
// A missing token in an otherwise successful response means the credentials were
// rejected; the error's Reason is then ReasonInvalidCredentials.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	env, status, err := c.do(ctx, http.MethodPost, constants.LoginPath, "", LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return "", &AuthError{Op: "login", StatusCode: status, Reason: reasonLogin, Err: err}
	}

	var data loginData
	if env.hasData() {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return "", &AuthError{Op: "login", StatusCode: status, Reason: reasonLogin, Err: err}
		}
	}

	if data.Token == "" {
		c.logger.Debug().Int("error_code", env.ErrorCode).Msg("login returned no token")
		return "", &AuthError{Op: "login", StatusCode: status, Reason: ReasonInvalidCredentials}
	}

	return data.Token, nil
}
