// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/assistec/fichas/lib/schema"
)

// loginRequest is the body for the admin login endpoint.
type loginRequest struct {
	Usuario string `json:"usuario"`
	Senha   string `json:"senha"`
}

// loginResponse carries the bearer token.
type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// Login authenticates the operator and installs the returned token on
// the client. The token is also returned so the caller can persist
// it.
func (c *Client) Login(ctx context.Context, usuario, senha string) (string, error) {
	data, err := c.do(ctx, "login", request{
		method: http.MethodPost,
		path:   "/admin/login",
		body:   loginRequest{Usuario: usuario, Senha: senha},
	})
	if err != nil {
		return "", err
	}
	var resp loginResponse
	if err := decodeInto(data, &resp, "login"); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("login: service returned no token")
	}
	c.SetToken(resp.AccessToken)
	return resp.AccessToken, nil
}

// CurrentUser returns the authenticated operator's profile.
func (c *Client) CurrentUser(ctx context.Context) (schema.Usuario, error) {
	var usuario schema.Usuario
	if err := c.getJSON(ctx, "current user", "/usuario/me", nil, true, &usuario); err != nil {
		return schema.Usuario{}, err
	}
	return usuario, nil
}
