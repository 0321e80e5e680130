// Package userapi resolves SEI login short names to fiscal ids (CPF) via
// the user-controller service.
package userapi

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/dtidevpmj/seidev/internal/httpx"
)

// Client talks to the user-controller API.
type Client struct {
	http *httpx.Client
}

// New creates a user API client.
func New(http *httpx.Client) *Client {
	return &Client{http: http}
}

// ResolveCPF looks up the fiscal id for a login short name. The endpoint
// returns the CPF as a plain text body.
func (c *Client) ResolveCPF(ctx context.Context, shortName string) (string, error) {
	if shortName == "" {
		return "", fmt.Errorf("resolve cpf: short name is empty")
	}

	req, err := c.http.R(ctx)
	if err != nil {
		return "", err
	}

	resp, err := req.Get("/user/cpf/" + url.PathEscape(shortName))
	c.http.Finish(resp, err)
	if err != nil {
		return "", fmt.Errorf("resolve cpf: %w", err)
	}
	if err := c.http.CheckStatus("/user/cpf", resp); err != nil {
		return "", err
	}

	cpf := strings.TrimSpace(resp.String())
	if cpf == "" {
		return "", fmt.Errorf("resolve cpf: empty response for %q", shortName)
	}
	return cpf, nil
}
