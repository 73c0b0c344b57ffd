package cep

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrNotFound is returned when the postal service does not know the code.
var ErrNotFound = errors.New("postal code not found")

// ErrInvalidCode is returned before any lookup when the code is not exactly
// eight digits.
var ErrInvalidCode = errors.New("postal code must be 8 digits")

// Address is the structured result of a postal-code lookup.
type Address struct {
	Code         string `json:"cep"`
	Street       string `json:"logradouro"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
}

type lookupResponse struct {
	Address
	Erro bool `json:"erro"`
}

// IClient resolves postal codes to addresses for the wizard's contact step.
type IClient interface {
	Lookup(ctx context.Context, code string) (Address, error)
}

type client struct {
	http *resty.Client
}

// NewClient creates a postal-code client against baseURL.
func NewClient(baseURL string, timeout time.Duration) IClient {
	return &client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

// Lookup fetches the address of an 8-digit postal code. An unknown code
// yields ErrNotFound; a malformed one never leaves the process.
func (c *client) Lookup(ctx context.Context, code string) (Address, error) {
	if !validCode(code) {
		return Address{}, ErrInvalidCode
	}

	var out lookupResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/%s/json", code))
	if err != nil {
		return Address{}, fmt.Errorf("postal code lookup failed: %w", err)
	}
	if resp.IsError() || out.Erro {
		return Address{}, ErrNotFound
	}
	return out.Address, nil
}

func validCode(code string) bool {
	if len(code) != 8 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
