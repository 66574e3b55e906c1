package model

import "time"

// Client is a registered API consumer. The API key itself is never stored.
type Client struct {
	ID        int64
	ClientID  string
	Name      string
	KeyHash   string
	CreatedAt time.Time
}

// RegisterClientRequest represents an API client registration request.
type RegisterClientRequest struct {
	Name string `json:"name"`
}

// RegisterClientResponse is returned once at registration and is the only
// place the plaintext API key ever appears.
type RegisterClientResponse struct {
	ClientID  string    `json:"client_id"`
	Name      string    `json:"name"`
	APIKey    string    `json:"api_key"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenRequest exchanges client credentials for a bearer token.
type TokenRequest struct {
	ClientID string `json:"client_id"`
	APIKey   string `json:"api_key"`
}

// TokenResponse carries a signed bearer token.
type TokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}
