package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/vaultpass/secretgen-go/internal/crypto"
	"github.com/vaultpass/secretgen-go/internal/model"
	"github.com/vaultpass/secretgen-go/internal/repository"
)

const (
	maxNameLength  = 64
	clientIDLength = 16
	apiKeyLength   = 40
	// registerAttempts bounds retries after a client id collision.
	registerAttempts = 3

	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

var (
	ErrNameRequired       = errors.New("name is required")
	ErrNameTooLong        = errors.New("name must be at most 64 characters")
	ErrInvalidCredentials = errors.New("invalid client id or api key")
)

// ClientStore persists API clients.
type ClientStore interface {
	Create(ctx context.Context, client *model.Client) error
	GetByClientID(ctx context.Context, clientID string) (*model.Client, error)
}

// EventLister reads back recorded generation events.
type EventLister interface {
	ListByClient(ctx context.Context, clientID string, limit int) ([]model.GenerationEvent, error)
}

// ClientService handles API client registration, token issuance and history.
type ClientService struct {
	clients   ClientStore
	events    EventLister
	jwtSecret string
	jwtExpiry time.Duration
}

// NewClientService creates a new ClientService.
func NewClientService(clients ClientStore, events EventLister, secret string, expiry time.Duration) *ClientService {
	return &ClientService{
		clients:   clients,
		events:    events,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Register creates a new API client. The returned API key is not stored and
// cannot be recovered later.
func (s *ClientService) Register(ctx context.Context, req model.RegisterClientRequest) (model.RegisterClientResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.RegisterClientResponse{}, ErrNameRequired
	}
	if len(name) > maxNameLength {
		return model.RegisterClientResponse{}, ErrNameTooLong
	}

	apiKey, err := crypto.GeneratePassword(crypto.PasswordOptions{
		Length:    apiKeyLength,
		Lowercase: true,
		Uppercase: true,
		Numbers:   true,
	})
	if err != nil {
		return model.RegisterClientResponse{}, err
	}

	hash, err := crypto.HashAPIKey(apiKey)
	if err != nil {
		return model.RegisterClientResponse{}, err
	}

	client := &model.Client{
		Name:    name,
		KeyHash: hash,
	}
	for attempt := 1; ; attempt++ {
		client.ClientID, err = crypto.GeneratePassword(crypto.PasswordOptions{
			Length:    clientIDLength,
			Lowercase: true,
			Numbers:   true,
		})
		if err != nil {
			return model.RegisterClientResponse{}, err
		}
		client.CreatedAt = time.Now().UTC()

		err = s.clients.Create(ctx, client)
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrDuplicateClient) || attempt == registerAttempts {
			return model.RegisterClientResponse{}, err
		}
		slog.Warn("client id collision, retrying", "attempt", attempt)
	}

	return model.RegisterClientResponse{
		ClientID:  client.ClientID,
		Name:      client.Name,
		APIKey:    apiKey,
		CreatedAt: client.CreatedAt,
	}, nil
}

// IssueToken verifies client credentials and returns a bearer token.
func (s *ClientService) IssueToken(ctx context.Context, req model.TokenRequest) (model.TokenResponse, error) {
	if req.ClientID == "" || req.APIKey == "" {
		return model.TokenResponse{}, ErrInvalidCredentials
	}

	client, err := s.clients.GetByClientID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return model.TokenResponse{}, ErrInvalidCredentials
		}
		return model.TokenResponse{}, err
	}

	match, err := crypto.VerifyAPIKey(req.APIKey, client.KeyHash)
	if err != nil {
		return model.TokenResponse{}, err
	}
	if !match {
		return model.TokenResponse{}, ErrInvalidCredentials
	}

	token, expiresAt, err := crypto.GenerateToken(client.ClientID, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.TokenResponse{}, err
	}

	return model.TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt.UTC(),
	}, nil
}

// History returns the most recent generation events for a client, newest first.
// limit is clamped to [1, 500]; zero selects the default of 50.
func (s *ClientService) History(ctx context.Context, clientID string, limit int) (model.HistoryResponse, error) {
	switch {
	case limit <= 0:
		limit = defaultHistoryLimit
	case limit > maxHistoryLimit:
		limit = maxHistoryLimit
	}

	events, err := s.events.ListByClient(ctx, clientID, limit)
	if err != nil {
		return model.HistoryResponse{}, err
	}

	return model.HistoryResponse{
		ClientID: clientID,
		Events:   eventsToResponse(events),
	}, nil
}

// eventsToResponse converts stored events to their API representation.
func eventsToResponse(events []model.GenerationEvent) []model.GenerationEventResponse {
	result := make([]model.GenerationEventResponse, len(events))
	for i, e := range events {
		result[i] = model.GenerationEventResponse{
			Kind:      e.Kind,
			Length:    e.Length,
			CreatedAt: e.CreatedAt,
		}
		if e.Classes != "" {
			result[i].Classes = strings.Split(e.Classes, ",")
		}
	}
	return result
}
