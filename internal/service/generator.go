package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vaultpass/secretgen-go/internal/crypto"
	"github.com/vaultpass/secretgen-go/internal/model"
)

var (
	ErrLengthTooLong = errors.New("requested length exceeds the maximum")
)

// EventRecorder stores generation metadata.
type EventRecorder interface {
	Record(ctx context.Context, event *model.GenerationEvent) error
}

// GeneratorService handles secret generation business logic.
type GeneratorService struct {
	events    EventRecorder
	maxLength int
}

// NewGeneratorService creates a new GeneratorService. events may be nil, in
// which case nothing is recorded.
func NewGeneratorService(events EventRecorder, maxLength int) *GeneratorService {
	return &GeneratorService{events: events, maxLength: maxLength}
}

// GeneratePassword produces a password based on the given request.
func (s *GeneratorService) GeneratePassword(ctx context.Context, req model.PasswordRequest) (model.PasswordResponse, error) {
	defaults := crypto.DefaultPasswordOptions()
	opts := crypto.PasswordOptions{
		Length:    req.Length,
		Lowercase: boolOrDefault(req.Lowercase, defaults.Lowercase),
		Uppercase: boolOrDefault(req.Uppercase, defaults.Uppercase),
		Numbers:   boolOrDefault(req.Numbers, defaults.Numbers),
		Symbols:   boolOrDefault(req.Symbols, defaults.Symbols),
	}
	if opts.Length == 0 {
		opts.Length = defaults.Length
	}
	if err := s.checkMaxLength(opts.Length); err != nil {
		return model.PasswordResponse{}, err
	}

	password, err := crypto.GeneratePassword(opts)
	if err != nil {
		return model.PasswordResponse{}, err
	}

	classes := classNames(opts.Classes())
	s.record(ctx, &model.GenerationEvent{
		Kind:    model.KindPassword,
		Length:  len(password),
		Classes: strings.Join(classes, ","),
	})

	return model.PasswordResponse{
		Password: password,
		Length:   len(password),
		Classes:  classes,
	}, nil
}

// GeneratePIN produces a numeric PIN based on the given request.
func (s *GeneratorService) GeneratePIN(ctx context.Context, req model.PINRequest) (model.PINResponse, error) {
	opts := crypto.DefaultPINOptions()
	if req.Length != 0 {
		opts.Length = req.Length
	}
	if err := s.checkMaxLength(opts.Length); err != nil {
		return model.PINResponse{}, err
	}

	pin, err := crypto.GeneratePIN(opts)
	if err != nil {
		return model.PINResponse{}, err
	}

	s.record(ctx, &model.GenerationEvent{Kind: model.KindPIN, Length: len(pin)})

	return model.PINResponse{PIN: pin, Length: len(pin)}, nil
}

// RandomInt draws a uniformly distributed integer from [min, max).
func (s *GeneratorService) RandomInt(ctx context.Context, min, max int) (model.RandomIntResponse, error) {
	value, err := crypto.RandomInRange(min, max)
	if err != nil {
		return model.RandomIntResponse{}, err
	}

	// Length holds the range size, saturated to fit the column.
	span := uint64(max) - uint64(min)
	if span > 1<<31-1 {
		span = 1<<31 - 1
	}
	s.record(ctx, &model.GenerationEvent{Kind: model.KindRandom, Length: int(span)})

	return model.RandomIntResponse{Value: value, Min: min, Max: max}, nil
}

func (s *GeneratorService) checkMaxLength(length int) error {
	if s.maxLength > 0 && length > s.maxLength {
		return fmt.Errorf("%w of %d", ErrLengthTooLong, s.maxLength)
	}
	return nil
}

// record stores the event without failing the request.
func (s *GeneratorService) record(ctx context.Context, event *model.GenerationEvent) {
	if s.events == nil {
		return
	}
	event.ClientID = ClientIDFromContext(ctx)
	event.RemoteAddr = RemoteAddrFromContext(ctx)
	if err := s.events.Record(ctx, event); err != nil {
		slog.Warn("recording generation event failed", "kind", event.Kind, "error", err)
	}
}

func classNames(classes []crypto.CharacterClass) []string {
	names := make([]string, len(classes))
	for i, c := range classes {
		names[i] = c.String()
	}
	return names
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
