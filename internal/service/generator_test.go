package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/vaultpass/secretgen-go/internal/crypto"
	"github.com/vaultpass/secretgen-go/internal/model"
)

func TestGeneratePassword_Defaults(t *testing.T) {
	svc := NewGeneratorService(nil, 128)
	resp, err := svc.GeneratePassword(context.Background(), model.PasswordRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Length != 16 || len(resp.Password) != 16 {
		t.Errorf("expected length 16, got %d (%q)", resp.Length, resp.Password)
	}
	if strings.ContainsAny(resp.Password, "!@#$%^&*()_+-=[]{}|;:,.<>?") {
		t.Errorf("default password %q should not contain symbols", resp.Password)
	}
	want := []string{"lowercase", "uppercase", "numbers"}
	if strings.Join(resp.Classes, ",") != strings.Join(want, ",") {
		t.Errorf("expected classes %v, got %v", want, resp.Classes)
	}
}

func TestGeneratePassword_CustomOptions(t *testing.T) {
	svc := NewGeneratorService(nil, 128)
	resp, err := svc.GeneratePassword(context.Background(), model.PasswordRequest{
		Length:    32,
		Lowercase: boolPtr(true),
		Uppercase: boolPtr(true),
		Numbers:   boolPtr(false),
		Symbols:   boolPtr(false),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Length != 32 {
		t.Errorf("expected length 32, got %d", resp.Length)
	}
	for _, c := range resp.Password {
		if !((c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')) {
			t.Errorf("unexpected character %q in password with only uppercase+lowercase", c)
		}
	}
}

func TestGeneratePassword_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     model.PasswordRequest
		wantErr error
	}{
		{
			name:    "length too short",
			req:     model.PasswordRequest{Length: 7},
			wantErr: crypto.ErrLengthTooShort,
		},
		{
			name:    "length too long",
			req:     model.PasswordRequest{Length: 129},
			wantErr: ErrLengthTooLong,
		},
		{
			name: "no character types",
			req: model.PasswordRequest{
				Length:    16,
				Lowercase: boolPtr(false),
				Uppercase: boolPtr(false),
				Numbers:   boolPtr(false),
				Symbols:   boolPtr(false),
			},
			wantErr: crypto.ErrNoClassEnabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			svc := NewGeneratorService(store, 128)
			_, err := svc.GeneratePassword(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if len(store.events) != 0 {
				t.Errorf("failed request should not be recorded, got %d events", len(store.events))
			}
		})
	}
}

func TestGeneratePassword_NoMaxLength(t *testing.T) {
	svc := NewGeneratorService(nil, 0)
	resp, err := svc.GeneratePassword(context.Background(), model.PasswordRequest{Length: 1024})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Length != 1024 {
		t.Errorf("expected length 1024, got %d", resp.Length)
	}
}

func TestGeneratePIN(t *testing.T) {
	svc := NewGeneratorService(nil, 128)

	resp, err := svc.GeneratePIN(context.Background(), model.PINRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Length != 4 || len(resp.PIN) != 4 {
		t.Errorf("expected 4 digit PIN, got %q", resp.PIN)
	}

	resp, err = svc.GeneratePIN(context.Background(), model.PINRequest{Length: 6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.PIN) != 6 || strings.Trim(resp.PIN, "0123456789") != "" {
		t.Errorf("expected 6 digit PIN, got %q", resp.PIN)
	}

	if _, err := svc.GeneratePIN(context.Background(), model.PINRequest{Length: 3}); !errors.Is(err, crypto.ErrLengthTooShort) {
		t.Errorf("expected ErrLengthTooShort, got %v", err)
	}
	if _, err := svc.GeneratePIN(context.Background(), model.PINRequest{Length: 500}); !errors.Is(err, ErrLengthTooLong) {
		t.Errorf("expected ErrLengthTooLong, got %v", err)
	}
}

func TestRandomInt(t *testing.T) {
	svc := NewGeneratorService(nil, 128)

	resp, err := svc.RandomInt(context.Background(), -5, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Value < -5 || resp.Value >= 5 {
		t.Errorf("value %d out of range [-5, 5)", resp.Value)
	}
	if resp.Min != -5 || resp.Max != 5 {
		t.Errorf("unexpected bounds in response: %+v", resp)
	}

	if _, err := svc.RandomInt(context.Background(), 5, 5); !errors.Is(err, crypto.ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestGenerator_RecordsEvents(t *testing.T) {
	store := newMemoryStore()
	svc := NewGeneratorService(store, 128)

	ctx := WithRemoteAddr(WithClientID(context.Background(), "client-1"), "192.0.2.10")
	if _, err := svc.GeneratePassword(ctx, model.PasswordRequest{Length: 20, Symbols: boolPtr(true)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GeneratePIN(context.Background(), model.PINRequest{Length: 6}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.RandomInt(ctx, 0, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(store.events))
	}

	pw := store.events[0]
	if pw.Kind != model.KindPassword || pw.Length != 20 || pw.ClientID != "client-1" || pw.RemoteAddr != "192.0.2.10" {
		t.Errorf("unexpected password event: %+v", pw)
	}
	if pw.Classes != "lowercase,uppercase,numbers,symbols" {
		t.Errorf("unexpected classes %q", pw.Classes)
	}

	pin := store.events[1]
	if pin.Kind != model.KindPIN || pin.Length != 6 || pin.ClientID != "" {
		t.Errorf("unexpected pin event: %+v", pin)
	}

	rnd := store.events[2]
	if rnd.Kind != model.KindRandom || rnd.Length != 100 {
		t.Errorf("unexpected random event: %+v", rnd)
	}
}

func TestGenerator_RecordFailureDoesNotFailRequest(t *testing.T) {
	store := newMemoryStore()
	store.recordErr = errStoreDown
	svc := NewGeneratorService(store, 128)

	resp, err := svc.GeneratePassword(context.Background(), model.PasswordRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Password == "" {
		t.Error("expected a password despite recorder failure")
	}
}

func TestGenerator_ConcurrentUse(t *testing.T) {
	svc := NewGeneratorService(newMemoryStore(), 128)

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.GeneratePassword(context.Background(), model.PasswordRequest{}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("unexpected error: %v", err)
	}
}
