package repository

import (
	"context"
	"database/sql"

	"github.com/vaultpass/secretgen-go/internal/model"
)

// EventRepository persists generation audit events.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Record inserts a generation event and sets its generated ID.
func (r *EventRepository) Record(ctx context.Context, event *model.GenerationEvent) error {
	query := `INSERT INTO generation_events (client_id, kind, length, classes, remote_addr)
		VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		nullString(event.ClientID),
		event.Kind,
		event.Length,
		event.Classes,
		event.RemoteAddr,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	event.ID = id
	return nil
}

// ListByClient retrieves a client's most recent events, newest first.
func (r *EventRepository) ListByClient(ctx context.Context, clientID string, limit int) ([]model.GenerationEvent, error) {
	query := `SELECT id, client_id, kind, length, classes, remote_addr, created_at
		FROM generation_events WHERE client_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, clientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.GenerationEvent
	for rows.Next() {
		var (
			e        model.GenerationEvent
			clientID sql.NullString
		)
		if err := rows.Scan(
			&e.ID, &clientID, &e.Kind, &e.Length, &e.Classes, &e.RemoteAddr, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		e.ClientID = clientID.String
		events = append(events, e)
	}

	return events, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
