package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/vaultpass/secretgen-go/internal/model"
)

// MySQL error number for a unique key violation.
const errDupEntry = 1062

var (
	ErrClientNotFound  = errors.New("client not found")
	ErrDuplicateClient = errors.New("client id already exists")
)

// ClientRepository handles API client persistence operations.
type ClientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new ClientRepository.
func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// Create inserts a new client and sets the generated ID on the client struct.
func (r *ClientRepository) Create(ctx context.Context, client *model.Client) error {
	query := `INSERT INTO clients (client_id, name, key_hash) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, client.ClientID, client.Name, client.KeyHash)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateClient
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	client.ID = id
	return nil
}

// GetByClientID retrieves a client by its public identifier.
func (r *ClientRepository) GetByClientID(ctx context.Context, clientID string) (*model.Client, error) {
	query := `SELECT id, client_id, name, key_hash, created_at FROM clients WHERE client_id = ?`

	client := &model.Client{}
	err := r.db.QueryRowContext(ctx, query, clientID).Scan(
		&client.ID, &client.ClientID, &client.Name, &client.KeyHash, &client.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	return client, nil
}

// isDuplicateEntryError reports whether err is a MySQL unique key violation.
func isDuplicateEntryError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == errDupEntry
}
