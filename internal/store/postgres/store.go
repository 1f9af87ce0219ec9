package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	"llamachat-backend/internal/models"
	"llamachat-backend/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Compile-time check to ensure PostgresStore implements store.Store
var _ store.Store = (*PostgresStore)(nil)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const createConversation = `
INSERT INTO conversations (id, messages)
VALUES ($1, '[]'::jsonb)
RETURNING id, messages, created_at, updated_at;
`

// CreateConversation inserts a new conversation row with an empty JSONB
// transcript.
func (s *PostgresStore) CreateConversation(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	row := s.db.QueryRow(ctx, createConversation, id)

	conv := &models.Conversation{}
	err := row.Scan(
		&conv.ID,
		&conv.Messages,
		&conv.CreatedAt,
		&conv.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			log.Printf("ERROR [PostgresStore] CreateConversation: PostgreSQL error: Code=%s, Message=%s", pgErr.Code, pgErr.Message)
		} else {
			log.Printf("ERROR [PostgresStore] CreateConversation: %v", err)
		}
		return nil, fmt.Errorf("database error creating conversation: %w", err)
	}

	log.Printf("[PostgresStore] CreateConversation: Successfully inserted conversation ID %s", conv.ID)
	return conv, nil
}

const getConversationByID = `
SELECT id, messages, created_at, updated_at
FROM conversations
WHERE id = $1;
`

// GetConversationByID retrieves a conversation by its ID.
// Returns store.ErrNotFound if the conversation does not exist.
func (s *PostgresStore) GetConversationByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	row := s.db.QueryRow(ctx, getConversationByID, id)

	conv := &models.Conversation{}
	err := row.Scan(
		&conv.ID,
		&conv.Messages,
		&conv.CreatedAt,
		&conv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] GetConversationByID: Failed to query/scan conversation %s: %v", id, err)
		return nil, fmt.Errorf("database error fetching conversation: %w", err)
	}

	return conv, nil
}

const updateConversationMessages = `
UPDATE conversations
SET messages = $2, updated_at = NOW()
WHERE id = $1;
`

// UpdateConversationMessages replaces the whole transcript for the given
// conversation. Two interleaved turns on the same id race here with
// last-write-wins semantics.
func (s *PostgresStore) UpdateConversationMessages(ctx context.Context, id uuid.UUID, messages []byte) error {
	tag, err := s.db.Exec(ctx, updateConversationMessages, id, messages)
	if err != nil {
		log.Printf("ERROR [PostgresStore] UpdateConversationMessages: Failed to update conversation %s: %v", id, err)
		return fmt.Errorf("database error updating conversation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	log.Printf("[PostgresStore] UpdateConversationMessages: Updated conversation %s", id)
	return nil
}
