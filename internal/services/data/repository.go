package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolationCode is the PostgreSQL error code for unique
// constraint violations, grounded on the teacher's idempotency_repo.go.
const pgUniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode
}

// Repository implements the narrow persistence contracts the discovery,
// chat, profile, media, and admin edges depend on.
type Repository struct {
	pool *Pool
}

func NewRepository(pool *Pool) *Repository {
	return &Repository{pool: pool}
}

// RecordLike satisfies internal/services/discovery.LikeStore. A repeat
// call from the same liker hits the (low, high, liker) primary key and
// reports inserted=false; a first-time insert reports matched=true when
// the other party's row already exists, completing the pair.
func (r *Repository) RecordLike(ctx context.Context, lowUserID, highUserID, likerID, _ string) (bool, bool, error) {
	otherParty := highUserID
	if likerID == highUserID {
		otherParty = lowUserID
	}

	var matched bool
	err := r.pool.Raw().QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM likes WHERE low_user_id = $1 AND high_user_id = $2 AND liker_id = $3)`,
		lowUserID, highUserID, otherParty,
	).Scan(&matched)
	if err != nil {
		return false, false, fmt.Errorf("data.RecordLike: check reciprocal: %w", err)
	}

	_, err = r.pool.Raw().Exec(ctx,
		`INSERT INTO likes (low_user_id, high_user_id, liker_id) VALUES ($1, $2, $3)`,
		lowUserID, highUserID, likerID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("data.RecordLike: insert: %w", err)
	}

	if matched {
		_, err = r.pool.Raw().Exec(ctx,
			`INSERT INTO matches (low_user_id, high_user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			lowUserID, highUserID,
		)
		if err != nil {
			return false, false, fmt.Errorf("data.RecordLike: insert match: %w", err)
		}
	}

	return true, matched, nil
}

// InsertMessage satisfies internal/services/chat.MessageStore. A retry
// sharing (conversation_id, idempotency_key) hits the unique constraint
// and is answered with the originally persisted row.
func (r *Repository) InsertMessage(ctx context.Context, conversationID, senderID, body, contentType, idempotencyKey string) (Message, bool, error) {
	id := uuid.NewString()
	var sentAt time.Time

	err := r.pool.Raw().QueryRow(ctx,
		`INSERT INTO messages (id, conversation_id, sender_id, body, content_type, idempotency_key)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING sent_at`,
		id, conversationID, senderID, body, contentType, idempotencyKey,
	).Scan(&sentAt)
	if err != nil {
		if isUniqueViolation(err) {
			return r.findMessage(ctx, conversationID, idempotencyKey)
		}
		return Message{}, false, fmt.Errorf("data.InsertMessage: insert: %w", err)
	}

	return Message{
		ID:             id,
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           body,
		ContentType:    contentType,
		SentAt:         sentAt,
	}, true, nil
}

func (r *Repository) findMessage(ctx context.Context, conversationID, idempotencyKey string) (Message, bool, error) {
	var msg Message
	err := r.pool.Raw().QueryRow(ctx,
		`SELECT id, conversation_id, sender_id, body, content_type, sent_at
		 FROM messages WHERE conversation_id = $1 AND idempotency_key = $2`,
		conversationID, idempotencyKey,
	).Scan(&msg.ID, &msg.ConversationID, &msg.SenderID, &msg.Body, &msg.ContentType, &msg.SentAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Message{}, false, fmt.Errorf("data.InsertMessage: replay lookup found no row")
	}
	if err != nil {
		return Message{}, false, fmt.Errorf("data.InsertMessage: replay lookup: %w", err)
	}
	return msg, false, nil
}

// Message mirrors internal/services/chat.Message's shape; the two edges
// share a field layout but stay independently defined packages so
// neither depends on the other's internals.
type Message struct {
	ID             string
	ConversationID string
	SenderID       string
	Body           string
	ContentType    string
	SentAt         time.Time
}
