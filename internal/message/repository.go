package message

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/redmonkez12/friend-app/internal/apperr"
	"github.com/redmonkez12/friend-app/internal/database"
)

var ErrMissingReceiver = apperr.Validation("Missing receiverId")

// Repository handles message persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create stores a message from senderID and returns its id
func (r *Repository) Create(ctx context.Context, senderID int64, in NewMessage) (int64, error) {
	if in.ReceiverID == nil {
		return 0, ErrMissingReceiver
	}

	dbMessage := &database.Message{
		SenderID:   senderID,
		ReceiverID: *in.ReceiverID,
		Message:    in.Message,
		CreatedAt:  time.Now().UTC(),
	}

	_, err := r.db.NewInsert().
		Model(dbMessage).
		Returning("id").
		Exec(ctx)
	if err != nil {
		return 0, apperr.Persistence("Failed to send message", err)
	}

	return dbMessage.ID, nil
}

// ListBetween returns the conversation between two users in either
// direction, oldest first
func (r *Repository) ListBetween(ctx context.Context, me, other int64) ([]Message, error) {
	var rows []database.Message
	err := r.db.NewSelect().
		Model(&rows).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", me, other, other, me).
		Order("created_at ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, apperr.Persistence("Failed to fetch messages", err)
	}

	messages := make([]Message, 0, len(rows))
	for i := range rows {
		messages = append(messages, mapDBMessageToModel(&rows[i]))
	}
	return messages, nil
}

func mapDBMessageToModel(dbm *database.Message) Message {
	return Message{
		ID:         dbm.ID,
		SenderID:   dbm.SenderID,
		ReceiverID: dbm.ReceiverID,
		Message:    dbm.Message,
		CreatedAt:  dbm.CreatedAt,
	}
}
