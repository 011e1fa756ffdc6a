package message

import (
	"time"

	"github.com/redmonkez12/friend-app/internal/database"
)

// Message is an immutable note from one user to another.
type Message struct {
	ID         int64           `json:"id"`
	SenderID   int64           `json:"senderId"`
	ReceiverID database.Number `json:"receiverId" swaggertype:"integer"`
	Message    *string         `json:"message"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type NewMessage struct {
	ReceiverID *database.Number `json:"receiverId" swaggertype:"integer"`
	Message    *string          `json:"message"`
}
