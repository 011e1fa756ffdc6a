package activity

import (
	"time"

	"github.com/redmonkez12/friend-app/internal/database"
)

type Activity struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"userId"`
	Type      *string          `json:"type"`
	Title     *string          `json:"title"`
	Duration  *database.Number `json:"duration" swaggertype:"number"`
	Mood      *string          `json:"mood"`
	Score     *database.Number `json:"score" swaggertype:"number"`
	Date      *string          `json:"date"`
	CreatedAt time.Time        `json:"createdAt"`
}

// NewActivity holds the client-supplied fields of an activity. Every field
// is optional; duration and score take a number or a numeric string.
type NewActivity struct {
	Type     *string          `json:"type"`
	Title    *string          `json:"title"`
	Duration *database.Number `json:"duration" swaggertype:"number"`
	Mood     *string          `json:"mood"`
	Score    *database.Number `json:"score" swaggertype:"number"`
	Date     *string          `json:"date"`
}
