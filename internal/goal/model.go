package goal

import (
	"time"

	"github.com/redmonkez12/friend-app/internal/database"
)

type Goal struct {
	ID          int64            `json:"id"`
	UserID      int64            `json:"userId"`
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Target      *database.Number `json:"target" swaggertype:"number"`
	Current     int64            `json:"current"`
	Deadline    *string          `json:"deadline"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// NewGoal holds the client-supplied fields of a goal. Progress always
// starts at zero.
type NewGoal struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Target      *database.Number `json:"target" swaggertype:"number"`
	Deadline    *string          `json:"deadline"`
}
