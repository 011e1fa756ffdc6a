package goal

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/redmonkez12/friend-app/internal/apperr"
	"github.com/redmonkez12/friend-app/internal/database"
)

// Repository handles goal persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create stores a goal owned by userID with current = 0 and returns its id
func (r *Repository) Create(ctx context.Context, userID int64, in NewGoal) (int64, error) {
	dbGoal := &database.Goal{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Target:      in.Target,
		Current:     0,
		Deadline:    in.Deadline,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := r.db.NewInsert().
		Model(dbGoal).
		Returning("id").
		Exec(ctx)
	if err != nil {
		return 0, apperr.Persistence("Failed to create goal", err)
	}

	return dbGoal.ID, nil
}

// ListForOwner returns userID's goals, soonest deadline first and those
// without a deadline last
func (r *Repository) ListForOwner(ctx context.Context, userID int64) ([]Goal, error) {
	var rows []database.Goal
	err := r.db.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		Order("deadline ASC NULLS LAST", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, apperr.Persistence("Failed to fetch goals", err)
	}

	goals := make([]Goal, 0, len(rows))
	for i := range rows {
		goals = append(goals, mapDBGoalToModel(&rows[i]))
	}
	return goals, nil
}

func mapDBGoalToModel(dbg *database.Goal) Goal {
	return Goal{
		ID:          dbg.ID,
		UserID:      dbg.UserID,
		Title:       dbg.Title,
		Description: dbg.Description,
		Category:    dbg.Category,
		Target:      dbg.Target,
		Current:     dbg.Current,
		Deadline:    dbg.Deadline,
		CreatedAt:   dbg.CreatedAt,
	}
}
