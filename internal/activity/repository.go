package activity

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/redmonkez12/friend-app/internal/apperr"
	"github.com/redmonkez12/friend-app/internal/database"
)

// Repository handles activity persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create stores an activity owned by userID and returns its id
func (r *Repository) Create(ctx context.Context, userID int64, in NewActivity) (int64, error) {
	dbActivity := &database.Activity{
		UserID:    userID,
		Type:      in.Type,
		Title:     in.Title,
		Duration:  in.Duration,
		Mood:      in.Mood,
		Score:     in.Score,
		Date:      in.Date,
		CreatedAt: time.Now().UTC(),
	}

	_, err := r.db.NewInsert().
		Model(dbActivity).
		Returning("id").
		Exec(ctx)
	if err != nil {
		return 0, apperr.Persistence("Failed to add activity", err)
	}

	return dbActivity.ID, nil
}

// ListForOwner returns userID's activities, most recent date first and
// undated ones last
func (r *Repository) ListForOwner(ctx context.Context, userID int64) ([]Activity, error) {
	var rows []database.Activity
	err := r.db.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		Order("date DESC NULLS LAST", "id DESC").
		Scan(ctx)
	if err != nil {
		return nil, apperr.Persistence("Failed to fetch activities", err)
	}

	activities := make([]Activity, 0, len(rows))
	for i := range rows {
		activities = append(activities, mapDBActivityToModel(&rows[i]))
	}
	return activities, nil
}

func mapDBActivityToModel(dba *database.Activity) Activity {
	return Activity{
		ID:        dba.ID,
		UserID:    dba.UserID,
		Type:      dba.Type,
		Title:     dba.Title,
		Duration:  dba.Duration,
		Mood:      dba.Mood,
		Score:     dba.Score,
		Date:      dba.Date,
		CreatedAt: dba.CreatedAt,
	}
}
