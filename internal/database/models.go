package database

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Username     string    `bun:"username,notnull"`
	Email        string    `bun:"email,notnull"`
	PasswordHash string    `bun:"password_hash,notnull"`
	FullName     *string   `bun:"full_name"`
	Bio          *string   `bun:"bio"`
	ProfilePic   *string   `bun:"profile_pic"`
	CreatedAt    time.Time `bun:"created_at,notnull"`
}

type Activity struct {
	bun.BaseModel `bun:"table:activities,alias:a"`

	ID        int64     `bun:"id,pk,autoincrement"`
	UserID    int64     `bun:"user_id,notnull"`
	Type      *string   `bun:"type"`
	Title     *string   `bun:"title"`
	Duration  *Number   `bun:"duration"`
	Mood      *string   `bun:"mood"`
	Score     *Number   `bun:"score"`
	Date      *string   `bun:"date"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}

type Goal struct {
	bun.BaseModel `bun:"table:goals,alias:g"`

	ID          int64     `bun:"id,pk,autoincrement"`
	UserID      int64     `bun:"user_id,notnull"`
	Title       *string   `bun:"title"`
	Description *string   `bun:"description"`
	Category    *string   `bun:"category"`
	Target      *Number   `bun:"target"`
	Current     int64     `bun:"current,notnull"`
	Deadline    *string   `bun:"deadline"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
}

type Message struct {
	bun.BaseModel `bun:"table:messages,alias:m"`

	ID         int64     `bun:"id,pk,autoincrement"`
	SenderID   int64     `bun:"sender_id,notnull"`
	ReceiverID Number    `bun:"receiver_id,notnull"`
	Message    *string   `bun:"message"`
	CreatedAt  time.Time `bun:"created_at,notnull"`
}
