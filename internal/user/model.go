package user

import "time"

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose password hash in JSON
	FullName     *string   `json:"fullName"`
	Bio          *string   `json:"bio"`
	ProfilePic   *string   `json:"profilePic"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Public is the projection returned to clients.
type Public struct {
	ID         int64   `json:"id"`
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	FullName   *string `json:"fullName"`
	Bio        *string `json:"bio"`
	ProfilePic *string `json:"profilePic"`
}

func (u *User) Public() Public {
	return Public{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Bio:        u.Bio,
		ProfilePic: u.ProfilePic,
	}
}
