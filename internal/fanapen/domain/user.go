package domain

import "time"

type User struct {
	ID           string
	Username     string
	PasswordHash string // opaque, hashing happens upstream
	CreatedAt    time.Time
}
