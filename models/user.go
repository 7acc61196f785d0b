package models

import "time"

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
}

type RefreshToken struct {
	UserID    int64
	Token     string
	ExpiresAt time.Time
}
