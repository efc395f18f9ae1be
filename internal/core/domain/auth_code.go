package domain

import (
	"time"

	"github.com/google/uuid"
)

type AuthCode struct {
	Code      string    `db:"code" json:"code"`
	UserID    int64     `db:"user_id" json:"user_id"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func NewAuthCode(userID int64, expiration time.Duration) *AuthCode {
	now := time.Now().UTC()
	return &AuthCode{
		Code:      uuid.New().String(),
		UserID:    userID,
		ExpiresAt: now.Add(expiration),
		CreatedAt: now,
	}
}

func (a *AuthCode) IsExpired() bool {
	return time.Now().After(a.ExpiresAt)
}
