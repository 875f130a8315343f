package model

import (
	"time"
)

type Session struct {
	ID           string    `json:"id"`
	SessionToken string    `json:"sessionToken"`
	UserID       string    `json:"userId"`
	Expires      time.Time `json:"expires"`
}
