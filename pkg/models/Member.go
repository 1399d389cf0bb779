package models

import (
	"time"
)

/*
Member is the authenticated visitor stored in the cookie session.
Sessions carry a fixed expiration stamp and are never renewed.
*/
type Member struct {
	Email     string
	Name      string
	AvatarURL string
	ExpiresAt time.Time
}

func (m *Member) IsExpired() bool {
	return time.Now().After(m.ExpiresAt)
}
