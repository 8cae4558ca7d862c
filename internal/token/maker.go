package token

import (
	"time"

	"github.com/google/uuid"
)

// Maker token產生與驗證的抽象
type Maker interface {
	// CreateToken 產生帶有效期的token
	CreateToken(userID uuid.UUID, email string, isAdmin bool, duration time.Duration) (string, *Payload, error)
	// VerifyToken 驗證token並取出payload
	VerifyToken(token string) (*Payload, error)
}
