package token

import "time"

// Maker creates and verifies access tokens. Issuance normally happens in the
// external auth center; CreateToken exists for provisioning and tests.
type Maker interface {
	CreateToken(userID int64, duration time.Duration) (string, *Payload, error)
	VerifyToken(token string) (*Payload, error)
}
