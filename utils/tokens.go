package utils

import (
	"os"
	"time"

	"github.com/kataras/iris/v12/middleware/jwt"
)

// AccessToken carries the staff identity claims issued by the external
// identity service. The engine only verifies; it never registers users
// or stores credentials.
type AccessToken struct {
	ID   uint   `json:"ID"`
	Role string `json:"role"` // staff, admin, super_admin
}

// CreateStaffToken signs an access token with the shared secret. Used by
// ops tooling and tests; production tokens come from the identity service.
func CreateStaffToken(id uint, role string, lifetime time.Duration) (string, error) {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), lifetime)
	token, err := signer.Sign(AccessToken{ID: id, Role: role})
	if err != nil {
		return "", err
	}
	return string(token), nil
}
