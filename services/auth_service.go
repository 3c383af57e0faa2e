package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/rotatijuca/excursio-backend/utils"
)

// AuthService issues the admin dashboard session token. It is a password
// toggle, not real multi-user authentication. The token is guarded by a mutex
// since login and validation run on concurrent request goroutines.
type AuthService struct {
	mu            sync.Mutex
	adminPassword string
	token         string
}

// NewAuthService creates an auth service around the configured password.
func NewAuthService(password string) *AuthService {
	return &AuthService{adminPassword: password}
}

// Login checks the password and issues a fresh session token.
func (a *AuthService) Login(password string) (string, error) {
	if password != a.adminPassword {
		return "", utils.NewUnauthorizedError("invalid password")
	}
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s-%d", password, time.Now().UnixNano())))

	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = hex.EncodeToString(hash[:])
	return a.token, nil
}

// Validate reports whether a bearer token matches the current session.
func (a *AuthService) Validate(token string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return token != "" && token == a.token
}
