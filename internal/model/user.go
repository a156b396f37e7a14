package model

import (
	"errors"
	"time"
)

// OAuth providers recorded on the users row.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// User represents a user in the system. UserID is an application-generated
// UUID string rather than a serial, so ids survive provider handoffs.
type User struct {
	UserID        string    `db:"user_id" json:"user_id"`
	Email         string    `db:"email" json:"email"`
	Password      string    `db:"password" json:"-"` // bcrypt hash, never serialized
	OAuthProvider string    `db:"oauth_provider" json:"oauth_provider"`
	FullName      *string   `db:"full_name" json:"full_name"`
	Nickname      *string   `db:"nickname" json:"nickname"`
	Level         int       `db:"level" json:"level"`
	Coins         int       `db:"coins" json:"coins"`
	NumEvents     int       `db:"num_events" json:"num_events"`
	NumParties    int       `db:"num_parties" json:"num_parties"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// LevelName maps a numeric level onto its rider tier label.
func (u *User) LevelName() string {
	switch {
	case u.Level <= 10:
		return "초보 라이더"
	case u.Level <= 50:
		return "중급 라이더"
	case u.Level <= 100:
		return "고급 라이더"
	default:
		return "스피드 레이서"
	}
}

// Badges computes the badge booleans from the activity counters.
// Keys are the display names the mobile client renders as-is.
func (u *User) Badges() map[string]bool {
	return map[string]bool{
		"첫 미션":        u.NumEvents >= 1,
		"첫 파티":        u.NumParties >= 1,
		"당신은 지쿠인싸":    u.NumParties >= 10,
		"당신은 프로미션수행러": u.NumEvents >= 10,
	}
}

// RegisterRequest represents the data needed to register a new user
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// LoginRequest represents the data needed to log in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPair is the access/refresh pair issued on register, login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// ProfileResponse is the shape of GET /users/profile/.
type ProfileResponse struct {
	Nickname *string         `json:"nickname"`
	Level    string          `json:"level"`
	Coins    int             `json:"coins"`
	Badges   map[string]bool `json:"badges"`
}

// HistoryResponse is the shape of GET /users/history/.
type HistoryResponse struct {
	Events     []int64 `json:"events"`
	Parties    []int64 `json:"parties"`
	TotalCount int     `json:"total_count"`
}

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailExists is returned when attempting to register with a taken email
	ErrEmailExists = errors.New("email already registered")

	// ErrInvalidCredentials is returned when login credentials are incorrect
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidPassword is returned when a password fails the policy check
	ErrInvalidPassword = errors.New("password does not meet policy")
)
