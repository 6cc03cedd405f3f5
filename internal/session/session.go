package session

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// Errors returned by the session.
var (
	ErrNoToken      = errors.New("no session token configured")
	ErrTokenExpired = errors.New("session token has expired, sign in again")
)

// Session holds the bearer token identifying the signed-in user. The token is
// never verified client-side; its claims are only inspected so the client can
// tell the user to sign in again instead of sending requests doomed to fail.
type Session struct {
	token  string
	expiry time.Time
	logger *zap.Logger
}

// New creates a session from a literal token or a token file. The literal
// token wins when both are set.
func New(token, tokenFile string, logger *zap.Logger) (*Session, error) {
	if token == "" && tokenFile != "" {
		data, err := os.ReadFile(tokenFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read token file: %w", err)
		}
		token = strings.TrimSpace(string(data))
	}

	s := &Session{token: token, logger: logger}
	if token != "" {
		s.expiry = tokenExpiry(token, logger)
	}
	return s, nil
}

// Token returns the bearer token, or an error when it is absent or known to
// be expired.
func (s *Session) Token() (string, error) {
	if s.token == "" {
		return "", ErrNoToken
	}
	if !s.expiry.IsZero() && time.Now().After(s.expiry) {
		return "", ErrTokenExpired
	}
	return s.token, nil
}

// ExpiresSoon reports whether the token expires within the window, so the UI
// can warn before requests start failing.
func (s *Session) ExpiresSoon(window time.Duration) bool {
	if s.expiry.IsZero() {
		return false
	}
	return time.Until(s.expiry) < window
}

// tokenExpiry extracts the exp claim without verifying the signature. A token
// that does not parse as a JWT (an opaque session key) simply has no known
// expiry.
func tokenExpiry(token string, logger *zap.Logger) time.Time {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		logger.Debug("token is not a JWT, expiry unknown", zap.Error(err))
		return time.Time{}
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}
	}
	return time.Unix(int64(exp), 0)
}
