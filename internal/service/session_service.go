package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/smart-defence/academy-console/pkg/config"
	appErrors "github.com/smart-defence/academy-console/pkg/errors"
)

// Session is the per-user state the console keeps between requests: the
// platform token plus the UI state that used to live in the browser.
type Session struct {
	ID          string            `json:"id"`
	Token       string            `json:"token"`
	StudentID   string            `json:"studentId,omitempty"`
	Name        string            `json:"name,omitempty"`
	Role        string            `json:"role,omitempty"`
	Preferences map[string]string `json:"preferences"`
}

// SessionService stores sessions in Redis and hands out signed cookie
// values referencing them.
type SessionService struct {
	store  *redis.Client
	secret []byte
	ttl    time.Duration
	logger *zap.Logger
}

// NewSessionService creates the session service.
func NewSessionService(store *redis.Client, cfg config.SessionConfig, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{store: store, secret: []byte(cfg.Secret), ttl: ttl, logger: logger}
}

func sessionKey(id string) string {
	return "session:" + id
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Create stores a new session and returns the signed cookie value.
func (s *SessionService) Create(ctx context.Context, session Session) (string, error) {
	session.ID = uuid.NewString()
	if session.Preferences == nil {
		session.Preferences = map[string]string{}
	}

	raw, err := json.Marshal(session)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode session")
	}
	if err := s.store.Set(ctx, sessionKey(session.ID), raw, s.ttl).Err(); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "store session")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		SessionID: session.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "sign session cookie")
	}
	return signed, nil
}

// Get resolves a cookie value back to its session.
func (s *SessionService) Get(ctx context.Context, cookie string) (Session, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(cookie, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.ErrUnauthorized
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid || claims.SessionID == "" {
		return Session{}, appErrors.Clone(appErrors.ErrUnauthorized, "sessão inválida")
	}

	raw, err := s.store.Get(ctx, sessionKey(claims.SessionID)).Bytes()
	if err == redis.Nil {
		return Session{}, appErrors.Clone(appErrors.ErrUnauthorized, "sessão expirada")
	}
	if err != nil {
		return Session{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load session")
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return Session{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "decode session")
	}
	return session, nil
}

// SavePreference persists one UI preference, such as the last active
// editor tab.
func (s *SessionService) SavePreference(ctx context.Context, sessionID, key, value string) error {
	raw, err := s.store.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		return appErrors.Clone(appErrors.ErrUnauthorized, "sessão expirada")
	}
	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "decode session")
	}
	if session.Preferences == nil {
		session.Preferences = map[string]string{}
	}
	session.Preferences[key] = value

	updated, err := json.Marshal(session)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode session")
	}
	return s.store.Set(ctx, sessionKey(sessionID), updated, redis.KeepTTL).Err()
}

// Destroy removes a session, logging the user out.
func (s *SessionService) Destroy(ctx context.Context, sessionID string) error {
	return s.store.Del(ctx, sessionKey(sessionID)).Err()
}
