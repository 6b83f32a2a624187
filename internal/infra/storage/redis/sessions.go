package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "luxestay/internal/domain/auth"
	domainuser "luxestay/internal/domain/user"
)

const (
	sessionKeyPrefix = "session:"
	userKeyPrefix    = "user_sessions:"
)

// SessionStore keeps bearer sessions in Redis so they survive restarts and
// are shared across instances. Expiry is enforced by key TTL.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

type sessionRecord struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *SessionStore) Save(ctx context.Context, session *domainauth.Session) error {
	if session == nil {
		return domainauth.ErrTokenRequired
	}
	rec := sessionRecord{
		Token:     string(session.Token),
		UserID:    string(session.UserID),
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}
	for _, role := range session.Roles {
		rec.Roles = append(rec.Roles, string(role))
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return domainauth.ErrTTLInvalid
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionKeyPrefix+rec.Token, payload, ttl)
	pipe.SAdd(ctx, userKeyPrefix+rec.UserID, rec.Token)
	pipe.Expire(ctx, userKeyPrefix+rec.UserID, ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *SessionStore) Get(ctx context.Context, token domainauth.Token) (*domainauth.Session, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+string(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainauth.ErrSessionNotFound
		}
		return nil, err
	}
	var rec sessionRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, err
	}
	session := &domainauth.Session{
		Token:     domainauth.Token(rec.Token),
		UserID:    domainuser.ID(rec.UserID),
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
	}
	for _, role := range rec.Roles {
		session.Roles = append(session.Roles, domainuser.Role(role))
	}
	return session, nil
}

func (s *SessionStore) Delete(ctx context.Context, token domainauth.Token) error {
	session, err := s.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domainauth.ErrSessionNotFound) {
			return nil
		}
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, sessionKeyPrefix+string(token))
	pipe.SRem(ctx, userKeyPrefix+string(session.UserID), string(token))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *SessionStore) DeleteByUser(ctx context.Context, userID domainuser.ID) error {
	key := userKeyPrefix + string(userID)
	tokens, err := s.client.SMembers(ctx, key).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	pipe := s.client.TxPipeline()
	for _, token := range tokens {
		pipe.Del(ctx, sessionKeyPrefix+token)
	}
	pipe.Del(ctx, key)
	_, err = pipe.Exec(ctx)
	return err
}

var _ domainauth.SessionStore = (*SessionStore)(nil)
