package appstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-storefront/pkg/cache"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Persister stores serialized state under a session id.
type Persister interface {
	Load(ctx context.Context, sessionID string) ([]byte, bool, error)
	Save(ctx context.Context, sessionID string, data []byte) error
	Delete(ctx context.Context, sessionID string) error
}

type Store struct {
	persister Persister
	logger    logger.ZapLogger
}

func NewStore(p Persister, log logger.ZapLogger) *Store {
	return &Store{persister: p, logger: log}
}

// Hydrate returns the persisted state for sessionID, or a fresh one.
func (s *Store) Hydrate(ctx context.Context, sessionID string) (*State, error) {
	raw, ok, err := s.persister.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session state: %w", err)
	}
	st := &State{SessionID: sessionID}
	if !ok {
		return st, nil
	}
	if err := json.Unmarshal(raw, st); err != nil {
		s.logger.Warn("discarding unreadable session state", zap.String("session_id", sessionID), zap.Error(err))
		return &State{SessionID: sessionID}, nil
	}
	st.SessionID = sessionID
	return st, nil
}

// Dispatch applies a to st and persists the result. LoggedOut removes the key.
func (s *Store) Dispatch(ctx context.Context, st *State, a Action) error {
	a.Apply(st)

	if _, ok := a.(LoggedOut); ok {
		return s.persister.Delete(ctx, st.SessionID)
	}

	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.persister.Save(ctx, st.SessionID, data)
}

const stateKeyPrefix = "storefront:session:"

type RedisPersister struct {
	rc  *cache.RedisClient
	ttl time.Duration
}

func NewRedisPersister(rc *cache.RedisClient, ttl time.Duration) *RedisPersister {
	return &RedisPersister{rc: rc, ttl: ttl}
}

func (p *RedisPersister) Load(ctx context.Context, sessionID string) ([]byte, bool, error) {
	val, err := p.rc.Client.Get(ctx, stateKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (p *RedisPersister) Save(ctx context.Context, sessionID string, data []byte) error {
	return p.rc.Client.Set(ctx, stateKeyPrefix+sessionID, data, p.ttl).Err()
}

func (p *RedisPersister) Delete(ctx context.Context, sessionID string) error {
	return p.rc.Client.Del(ctx, stateKeyPrefix+sessionID).Err()
}
