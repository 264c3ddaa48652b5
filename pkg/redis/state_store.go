package redis

import (
	"context"
	"errors"
	"time"
)

const stateKeyPrefix = "oauth_state:"

var (
	// ErrStateNotFound is returned when an OAuth state is unknown, expired or already used.
	ErrStateNotFound = errors.New("oauth state not found")
	// ErrStateExists is returned when a freshly generated state collides with a live one.
	ErrStateExists = errors.New("oauth state already exists")
)

var (
	setStateNX    = SetNX
	getDelStateFn = GetDel
)

// StateStore keeps single-use OAuth state values in Redis.
type StateStore struct {
	ttl time.Duration
}

func NewStateStore(ttl time.Duration) *StateStore {
	return &StateStore{ttl: ttl}
}

// Save registers state; redirectTo is returned when the state is consumed.
func (s *StateStore) Save(ctx context.Context, state, redirectTo string) error {
	ok, err := setStateNX(ctx, stateKeyPrefix+state, redirectTo, s.ttl)
	if err != nil {
		return err
	}
	if !ok {
		return ErrStateExists
	}
	return nil
}

// Consume removes state and returns the value saved with it.
func (s *StateStore) Consume(ctx context.Context, state string) (string, error) {
	if state == "" {
		return "", ErrStateNotFound
	}
	value, err := getDelStateFn(ctx, stateKeyPrefix+state)
	if err != nil {
		if IsNil(err) {
			return "", ErrStateNotFound
		}
		return "", err
	}
	return value, nil
}
