package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "ledger:idem:"
	stateReserved = "reserved"
)

// ErrInProgress la llave ya fue reservada por otra petición que aún no termina.
var ErrInProgress = errors.New("petición con la misma llave de idempotencia en curso")

// StoredResponse respuesta guardada para repetir en reintentos.
type StoredResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// IdempotencyStore llaves de idempotencia en Redis. Un store nil no reserva nada (Reserve siempre true).
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore construye el store; ttl <= 0 usa 24h.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Reserve intenta tomar la llave (SETNX). Si ya existe devuelve la respuesta guardada, o ErrInProgress
// si la petición original no ha terminado.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (bool, *StoredResponse, error) {
	if s == nil || s.client == nil {
		return true, nil, nil
	}
	ok, err := s.client.SetNX(ctx, keyPrefix+key, stateReserved, s.ttl).Result()
	if err != nil {
		return false, nil, fmt.Errorf("idempotency reserve: %w", err)
	}
	if ok {
		return true, nil, nil
	}

	raw, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// expiró entre SETNX y GET
			return s.Reserve(ctx, key)
		}
		return false, nil, fmt.Errorf("idempotency get: %w", err)
	}
	if string(raw) == stateReserved {
		return false, nil, ErrInProgress
	}
	var resp StoredResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return false, nil, fmt.Errorf("idempotency decode: %w", err)
	}
	return false, &resp, nil
}

// Complete guarda la respuesta final bajo la llave reservada.
func (s *IdempotencyStore) Complete(ctx context.Context, key string, resp StoredResponse) error {
	if s == nil || s.client == nil {
		return nil
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("idempotency encode: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

// Release libera la llave para que un reintento pueda volver a ejecutarse (la operación falló).
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if s == nil || s.client == nil {
		return nil
	}
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}
