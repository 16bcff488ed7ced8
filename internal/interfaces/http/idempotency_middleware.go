package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/chronos-ledger/internal/application/dto"
	"github.com/jhoicas/chronos-ledger/internal/infrastructure/cache"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"
	maxIdempotencyKeyLen = 200
)

// Idempotency evita registrar dos veces una operación reintentada con el mismo Idempotency-Key.
// Solo las respuestas 2xx quedan guardadas; un rechazo no mueve dinero y libera la llave.
// Sin header, con GET o con store nil la petición pasa directo.
func Idempotency(store *cache.IdempotencyStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := strings.TrimSpace(c.Get(HeaderIdempotencyKey))
		if store == nil || key == "" || c.Method() == fiber.MethodGet {
			return c.Next()
		}
		if len(key) > maxIdempotencyKeyLen {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_IDEMPOTENCY_KEY", Message: "Idempotency-Key demasiado largo"})
		}

		scoped := GetUserID(c) + ":" + c.Method() + ":" + c.Path() + ":" + key
		ctx := c.Context()
		reserved, stored, err := store.Reserve(ctx, scoped)
		if errors.Is(err, cache.ErrInProgress) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "IDEMPOTENCY_IN_PROGRESS", Message: err.Error()})
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "IDEMPOTENCY_UNAVAILABLE", Message: "no se pudo verificar la llave de idempotencia"})
		}
		if !reserved {
			c.Set(HeaderReplayed, "true")
			if stored.ContentType != "" {
				c.Set(fiber.HeaderContentType, stored.ContentType)
			}
			return c.Status(stored.Status).Send(stored.Body)
		}

		if err := c.Next(); err != nil {
			_ = store.Release(ctx, scoped)
			return err
		}
		status := c.Response().StatusCode()
		if status < 200 || status >= 300 {
			_ = store.Release(ctx, scoped)
			return nil
		}
		_ = store.Complete(ctx, scoped, cache.StoredResponse{
			Status:      status,
			ContentType: string(c.Response().Header.ContentType()),
			Body:        append([]byte(nil), c.Response().Body()...),
		})
		return nil
	}
}
