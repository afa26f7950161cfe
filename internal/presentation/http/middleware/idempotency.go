package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
	"github.com/sangkips/pos-api/internal/domain/repository"
	"github.com/sangkips/pos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/pos-api/pkg/apperror"
	"github.com/sangkips/pos-api/pkg/logger"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	replayedHeader       = "X-Idempotency-Replayed"

	defaultIdempotencyTTL = 24 * time.Hour
	maxIdempotencyKeyLen  = 255
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	TTL  time.Duration
	// Required rejects requests without an Idempotency-Key
	Required bool
	Logger   *zap.Logger
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a client repeats a request
// with the same Idempotency-Key. Keys are scoped to the authenticated user.
// Reusing a key for a different request is a conflict. Responses with a
// status below 500 are stored, so a rejected payment replays its rejection
// while a server error may be retried.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			if cfg.Required {
				response.Abort(c, apperror.NewBadRequestError("Idempotency-Key header is required for this request"))
				return
			}
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLen {
			response.Abort(c, apperror.NewBadRequestError("Idempotency-Key is too long"))
			return
		}

		userIDValue, _ := c.Get("user_id")
		userID, ok := userIDValue.(uuid.UUID)
		if !ok {
			response.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		log := logger.FromContext(ctx, cfg.Logger)

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.Abort(c, apperror.NewBadRequestError("Failed to read request body"))
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		endpoint := c.Request.Method + " " + c.Request.URL.Path
		hash := requestHash(body)

		existing, err := cfg.Repo.GetByKey(ctx, key, userID)
		if err != nil {
			log.Error("idempotency lookup failed", zap.Error(err))
			response.Abort(c, apperror.Wrap(err, "Failed to check idempotency key"))
			return
		}
		if existing != nil && !existing.IsExpired(time.Now()) {
			if !existing.Matches(endpoint, hash) {
				response.Abort(c, apperror.NewConflictError("Idempotency-Key was already used for a different request"))
				return
			}
			c.Header(replayedHeader, "true")
			c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		capture := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = capture

		c.Next()

		status := c.Writer.Status()
		if status >= http.StatusInternalServerError {
			return
		}
		record := &entity.IdempotencyRecord{
			Key:          key,
			UserID:       userID,
			Endpoint:     endpoint,
			RequestHash:  hash,
			ResponseCode: status,
			ResponseBody: capture.body.String(),
			ExpiresAt:    time.Now().Add(ttl),
		}
		// The request context may already be cancelled once the client got its answer.
		if err := cfg.Repo.Create(context.WithoutCancel(ctx), record); err != nil {
			log.Warn("failed to store idempotency record", zap.String("key", key), zap.Error(err))
		}
	}
}

func requestHash(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}
