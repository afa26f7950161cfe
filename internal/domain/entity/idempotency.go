package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyRecord caches the response of a settlement request keyed by the
// client supplied Idempotency-Key, scoped to the calling user.
type IdempotencyRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Key          string    `gorm:"uniqueIndex:idx_idempotency_user_key;size:255;not null" json:"key"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_idempotency_user_key" json:"user_id"`
	Endpoint     string    `gorm:"size:255;not null" json:"endpoint"`
	RequestHash  string    `gorm:"size:64;not null" json:"request_hash"`
	ResponseCode int       `gorm:"not null" json:"response_code"`
	ResponseBody string    `gorm:"type:text" json:"response_body"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	ExpiresAt    time.Time `gorm:"not null;index" json:"expires_at"`
}

// TableName returns the table name for IdempotencyRecord
func (IdempotencyRecord) TableName() string {
	return "idempotency_records"
}

// IsExpired reports whether the record is past its expiry at now
func (r *IdempotencyRecord) IsExpired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// Matches reports whether a replayed request carries the same endpoint and body
func (r *IdempotencyRecord) Matches(endpoint, requestHash string) bool {
	return r.Endpoint == endpoint && r.RequestHash == requestHash
}
