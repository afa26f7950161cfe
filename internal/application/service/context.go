package service

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	actorKey    ctxKey = "actor_id"
	businessKey ctxKey = "business_id"
)

// WithActor adds the id of the authenticated user to ctx
func WithActor(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, actorKey, userID)
}

// ActorFromContext extracts the authenticated user id, if any
func ActorFromContext(ctx context.Context) *uuid.UUID {
	id, ok := ctx.Value(actorKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return nil
	}
	return &id
}

// WithBusiness adds the business the caller works for to ctx
func WithBusiness(ctx context.Context, businessID uuid.UUID) context.Context {
	return context.WithValue(ctx, businessKey, businessID)
}

// BusinessFromContext extracts the caller's business id
func BusinessFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(businessKey).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// visible reports whether a record of businessID may be seen by the caller.
// Callers without a business see every business.
func visible(ctx context.Context, businessID uuid.UUID) bool {
	own, ok := BusinessFromContext(ctx)
	return !ok || own == businessID
}
