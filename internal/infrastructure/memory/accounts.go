package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/pos-api/internal/domain/repository"
)

type businessRepository struct{ s *Store }

// Businesses returns the business repository of the store
func (s *Store) Businesses() domainRepo.BusinessRepository { return &businessRepository{s} }

func (r *businessRepository) Create(ctx context.Context, business *entity.Business) error {
	return r.s.write(ctx, func(d *state, now time.Time) error {
		stampNew(&business.Model, now)
		d.businesses.put(business.ID, *business)
		return nil
	})
}

func (r *businessRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	var out *entity.Business
	r.s.read(func(d *state) {
		if b, ok := d.businesses.get(id); ok {
			out = &b
		}
	})
	return out, nil
}

type userRepository struct{ s *Store }

// Users returns the user repository of the store
func (s *Store) Users() domainRepo.UserRepository { return &userRepository{s} }

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.s.write(ctx, func(d *state, now time.Time) error {
		dup := false
		d.users.each(func(u entity.User) bool {
			dup = strings.EqualFold(u.Email, user.Email)
			return !dup
		})
		if dup {
			return ErrDuplicate
		}
		stampNew(&user.Model, now)
		d.users.put(user.ID, *user)
		return nil
	})
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var out *entity.User
	r.s.read(func(d *state) {
		if u, ok := d.users.get(id); ok {
			out = &u
		}
	})
	return out, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var out *entity.User
	r.s.read(func(d *state) {
		d.users.each(func(u entity.User) bool {
			if strings.EqualFold(u.Email, email) {
				out = &u
				return false
			}
			return true
		})
	})
	return out, nil
}

type idempotencyRepository struct{ s *Store }

// Idempotency returns the idempotency repository of the store
func (s *Store) Idempotency() domainRepo.IdempotencyRepository { return &idempotencyRepository{s} }

func idempotencyKey(key string, userID uuid.UUID) string {
	return userID.String() + ":" + key
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyRecord, error) {
	var out *entity.IdempotencyRecord
	r.s.read(func(d *state) {
		if rec, ok := d.idempotency[idempotencyKey(key, userID)]; ok {
			out = &rec
		}
	})
	return out, nil
}

func (r *idempotencyRepository) Create(ctx context.Context, record *entity.IdempotencyRecord) error {
	return r.s.write(ctx, func(d *state, now time.Time) error {
		k := idempotencyKey(record.Key, record.UserID)
		if old, ok := d.idempotency[k]; ok && !old.IsExpired(now) {
			return ErrDuplicate
		}
		if record.ID == uuid.Nil {
			record.ID = uuid.New()
		}
		if record.CreatedAt.IsZero() {
			record.CreatedAt = now
		}
		d.idempotency[k] = *record
		return nil
	})
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	return r.s.write(ctx, func(d *state, _ time.Time) error {
		for k, rec := range d.idempotency {
			if rec.IsExpired(now) {
				delete(d.idempotency, k)
			}
		}
		return nil
	})
}
