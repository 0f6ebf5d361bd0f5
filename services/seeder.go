package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/tamohar/foundationbackend/database"
	"github.com/tamohar/foundationbackend/utils"
)

// Seeder creates the site content document and the seeded admin the first
// time either is needed. Every step is an insert-if-absent, so concurrent
// callers and multiple processes converge on a single document and user.
type Seeder struct {
	content database.ContentStore
	users   database.UserStore
	key     string
	admin   utils.AdminSeed

	mu   sync.Mutex
	done atomic.Bool
}

func NewSeeder(content database.ContentStore, users database.UserStore, key string, admin utils.AdminSeed) *Seeder {
	return &Seeder{content: content, users: users, key: key, admin: admin}
}

func (s *Seeder) ContentKey() string { return s.key }

// Ensure is cheap once it has succeeded. A failed attempt is retried on the
// next call.
func (s *Seeder) Ensure(ctx context.Context) error {
	if s.done.Load() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done.Load() {
		return nil
	}

	inserted, err := s.content.InsertIfAbsent(ctx, s.key, utils.DefaultSections())
	if err != nil {
		return fmt.Errorf("initialize content: %w", err)
	}
	if inserted {
		slog.Info("site content initialized", "key", s.key)
	}

	if err := s.ensureAdmin(ctx); err != nil {
		return err
	}

	s.done.Store(true)
	return nil
}

func (s *Seeder) ensureAdmin(ctx context.Context) error {
	if s.admin.Email == "" || s.admin.Password == "" {
		return nil
	}
	_, err := s.users.FindByEmail(ctx, s.admin.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("look up seed admin: %w", err)
	}

	admin, err := utils.NewSeedAdmin(s.admin)
	if err != nil {
		return err
	}
	inserted, err := s.users.InsertIfAbsent(ctx, admin)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if inserted {
		slog.Info("seed admin created", "email", admin.Email)
	}
	return nil
}
