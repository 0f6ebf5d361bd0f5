package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tamohar/foundationbackend/database"
	"github.com/tamohar/foundationbackend/utils"
)

const (
	testAdminEmail    = "admin@example.org"
	testAdminPassword = "correct horse battery"
	testSecret        = "services-test-secret-0123456789"
)

type fixture struct {
	stores  *database.Stores
	seeder  *Seeder
	tokens  *utils.TokenService
	auth    *AuthService
	content *ContentService
	subs    *SubmissionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	stores := database.NewMemoryStores()
	seeder := NewSeeder(stores.Content, stores.Users, "site_content", utils.AdminSeed{
		Email:    testAdminEmail,
		Password: testAdminPassword,
		Name:     "Site Admin",
	})
	tokens := utils.NewTokenService(testSecret, time.Hour, nil)
	return &fixture{
		stores:  stores,
		seeder:  seeder,
		tokens:  tokens,
		auth:    NewAuthService(stores.Users, tokens, seeder),
		content: NewContentService(stores.Content, seeder),
		subs:    NewSubmissionService(stores),
	}
}

func (f *fixture) memoryUsers(t *testing.T) *database.MemoryUserStore {
	t.Helper()
	users, ok := f.stores.Users.(*database.MemoryUserStore)
	require.True(t, ok)
	return users
}
