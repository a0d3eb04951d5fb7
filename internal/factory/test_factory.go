package factory

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/padel-tournament/internal/dependencies/mocks"
	"github.com/mcoot/padel-tournament/internal/model"
	"github.com/mcoot/padel-tournament/internal/services/auth"
	"github.com/mcoot/padel-tournament/internal/services/tournament"
	"github.com/mcoot/padel-tournament/internal/storage/memory"
	"github.com/mcoot/padel-tournament/internal/testutil"
)

// TestAdminPassword is the admin password seeded into every TestApp
const TestAdminPassword = "admin-password"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// The admin account exists with TestAdminPassword.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	authCfg := auth.DefaultConfig()
	authCfg.BcryptCost = bcrypt.MinCost
	logger := testutil.NopLogger()

	app := newWithDependencies(store, mockClock, mockRandom, authCfg, tournament.DefaultConfig(), logger)
	if err := app.AuthService.EnsureAdmin(context.Background(), TestAdminPassword); err != nil {
		panic(err)
	}

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// AdminSession signs in as the admin and returns the session
func (t *TestApp) AdminSession(ctx context.Context) *auth.Session {
	session, err := t.AuthService.Login(ctx, model.AdminUsername, TestAdminPassword)
	if err != nil {
		panic(err)
	}
	return session
}
