package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/padel-tournament/internal/model"
	"github.com/mcoot/padel-tournament/internal/services/auth"
	"github.com/mcoot/padel-tournament/internal/services/tournament"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) addTeams(names ...[2]string) []model.Team {
	teams := make([]model.Team, 0, len(names))
	for _, n := range names {
		team, err := s.app.Controller.AddTeam(s.ctx, n[0], n[1])
		s.Require().NoError(err)
		teams = append(teams, team)
	}
	return teams
}

func winner(id model.TeamID) *model.TeamID {
	return &id
}

// Test: a full round robin from registration to final standings
func (s *IntegrationSuite) TestCompleteTournamentFlow() {
	teams := s.addTeams(
		[2]string{"Ana", "Bea"},
		[2]string{"Cruz", "Dan"},
		[2]string{"Eva", "Fer"},
	)

	round, err := s.app.Controller.GenerateRound(s.ctx)
	s.Require().NoError(err)
	s.Len(round, 3)

	// Team 1 wins both, team 2 beats team 3
	for _, v := range round {
		var w model.TeamID
		switch v.Fixture.Key() {
		case model.NewPairKey(teams[0].ID, teams[1].ID), model.NewPairKey(teams[0].ID, teams[2].ID):
			w = teams[0].ID
		default:
			w = teams[1].ID
		}
		_, err := s.app.Controller.RecordResult(s.ctx, v.Fixture.ID, winner(w))
		s.Require().NoError(err)
	}

	ranking, err := s.app.Controller.Standings(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(ranking.Entries, 3)
	s.Equal(teams[0].ID, ranking.Entries[0].Team.ID)
	s.Equal(teams[1].ID, ranking.Entries[1].Team.ID)
	s.Equal(teams[2].ID, ranking.Entries[2].Team.ID)
	s.Equal(3, ranking.Summary.MatchesPlayed)
	s.InDelta(100.0, ranking.Summary.Progress, 0.001)

	_, err = s.app.Controller.GenerateRound(s.ctx)
	s.ErrorIs(err, model.ErrNoNewFixtures)

	pending, err := s.app.Controller.ListFixtures(s.ctx, tournament.FilterPending)
	s.Require().NoError(err)
	s.Empty(pending)
}

// Test: fixtures are timestamped with the injected clock
func (s *IntegrationSuite) TestFixturesUseInjectedClock() {
	s.addTeams([2]string{"Ana", "Bea"}, [2]string{"Cruz", "Dan"})

	round, err := s.app.Controller.GenerateRound(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(round, 1)
	s.Equal(s.app.MockClock.Now(), round[0].Fixture.CreatedAt)
}

// Test: the seeded admin can sign in and manage users
func (s *IntegrationSuite) TestAdminManagesUsers() {
	admin := s.app.AdminSession(s.ctx)
	s.True(admin.IsAdmin)

	_, err := s.app.AuthService.CreateUser(s.ctx, admin, "referee", "whistle")
	s.Require().NoError(err)

	referee, err := s.app.AuthService.Login(s.ctx, "referee", "whistle")
	s.Require().NoError(err)
	s.False(referee.IsAdmin)

	_, err = s.app.AuthService.ListUsers(s.ctx, referee)
	s.ErrorIs(err, auth.ErrForbidden)

	users, err := s.app.AuthService.ListUsers(s.ctx, admin)
	s.Require().NoError(err)
	s.Len(users, 2)
}

// Test: sessions expire as the clock advances
func (s *IntegrationSuite) TestSessionExpiry() {
	session := s.app.AdminSession(s.ctx)

	_, err := s.app.AuthService.ValidateSession(session.Token)
	s.Require().NoError(err)

	s.app.MockClock.Advance(auth.DefaultConfig().SessionDuration + 1)
	s.Equal(1, s.app.AuthService.CleanExpiredSessions())

	_, err = s.app.AuthService.ValidateSession(session.Token)
	s.ErrorIs(err, auth.ErrInvalidSession)
}

func TestNewRejectsUnknownStorageType(t *testing.T) {
	_, err := New(context.Background(), Config{StorageType: "sqlite"})
	if err == nil {
		t.Fatal("expected an error for an unknown storage type")
	}
}

func TestNewRequiresBackendConfig(t *testing.T) {
	for _, typ := range []string{StorageTypeRedis, StorageTypePostgres} {
		if _, err := New(context.Background(), Config{StorageType: typ}); err == nil {
			t.Fatalf("expected an error for %s without config", typ)
		}
	}
}

func TestNewDefaultsToMemory(t *testing.T) {
	app, err := New(context.Background(), Config{})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = app.Close() }()

	team, err := app.Controller.AddTeam(context.Background(), "Ana", "Bea")
	if err != nil {
		t.Fatal(err)
	}
	if team.ID != 1 {
		t.Fatalf("expected first team id 1, got %d", team.ID)
	}
}
