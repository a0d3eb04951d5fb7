package tournament

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/padel-tournament/internal/dependencies/mocks"
	"github.com/mcoot/padel-tournament/internal/model"
	"github.com/mcoot/padel-tournament/internal/storage"
	"github.com/mcoot/padel-tournament/internal/storage/memory"
	"github.com/mcoot/padel-tournament/internal/testutil"
)

// conflictingStorage fails the next N saves with a version conflict after
// letting a concurrent writer bump the stored version
type conflictingStorage struct {
	*memory.Storage
	conflicts int
	saves     int
}

func (s *conflictingStorage) SaveTournament(ctx context.Context, t *model.Tournament) error {
	s.saves++
	if s.conflicts > 0 {
		s.conflicts--
		current, err := s.Storage.LoadTournament(ctx)
		if err != nil {
			return err
		}
		if err := s.Storage.SaveTournament(ctx, current); err != nil {
			return err
		}
	}
	return s.Storage.SaveTournament(ctx, t)
}

// brokenStorage fails every tournament operation
type brokenStorage struct {
	*memory.Storage
	loadErr error
	saveErr error
}

func (s *brokenStorage) LoadTournament(ctx context.Context) (*model.Tournament, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.Storage.LoadTournament(ctx)
}

func (s *brokenStorage) SaveTournament(ctx context.Context, t *model.Tournament) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	return s.Storage.SaveTournament(ctx, t)
}

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC))
	s.controller = NewController(s.storage, s.clock, testutil.NopLogger(), DefaultConfig())
	s.ctx = context.Background()
}

func (s *ControllerSuite) addTeams(players ...string) []model.Team {
	s.Require().Zero(len(players)%2, "players must come in pairs")
	teams := make([]model.Team, 0, len(players)/2)
	for i := 0; i < len(players); i += 2 {
		team, err := s.controller.AddTeam(s.ctx, players[i], players[i+1])
		s.Require().NoError(err)
		teams = append(teams, team)
	}
	return teams
}

func (s *ControllerSuite) addScenarioTeams() {
	s.addTeams("Ana", "Bea", "Cruz", "Dan", "Eva", "Fer")
}

func (s *ControllerSuite) record(fixtureID model.FixtureID, winner model.TeamID) {
	_, err := s.controller.RecordResult(s.ctx, fixtureID, &winner)
	s.Require().NoError(err)
}

// Team tests

func (s *ControllerSuite) TestAddTeamIsPersisted() {
	team, err := s.controller.AddTeam(s.ctx, "Ana", "Bea")
	s.Require().NoError(err)
	s.Equal(model.TeamID(1), team.ID)

	teams, err := s.controller.ListTeams(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(teams, 1)
	s.Equal("Ana & Bea", teams[0].Name())

	t, err := s.storage.LoadTournament(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), t.Version)
	s.Equal(s.clock.Now(), t.UpdatedAt)
}

func (s *ControllerSuite) TestAddTeamRejectedLeavesStorageUntouched() {
	s.addTeams("Ana", "Bea")

	_, err := s.controller.AddTeam(s.ctx, "Ana", "Cruz")
	s.ErrorIs(err, model.ErrDuplicatePlayer)

	t, err := s.storage.LoadTournament(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), t.Version)
	s.Len(t.Teams, 1)
}

func (s *ControllerSuite) TestRemoveTeamDropsItsFixturesAndStanding() {
	s.addScenarioTeams()
	_, err := s.controller.GenerateRound(s.ctx)
	s.Require().NoError(err)

	s.Require().NoError(s.controller.RemoveTeam(s.ctx, 2))

	views, err := s.controller.ListFixtures(s.ctx, FilterAll)
	s.Require().NoError(err)
	s.Require().Len(views, 1)
	s.Equal(model.TeamID(1), views[0].Team1.ID)
	s.Equal(model.TeamID(3), views[0].Team2.ID)

	ranking, err := s.controller.Standings(s.ctx)
	s.Require().NoError(err)
	s.Len(ranking.Entries, 2)
	for _, e := range ranking.Entries {
		s.NotEqual(model.TeamID(2), e.Team.ID)
	}
}

func (s *ControllerSuite) TestRemoveUnknownTeam() {
	s.ErrorIs(s.controller.RemoveTeam(s.ctx, 9), model.ErrTeamNotFound)
}

func (s *ControllerSuite) TestReset() {
	s.addScenarioTeams()
	_, err := s.controller.GenerateRound(s.ctx)
	s.Require().NoError(err)

	s.Require().NoError(s.controller.Reset(s.ctx))

	t, err := s.controller.Snapshot(s.ctx)
	s.Require().NoError(err)
	s.Empty(t.Teams)
	s.Empty(t.Fixtures)
	s.Equal(model.TeamID(1), t.NextTeamID)

	team, err := s.controller.AddTeam(s.ctx, "Ana", "Bea")
	s.Require().NoError(err)
	s.Equal(model.TeamID(1), team.ID)
}

// Round tests

func (s *ControllerSuite) TestGenerateRound() {
	s.addScenarioTeams()

	created, err := s.controller.GenerateRound(s.ctx)
	s.Require().NoError(err)
	s.Len(created, 3)
	for _, v := range created {
		s.Equal(s.clock.Now(), v.Fixture.CreatedAt)
		s.NotEmpty(v.Team1.Name())
		s.NotEmpty(v.Team2.Name())
	}

	_, err = s.controller.GenerateRound(s.ctx)
	s.ErrorIs(err, model.ErrNoNewFixtures)

	t, err := s.controller.Snapshot(s.ctx)
	s.Require().NoError(err)
	s.Len(t.Fixtures, 3)
}

func (s *ControllerSuite) TestGenerateRoundNeedsTwoTeams() {
	s.addTeams("Ana", "Bea")
	_, err := s.controller.GenerateRound(s.ctx)
	s.ErrorIs(err, model.ErrInsufficientTeams)
}

func (s *ControllerSuite) TestLateTeamGetsOnlyItsPairings() {
	s.addScenarioTeams()
	_, err := s.controller.GenerateRound(s.ctx)
	s.Require().NoError(err)

	s.addTeams("Gil", "Hugo")
	created, err := s.controller.GenerateRound(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(created, 3)
	for _, v := range created {
		s.Equal(model.TeamID(4), v.Fixture.Team2ID)
		s.Equal("Gil & Hugo", v.Team2.Name())
	}
}

// Result tests

func (s *ControllerSuite) TestScenario() {
	s.addScenarioTeams()
	_, err := s.controller.GenerateRound(s.ctx)
	s.Require().NoError(err)

	// Fixtures: 1 = T1 v T2, 2 = T1 v T3, 3 = T2 v T3
	s.record(1, 1)
	s.record(2, 3)
	s.record(3, 3)

	ranking, err := s.controller.Standings(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(ranking.Entries, 3)
	s.Equal(model.TeamID(3), ranking.Entries[0].Team.ID)
	s.Equal(2, ranking.Entries[0].Wins)
	s.Equal(model.TeamID(1), ranking.Entries[1].Team.ID)
	s.Equal(model.TeamID(2), ranking.Entries[2].Team.ID)
	s.Equal(3, ranking.Summary.MatchesPlayed)
	s.InDelta(100.0, ranking.Summary.Progress, 0.001)

	// Correct fixture 1 to a T2 win
	view, err := s.controller.RecordResult(s.ctx, 1, ptr(2))
	s.Require().NoError(err)
	s.Equal(0, view.Team1.Wins)
	s.Equal(2, view.Team1.Losses)
	s.Equal(1, view.Team2.Wins)
	s.Equal(1, view.Team2.Losses)
	winner, ok := view.Winner()
	s.True(ok)
	s.Equal(model.TeamID(2), winner.ID)

	// Clear fixture 3
	view, err = s.controller.RecordResult(s.ctx, 3, nil)
	s.Require().NoError(err)
	s.False(view.Fixture.IsPlayed())

	teams, err := s.controller.ListTeams(s.ctx)
	s.Require().NoError(err)
	s.Equal([]int{0, 2}, []int{teams[0].Wins, teams[0].Losses})
	s.Equal([]int{1, 0}, []int{teams[1].Wins, teams[1].Losses})
	s.Equal([]int{1, 0}, []int{teams[2].Wins, teams[2].Losses})
}

func (s *ControllerSuite) TestRecordResultErrors() {
	s.addScenarioTeams()
	_, err := s.controller.GenerateRound(s.ctx)
	s.Require().NoError(err)

	_, err = s.controller.RecordResult(s.ctx, 99, ptr(1))
	s.ErrorIs(err, model.ErrFixtureNotFound)

	_, err = s.controller.RecordResult(s.ctx, 1, ptr(3))
	s.ErrorIs(err, model.ErrInvalidWinner)
}

// Listing tests

func (s *ControllerSuite) TestListFixturesFilters() {
	s.addScenarioTeams()
	_, err := s.controller.GenerateRound(s.ctx)
	s.Require().NoError(err)
	s.record(2, 1)

	all, err := s.controller.ListFixtures(s.ctx, FilterAll)
	s.Require().NoError(err)
	s.Len(all, 3)

	pending, err := s.controller.ListFixtures(s.ctx, FilterPending)
	s.Require().NoError(err)
	s.Len(pending, 2)

	completed, err := s.controller.ListFixtures(s.ctx, FilterCompleted)
	s.Require().NoError(err)
	s.Require().Len(completed, 1)
	s.Equal(model.FixtureID(2), completed[0].Fixture.ID)
	s.Equal("Ana & Bea", completed[0].Team1.Name())
	s.Equal("Eva & Fer", completed[0].Team2.Name())
}

func (s *ControllerSuite) TestDashboard() {
	s.addTeams("Ana", "Bea", "Cruz", "Dan", "Eva", "Fer", "Gil", "Hugo")
	_, err := s.controller.GenerateRound(s.ctx)
	s.Require().NoError(err)
	s.record(1, 2)

	d, err := s.controller.Dashboard(s.ctx)
	s.Require().NoError(err)

	s.Equal(4, d.TeamCount)
	s.Equal(6, d.FixtureCount)
	s.Equal(1, d.CompletedFixtures)
	s.Equal(5, d.PendingFixtures)
	s.Require().Len(d.NextFixtures, 3)
	s.Equal(model.FixtureID(2), d.NextFixtures[0].Fixture.ID)
	s.Equal(model.FixtureID(4), d.NextFixtures[2].Fixture.ID)
	s.Require().Len(d.Leaders, 3)
	s.Equal(model.TeamID(2), d.Leaders[0].Team.ID)
	s.Equal(6, d.Summary.MatchesPossible)
}

func (s *ControllerSuite) TestDashboardEmpty() {
	d, err := s.controller.Dashboard(s.ctx)
	s.Require().NoError(err)
	s.Zero(d.TeamCount)
	s.Empty(d.NextFixtures)
	s.Empty(d.Leaders)
}

// Concurrency and storage failure tests

func (s *ControllerSuite) TestMutationRetriesOnConflict() {
	store := &conflictingStorage{Storage: s.storage, conflicts: 2}
	controller := NewController(store, s.clock, testutil.NopLogger(), DefaultConfig())

	team, err := controller.AddTeam(s.ctx, "Ana", "Bea")
	s.Require().NoError(err)
	s.Equal(model.TeamID(1), team.ID)
	s.Equal(3, store.saves)

	teams, err := controller.ListTeams(s.ctx)
	s.Require().NoError(err)
	s.Len(teams, 1)
}

func (s *ControllerSuite) TestMutationGivesUpAfterMaxRetries() {
	store := &conflictingStorage{Storage: s.storage, conflicts: 10}
	controller := NewController(store, s.clock, testutil.NopLogger(), Config{MaxRetries: 2})

	_, err := controller.AddTeam(s.ctx, "Ana", "Bea")
	s.ErrorIs(err, storage.ErrVersionConflict)
	s.Equal(3, store.saves)

	teams, err := controller.ListTeams(s.ctx)
	s.Require().NoError(err)
	s.Empty(teams)
}

func (s *ControllerSuite) TestLoadFailureIsStorageFailure() {
	boom := errors.New("connection refused")
	store := &brokenStorage{Storage: s.storage, loadErr: boom}
	controller := NewController(store, s.clock, testutil.NopLogger(), DefaultConfig())

	_, err := controller.ListTeams(s.ctx)
	s.ErrorIs(err, model.ErrStorageFailure)
	s.ErrorIs(err, boom)

	_, err = controller.AddTeam(s.ctx, "Ana", "Bea")
	s.ErrorIs(err, model.ErrStorageFailure)
}

func (s *ControllerSuite) TestSaveFailureIsStorageFailure() {
	store := &brokenStorage{Storage: s.storage, saveErr: errors.New("disk full")}
	controller := NewController(store, s.clock, testutil.NopLogger(), DefaultConfig())

	_, err := controller.AddTeam(s.ctx, "Ana", "Bea")
	s.ErrorIs(err, model.ErrStorageFailure)
	s.NotErrorIs(err, storage.ErrVersionConflict)
}

func ptr(id model.TeamID) *model.TeamID {
	return &id
}
