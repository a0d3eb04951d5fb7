package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/padel-tournament/internal/model"
	"github.com/mcoot/padel-tournament/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func sampleTournament() *model.Tournament {
	winner := model.TeamID(2)
	t := model.NewTournament()
	t.Teams = []model.Team{
		{ID: 1, Players: [2]string{"Ana", "Bea"}, Losses: 1},
		{ID: 2, Players: [2]string{"Cruz", "Dan"}, Wins: 1},
		{ID: 3, Players: [2]string{"Eva", "Fer"}},
	}
	t.Fixtures = []model.Fixture{
		{ID: 1, Team1ID: 1, Team2ID: 2, WinnerID: &winner},
		{ID: 2, Team1ID: 1, Team2ID: 3},
	}
	t.NextTeamID = 4
	return t
}

// Tournament tests

func (s *StorageSuite) TestLoadEmptyTournament() {
	t, err := s.storage.LoadTournament(s.ctx)
	s.Require().NoError(err)
	s.NotNil(t.Teams)
	s.NotNil(t.Fixtures)
	s.Empty(t.Teams)
	s.Equal(model.TeamID(1), t.NextTeamID)
	s.Zero(t.Version)
}

func (s *StorageSuite) TestSaveAndLoadTournament() {
	t := sampleTournament()
	s.Require().NoError(s.storage.SaveTournament(s.ctx, t))
	s.Equal(int64(1), t.Version)

	loaded, err := s.storage.LoadTournament(s.ctx)
	s.Require().NoError(err)
	s.Equal(t.Teams, loaded.Teams)
	s.Require().Len(loaded.Fixtures, 2)
	s.Require().NotNil(loaded.Fixtures[0].WinnerID)
	s.Equal(model.TeamID(2), *loaded.Fixtures[0].WinnerID)
	s.Nil(loaded.Fixtures[1].WinnerID)
	s.Equal(model.TeamID(4), loaded.NextTeamID)
	s.Equal(int64(1), loaded.Version)
	s.True(s.mini.Exists("padel:tournament"))
}

func (s *StorageSuite) TestTournamentStoredWithSnakeCaseKeys() {
	s.Require().NoError(s.storage.SaveTournament(s.ctx, sampleTournament()))

	raw, err := s.mini.Get("padel:tournament")
	s.Require().NoError(err)
	s.Contains(raw, `"next_team_id":4`)
	s.Contains(raw, `"team1_id":1`)
	s.Contains(raw, `"winner_id":2`)
	s.Contains(raw, `"winner_id":null`)
	s.Contains(raw, `"players":["Ana","Bea"]`)
	s.NotContains(raw, "Team1ID")
}

func (s *StorageSuite) TestSaveWithStaleVersionConflicts() {
	s.Require().NoError(s.storage.SaveTournament(s.ctx, sampleTournament()))

	first, err := s.storage.LoadTournament(s.ctx)
	s.Require().NoError(err)
	second, err := s.storage.LoadTournament(s.ctx)
	s.Require().NoError(err)

	first.Teams[2].Wins = 1
	s.Require().NoError(s.storage.SaveTournament(s.ctx, first))

	err = s.storage.SaveTournament(s.ctx, second)
	s.ErrorIs(err, storage.ErrVersionConflict)
	s.Equal(int64(1), second.Version)

	loaded, err := s.storage.LoadTournament(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), loaded.Version)
	s.Equal(1, loaded.Teams[2].Wins)
}

func (s *StorageSuite) TestFirstSaveRequiresVersionZero() {
	t := sampleTournament()
	t.Version = 3
	s.ErrorIs(s.storage.SaveTournament(s.ctx, t), storage.ErrVersionConflict)
	s.False(s.mini.Exists("padel:tournament"))
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{Username: "admin", PasswordHash: "hash", IsAdmin: true}
	s.Require().NoError(s.storage.SaveUser(s.ctx, user))

	retrieved, err := s.storage.GetUser(s.ctx, "admin")
	s.Require().NoError(err)
	s.Equal("hash", retrieved.PasswordHash)
	s.True(retrieved.IsAdmin)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestListUsersSorted() {
	for _, name := range []string{"zoe", "admin", "marta"} {
		s.Require().NoError(s.storage.SaveUser(s.ctx, &model.User{Username: name}))
	}

	users, err := s.storage.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 3)
	s.Equal("admin", users[0].Username)
	s.Equal("marta", users[1].Username)
	s.Equal("zoe", users[2].Username)
}

func (s *StorageSuite) TestListUsersEmpty() {
	users, err := s.storage.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Empty(users)
}

func (s *StorageSuite) TestDeleteUser() {
	s.Require().NoError(s.storage.SaveUser(s.ctx, &model.User{Username: "marta"}))
	s.Require().NoError(s.storage.DeleteUser(s.ctx, "marta"))

	_, err := s.storage.GetUser(s.ctx, "marta")
	s.ErrorIs(err, model.ErrUserNotFound)

	users, err := s.storage.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Empty(users)
}
