// Package tournament orchestrates the fixture, standings and roster engines
// against persistent storage.
package tournament

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/padel-tournament/internal/dependencies/clock"
	"github.com/mcoot/padel-tournament/internal/model"
	"github.com/mcoot/padel-tournament/internal/services/fixtures"
	"github.com/mcoot/padel-tournament/internal/services/roster"
	"github.com/mcoot/padel-tournament/internal/services/standings"
	"github.com/mcoot/padel-tournament/internal/storage"
)

// Config tunes the controller
type Config struct {
	// MaxRetries is how many times a mutation is retried after a concurrent
	// write conflict before the conflict is returned to the caller
	MaxRetries int
}

// DefaultConfig returns the default controller configuration
func DefaultConfig() Config {
	return Config{MaxRetries: 3}
}

// Controller loads the tournament snapshot, applies one engine operation and
// saves the result
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
	cfg     Config
}

// NewController creates a new tournament Controller
func NewController(storage storage.Storage, clock clock.Clock, logger *slog.Logger, cfg Config) *Controller {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &Controller{
		storage: storage,
		clock:   clock,
		logger:  logger,
		cfg:     cfg,
	}
}

// Snapshot returns the current tournament state
func (c *Controller) Snapshot(ctx context.Context) (*model.Tournament, error) {
	t, err := c.storage.LoadTournament(ctx)
	if err != nil {
		c.logger.Error("failed to load tournament", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: load tournament: %w", model.ErrStorageFailure, err)
	}
	return t, nil
}

// ListTeams returns the roster in registration order
func (c *Controller) ListTeams(ctx context.Context) ([]model.Team, error) {
	t, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return t.Teams, nil
}

// ListFixtures returns fixtures matching the filter with both teams resolved
func (c *Controller) ListFixtures(ctx context.Context, filter FixtureFilter) ([]FixtureView, error) {
	t, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	views := []FixtureView{}
	for _, f := range t.Fixtures {
		if filter.Matches(f) {
			views = append(views, newFixtureView(t, f))
		}
	}
	return views, nil
}

// AddTeam registers a new team
func (c *Controller) AddTeam(ctx context.Context, player1, player2 string) (model.Team, error) {
	var team model.Team
	_, err := c.mutate(ctx, "add_team", func(t *model.Tournament) error {
		var err error
		team, err = roster.AddTeam(t, player1, player2)
		return err
	})
	if err != nil {
		return model.Team{}, err
	}

	c.logger.Info("team added",
		slog.Int("team_id", int(team.ID)),
		slog.String("team", team.Name()),
	)
	return team, nil
}

// RemoveTeam deletes a team and all of its fixtures
func (c *Controller) RemoveTeam(ctx context.Context, id model.TeamID) error {
	var removed int
	_, err := c.mutate(ctx, "remove_team", func(t *model.Tournament) error {
		var err error
		removed, err = roster.RemoveTeam(t, id)
		return err
	})
	if err != nil {
		return err
	}

	c.logger.Info("team removed",
		slog.Int("team_id", int(id)),
		slog.Int("fixtures_removed", removed),
	)
	return nil
}

// Reset wipes all teams and fixtures
func (c *Controller) Reset(ctx context.Context) error {
	_, err := c.mutate(ctx, "reset", func(t *model.Tournament) error {
		roster.Reset(t)
		return nil
	})
	if err != nil {
		return err
	}

	c.logger.Warn("tournament reset")
	return nil
}

// GenerateRound schedules every pairing not yet scheduled and returns the new
// fixtures
func (c *Controller) GenerateRound(ctx context.Context) ([]FixtureView, error) {
	var created []model.Fixture
	saved, err := c.mutate(ctx, "generate_round", func(t *model.Tournament) error {
		var err error
		created, err = fixtures.GenerateRound(t.Teams, t.Fixtures, c.clock.Now())
		if err != nil {
			return err
		}
		t.Fixtures = append(t.Fixtures, created...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	views := make([]FixtureView, len(created))
	for i, f := range created {
		views[i] = newFixtureView(saved, f)
	}

	c.logger.Info("round generated",
		slog.Int("fixture_count", len(created)),
		slog.Int("first_fixture_id", int(created[0].ID)),
	)
	return views, nil
}

// RecordResult sets, corrects or clears (nil winner) the result of a fixture
func (c *Controller) RecordResult(ctx context.Context, fixtureID model.FixtureID, winnerID *model.TeamID) (FixtureView, error) {
	saved, err := c.mutate(ctx, "record_result", func(t *model.Tournament) error {
		fs, ts, err := standings.RecordResult(t.Fixtures, t.Teams, fixtureID, winnerID)
		if err != nil {
			return err
		}
		t.Fixtures = fs
		t.Teams = ts
		return nil
	})
	if err != nil {
		return FixtureView{}, err
	}

	f := saved.GetFixture(fixtureID)
	view := newFixtureView(saved, *f)

	attrs := []any{slog.Int("fixture_id", int(fixtureID))}
	if winnerID != nil {
		attrs = append(attrs, slog.Int("winner_id", int(*winnerID)))
	}
	c.logger.Info("result recorded", attrs...)

	return view, nil
}

// Standings returns the ranked table and tournament summary
func (c *Controller) Standings(ctx context.Context) (*Ranking, error) {
	t, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &Ranking{
		Entries: standings.Table(t.Teams),
		Summary: standings.Summarize(t.Teams),
	}, nil
}

// Dashboard returns the overview shown on the landing page
func (c *Controller) Dashboard(ctx context.Context) (*Dashboard, error) {
	t, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	completed := t.PlayedFixtures()
	d := &Dashboard{
		TeamCount:         len(t.Teams),
		FixtureCount:      len(t.Fixtures),
		CompletedFixtures: completed,
		PendingFixtures:   len(t.Fixtures) - completed,
		NextFixtures:      []FixtureView{},
		Summary:           standings.Summarize(t.Teams),
	}

	for _, f := range t.Fixtures {
		if len(d.NextFixtures) == dashboardListSize {
			break
		}
		if !f.IsPlayed() {
			d.NextFixtures = append(d.NextFixtures, newFixtureView(t, f))
		}
	}

	table := standings.Table(t.Teams)
	if len(table) > dashboardListSize {
		table = table[:dashboardListSize]
	}
	d.Leaders = table

	return d, nil
}

// mutate runs op against a fresh copy of the stored tournament and saves it.
// A concurrent write conflict reruns op against a new load. Nothing is
// written if op or validation fails.
func (c *Controller) mutate(ctx context.Context, name string, op func(t *model.Tournament) error) (*model.Tournament, error) {
	for attempt := 0; ; attempt++ {
		current, err := c.Snapshot(ctx)
		if err != nil {
			return nil, err
		}

		next := current.Clone()
		if err := op(next); err != nil {
			return nil, err
		}
		if err := next.Validate(); err != nil {
			c.logger.Error("operation produced invalid state",
				slog.String("operation", name),
				slog.String("error", err.Error()),
			)
			return nil, err
		}
		next.UpdatedAt = c.clock.Now()

		err = c.storage.SaveTournament(ctx, next)
		if err == nil {
			return next, nil
		}

		if errors.Is(err, storage.ErrVersionConflict) {
			if attempt < c.cfg.MaxRetries {
				c.logger.Warn("concurrent update, retrying",
					slog.String("operation", name),
					slog.Int("attempt", attempt+1),
				)
				continue
			}
			c.logger.Error("giving up after concurrent updates",
				slog.String("operation", name),
				slog.Int("attempts", attempt+1),
			)
			return nil, err
		}

		c.logger.Error("failed to save tournament",
			slog.String("operation", name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: save tournament: %w", model.ErrStorageFailure, err)
	}
}
