package storage

import (
	"context"
	"time"

	"github.com/RiseHunter/RiseHuntBot/internal"
)

// Store is the single progress-store contract. Both implementations share
// semantics: GetUser creates the user with baseline dimensions on first
// contact, dimension writes assume the caller has already clamped the value,
// and goal done-toggles are plain state writes (idempotence is enforced one
// layer up, in progress).
type Store interface {
	GetUser(ctx context.Context, id string) (*internal.User, error)
	UpdateUserFields(ctx context.Context, id string, patch internal.UserPatch) error
	UpdateDimension(ctx context.Context, id string, dir internal.Direction, value float64) error
	// IncrementLevelAndReset bumps the level by one and resets the given
	// dimension to the baseline, returning the new level.
	IncrementLevelAndReset(ctx context.Context, id string, dir internal.Direction) (int, error)

	SaveJournalEntry(ctx context.Context, userID string, typ internal.JournalType, content string) (*internal.JournalEntry, error)
	GetRecentJournal(ctx context.Context, userID string, windowDays, limit int) ([]internal.JournalEntry, error)
	PurgeJournalBefore(ctx context.Context, cutoff time.Time) (int, error)

	AddGoal(ctx context.Context, userID string, period internal.Period, dir internal.Direction, title string) (*internal.Goal, error)
	GetGoals(ctx context.Context, userID string, period internal.Period) ([]internal.Goal, error)
	GetGoal(ctx context.Context, goalID int64) (*internal.Goal, error)
	SetGoalDone(ctx context.Context, goalID int64, done bool) error
	DeleteGoal(ctx context.Context, goalID int64) error

	Close() error
}
