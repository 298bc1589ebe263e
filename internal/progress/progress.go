// Package progress applies dimension writes: the leveling rule for every
// value-raising path and the period bonuses for goal completion/undo.
package progress

import (
	"context"

	"github.com/RiseHunter/RiseHuntBot/internal"
	"github.com/RiseHunter/RiseHuntBot/internal/storage"
	"github.com/RiseHunter/RiseHuntBot/internal/survey"
)

// Bonus magnitudes per goal period.
const (
	BonusDay   = 0.1
	BonusWeek  = 0.3
	BonusMonth = 0.5
)

// Dimension nudges rewarded for journal entries.
const (
	DeltaEmotion    = 0.2
	DeltaReflection = 0.15
)

func Bonus(p internal.Period) float64 {
	switch p {
	case internal.PeriodDay:
		return BonusDay
	case internal.PeriodWeek:
		return BonusWeek
	case internal.PeriodMonth:
		return BonusMonth
	}
	return 0
}

// Result reports a dimension write. When LeveledUp is set, Stored holds the
// value that triggered the level-up (the maximum); the dimension itself has
// been reset to the baseline under the new level.
type Result struct {
	Direction internal.Direction
	Stored    float64
	LeveledUp bool
	NewLevel  int
}

// ApplyScore clamps and persists a dimension value, then runs the leveling
// check: hitting the maximum increments the level and resets the dimension
// to the baseline.
func ApplyScore(ctx context.Context, store storage.Store, userID string, dir internal.Direction, value float64) (Result, error) {
	stored := survey.Clamp(value)
	if err := store.UpdateDimension(ctx, userID, dir, stored); err != nil {
		return Result{}, err
	}
	res := Result{Direction: dir, Stored: stored}
	if stored >= internal.DimensionMax {
		level, err := store.IncrementLevelAndReset(ctx, userID, dir)
		if err != nil {
			return Result{}, err
		}
		res.LeveledUp = true
		res.NewLevel = level
	}
	return res, nil
}

// JournalDelta returns the dimension nudge rewarded for a journal entry
// type. Workout plans carry no nudge.
func JournalDelta(typ internal.JournalType) (internal.Direction, float64, bool) {
	switch typ {
	case internal.JournalEmotion:
		return internal.DirectionEI, DeltaEmotion, true
	case internal.JournalReflection:
		return internal.DirectionEX, DeltaReflection, true
	}
	return "", 0, false
}

// ApplyNudge raises a dimension by a small journal reward, capped at the
// maximum through the clamp. Nudges never consult the leveling rule; only
// test submissions and goal bonuses can level a user up.
func ApplyNudge(ctx context.Context, store storage.Store, userID string, dir internal.Direction, delta float64) (float64, error) {
	user, err := store.GetUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	stored := survey.Clamp(user.Dimensions[dir] + delta)
	if err := store.UpdateDimension(ctx, userID, dir, stored); err != nil {
		return 0, err
	}
	return stored, nil
}

// CompleteGoal marks a goal done and applies the period bonus to its
// dimension. Completing an already-done goal is rejected without mutation.
func CompleteGoal(ctx context.Context, store storage.Store, goal *internal.Goal) (Result, error) {
	if goal.Done {
		return Result{}, internal.ErrAlreadyDone
	}
	user, err := store.GetUser(ctx, goal.UserID)
	if err != nil {
		return Result{}, err
	}
	if err := store.SetGoalDone(ctx, goal.ID, true); err != nil {
		return Result{}, err
	}
	res, err := ApplyScore(ctx, store, goal.UserID, goal.Direction, user.Dimensions[goal.Direction]+Bonus(goal.Period))
	if err != nil {
		// Roll the flag back so a retry is not answered with "already done".
		_ = store.SetGoalDone(ctx, goal.ID, false)
		return Result{}, err
	}
	return res, nil
}

// UndoGoal reverts a completed goal, subtracting the bonus. Undo only ever
// lowers the value, so it never consults the leveling rule. Near the bounds
// the reversal saturates: clamp(clamp(x+b)-b) equals x only strictly inside
// (0.1+b, 10.0-b).
func UndoGoal(ctx context.Context, store storage.Store, goal *internal.Goal) (Result, error) {
	if !goal.Done {
		return Result{}, internal.ErrAlreadyDone
	}
	user, err := store.GetUser(ctx, goal.UserID)
	if err != nil {
		return Result{}, err
	}
	if err := store.SetGoalDone(ctx, goal.ID, false); err != nil {
		return Result{}, err
	}
	stored := survey.Clamp(user.Dimensions[goal.Direction] - Bonus(goal.Period))
	if err := store.UpdateDimension(ctx, goal.UserID, goal.Direction, stored); err != nil {
		_ = store.SetGoalDone(ctx, goal.ID, true)
		return Result{}, err
	}
	return Result{Direction: goal.Direction, Stored: stored}, nil
}
