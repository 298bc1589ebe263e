// Package chat is the conversation core: a per-user state machine that turns
// inbound button presses and free-text messages into store mutations and
// reply payloads. Transport and rendering stay outside; the machine only
// decides which screen to show and with what data.
package chat

import (
	"sync"
	"time"

	"github.com/RiseHunter/RiseHuntBot/internal"
)

// Mode tags the active conversational state. The set is closed: every mode
// the machine can enter is listed here, and dispatch switches exhaustively
// over it. Absence of a State means idle.
type Mode string

const (
	ModeRegName    Mode = "reg_name"
	ModeRegAge     Mode = "reg_age"
	ModeRegGender  Mode = "reg_gender"
	ModeRegHandle  Mode = "reg_handle"
	ModeRegGoals   Mode = "reg_goals"
	ModeEditName   Mode = "edit_name"
	ModeAwaitScore Mode = "await_score"
	ModeEmotion    Mode = "journal_emotion"
	ModeReflection Mode = "journal_reflection"
	ModeWorkout    Mode = "workout_plan"
	ModeGoalAdd    Mode = "goal_add"
	ModeGoalsView  Mode = "goals_viewing"
)

// State carries the active mode plus exactly the payload that mode needs.
type State struct {
	Mode Mode

	// awaitScore, goalAdd
	Direction internal.Direction
	// goalAdd, goalsViewing
	Period internal.Period
	// workout plan progress
	PlanDays    int
	PlanDay     int
	PlanEntries []string
	// onboarding bulk goal titles
	GoalTitles []string

	EnteredAt time.Time
}

func newState(mode Mode) *State {
	return &State{Mode: mode, EnteredAt: time.Now()}
}

// Tracker owns the per-user conversation state. Each user has one slot
// guarded by its own mutex, so events for the same user serialize while
// different users proceed in parallel.
type Tracker struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	mu    sync.Mutex
	state *State
}

func NewTracker() *Tracker {
	return &Tracker{slots: make(map[string]*slot)}
}

func (t *Tracker) slotFor(userID string) *slot {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.slots[userID]
	if !ok {
		s = &slot{}
		t.slots[userID] = s
	}
	return s
}

// withUser runs fn holding the user's slot lock. fn receives the current
// state (nil when idle) and returns the state to keep (nil clears it).
func (t *Tracker) withUser(userID string, fn func(st *State) *State) {
	s := t.slotFor(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fn(s.state)
}

// Peek returns a copy of the user's current state, or nil when idle.
func (t *Tracker) Peek(userID string) *State {
	s := t.slotFor(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return nil
	}
	copied := *s.state
	return &copied
}
