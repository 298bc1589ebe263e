package chat

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/RiseHunter/RiseHuntBot/internal"
	"github.com/RiseHunter/RiseHuntBot/internal/progress"
	"github.com/RiseHunter/RiseHuntBot/internal/storage"
	"github.com/RiseHunter/RiseHuntBot/internal/survey"
)

// Command is a button press: an opaque token plus the pressing user.
type Command struct {
	UserID    string
	Token     string
	MessageID string
}

// Message is a free-text message. Only meaningful while a mode is active.
type Message struct {
	UserID string
	Text   string
}

const (
	noticeUseMenu        = "Use the menu buttons to get around."
	noticeUseButtons     = "Pick one of the buttons."
	noticeTryAgain       = "Something went wrong, try again."
	noticeReset          = "Conversation reset."
	noticeSaved          = "Saved!"
	noticeNotFound       = "Not found."
	noticeAlreadyDone    = "Already done."
	noticeNotDone        = "This goal is not completed yet."
	noticeAcceptedAnyway = "Your entry was accepted (kept in memory)."
	noticeBadName        = "Please send a name up to 100 characters."
	noticeBadAge         = "Age must be a whole number between 5 and 120."
	noticeBadHandle      = "Handles look like @name: 3-64 letters, digits or underscores."
	noticeBadTitle       = "Goal titles can be up to 200 characters."
	noticeTitlesFull     = "That's enough goals for now, press Done."
	noticeBadScore       = "Send the test result as a number."
	noticeWelcome        = "You're all set. Welcome aboard!"
)

const (
	maxNameLen   = 100
	maxTitleLen  = 200
	maxRegGoals  = 10
	minAge       = 5
	maxAge       = 120
	planMinDays  = 2
	planMaxDays  = 5
	timestampFmt = "2006-01-02 15:04"
)

// Machine dispatches inbound events against each user's conversation state.
type Machine struct {
	store   storage.Store
	tests   *survey.Registry
	tracker *Tracker
	logger  internal.Logger
}

func NewMachine(store storage.Store, tests *survey.Registry, logger internal.Logger) *Machine {
	return &Machine{
		store:   store,
		tests:   tests,
		tracker: NewTracker(),
		logger:  logger,
	}
}

// Tracker exposes the state tracker, mainly for tests and diagnostics.
func (m *Machine) Tracker() *Tracker { return m.tracker }

// dispatch runs fn under the user's slot lock. Panics and programming errors
// never escape the event loop: they are logged and answered with a generic
// failure, leaving the user's state untouched.
func (m *Machine) dispatch(userID string, fn func(st *State) (*State, Reply)) (reply Reply) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Errorf("chat: recovered handling event for user %s: %v", userID, r)
			reply = Reply{Screen: ScreenMainMenu, Notice: noticeTryAgain}
		}
	}()
	m.tracker.withUser(userID, func(st *State) *State {
		next, rep := fn(st)
		reply = rep
		return next
	})
	return reply
}

// HandleCommand processes a button press.
func (m *Machine) HandleCommand(ctx context.Context, cmd Command) Reply {
	return m.dispatch(cmd.UserID, func(st *State) (*State, Reply) {
		return m.handleCommand(ctx, cmd, st)
	})
}

// HandleText processes a free-text message according to the active mode.
func (m *Machine) HandleText(ctx context.Context, msg Message) Reply {
	return m.dispatch(msg.UserID, func(st *State) (*State, Reply) {
		return m.handleText(ctx, msg, st)
	})
}

func (m *Machine) handleCommand(ctx context.Context, cmd Command, st *State) (*State, Reply) {
	token := cmd.Token
	userID := cmd.UserID

	switch token {
	case "start":
		user, err := m.store.GetUser(ctx, userID)
		if err != nil {
			m.logger.Errorf("chat: start failed for %s: %v", userID, err)
			return st, Reply{Screen: ScreenMainMenu, Notice: noticeTryAgain}
		}
		if !user.Onboarded {
			return newState(ModeRegName), Reply{Screen: ScreenRegName}
		}
		return nil, Reply{Screen: ScreenMainMenu}

	case "main_menu":
		return nil, Reply{Screen: ScreenMainMenu}

	case "reset":
		return nil, Reply{Screen: ScreenMainMenu, Notice: noticeReset}

	case "profile":
		user, err := m.store.GetUser(ctx, userID)
		if err != nil {
			return st, Reply{Screen: ScreenMainMenu, Notice: noticeTryAgain}
		}
		return st, Reply{Screen: ScreenProfile, Data: buildProfileView(user, m.tests)}

	case "profile_edit_name":
		return newState(ModeEditName), Reply{Screen: ScreenEditName}

	case "journal":
		return st, Reply{Screen: ScreenJournalMenu}

	case "journal_emotion":
		return newState(ModeEmotion), Reply{Screen: ScreenJournalPrompt, Data: JournalPromptView{Type: internal.JournalEmotion}}

	case "journal_reflection":
		return newState(ModeReflection), Reply{Screen: ScreenJournalPrompt, Data: JournalPromptView{Type: internal.JournalReflection}}

	case "journal_workout":
		return st, Reply{Screen: ScreenTrainingMenu}

	case "journal_history":
		entries, err := m.store.GetRecentJournal(ctx, userID, 30, 20)
		if err != nil {
			return st, Reply{Screen: ScreenJournalMenu, Notice: noticeTryAgain}
		}
		return st, Reply{Screen: ScreenJournalHistory, Data: JournalHistoryView{Entries: entries}}

	case "survey":
		user, err := m.store.GetUser(ctx, userID)
		if err != nil {
			return st, Reply{Screen: ScreenMainMenu, Notice: noticeTryAgain}
		}
		view := SurveyMenuView{}
		for _, def := range m.tests.All() {
			score := user.Dimensions[def.Tag]
			view.Tests = append(view.Tests, TestLinkView{
				Tag:   def.Tag,
				Name:  def.Name,
				Emoji: def.Emoji,
				URL:   def.URL(user.Level),
				Score: score,
				Label: def.Label(score),
			})
		}
		return st, Reply{Screen: ScreenSurveyMenu, Data: view}

	case "goals":
		return st, Reply{Screen: ScreenGoalsMenu}

	case "goal_add":
		if st == nil || st.Mode != ModeGoalsView {
			return st, Reply{Screen: ScreenGoalsMenu, Notice: noticeUseMenu}
		}
		return st, Reply{Screen: ScreenGoalDirections, Data: GoalDirectionsView{
			Period:     st.Period,
			Directions: internal.Directions,
		}}

	case "skip":
		return m.handleSkip(ctx, userID, st)

	case "reg_goals_done":
		return m.finishRegGoals(ctx, userID, st)
	}

	if rest, ok := strings.CutPrefix(token, "training_"); ok {
		days, err := strconv.Atoi(rest)
		if err != nil || days < planMinDays || days > planMaxDays {
			return st, Reply{Screen: ScreenTrainingMenu, Notice: noticeUseButtons}
		}
		next := newState(ModeWorkout)
		next.PlanDays = days
		next.PlanDay = 1
		return next, Reply{Screen: ScreenPlanDay, Data: PlanDayView{Day: 1, Days: days}}
	}

	if rest, ok := strings.CutPrefix(token, "survey_"); ok {
		dir := internal.Direction(rest)
		def, found := m.tests.Get(dir)
		if !found {
			return st, Reply{Screen: ScreenSurveyMenu, Notice: noticeUseButtons}
		}
		user, err := m.store.GetUser(ctx, userID)
		if err != nil {
			return st, Reply{Screen: ScreenSurveyMenu, Notice: noticeTryAgain}
		}
		next := newState(ModeAwaitScore)
		next.Direction = dir
		return next, Reply{Screen: ScreenTestPrompt, Data: TestPromptView{
			Tag:    def.Tag,
			Name:   def.Name,
			Emoji:  def.Emoji,
			URL:    def.URL(user.Level),
			RawMin: def.RawMin,
			RawMax: def.RawMax,
		}}
	}

	if rest, ok := strings.CutPrefix(token, "gender_"); ok {
		return m.handleGender(ctx, userID, st, rest)
	}

	if rest, ok := strings.CutPrefix(token, "goals_"); ok {
		period := internal.Period(rest)
		if !internal.ValidPeriod(period) {
			return st, Reply{Screen: ScreenGoalsMenu, Notice: noticeUseButtons}
		}
		next := newState(ModeGoalsView)
		next.Period = period
		return next, m.goalListReply(ctx, userID, period, "")
	}

	if rest, ok := strings.CutPrefix(token, "goal_dir_"); ok {
		if st == nil || st.Mode != ModeGoalsView {
			return st, Reply{Screen: ScreenGoalsMenu, Notice: noticeUseMenu}
		}
		dir := internal.Direction(rest)
		if !internal.ValidDirection(dir) {
			return st, Reply{Screen: ScreenGoalDirections, Notice: noticeUseButtons, Data: GoalDirectionsView{Period: st.Period, Directions: internal.Directions}}
		}
		next := newState(ModeGoalAdd)
		next.Period = st.Period
		next.Direction = dir
		return next, Reply{Screen: ScreenGoalPrompt}

	}

	if rest, ok := strings.CutPrefix(token, "goal_done_"); ok {
		return m.handleGoalAction(ctx, userID, st, rest, goalActionComplete)
	}
	if rest, ok := strings.CutPrefix(token, "goal_undo_"); ok {
		return m.handleGoalAction(ctx, userID, st, rest, goalActionUndo)
	}
	if rest, ok := strings.CutPrefix(token, "goal_del_"); ok {
		return m.handleGoalAction(ctx, userID, st, rest, goalActionDelete)
	}

	m.logger.Warnf("chat: unknown command token %q from user %s", token, userID)
	return st, Reply{Screen: ScreenMainMenu, Notice: noticeUseMenu}
}

func (m *Machine) handleSkip(ctx context.Context, userID string, st *State) (*State, Reply) {
	if st == nil {
		return nil, Reply{Screen: ScreenMainMenu, Notice: noticeUseMenu}
	}
	switch st.Mode {
	case ModeRegAge:
		return newState(ModeRegGender), Reply{Screen: ScreenRegGender}
	case ModeRegHandle:
		return m.finishRegistration(ctx, userID)
	default:
		return st, Reply{Screen: ScreenMainMenu, Notice: noticeUseMenu}
	}
}

func (m *Machine) handleGender(ctx context.Context, userID string, st *State, value string) (*State, Reply) {
	if st == nil || st.Mode != ModeRegGender {
		return st, Reply{Screen: ScreenMainMenu, Notice: noticeUseMenu}
	}
	switch value {
	case "female", "male", "other":
	default:
		return st, Reply{Screen: ScreenRegGender, Notice: noticeUseButtons}
	}
	if err := m.store.UpdateUserFields(ctx, userID, internal.UserPatch{Gender: &value}); err != nil {
		m.logger.Errorf("chat: gender update failed for %s: %v", userID, err)
		return st, Reply{Screen: ScreenRegGender, Notice: noticeTryAgain}
	}
	return newState(ModeRegHandle), Reply{Screen: ScreenRegHandle}
}

// finishRegistration marks the profile onboarded and moves into bulk goal
// collection.
func (m *Machine) finishRegistration(ctx context.Context, userID string) (*State, Reply) {
	onboarded := true
	if err := m.store.UpdateUserFields(ctx, userID, internal.UserPatch{Onboarded: &onboarded}); err != nil {
		m.logger.Errorf("chat: onboarding flag failed for %s: %v", userID, err)
		return newState(ModeRegHandle), Reply{Screen: ScreenRegHandle, Notice: noticeTryAgain}
	}
	return newState(ModeRegGoals), Reply{Screen: ScreenRegGoals, Data: RegGoalsView{Count: 0}}
}

func (m *Machine) finishRegGoals(ctx context.Context, userID string, st *State) (*State, Reply) {
	if st == nil || st.Mode != ModeRegGoals {
		return st, Reply{Screen: ScreenMainMenu, Notice: noticeUseMenu}
	}
	for _, title := range st.GoalTitles {
		if _, err := m.store.AddGoal(ctx, userID, internal.PeriodWeek, internal.DirectionPV, title); err != nil {
			m.logger.Errorf("chat: onboarding goal save failed for %s: %v", userID, err)
			return st, Reply{Screen: ScreenRegGoals, Notice: noticeTryAgain, Data: RegGoalsView{Count: len(st.GoalTitles)}}
		}
	}
	return nil, Reply{Screen: ScreenMainMenu, Notice: noticeWelcome}
}

type goalAction int

const (
	goalActionComplete goalAction = iota
	goalActionUndo
	goalActionDelete
)

// handleGoalAction re-fetches the goal, checks ownership, then applies the
// requested action and re-renders the owning period's list.
func (m *Machine) handleGoalAction(ctx context.Context, userID string, st *State, rawID string, action goalAction) (*State, Reply) {
	period := internal.PeriodWeek
	if st != nil && st.Mode == ModeGoalsView {
		period = st.Period
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return st, m.goalListReply(ctx, userID, period, noticeNotFound)
	}

	goal, err := m.store.GetGoal(ctx, id)
	if err != nil || goal.UserID != userID {
		if err != nil && !errors.Is(err, internal.ErrNotFound) {
			m.logger.Errorf("chat: goal fetch failed for %s: %v", userID, err)
			return st, m.goalListReply(ctx, userID, period, noticeTryAgain)
		}
		return st, m.goalListReply(ctx, userID, period, noticeNotFound)
	}

	// Re-render against the goal's own period so the action is visible even
	// when no viewing context was active.
	next := newState(ModeGoalsView)
	next.Period = goal.Period

	switch action {
	case goalActionComplete:
		res, err := progress.CompleteGoal(ctx, m.store, goal)
		switch {
		case errors.Is(err, internal.ErrAlreadyDone):
			return next, m.goalListReply(ctx, userID, goal.Period, noticeAlreadyDone)
		case err != nil:
			m.logger.Errorf("chat: goal complete failed for %s: %v", userID, err)
			return st, m.goalListReply(ctx, userID, goal.Period, noticeTryAgain)
		}
		reply := m.goalListReply(ctx, userID, goal.Period, noticeSaved)
		if res.LeveledUp {
			reply.LevelUp = m.levelUpView(res)
		}
		return next, reply

	case goalActionUndo:
		_, err := progress.UndoGoal(ctx, m.store, goal)
		switch {
		case errors.Is(err, internal.ErrAlreadyDone):
			return next, m.goalListReply(ctx, userID, goal.Period, noticeNotDone)
		case err != nil:
			m.logger.Errorf("chat: goal undo failed for %s: %v", userID, err)
			return st, m.goalListReply(ctx, userID, goal.Period, noticeTryAgain)
		}
		return next, m.goalListReply(ctx, userID, goal.Period, noticeSaved)

	default: // delete
		if err := m.store.DeleteGoal(ctx, goal.ID); err != nil {
			if errors.Is(err, internal.ErrNotFound) {
				return next, m.goalListReply(ctx, userID, goal.Period, noticeNotFound)
			}
			m.logger.Errorf("chat: goal delete failed for %s: %v", userID, err)
			return st, m.goalListReply(ctx, userID, goal.Period, noticeTryAgain)
		}
		return next, m.goalListReply(ctx, userID, goal.Period, noticeSaved)
	}
}

func (m *Machine) goalListReply(ctx context.Context, userID string, period internal.Period, notice string) Reply {
	goals, err := m.store.GetGoals(ctx, userID, period)
	if err != nil {
		m.logger.Errorf("chat: goal list failed for %s: %v", userID, err)
		return Reply{Screen: ScreenGoalsMenu, Notice: noticeTryAgain}
	}
	return Reply{Screen: ScreenGoalList, Notice: notice, Data: GoalListView{Period: period, Goals: goals}}
}

func (m *Machine) levelUpView(res progress.Result) *LevelUpView {
	view := &LevelUpView{Level: res.NewLevel, Tag: res.Direction}
	if def, ok := m.tests.Get(res.Direction); ok {
		view.Name = def.Name
		view.AdvancedURL = def.AdvancedURL
	}
	return view
}

func (m *Machine) handleText(ctx context.Context, msg Message, st *State) (*State, Reply) {
	text := strings.TrimSpace(msg.Text)
	userID := msg.UserID

	if st == nil {
		return nil, Reply{Screen: ScreenMainMenu, Notice: noticeUseMenu}
	}

	switch st.Mode {
	case ModeRegName:
		if text == "" || len([]rune(text)) > maxNameLen {
			return st, Reply{Screen: ScreenRegName, Notice: noticeBadName}
		}
		if err := m.store.UpdateUserFields(ctx, userID, internal.UserPatch{Name: &text}); err != nil {
			m.logger.Errorf("chat: name update failed for %s: %v", userID, err)
			return st, Reply{Screen: ScreenRegName, Notice: noticeTryAgain}
		}
		return newState(ModeRegAge), Reply{Screen: ScreenRegAge}

	case ModeRegAge:
		age, err := strconv.Atoi(text)
		if err != nil || age < minAge || age > maxAge {
			return st, Reply{Screen: ScreenRegAge, Notice: noticeBadAge}
		}
		if err := m.store.UpdateUserFields(ctx, userID, internal.UserPatch{Age: &age}); err != nil {
			m.logger.Errorf("chat: age update failed for %s: %v", userID, err)
			return st, Reply{Screen: ScreenRegAge, Notice: noticeTryAgain}
		}
		return newState(ModeRegGender), Reply{Screen: ScreenRegGender}

	case ModeRegGender:
		// Gender is button-only.
		return st, Reply{Screen: ScreenRegGender, Notice: noticeUseButtons}

	case ModeRegHandle:
		handle, ok := normalizeHandle(text)
		if !ok {
			return st, Reply{Screen: ScreenRegHandle, Notice: noticeBadHandle}
		}
		if err := m.store.UpdateUserFields(ctx, userID, internal.UserPatch{Handle: &handle}); err != nil {
			m.logger.Errorf("chat: handle update failed for %s: %v", userID, err)
			return st, Reply{Screen: ScreenRegHandle, Notice: noticeTryAgain}
		}
		return m.finishRegistration(ctx, userID)

	case ModeRegGoals:
		if text == "" || len([]rune(text)) > maxTitleLen {
			return st, Reply{Screen: ScreenRegGoals, Notice: noticeBadTitle, Data: RegGoalsView{Count: len(st.GoalTitles)}}
		}
		if len(st.GoalTitles) >= maxRegGoals {
			return st, Reply{Screen: ScreenRegGoals, Notice: noticeTitlesFull, Data: RegGoalsView{Count: len(st.GoalTitles)}}
		}
		st.GoalTitles = append(st.GoalTitles, text)
		return st, Reply{Screen: ScreenRegGoals, Data: RegGoalsView{Count: len(st.GoalTitles)}}

	case ModeEditName:
		if text == "" || len([]rune(text)) > maxNameLen {
			return st, Reply{Screen: ScreenEditName, Notice: noticeBadName}
		}
		if err := m.store.UpdateUserFields(ctx, userID, internal.UserPatch{Name: &text}); err != nil {
			m.logger.Errorf("chat: name edit failed for %s: %v", userID, err)
			return st, Reply{Screen: ScreenEditName, Notice: noticeTryAgain}
		}
		user, err := m.store.GetUser(ctx, userID)
		if err != nil {
			return nil, Reply{Screen: ScreenMainMenu, Notice: noticeSaved}
		}
		return nil, Reply{Screen: ScreenProfile, Notice: noticeSaved, Data: buildProfileView(user, m.tests)}

	case ModeAwaitScore:
		return m.handleScoreText(ctx, userID, st, text)

	case ModeEmotion:
		return m.saveJournalText(ctx, userID, internal.JournalEmotion, text)

	case ModeReflection:
		return m.saveJournalText(ctx, userID, internal.JournalReflection, text)

	case ModeWorkout:
		return m.handlePlanText(ctx, userID, st, text)

	case ModeGoalAdd:
		if text == "" || len([]rune(text)) > maxTitleLen {
			return st, Reply{Screen: ScreenGoalPrompt, Notice: noticeBadTitle}
		}
		if _, err := m.store.AddGoal(ctx, userID, st.Period, st.Direction, text); err != nil {
			m.logger.Errorf("chat: goal add failed for %s: %v", userID, err)
			return st, Reply{Screen: ScreenGoalPrompt, Notice: noticeTryAgain}
		}
		next := newState(ModeGoalsView)
		next.Period = st.Period
		return next, m.goalListReply(ctx, userID, st.Period, noticeSaved)

	case ModeGoalsView:
		return st, m.goalListReply(ctx, userID, st.Period, noticeUseButtons)
	}

	// Unknown mode tags cannot be produced by this package; treat as idle.
	m.logger.Warnf("chat: unexpected mode %q for user %s", st.Mode, userID)
	return nil, Reply{Screen: ScreenMainMenu, Notice: noticeUseMenu}
}

func (m *Machine) handleScoreText(ctx context.Context, userID string, st *State, text string) (*State, Reply) {
	def, ok := m.tests.Get(st.Direction)
	if !ok {
		m.logger.Errorf("chat: pending score for unknown dimension %q", st.Direction)
		return nil, Reply{Screen: ScreenMainMenu, Notice: noticeTryAgain}
	}
	prompt := func(notice string) Reply {
		url := def.BasicURL
		if user, err := m.store.GetUser(ctx, userID); err == nil {
			url = def.URL(user.Level)
		}
		return Reply{Screen: ScreenTestPrompt, Notice: notice, Data: TestPromptView{
			Tag:    def.Tag,
			Name:   def.Name,
			Emoji:  def.Emoji,
			URL:    url,
			RawMin: def.RawMin,
			RawMax: def.RawMax,
		}}
	}

	raw, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64)
	if err != nil {
		return st, prompt(noticeBadScore)
	}
	score, err := def.Normalize(raw)
	switch {
	case errors.Is(err, internal.ErrOutOfRange):
		return st, prompt(fmt.Sprintf("The %s test scores range from %.0f to %.0f.", def.Name, def.RawMin, def.RawMax))
	case err != nil:
		return st, prompt(noticeBadScore)
	}

	res, err := progress.ApplyScore(ctx, m.store, userID, st.Direction, score)
	if err != nil {
		// Keep the mode so the user can retry the submission.
		m.logger.Errorf("chat: score apply failed for %s: %v", userID, err)
		return st, prompt(noticeTryAgain)
	}

	reply := Reply{Screen: ScreenScoreSaved, Data: ScoreSavedView{
		Tag:   def.Tag,
		Name:  def.Name,
		Score: res.Stored,
		Label: def.Label(res.Stored),
	}}
	if res.LeveledUp {
		reply.LevelUp = m.levelUpView(res)
	}
	return nil, reply
}

func (m *Machine) saveJournalText(ctx context.Context, userID string, typ internal.JournalType, text string) (*State, Reply) {
	if text == "" {
		screen := ScreenJournalPrompt
		return newStateForJournal(typ), Reply{Screen: screen, Notice: noticeUseMenu, Data: JournalPromptView{Type: typ}}
	}
	content := "[" + time.Now().Format(timestampFmt) + "] " + text
	if _, err := m.store.SaveJournalEntry(ctx, userID, typ, content); err != nil {
		// Degraded mode: the entry is acknowledged even though persistence
		// failed, matching the bot's best-effort journal behavior. No nudge
		// is rewarded for an unsaved entry.
		m.logger.Errorf("chat: journal save failed for %s: %v", userID, err)
		return nil, Reply{Screen: ScreenJournalMenu, Notice: noticeAcceptedAnyway}
	}

	reply := Reply{Screen: ScreenJournalMenu, Notice: noticeSaved}
	if dir, delta, ok := progress.JournalDelta(typ); ok {
		stored, err := progress.ApplyNudge(ctx, m.store, userID, dir, delta)
		if err != nil {
			m.logger.Errorf("chat: journal nudge failed for %s: %v", userID, err)
		} else {
			reply.Data = JournalSavedView{Type: typ, Direction: dir, Score: stored}
		}
	}
	return nil, reply
}

func newStateForJournal(typ internal.JournalType) *State {
	if typ == internal.JournalReflection {
		return newState(ModeReflection)
	}
	return newState(ModeEmotion)
}

func (m *Machine) handlePlanText(ctx context.Context, userID string, st *State, text string) (*State, Reply) {
	if text == "" {
		return st, Reply{Screen: ScreenPlanDay, Notice: noticeUseMenu, Data: PlanDayView{Day: st.PlanDay, Days: st.PlanDays}}
	}
	st.PlanEntries = append(st.PlanEntries, fmt.Sprintf("Day %d: %s", st.PlanDay, text))

	if st.PlanDay < st.PlanDays {
		st.PlanDay++
		return st, Reply{Screen: ScreenPlanDay, Data: PlanDayView{
			Day:    st.PlanDay,
			Days:   st.PlanDays,
			Phrase: supportPhrases[rand.Intn(len(supportPhrases))],
		}}
	}

	content := "[" + time.Now().Format(timestampFmt) + "]\n" + strings.Join(st.PlanEntries, "\n")
	if _, err := m.store.SaveJournalEntry(ctx, userID, internal.JournalWorkout, content); err != nil {
		m.logger.Errorf("chat: workout plan save failed for %s: %v", userID, err)
		return nil, Reply{Screen: ScreenJournalMenu, Notice: noticeAcceptedAnyway}
	}
	return nil, Reply{Screen: ScreenJournalMenu, Notice: supportPhrases[rand.Intn(len(supportPhrases))] + " Plan saved!"}
}

func normalizeHandle(text string) (string, bool) {
	h := strings.TrimPrefix(strings.TrimSpace(text), "@")
	if len(h) < 3 || len(h) > 64 {
		return "", false
	}
	for _, c := range h {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		default:
			return "", false
		}
	}
	return h, true
}
