package chat

import (
	"strings"

	"github.com/RiseHunter/RiseHuntBot/internal"
	"github.com/RiseHunter/RiseHuntBot/internal/survey"
)

// ScreenID names a renderable screen. The renderer owns text and button
// layout; the machine only picks the screen and supplies its data.
type ScreenID string

const (
	ScreenMainMenu       ScreenID = "main_menu"
	ScreenProfile        ScreenID = "profile"
	ScreenJournalMenu    ScreenID = "journal_menu"
	ScreenJournalHistory ScreenID = "journal_history"
	ScreenJournalPrompt  ScreenID = "journal_prompt"
	ScreenTrainingMenu   ScreenID = "training_menu"
	ScreenPlanDay        ScreenID = "plan_day"
	ScreenSurveyMenu     ScreenID = "survey_menu"
	ScreenTestPrompt     ScreenID = "test_prompt"
	ScreenScoreSaved     ScreenID = "score_saved"
	ScreenLevelUp        ScreenID = "level_up"
	ScreenGoalsMenu      ScreenID = "goals_menu"
	ScreenGoalList       ScreenID = "goal_list"
	ScreenGoalDirections ScreenID = "goal_directions"
	ScreenGoalPrompt     ScreenID = "goal_prompt"
	ScreenEditName       ScreenID = "edit_name"
	ScreenRegName        ScreenID = "register_name"
	ScreenRegAge         ScreenID = "register_age"
	ScreenRegGender      ScreenID = "register_gender"
	ScreenRegHandle      ScreenID = "register_handle"
	ScreenRegGoals       ScreenID = "register_goals"
)

// Reply is the machine's answer to one inbound event.
type Reply struct {
	Screen  ScreenID     `json:"screen"`
	Data    interface{}  `json:"data,omitempty"`
	Notice  string       `json:"notice,omitempty"`
	LevelUp *LevelUpView `json:"level_up,omitempty"`
}

type CoreView struct {
	Body   float64 `json:"body"`
	Mind   float64 `json:"mind"`
	Spirit float64 `json:"spirit"`
}

type DimensionView struct {
	Tag   internal.Direction `json:"tag"`
	Name  string             `json:"name"`
	Emoji string             `json:"emoji"`
	Score float64            `json:"score"`
	Label string             `json:"label"`
	Bar   string             `json:"bar"`
}

type ProfileView struct {
	Name       string          `json:"name,omitempty"`
	Age        int             `json:"age,omitempty"`
	Gender     string          `json:"gender,omitempty"`
	Handle     string          `json:"handle,omitempty"`
	Level      int             `json:"level"`
	Cores      CoreView        `json:"cores"`
	Dimensions []DimensionView `json:"dimensions"`
	Warnings   []string        `json:"warnings,omitempty"`
}

type TestLinkView struct {
	Tag   internal.Direction `json:"tag"`
	Name  string             `json:"name"`
	Emoji string             `json:"emoji"`
	URL   string             `json:"url"`
	Score float64            `json:"score"`
	Label string             `json:"label"`
}

type SurveyMenuView struct {
	Tests []TestLinkView `json:"tests"`
}

type TestPromptView struct {
	Tag    internal.Direction `json:"tag"`
	Name   string             `json:"name"`
	Emoji  string             `json:"emoji"`
	URL    string             `json:"url"`
	RawMin float64            `json:"raw_min"`
	RawMax float64            `json:"raw_max"`
}

type ScoreSavedView struct {
	Tag   internal.Direction `json:"tag"`
	Name  string             `json:"name"`
	Score float64            `json:"score"`
	Label string             `json:"label"`
}

type LevelUpView struct {
	Level       int                `json:"level"`
	Tag         internal.Direction `json:"tag"`
	Name        string             `json:"name"`
	AdvancedURL string             `json:"advanced_url"`
}

type GoalListView struct {
	Period internal.Period `json:"period"`
	Goals  []internal.Goal `json:"goals"`
}

type GoalDirectionsView struct {
	Period     internal.Period      `json:"period"`
	Directions []internal.Direction `json:"directions"`
}

type PlanDayView struct {
	Day    int    `json:"day"`
	Days   int    `json:"days"`
	Phrase string `json:"phrase,omitempty"`
}

type JournalHistoryView struct {
	Entries []internal.JournalEntry `json:"entries"`
}

type JournalPromptView struct {
	Type internal.JournalType `json:"type"`
}

// JournalSavedView reports the dimension nudge rewarded for an entry.
type JournalSavedView struct {
	Type      internal.JournalType `json:"type"`
	Direction internal.Direction   `json:"direction,omitempty"`
	Score     float64              `json:"score,omitempty"`
}

type RegGoalsView struct {
	Count int `json:"count"`
}

// progressBar renders the classic ten-segment bar shown next to each
// dimension on the profile screen.
func progressBar(v float64) string {
	filled := int(v)
	if filled > 10 {
		filled = 10
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

const warnBelow = 6.0

func buildProfileView(u *internal.User, reg *survey.Registry) ProfileView {
	pv := u.Dimensions[internal.DirectionPV]
	ci := u.Dimensions[internal.DirectionCI]
	ei := u.Dimensions[internal.DirectionEI]
	si := u.Dimensions[internal.DirectionSI]
	ai := u.Dimensions[internal.DirectionAI]
	ex := u.Dimensions[internal.DirectionEX]

	view := ProfileView{
		Name:   u.Name,
		Age:    u.Age,
		Gender: u.Gender,
		Handle: u.Handle,
		Level:  u.Level,
		Cores: CoreView{
			Body:   pv,
			Mind:   (ci + ei + si) / 3,
			Spirit: (ai + ex) / 2,
		},
	}
	for _, def := range reg.All() {
		score := u.Dimensions[def.Tag]
		view.Dimensions = append(view.Dimensions, DimensionView{
			Tag:   def.Tag,
			Name:  def.Name,
			Emoji: def.Emoji,
			Score: score,
			Label: def.Label(score),
			Bar:   progressBar(score),
		})
	}
	if pv < warnBelow {
		view.Warnings = append(view.Warnings, "Physical vitality needs attention")
	}
	if ei < warnBelow {
		view.Warnings = append(view.Warnings, "Emotional intelligence needs attention")
	}
	return view
}

// Day acknowledgements for the workout-plan flow.
var supportPhrases = []string{
	"Wow, solid choice! 💪",
	"Now that's a workout! 🔥",
	"Great plan, keep going! 🚀",
	"Nice, this will work! 👏",
	"That's going to be fire! ⚡",
}
