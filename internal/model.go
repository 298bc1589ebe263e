package internal

import "time"

// Direction is one of the six tracked personal-development dimensions.
type Direction string

const (
	DirectionPV Direction = "pv" // physical vitality
	DirectionCI Direction = "ci" // cognitive intelligence
	DirectionEI Direction = "ei" // emotional intelligence
	DirectionSI Direction = "si" // social intelligence
	DirectionAI Direction = "ai" // adaptive intelligence
	DirectionEX Direction = "ex" // existential awareness
)

// Directions lists all dimensions in display order.
var Directions = []Direction{
	DirectionPV, DirectionCI, DirectionEI, DirectionSI, DirectionAI, DirectionEX,
}

func ValidDirection(d Direction) bool {
	for _, v := range Directions {
		if v == d {
			return true
		}
	}
	return false
}

// Period scopes a goal to a day, week or month.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

func ValidPeriod(p Period) bool {
	return p == PeriodDay || p == PeriodWeek || p == PeriodMonth
}

// JournalType tags a journal entry.
type JournalType string

const (
	JournalEmotion    JournalType = "emotion"
	JournalReflection JournalType = "reflection"
	JournalWorkout    JournalType = "workout"
)

const (
	DimensionMin      = 0.1
	DimensionMax      = 10.0
	DimensionBaseline = 5.0
)

type User struct {
	ID         string                `json:"id"`
	Name       string                `json:"name,omitempty"`
	Age        int                   `json:"age,omitempty"`
	Gender     string                `json:"gender,omitempty"`
	Handle     string                `json:"handle,omitempty"`
	Onboarded  bool                  `json:"onboarded"`
	Level      int                   `json:"level"`
	Dimensions map[Direction]float64 `json:"dimensions"`
	CreatedAt  time.Time             `json:"created_at"`
}

// NewUser returns a user with baseline dimensions and level 1.
func NewUser(id string) *User {
	dims := make(map[Direction]float64, len(Directions))
	for _, d := range Directions {
		dims[d] = DimensionBaseline
	}
	return &User{
		ID:         id,
		Level:      1,
		Dimensions: dims,
		CreatedAt:  time.Now(),
	}
}

// UserPatch is a partial profile update; nil fields are left untouched.
type UserPatch struct {
	Name      *string
	Age       *int
	Gender    *string
	Handle    *string
	Onboarded *bool
}

func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.Gender != nil {
		u.Gender = *p.Gender
	}
	if p.Handle != nil {
		u.Handle = *p.Handle
	}
	if p.Onboarded != nil {
		u.Onboarded = *p.Onboarded
	}
}

// JournalEntry is append-only; entries older than the retention window are
// purged by a periodic sweep.
type JournalEntry struct {
	ID        int64       `json:"id"`
	UserID    string      `json:"user_id"`
	Type      JournalType `json:"type"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

type Goal struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Period    Period    `json:"period"`
	Direction Direction `json:"direction"`
	Title     string    `json:"title"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
}
