package domain

type ProfileType string

const (
	// ProfileExam подготовка к экзамену
	ProfileExam ProfileType = "exam"
	// ProfileHabit построение привычки
	ProfileHabit ProfileType = "habit"
	// ProfileGeneral общий план занятий
	ProfileGeneral ProfileType = "general"
)

type OnboardingProfile struct {
	ID                     string
	ProfileType            ProfileType
	PrimaryGoal            string
	TargetDate             string
	ExamType               string
	Motivation             string
	StudyFocusAreas        []string
	DailyAvailableMinutes  int
	WeeklyAvailableMinutes int
	PreferredStudyTimes    string
	LearningStyle          string
	ReminderTime           string
	UpdatedAt              string
}

// AvailabilitySlot is one declared study window. Duplicates and overlaps are
// allowed; the backend decides what to do with them.
type AvailabilitySlot struct {
	ID        string
	DayOfWeek int
	StartTime string
	EndTime   string
	Intensity string
	Priority  string
}

type AIPlanGoal struct {
	Title             string
	Description       string
	SuggestedTimeline string
}

type AIPlanHabit struct {
	Name         string
	Frequency    string
	ReminderTime string
}

type AIPlanScheduleItem struct {
	Day             string
	Focus           string
	DurationMinutes int
}

// AIPlan is the optional machine-generated suggestion payload attached to a
// stored onboarding profile.
type AIPlan struct {
	Provider      string
	Summary       string
	Persona       string
	KeyFocus      []string
	Goals         []AIPlanGoal
	Habits        []AIPlanHabit
	Schedule      []AIPlanScheduleItem
	Encouragement string
	GeneratedAt   string
}

// OnboardingData is the stored onboarding state for a user.
type OnboardingData struct {
	Profile      OnboardingProfile
	Availability []AvailabilitySlot
	AIPlan       *AIPlan
}
