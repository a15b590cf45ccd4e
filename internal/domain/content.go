package domain

type Goal struct {
	ID            string
	Title         string
	Description   string
	TargetDate    string
	IsCompleted   bool
	CompletedAt   string
	CreatedAt     string
	IsOverdue     bool
	DaysRemaining *int
}

// GoalUpdate carries a partial update; nil fields are left untouched.
type GoalUpdate struct {
	Title       *string
	Description *string
	TargetDate  *string
}

type WeeklyProgram struct {
	ID                   string
	Title                string
	StartDate            string
	EndDate              string
	CreatedAt            string
	TotalTasks           int
	CompletedTasks       int
	CompletionPercentage int
	IsCurrentWeek        bool
	Tasks                []ProgramTask
}

type ProgramTask struct {
	ID              string
	WeeklyProgramID string
	Title           string
	Description     string
	TaskDate        string
	IsCompleted     bool
	CompletedAt     string
	TopicID         string
	TopicName       string
	SubjectName     string
	CreatedAt       string
}

// TaskInput is the payload for creating or updating a program task.
type TaskInput struct {
	Title       string
	Description string
	TaskDate    string
	TopicID     string
}

type Class struct {
	ID            string
	Name          string
	MinClassLevel int
	MaxClassLevel int
	ExamID        string
	ExamName      string
	IsActive      bool
}

type Subject struct {
	ID         string
	Name       string
	OrderIndex int
	IsActive   bool
}

type Topic struct {
	ID          string
	Name        string
	SubjectID   string
	SubjectName string
	ClassID     string
	ClassName   string
	ParentID    string
	ParentName  string
	OrderIndex  int
	IsActive    bool
}

type TopicStatus string

const (
	TopicNotStarted  TopicStatus = "not_started"
	TopicInProgress  TopicStatus = "in_progress"
	TopicLearned     TopicStatus = "learned"
	TopicNeedsReview TopicStatus = "needs_review"
)

type UserTopicProgress struct {
	TopicID   string
	Status    TopicStatus
	UpdatedAt string
}
