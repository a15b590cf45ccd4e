package content

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/codebycinar/lgs-yks-mobile-app/internal/domain"
	"github.com/codebycinar/lgs-yks-mobile-app/internal/pkg/serviceerrors"
)

// maxGoalTitleLen backend column limit; the title is derived from the
// description when the caller supplies none.
const maxGoalTitleLen = 120

type backendClient interface {
	Goals(ctx context.Context, status string) ([]domain.Goal, error)
	CreateGoal(ctx context.Context, title, description, targetDate string) (domain.Goal, error)
	UpdateGoal(ctx context.Context, id string, upd domain.GoalUpdate) (domain.Goal, error)
	CompleteGoal(ctx context.Context, id string) (domain.Goal, error)
	DeleteGoal(ctx context.Context, id string) error

	Programs(ctx context.Context) ([]domain.WeeklyProgram, error)
	CreateProgram(ctx context.Context, title, startDate, endDate string) (domain.WeeklyProgram, error)
	Program(ctx context.Context, id string) (domain.WeeklyProgram, error)
	DeleteProgram(ctx context.Context, id string) error
	AddTask(ctx context.Context, programID string, task domain.TaskInput) (domain.ProgramTask, error)
	UpdateTask(ctx context.Context, programID, taskID string, task domain.TaskInput) (domain.ProgramTask, error)
	CompleteTask(ctx context.Context, programID, taskID string) (domain.ProgramTask, error)
	DeleteTask(ctx context.Context, programID, taskID string) error

	Classes(ctx context.Context) ([]domain.Class, error)
	Subjects(ctx context.Context) ([]domain.Subject, error)
	Topics(ctx context.Context, classID string) ([]domain.Topic, error)
	TopicsForUser(ctx context.Context) ([]domain.Topic, error)
	MarkTopicProgress(ctx context.Context, topicID string, status domain.TopicStatus) error
	UserProgress(ctx context.Context) ([]domain.UserTopicProgress, error)
}

// Implementation is the thin layer the content screens talk to: goals, weekly
// programs and topic progress, all mirrors of server resources.
type Implementation struct {
	client   backendClient
	validate *validator.Validate
}

func NewImplementation(client backendClient) *Implementation {
	return &Implementation{
		client:   client,
		validate: validator.New(),
	}
}

func (i *Implementation) Goals(ctx context.Context, status string) ([]domain.Goal, error) {
	if status != "" {
		if err := i.validate.Var(status, "oneof=active completed"); err != nil {
			return nil, serviceerrors.NewValidation().Wrap(domain.ErrValidation, "unknown goal status filter")
		}
	}
	return i.client.Goals(ctx, status)
}

// CreateGoal derives the title from the leading part of the description.
func (i *Implementation) CreateGoal(ctx context.Context, description, targetDate string) (domain.Goal, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return domain.Goal{}, serviceerrors.NewValidation().Wrap(domain.ErrValidation, "description required")
	}

	// the limit is in bytes; back off to a rune boundary so Turkish goal
	// text never ends mid-rune
	title := description
	if len(title) > maxGoalTitleLen {
		cut := maxGoalTitleLen
		for cut > 0 && !utf8.RuneStart(title[cut]) {
			cut--
		}
		title = title[:cut]
	}

	return i.client.CreateGoal(ctx, title, description, targetDate)
}

func (i *Implementation) UpdateGoal(ctx context.Context, id string, upd domain.GoalUpdate) (domain.Goal, error) {
	return i.client.UpdateGoal(ctx, id, upd)
}

func (i *Implementation) CompleteGoal(ctx context.Context, id string) (domain.Goal, error) {
	return i.client.CompleteGoal(ctx, id)
}

func (i *Implementation) DeleteGoal(ctx context.Context, id string) error {
	return i.client.DeleteGoal(ctx, id)
}

func (i *Implementation) Programs(ctx context.Context) ([]domain.WeeklyProgram, error) {
	return i.client.Programs(ctx)
}

func (i *Implementation) CreateProgram(ctx context.Context, title, startDate, endDate string) (domain.WeeklyProgram, error) {
	if strings.TrimSpace(title) == "" {
		return domain.WeeklyProgram{}, serviceerrors.NewValidation().Wrap(domain.ErrValidation, "title required")
	}
	for _, date := range []string{startDate, endDate} {
		if err := i.validate.Var(date, "required,datetime=2006-01-02"); err != nil {
			return domain.WeeklyProgram{}, serviceerrors.NewValidation().Wrap(domain.ErrValidation, "dates must be YYYY-MM-DD")
		}
	}

	return i.client.CreateProgram(ctx, title, startDate, endDate)
}

func (i *Implementation) Program(ctx context.Context, id string) (domain.WeeklyProgram, error) {
	return i.client.Program(ctx, id)
}

func (i *Implementation) DeleteProgram(ctx context.Context, id string) error {
	return i.client.DeleteProgram(ctx, id)
}

func (i *Implementation) AddTask(ctx context.Context, programID string, task domain.TaskInput) (domain.ProgramTask, error) {
	if strings.TrimSpace(task.Title) == "" && strings.TrimSpace(task.Description) == "" {
		return domain.ProgramTask{}, serviceerrors.NewValidation().Wrap(domain.ErrValidation, "task text required")
	}
	return i.client.AddTask(ctx, programID, task)
}

func (i *Implementation) UpdateTask(ctx context.Context, programID, taskID string, task domain.TaskInput) (domain.ProgramTask, error) {
	return i.client.UpdateTask(ctx, programID, taskID, task)
}

func (i *Implementation) CompleteTask(ctx context.Context, programID, taskID string) (domain.ProgramTask, error) {
	return i.client.CompleteTask(ctx, programID, taskID)
}

func (i *Implementation) DeleteTask(ctx context.Context, programID, taskID string) error {
	return i.client.DeleteTask(ctx, programID, taskID)
}

func (i *Implementation) Classes(ctx context.Context) ([]domain.Class, error) {
	return i.client.Classes(ctx)
}

func (i *Implementation) Subjects(ctx context.Context) ([]domain.Subject, error) {
	return i.client.Subjects(ctx)
}

func (i *Implementation) Topics(ctx context.Context, classID string) ([]domain.Topic, error) {
	return i.client.Topics(ctx, classID)
}

func (i *Implementation) TopicsForUser(ctx context.Context) ([]domain.Topic, error) {
	return i.client.TopicsForUser(ctx)
}

func (i *Implementation) MarkTopicProgress(ctx context.Context, topicID string, status domain.TopicStatus) error {
	if err := i.validate.Var(string(status), "oneof=not_started in_progress learned needs_review"); err != nil {
		return serviceerrors.NewValidation().Wrap(domain.ErrValidation, "unknown topic status")
	}
	return i.client.MarkTopicProgress(ctx, topicID, status)
}

func (i *Implementation) UserProgress(ctx context.Context) ([]domain.UserTopicProgress, error) {
	return i.client.UserProgress(ctx)
}
