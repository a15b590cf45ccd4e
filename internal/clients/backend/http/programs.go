package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/codebycinar/lgs-yks-mobile-app/internal/domain"
	"github.com/codebycinar/lgs-yks-mobile-app/internal/pkg/serviceerrors"
)

type rawProgramTask struct {
	ID                   flexString  `json:"id"`
	WeeklyProgramIDSnake *flexString `json:"weekly_program_id"`
	WeeklyProgramID      *flexString `json:"weeklyProgramId"`
	Title                *string     `json:"title"`
	Description          *string     `json:"description"`
	TaskDateSnake        *string     `json:"task_date"`
	TaskDate             *string     `json:"taskDate"`
	IsCompletedSnake     *flexBool   `json:"is_completed"`
	IsCompleted          *flexBool   `json:"isCompleted"`
	CompletedAtSnake     *string     `json:"completed_at"`
	CompletedAt          *string     `json:"completedAt"`
	TopicIDSnake         *flexString `json:"topic_id"`
	TopicID              *flexString `json:"topicId"`
	TopicNameSnake       *string     `json:"topic_name"`
	TopicName            *string     `json:"topicName"`
	SubjectNameSnake     *string     `json:"subject_name"`
	SubjectName          *string     `json:"subjectName"`
	CreatedAtSnake       *string     `json:"created_at"`
	CreatedAt            *string     `json:"createdAt"`
}

func mapProgramTask(raw rawProgramTask) domain.ProgramTask {
	return domain.ProgramTask{
		ID:              string(raw.ID),
		WeeklyProgramID: pickID(raw.WeeklyProgramIDSnake, raw.WeeklyProgramID),
		Title:           pickString(raw.Title, raw.Description),
		Description:     pickString(raw.Description),
		TaskDate:        dateOnly(pickString(raw.TaskDateSnake, raw.TaskDate)),
		IsCompleted:     pickBool(raw.IsCompletedSnake, raw.IsCompleted),
		CompletedAt:     pickString(raw.CompletedAtSnake, raw.CompletedAt),
		TopicID:         pickID(raw.TopicIDSnake, raw.TopicID),
		TopicName:       pickString(raw.TopicNameSnake, raw.TopicName),
		SubjectName:     pickString(raw.SubjectNameSnake, raw.SubjectName),
		CreatedAt:       pickString(raw.CreatedAtSnake, raw.CreatedAt),
	}
}

type rawProgram struct {
	ID                  flexString       `json:"id"`
	Title               *string          `json:"title"`
	StartDateSnake      *string          `json:"start_date"`
	StartDate           *string          `json:"startDate"`
	EndDateSnake        *string          `json:"end_date"`
	EndDate             *string          `json:"endDate"`
	CreatedAtSnake      *string          `json:"created_at"`
	CreatedAt           *string          `json:"createdAt"`
	TotalTasksSnake     *flexInt         `json:"total_tasks"`
	TotalTasks          *flexInt         `json:"totalTasks"`
	CompletedTasksSnake *flexInt         `json:"completed_tasks"`
	CompletedTasks      *flexInt         `json:"completedTasks"`
	IsCurrentWeek       *flexBool        `json:"isCurrentWeek"`
	Tasks               []rawProgramTask `json:"tasks"`
}

// completionPercentage derives the rounded percent exactly, not through
// float division.
func completionPercentage(completed, total int) int {
	if total <= 0 {
		return 0
	}

	return int(decimal.NewFromInt(int64(completed)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart())
}

func mapProgram(raw rawProgram) domain.WeeklyProgram {
	total := pickInt(raw.TotalTasksSnake, raw.TotalTasks)
	completed := pickInt(raw.CompletedTasksSnake, raw.CompletedTasks)

	tasks := make([]domain.ProgramTask, 0, len(raw.Tasks))
	for _, t := range raw.Tasks {
		tasks = append(tasks, mapProgramTask(t))
	}

	return domain.WeeklyProgram{
		ID:                   string(raw.ID),
		Title:                pickString(raw.Title),
		StartDate:            dateOnly(pickString(raw.StartDateSnake, raw.StartDate)),
		EndDate:              dateOnly(pickString(raw.EndDateSnake, raw.EndDate)),
		CreatedAt:            pickString(raw.CreatedAtSnake, raw.CreatedAt),
		TotalTasks:           total,
		CompletedTasks:       completed,
		CompletionPercentage: completionPercentage(completed, total),
		IsCurrentWeek:        pickBool(raw.IsCurrentWeek),
		Tasks:                tasks,
	}
}

// Programs GET /programs — summaries without tasks.
func (c *Client) Programs(ctx context.Context) ([]domain.WeeklyProgram, error) {
	reqURL := c.serverURL.JoinPath("programs")

	data, err := c.send(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	var items []rawProgram
	if err = json.Unmarshal(data, &items); err != nil {
		return nil, serviceerrors.NewAppError(err)
	}

	programs := make([]domain.WeeklyProgram, 0, len(items))
	for _, item := range items {
		programs = append(programs, mapProgram(item))
	}

	return programs, nil
}

type createProgramRequest struct {
	Title     string `json:"title"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// CreateProgram POST /programs
func (c *Client) CreateProgram(ctx context.Context, title, startDate, endDate string) (domain.WeeklyProgram, error) {
	reqURL := c.serverURL.JoinPath("programs")

	data, err := c.send(ctx, http.MethodPost, reqURL, createProgramRequest{
		Title:     title,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return domain.WeeklyProgram{}, err
	}

	raw := new(rawProgram)
	if err = json.Unmarshal(data, raw); err != nil {
		return domain.WeeklyProgram{}, serviceerrors.NewAppError(err)
	}

	return mapProgram(*raw), nil
}

// Program GET /programs/{id} — detail including tasks.
func (c *Client) Program(ctx context.Context, id string) (domain.WeeklyProgram, error) {
	reqURL := c.serverURL.JoinPath("programs", id)

	data, err := c.send(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.WeeklyProgram{}, err
	}

	raw := new(rawProgram)
	if err = json.Unmarshal(data, raw); err != nil {
		return domain.WeeklyProgram{}, serviceerrors.NewAppError(err)
	}

	return mapProgram(*raw), nil
}

// DeleteProgram DELETE /programs/{id}
func (c *Client) DeleteProgram(ctx context.Context, id string) error {
	reqURL := c.serverURL.JoinPath("programs", id)

	_, err := c.send(ctx, http.MethodDelete, reqURL, nil)
	return err
}

type taskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	TaskDate    string  `json:"taskDate"`
	TopicID     *string `json:"topicId"`
}

func taskBody(task domain.TaskInput) taskRequest {
	body := taskRequest{
		Title:       task.Title,
		Description: task.Description,
		TaskDate:    task.TaskDate,
	}
	if task.TopicID != "" {
		body.TopicID = &task.TopicID
	}
	return body
}

// AddTask POST /programs/{id}/tasks
func (c *Client) AddTask(ctx context.Context, programID string, task domain.TaskInput) (domain.ProgramTask, error) {
	reqURL := c.serverURL.JoinPath("programs", programID, "tasks")

	data, err := c.send(ctx, http.MethodPost, reqURL, taskBody(task))
	if err != nil {
		return domain.ProgramTask{}, err
	}

	raw := new(rawProgramTask)
	if err = json.Unmarshal(data, raw); err != nil {
		return domain.ProgramTask{}, serviceerrors.NewAppError(err)
	}

	return mapProgramTask(*raw), nil
}

// UpdateTask PUT /programs/{id}/tasks/{taskId}
func (c *Client) UpdateTask(ctx context.Context, programID, taskID string, task domain.TaskInput) (domain.ProgramTask, error) {
	reqURL := c.serverURL.JoinPath("programs", programID, "tasks", taskID)

	data, err := c.send(ctx, http.MethodPut, reqURL, taskBody(task))
	if err != nil {
		return domain.ProgramTask{}, err
	}

	raw := new(rawProgramTask)
	if err = json.Unmarshal(data, raw); err != nil {
		return domain.ProgramTask{}, serviceerrors.NewAppError(err)
	}

	return mapProgramTask(*raw), nil
}

// CompleteTask PUT /programs/{id}/tasks/{taskId}/complete
func (c *Client) CompleteTask(ctx context.Context, programID, taskID string) (domain.ProgramTask, error) {
	reqURL := c.serverURL.JoinPath("programs", programID, "tasks", taskID, "complete")

	data, err := c.send(ctx, http.MethodPut, reqURL, nil)
	if err != nil {
		return domain.ProgramTask{}, err
	}

	raw := new(rawProgramTask)
	if err = json.Unmarshal(data, raw); err != nil {
		return domain.ProgramTask{}, serviceerrors.NewAppError(err)
	}

	return mapProgramTask(*raw), nil
}

// DeleteTask DELETE /programs/{id}/tasks/{taskId}
func (c *Client) DeleteTask(ctx context.Context, programID, taskID string) error {
	reqURL := c.serverURL.JoinPath("programs", programID, "tasks", taskID)

	_, err := c.send(ctx, http.MethodDelete, reqURL, nil)
	return err
}
