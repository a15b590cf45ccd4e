package http

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/codebycinar/lgs-yks-mobile-app/internal/domain"
	"github.com/codebycinar/lgs-yks-mobile-app/internal/pkg/serviceerrors"
)

type rawGoal struct {
	ID               flexString `json:"id"`
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	TargetDateSnake  *string    `json:"target_date"`
	TargetDate       *string    `json:"targetDate"`
	IsCompletedSnake *flexBool  `json:"is_completed"`
	IsCompleted      *flexBool  `json:"isCompleted"`
	CompletedAtSnake *string    `json:"completed_at"`
	CompletedAt      *string    `json:"completedAt"`
	CreatedAtSnake   *string    `json:"created_at"`
	CreatedAt        *string    `json:"createdAt"`
	IsOverdue        *flexBool  `json:"isOverdue"`
	DaysRemaining    *flexInt   `json:"daysRemaining"`
}

func (c *Client) mapGoal(raw rawGoal) domain.Goal {
	targetDate := dateOnly(pickString(raw.TargetDateSnake, raw.TargetDate))
	completed := pickBool(raw.IsCompletedSnake, raw.IsCompleted)

	// server-provided derivations win; otherwise derive from today's midnight
	var daysRemaining *int
	if raw.DaysRemaining != nil {
		d := int(*raw.DaysRemaining)
		daysRemaining = &d
	} else if targetDate != "" {
		if t, err := time.Parse("2006-01-02", targetDate); err == nil {
			now := c.now()
			midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
			d := int(math.Ceil(t.Sub(midnight).Hours() / 24))
			daysRemaining = &d
		}
	}

	overdue := false
	if raw.IsOverdue != nil {
		overdue = bool(*raw.IsOverdue)
	} else if targetDate != "" && !completed && daysRemaining != nil {
		overdue = *daysRemaining < 0
	}

	title := pickString(raw.Title, raw.Description)

	return domain.Goal{
		ID:            string(raw.ID),
		Title:         title,
		Description:   pickString(raw.Description),
		TargetDate:    targetDate,
		IsCompleted:   completed,
		CompletedAt:   pickString(raw.CompletedAtSnake, raw.CompletedAt),
		CreatedAt:     pickString(raw.CreatedAtSnake, raw.CreatedAt),
		IsOverdue:     overdue,
		DaysRemaining: daysRemaining,
	}
}

// Goals GET /goals, optionally filtered by status ("active" or "completed").
func (c *Client) Goals(ctx context.Context, status string) ([]domain.Goal, error) {
	reqURL := c.serverURL.JoinPath("goals")
	if status != "" {
		reqURL.RawQuery = url.Values{"status": {status}}.Encode()
	}

	data, err := c.send(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	var items []rawGoal
	if err = json.Unmarshal(data, &items); err != nil {
		return nil, serviceerrors.NewAppError(err)
	}

	goals := make([]domain.Goal, 0, len(items))
	for _, item := range items {
		goals = append(goals, c.mapGoal(item))
	}

	return goals, nil
}

type createGoalRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	TargetDate  *string `json:"targetDate"`
}

// CreateGoal POST /goals
func (c *Client) CreateGoal(ctx context.Context, title, description, targetDate string) (domain.Goal, error) {
	reqURL := c.serverURL.JoinPath("goals")

	body := createGoalRequest{Title: title, Description: description}
	if targetDate != "" {
		body.TargetDate = &targetDate
	}

	data, err := c.send(ctx, http.MethodPost, reqURL, body)
	if err != nil {
		return domain.Goal{}, err
	}

	raw := new(rawGoal)
	if err = json.Unmarshal(data, raw); err != nil {
		return domain.Goal{}, serviceerrors.NewAppError(err)
	}

	return c.mapGoal(*raw), nil
}

// UpdateGoal PUT /goals/{id} — nil fields are omitted from the payload.
func (c *Client) UpdateGoal(ctx context.Context, id string, upd domain.GoalUpdate) (domain.Goal, error) {
	reqURL := c.serverURL.JoinPath("goals", id)

	body := map[string]any{}
	if upd.Title != nil {
		body["title"] = *upd.Title
	}
	if upd.Description != nil {
		body["description"] = *upd.Description
	}
	if upd.TargetDate != nil {
		body["targetDate"] = *upd.TargetDate
	}

	data, err := c.send(ctx, http.MethodPut, reqURL, body)
	if err != nil {
		return domain.Goal{}, err
	}

	raw := new(rawGoal)
	if err = json.Unmarshal(data, raw); err != nil {
		return domain.Goal{}, serviceerrors.NewAppError(err)
	}

	return c.mapGoal(*raw), nil
}

// CompleteGoal PUT /goals/{id}/complete
func (c *Client) CompleteGoal(ctx context.Context, id string) (domain.Goal, error) {
	reqURL := c.serverURL.JoinPath("goals", id, "complete")

	data, err := c.send(ctx, http.MethodPut, reqURL, nil)
	if err != nil {
		return domain.Goal{}, err
	}

	raw := new(rawGoal)
	if err = json.Unmarshal(data, raw); err != nil {
		return domain.Goal{}, serviceerrors.NewAppError(err)
	}

	return c.mapGoal(*raw), nil
}

// DeleteGoal DELETE /goals/{id}
func (c *Client) DeleteGoal(ctx context.Context, id string) error {
	reqURL := c.serverURL.JoinPath("goals", id)

	_, err := c.send(ctx, http.MethodDelete, reqURL, nil)
	return err
}
