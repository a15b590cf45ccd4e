package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/codebycinar/lgs-yks-mobile-app/internal/domain"
	"github.com/codebycinar/lgs-yks-mobile-app/internal/pkg/serviceerrors"
)

type rawClass struct {
	ID                 flexString  `json:"id"`
	Name               *string     `json:"name"`
	MinClassLevelSnake *flexInt    `json:"min_class_level"`
	MinClassLevel      *flexInt    `json:"minClassLevel"`
	MaxClassLevelSnake *flexInt    `json:"max_class_level"`
	MaxClassLevel      *flexInt    `json:"maxClassLevel"`
	ExamIDSnake        *flexString `json:"exam_id"`
	ExamID             *flexString `json:"examId"`
	ExamNameSnake      *string     `json:"exam_name"`
	ExamName           *string     `json:"examName"`
	IsActiveSnake      *flexBool   `json:"is_active"`
	IsActive           *flexBool   `json:"isActive"`
}

func mapClass(raw rawClass) domain.Class {
	return domain.Class{
		ID:            string(raw.ID),
		Name:          pickString(raw.Name),
		MinClassLevel: pickInt(raw.MinClassLevelSnake, raw.MinClassLevel),
		MaxClassLevel: pickInt(raw.MaxClassLevelSnake, raw.MaxClassLevel),
		ExamID:        pickID(raw.ExamIDSnake, raw.ExamID),
		ExamName:      pickString(raw.ExamNameSnake, raw.ExamName),
		IsActive:      pickBool(raw.IsActiveSnake, raw.IsActive),
	}
}

type rawSubject struct {
	ID              flexString `json:"id"`
	Name            *string    `json:"name"`
	OrderIndexSnake *flexInt   `json:"order_index"`
	OrderIndex      *flexInt   `json:"orderIndex"`
	IsActiveSnake   *flexBool  `json:"is_active"`
	IsActive        *flexBool  `json:"isActive"`
}

func mapSubject(raw rawSubject) domain.Subject {
	return domain.Subject{
		ID:         string(raw.ID),
		Name:       pickString(raw.Name),
		OrderIndex: pickInt(raw.OrderIndexSnake, raw.OrderIndex),
		IsActive:   pickBool(raw.IsActiveSnake, raw.IsActive),
	}
}

type rawTopic struct {
	ID               flexString  `json:"id"`
	Name             *string     `json:"name"`
	SubjectIDSnake   *flexString `json:"subject_id"`
	SubjectID        *flexString `json:"subjectId"`
	SubjectNameSnake *string     `json:"subject_name"`
	SubjectName      *string     `json:"subjectName"`
	ClassIDSnake     *flexString `json:"class_id"`
	ClassID          *flexString `json:"classId"`
	ClassNameSnake   *string     `json:"class_name"`
	ClassName        *string     `json:"className"`
	ParentIDSnake    *flexString `json:"parent_id"`
	ParentID         *flexString `json:"parentId"`
	ParentNameSnake  *string     `json:"parent_name"`
	ParentName       *string     `json:"parentName"`
	OrderIndexSnake  *flexInt    `json:"order_index"`
	OrderIndex       *flexInt    `json:"orderIndex"`
	IsActiveSnake    *flexBool   `json:"is_active"`
	IsActive         *flexBool   `json:"isActive"`
}

func mapTopic(raw rawTopic) domain.Topic {
	return domain.Topic{
		ID:          string(raw.ID),
		Name:        pickString(raw.Name),
		SubjectID:   pickID(raw.SubjectIDSnake, raw.SubjectID),
		SubjectName: pickString(raw.SubjectNameSnake, raw.SubjectName),
		ClassID:     pickID(raw.ClassIDSnake, raw.ClassID),
		ClassName:   pickString(raw.ClassNameSnake, raw.ClassName),
		ParentID:    pickID(raw.ParentIDSnake, raw.ParentID),
		ParentName:  pickString(raw.ParentNameSnake, raw.ParentName),
		OrderIndex:  pickInt(raw.OrderIndexSnake, raw.OrderIndex),
		IsActive:    pickBool(raw.IsActiveSnake, raw.IsActive),
	}
}

// Classes GET /classes
func (c *Client) Classes(ctx context.Context) ([]domain.Class, error) {
	reqURL := c.serverURL.JoinPath("classes")

	data, err := c.send(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	var items []rawClass
	if err = json.Unmarshal(data, &items); err != nil {
		return nil, serviceerrors.NewAppError(err)
	}

	classes := make([]domain.Class, 0, len(items))
	for _, item := range items {
		classes = append(classes, mapClass(item))
	}

	return classes, nil
}

// Subjects GET /subjects
func (c *Client) Subjects(ctx context.Context) ([]domain.Subject, error) {
	reqURL := c.serverURL.JoinPath("subjects")

	data, err := c.send(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	var items []rawSubject
	if err = json.Unmarshal(data, &items); err != nil {
		return nil, serviceerrors.NewAppError(err)
	}

	subjects := make([]domain.Subject, 0, len(items))
	for _, item := range items {
		subjects = append(subjects, mapSubject(item))
	}

	return subjects, nil
}

// Topics GET /topics, optionally filtered by class.
func (c *Client) Topics(ctx context.Context, classID string) ([]domain.Topic, error) {
	reqURL := c.serverURL.JoinPath("topics")
	if classID != "" {
		reqURL.RawQuery = url.Values{"classId": {classID}}.Encode()
	}

	return c.topics(ctx, reqURL)
}

// TopicsForUser GET /users/me/topics — topics for the user's own class.
func (c *Client) TopicsForUser(ctx context.Context) ([]domain.Topic, error) {
	return c.topics(ctx, c.serverURL.JoinPath("users", "me", "topics"))
}

func (c *Client) topics(ctx context.Context, reqURL *url.URL) ([]domain.Topic, error) {
	data, err := c.send(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	var items []rawTopic
	if err = json.Unmarshal(data, &items); err != nil {
		return nil, serviceerrors.NewAppError(err)
	}

	topics := make([]domain.Topic, 0, len(items))
	for _, item := range items {
		topics = append(topics, mapTopic(item))
	}

	return topics, nil
}

type markTopicProgressRequest struct {
	TopicID string `json:"topicId"`
	Status  string `json:"status"`
}

// MarkTopicProgress POST /progress/topic
func (c *Client) MarkTopicProgress(ctx context.Context, topicID string, status domain.TopicStatus) error {
	reqURL := c.serverURL.JoinPath("progress", "topic")

	_, err := c.send(ctx, http.MethodPost, reqURL, markTopicProgressRequest{
		TopicID: topicID,
		Status:  string(status),
	})
	return err
}

type rawTopicProgress struct {
	TopicIDSnake   *flexString `json:"topic_id"`
	TopicID        *flexString `json:"topicId"`
	Status         *string     `json:"status"`
	UpdatedAtSnake *string     `json:"updated_at"`
	UpdatedAt      *string     `json:"updatedAt"`
}

// UserProgress GET /users/me/progress
func (c *Client) UserProgress(ctx context.Context) ([]domain.UserTopicProgress, error) {
	reqURL := c.serverURL.JoinPath("users", "me", "progress")

	data, err := c.send(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	var items []rawTopicProgress
	if err = json.Unmarshal(data, &items); err != nil {
		return nil, serviceerrors.NewAppError(err)
	}

	progress := make([]domain.UserTopicProgress, 0, len(items))
	for _, item := range items {
		progress = append(progress, domain.UserTopicProgress{
			TopicID:   pickID(item.TopicIDSnake, item.TopicID),
			Status:    domain.TopicStatus(pickString(item.Status)),
			UpdatedAt: pickString(item.UpdatedAtSnake, item.UpdatedAt),
		})
	}

	return progress, nil
}
