package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/codebycinar/lgs-yks-mobile-app/internal/domain"
	"github.com/codebycinar/lgs-yks-mobile-app/internal/pkg/serviceerrors"
)

type rawUser struct {
	ID               flexString  `json:"id"`
	PhoneNumberSnake *string     `json:"phone_number"`
	PhoneNumber      *string     `json:"phoneNumber"`
	Name             *string     `json:"name"`
	Surname          *string     `json:"surname"`
	Gender           *string     `json:"gender"`
	ClassIDSnake     *flexString `json:"class_id"`
	ClassID          *flexString `json:"classId"`
	ClassNameSnake   *string     `json:"class_name"`
	ClassName        *string     `json:"className"`
	ExamIDSnake      *flexString `json:"exam_id"`
	ExamID           *flexString `json:"examId"`
	ExamNameSnake    *string     `json:"exam_name"`
	ExamName         *string     `json:"examName"`
	CreatedAtSnake   *string     `json:"created_at"`
	CreatedAt        *string     `json:"createdAt"`
}

func mapUser(raw rawUser) domain.User {
	return domain.User{
		ID:          string(raw.ID),
		PhoneNumber: pickString(raw.PhoneNumberSnake, raw.PhoneNumber),
		Name:        pickString(raw.Name),
		Surname:     pickString(raw.Surname),
		Gender:      domain.Gender(pickString(raw.Gender)),
		ClassID:     pickID(raw.ClassIDSnake, raw.ClassID),
		ClassName:   pickString(raw.ClassNameSnake, raw.ClassName),
		ExamID:      pickID(raw.ExamIDSnake, raw.ExamID),
		ExamName:    pickString(raw.ExamNameSnake, raw.ExamName),
		CreatedAt:   pickString(raw.CreatedAtSnake, raw.CreatedAt),
	}
}

func pickID(vals ...*flexString) string {
	for _, v := range vals {
		if v != nil {
			return string(*v)
		}
	}
	return ""
}

// CurrentUser GET /users/me
func (c *Client) CurrentUser(ctx context.Context) (domain.User, error) {
	reqURL := c.serverURL.JoinPath("users", "me")

	data, err := c.send(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.User{}, err
	}

	raw := new(rawUser)
	if err = json.Unmarshal(data, raw); err != nil {
		return domain.User{}, serviceerrors.NewAppError(err)
	}

	return mapUser(*raw), nil
}
