package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/codebycinar/lgs-yks-mobile-app/internal/domain"
	"github.com/codebycinar/lgs-yks-mobile-app/internal/pkg/serviceerrors"
)

type loginRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

type registerRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	ClassID     string `json:"classId"`
	Gender      string `json:"gender"`
}

type verifyRequest struct {
	PhoneNumber      string `json:"phoneNumber"`
	VerificationCode string `json:"verificationCode"`
	Name             string `json:"name,omitempty"`
	Surname          string `json:"surname,omitempty"`
	ClassID          string `json:"classId,omitempty"`
	Gender           string `json:"gender,omitempty"`
}

type rawChallenge struct {
	Message        *string `json:"message"`
	ExpiresAtSnake *string `json:"expires_at"`
	ExpiresAt      *string `json:"expiresAt"`
}

func mapChallenge(raw rawChallenge) domain.SMSChallenge {
	return domain.SMSChallenge{
		Message:   pickString(raw.Message),
		ExpiresAt: pickString(raw.ExpiresAtSnake, raw.ExpiresAt),
	}
}

// Login POST /auth/login — requests an SMS challenge for a known number.
func (c *Client) Login(ctx context.Context, phoneNumber string) (domain.SMSChallenge, error) {
	reqURL := c.serverURL.JoinPath("auth", "login")

	data, err := c.send(ctx, http.MethodPost, reqURL, loginRequest{PhoneNumber: phoneNumber})
	if err != nil {
		return domain.SMSChallenge{}, err
	}

	raw := new(rawChallenge)
	if err = json.Unmarshal(data, raw); err != nil {
		return domain.SMSChallenge{}, serviceerrors.NewAppError(err)
	}

	return mapChallenge(*raw), nil
}

// Register POST /auth/register — requests an SMS challenge for a new account.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (domain.SMSChallenge, error) {
	reqURL := c.serverURL.JoinPath("auth", "register")

	data, err := c.send(ctx, http.MethodPost, reqURL, registerRequest{
		PhoneNumber: reg.PhoneNumber,
		Name:        reg.Name,
		Surname:     reg.Surname,
		ClassID:     reg.ClassID,
		Gender:      string(reg.Gender),
	})
	if err != nil {
		return domain.SMSChallenge{}, err
	}

	raw := new(rawChallenge)
	if err = json.Unmarshal(data, raw); err != nil {
		return domain.SMSChallenge{}, serviceerrors.NewAppError(err)
	}

	return mapChallenge(*raw), nil
}

// VerifySMS POST /auth/verify-sms — exchanges the 6-digit code for a token and
// user pair. A backend rejection of the code surfaces as ErrInvalidCode so the
// caller can target the code field.
func (c *Client) VerifySMS(ctx context.Context, phoneNumber, code string, extras *domain.Registration) (domain.AuthResult, error) {
	reqURL := c.serverURL.JoinPath("auth", "verify-sms")

	body := verifyRequest{
		PhoneNumber:      phoneNumber,
		VerificationCode: code,
	}
	if extras != nil {
		body.Name = extras.Name
		body.Surname = extras.Surname
		body.ClassID = extras.ClassID
		body.Gender = string(extras.Gender)
	}

	data, err := c.send(ctx, http.MethodPost, reqURL, body)
	if err != nil {
		appErr := serviceerrors.AppErrorFromError(err)
		switch appErr.Code {
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			return domain.AuthResult{}, serviceerrors.NewInvalidCode().
				Wrap(domain.ErrInvalidCode, "verify sms")
		}
		return domain.AuthResult{}, err
	}

	raw := new(struct {
		Token string  `json:"token"`
		User  rawUser `json:"user"`
	})
	if err = json.Unmarshal(data, raw); err != nil {
		return domain.AuthResult{}, serviceerrors.NewAppError(err)
	}

	return domain.AuthResult{
		Token: raw.Token,
		User:  mapUser(raw.User),
	}, nil
}

// ResendSMS POST /auth/resend-sms
func (c *Client) ResendSMS(ctx context.Context, phoneNumber string) (domain.SMSChallenge, error) {
	reqURL := c.serverURL.JoinPath("auth", "resend-sms")

	data, err := c.send(ctx, http.MethodPost, reqURL, loginRequest{PhoneNumber: phoneNumber})
	if err != nil {
		return domain.SMSChallenge{}, err
	}

	raw := new(rawChallenge)
	if err = json.Unmarshal(data, raw); err != nil {
		return domain.SMSChallenge{}, serviceerrors.NewAppError(err)
	}

	return mapChallenge(*raw), nil
}
