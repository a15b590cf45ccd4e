package mock

import (
	"context"
	"sync"

	"github.com/codebycinar/lgs-yks-mobile-app/internal/domain"
	"github.com/codebycinar/lgs-yks-mobile-app/internal/pkg/serviceerrors"
)

const verificationCode = "123456"

// Client is a canned backend for running the app without a server. It accepts
// any phone number and the fixed verification code above, and keeps the saved
// onboarding profile in memory.
type Client struct {
	mu        sync.Mutex
	onboarded *domain.OnboardingData
}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) Login(_ context.Context, _ string) (domain.SMSChallenge, error) {
	return domain.SMSChallenge{Message: "code sent"}, nil
}

func (c *Client) Register(_ context.Context, _ domain.Registration) (domain.SMSChallenge, error) {
	return domain.SMSChallenge{Message: "code sent"}, nil
}

func (c *Client) VerifySMS(_ context.Context, phoneNumber, code string, extras *domain.Registration) (domain.AuthResult, error) {
	if code != verificationCode {
		return domain.AuthResult{}, serviceerrors.NewInvalidCode().
			Wrap(domain.ErrInvalidCode, "verify sms")
	}

	user := domain.User{
		ID:          "1",
		PhoneNumber: phoneNumber,
		Name:        "Demo",
		Surname:     "User",
		Gender:      domain.GenderFemale,
	}
	if extras != nil {
		user.Name = extras.Name
		user.Surname = extras.Surname
		user.ClassID = extras.ClassID
		user.Gender = extras.Gender
	}

	return domain.AuthResult{Token: "mock-token", User: user}, nil
}

func (c *Client) ResendSMS(_ context.Context, _ string) (domain.SMSChallenge, error) {
	return domain.SMSChallenge{Message: "code sent"}, nil
}

func (c *Client) CurrentUser(_ context.Context) (domain.User, error) {
	return domain.User{
		ID:          "1",
		PhoneNumber: "5551234567",
		Name:        "Demo",
		Surname:     "User",
		Gender:      domain.GenderFemale,
	}, nil
}

func (c *Client) GetOnboarding(_ context.Context) (domain.OnboardingData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.onboarded == nil {
		return domain.OnboardingData{}, serviceerrors.NewNotFound().
			Wrap(domain.ErrNotFound, "onboarding profile")
	}

	return *c.onboarded, nil
}

func (c *Client) SaveOnboarding(_ context.Context, profile domain.OnboardingProfile, availability []domain.AvailabilitySlot) (domain.OnboardingData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	profile.ID = "1"
	data := domain.OnboardingData{
		Profile:      profile,
		Availability: availability,
		AIPlan: &domain.AIPlan{
			Provider: "mock",
			Summary:  "Stay consistent and review weekly.",
		},
	}
	c.onboarded = &data

	return data, nil
}
