package onboarding

import (
	"context"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/codebycinar/lgs-yks-mobile-app/internal/domain"
	"github.com/codebycinar/lgs-yks-mobile-app/internal/pkg/serviceerrors"
)

type Step int

const (
	StepIntent Step = iota
	StepAvailability
	StepSummary
)

// Draft accumulates the wizard's answers. It is threaded by value through the
// steps and never persisted; abandoning it has no side effects.
type Draft struct {
	ID           uuid.UUID
	Step         Step
	Profile      domain.OnboardingProfile
	Availability []domain.AvailabilitySlot
}

// Intent is the first screen's answers; only the primary goal is required.
type Intent struct {
	ProfileType         domain.ProfileType
	PrimaryGoal         string
	TargetDate          string
	ExamType            string
	Motivation          string
	StudyFocusAreas     []string
	LearningStyle       string
	PreferredStudyTimes string
	ReminderTime        string
}

type sessionManager interface {
	CommitOnboarding(ctx context.Context, profile domain.OnboardingProfile, availability []domain.AvailabilitySlot) (domain.OnboardingData, error)
}

// Flow drives the three-step wizard: intent, availability, summary/commit.
type Flow struct {
	session  sessionManager
	validate *validator.Validate

	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
}

func NewFlow(session sessionManager) *Flow {
	return &Flow{
		session:  session,
		validate: validator.New(),
		inFlight: map[uuid.UUID]struct{}{},
	}
}

func (f *Flow) Start() Draft {
	return Draft{
		ID:   uuid.New(),
		Step: StepIntent,
	}
}

// SubmitIntent validates and records the first step. The wizard does not
// advance without a non-empty primary goal.
func (f *Flow) SubmitIntent(d Draft, intent Intent) (Draft, error) {
	goal := strings.TrimSpace(intent.PrimaryGoal)
	if goal == "" {
		return d, serviceerrors.NewValidation().Wrap(domain.ErrValidation, "goal required")
	}

	profileType := intent.ProfileType
	if profileType == "" {
		profileType = domain.ProfileGeneral
	}
	if err := f.validate.Var(string(profileType), "oneof=exam habit general"); err != nil {
		return d, serviceerrors.NewValidation().Wrap(domain.ErrValidation, "unknown profile type")
	}
	if intent.TargetDate != "" {
		if err := f.validate.Var(intent.TargetDate, "datetime=2006-01-02"); err != nil {
			return d, serviceerrors.NewValidation().Wrap(domain.ErrValidation, "target date must be YYYY-MM-DD")
		}
	}

	d.Profile.ProfileType = profileType
	d.Profile.PrimaryGoal = goal
	d.Profile.TargetDate = intent.TargetDate
	d.Profile.ExamType = intent.ExamType
	d.Profile.Motivation = intent.Motivation
	d.Profile.StudyFocusAreas = intent.StudyFocusAreas
	d.Profile.LearningStyle = intent.LearningStyle
	d.Profile.PreferredStudyTimes = intent.PreferredStudyTimes
	d.Profile.ReminderTime = intent.ReminderTime
	d.Step = StepAvailability

	return d, nil
}

// SubmitAvailability records the declared study windows. Zero slots is valid;
// duplicates and overlaps pass through to the backend untouched.
func (f *Flow) SubmitAvailability(d Draft, slots []domain.AvailabilitySlot, dailyMinutes, weeklyMinutes int) (Draft, error) {
	if d.Step < StepAvailability {
		return d, serviceerrors.NewValidation().Wrap(domain.ErrValidation, "intent step not completed")
	}

	for _, slot := range slots {
		if err := f.validate.Var(slot.DayOfWeek, "gte=0,lte=6"); err != nil {
			return d, serviceerrors.NewValidation().Wrap(domain.ErrValidation, "day of week out of range")
		}
	}

	d.Availability = slots
	d.Profile.DailyAvailableMinutes = dailyMinutes
	d.Profile.WeeklyAvailableMinutes = weeklyMinutes
	d.Step = StepSummary

	return d, nil
}

// Saving reports whether the draft has a commit in flight.
func (f *Flow) Saving(d Draft) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.inFlight[d.ID]
	return ok
}

// Commit issues the one-shot save. A second commit for the same draft while
// one is pending is rejected without touching the network; a failed commit
// leaves the draft intact so the user can retry from the summary step.
func (f *Flow) Commit(ctx context.Context, d Draft) (domain.OnboardingData, error) {
	if d.Step != StepSummary {
		return domain.OnboardingData{}, serviceerrors.NewValidation().
			Wrap(domain.ErrValidation, "wizard not at summary step")
	}

	f.mu.Lock()
	if _, ok := f.inFlight[d.ID]; ok {
		f.mu.Unlock()
		return domain.OnboardingData{}, serviceerrors.NewAlreadyInProgress().
			Wrap(domain.ErrAlreadyInProgress, "onboarding commit")
	}
	f.inFlight[d.ID] = struct{}{}
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		delete(f.inFlight, d.ID)
		f.mu.Unlock()
	}()

	return f.session.CommitOnboarding(ctx, d.Profile, d.Availability)
}
