package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/codebycinar/lgs-yks-mobile-app/internal/domain"
	"github.com/codebycinar/lgs-yks-mobile-app/internal/pkg/serviceerrors"
)

type rawOnboardingProfile struct {
	ID                          flexString `json:"id"`
	ProfileTypeSnake            *string    `json:"profile_type"`
	ProfileType                 *string    `json:"profileType"`
	PrimaryGoalSnake            *string    `json:"primary_goal"`
	PrimaryGoal                 *string    `json:"primaryGoal"`
	TargetDateSnake             *string    `json:"target_date"`
	TargetDate                  *string    `json:"targetDate"`
	ExamTypeSnake               *string    `json:"exam_type"`
	ExamType                    *string    `json:"examType"`
	Motivation                  *string    `json:"motivation"`
	StudyFocusAreasSnake        *[]string  `json:"study_focus_areas"`
	StudyFocusAreas             *[]string  `json:"studyFocusAreas"`
	DailyAvailableMinutesSnake  *flexInt   `json:"daily_available_minutes"`
	DailyAvailableMinutes       *flexInt   `json:"dailyAvailableMinutes"`
	WeeklyAvailableMinutesSnake *flexInt   `json:"weekly_available_minutes"`
	WeeklyAvailableMinutes      *flexInt   `json:"weeklyAvailableMinutes"`
	PreferredStudyTimesSnake    *string    `json:"preferred_study_times"`
	PreferredStudyTimes         *string    `json:"preferredStudyTimes"`
	LearningStyleSnake          *string    `json:"learning_style"`
	LearningStyle               *string    `json:"learningStyle"`
	ReminderTimeSnake           *string    `json:"reminder_time"`
	ReminderTime                *string    `json:"reminderTime"`
	UpdatedAtSnake              *string    `json:"updated_at"`
	UpdatedAt                   *string    `json:"updatedAt"`
}

func mapOnboardingProfile(raw rawOnboardingProfile) domain.OnboardingProfile {
	return domain.OnboardingProfile{
		ID:                     string(raw.ID),
		ProfileType:            domain.ProfileType(pickString(raw.ProfileTypeSnake, raw.ProfileType)),
		PrimaryGoal:            pickString(raw.PrimaryGoalSnake, raw.PrimaryGoal),
		TargetDate:             dateOnly(pickString(raw.TargetDateSnake, raw.TargetDate)),
		ExamType:               pickString(raw.ExamTypeSnake, raw.ExamType),
		Motivation:             pickString(raw.Motivation),
		StudyFocusAreas:        pickStrings(raw.StudyFocusAreasSnake, raw.StudyFocusAreas),
		DailyAvailableMinutes:  pickInt(raw.DailyAvailableMinutesSnake, raw.DailyAvailableMinutes),
		WeeklyAvailableMinutes: pickInt(raw.WeeklyAvailableMinutesSnake, raw.WeeklyAvailableMinutes),
		PreferredStudyTimes:    pickString(raw.PreferredStudyTimesSnake, raw.PreferredStudyTimes),
		LearningStyle:          pickString(raw.LearningStyleSnake, raw.LearningStyle),
		ReminderTime:           pickString(raw.ReminderTimeSnake, raw.ReminderTime),
		UpdatedAt:              pickString(raw.UpdatedAtSnake, raw.UpdatedAt),
	}
}

type rawAvailabilitySlot struct {
	ID             flexString `json:"id"`
	DayOfWeekSnake *flexInt   `json:"day_of_week"`
	DayOfWeek      *flexInt   `json:"dayOfWeek"`
	StartTimeSnake *string    `json:"start_time"`
	StartTime      *string    `json:"startTime"`
	EndTimeSnake   *string    `json:"end_time"`
	EndTime        *string    `json:"endTime"`
	Intensity      *string    `json:"intensity"`
	Priority       *string    `json:"priority"`
}

func mapAvailability(items []rawAvailabilitySlot) []domain.AvailabilitySlot {
	slots := make([]domain.AvailabilitySlot, 0, len(items))
	for _, item := range items {
		slots = append(slots, domain.AvailabilitySlot{
			ID:        string(item.ID),
			DayOfWeek: pickInt(item.DayOfWeekSnake, item.DayOfWeek),
			StartTime: pickString(item.StartTimeSnake, item.StartTime),
			EndTime:   pickString(item.EndTimeSnake, item.EndTime),
			Intensity: pickString(item.Intensity),
			Priority:  pickString(item.Priority),
		})
	}
	return slots
}

type rawAIPlan struct {
	Provider      *string   `json:"provider"`
	Summary       *string   `json:"summary"`
	Persona       *string   `json:"persona"`
	KeyFocus      *[]string `json:"keyFocus"`
	KeyFocusSnake *[]string `json:"key_focus"`
	Goals         []struct {
		Title             *string `json:"title"`
		Description       *string `json:"description"`
		SuggestedTimeline *string `json:"suggestedTimeline"`
	} `json:"goals"`
	Habits []struct {
		Name         *string `json:"name"`
		Frequency    *string `json:"frequency"`
		ReminderTime *string `json:"reminderTime"`
	} `json:"habits"`
	Schedule []struct {
		Day             *string  `json:"day"`
		Focus           *string  `json:"focus"`
		DurationMinutes *flexInt `json:"durationMinutes"`
	} `json:"schedule"`
	Encouragement    *string `json:"encouragement"`
	GeneratedAt      *string `json:"generatedAt"`
	GeneratedAtSnake *string `json:"generated_at"`
}

func mapAIPlan(raw *rawAIPlan) *domain.AIPlan {
	if raw == nil {
		return nil
	}

	plan := &domain.AIPlan{
		Provider:      pickString(raw.Provider),
		Summary:       pickString(raw.Summary),
		Persona:       pickString(raw.Persona),
		KeyFocus:      pickStrings(raw.KeyFocusSnake, raw.KeyFocus),
		Encouragement: pickString(raw.Encouragement),
		GeneratedAt:   pickString(raw.GeneratedAtSnake, raw.GeneratedAt),
	}
	for _, g := range raw.Goals {
		plan.Goals = append(plan.Goals, domain.AIPlanGoal{
			Title:             pickString(g.Title),
			Description:       pickString(g.Description),
			SuggestedTimeline: pickString(g.SuggestedTimeline),
		})
	}
	for _, h := range raw.Habits {
		plan.Habits = append(plan.Habits, domain.AIPlanHabit{
			Name:         pickString(h.Name),
			Frequency:    pickString(h.Frequency),
			ReminderTime: pickString(h.ReminderTime),
		})
	}
	for _, s := range raw.Schedule {
		plan.Schedule = append(plan.Schedule, domain.AIPlanScheduleItem{
			Day:             pickString(s.Day),
			Focus:           pickString(s.Focus),
			DurationMinutes: pickInt(s.DurationMinutes),
		})
	}

	return plan
}

type rawOnboarding struct {
	Profile      *rawOnboardingProfile `json:"profile"`
	Availability []rawAvailabilitySlot `json:"availability"`
	AIPlan       *rawAIPlan            `json:"aiPlan"`
	AIPlanSnake  *rawAIPlan            `json:"ai_plan"`
}

func mapOnboarding(raw rawOnboarding) domain.OnboardingData {
	plan := raw.AIPlanSnake
	if plan == nil {
		plan = raw.AIPlan
	}
	return domain.OnboardingData{
		Profile:      mapOnboardingProfile(*raw.Profile),
		Availability: mapAvailability(raw.Availability),
		AIPlan:       mapAIPlan(plan),
	}
}

type onboardingProfilePayload struct {
	ProfileType            string   `json:"profileType,omitempty"`
	PrimaryGoal            string   `json:"primaryGoal"`
	TargetDate             string   `json:"targetDate,omitempty"`
	ExamType               string   `json:"examType,omitempty"`
	Motivation             string   `json:"motivation,omitempty"`
	StudyFocusAreas        []string `json:"studyFocusAreas,omitempty"`
	DailyAvailableMinutes  int      `json:"dailyAvailableMinutes,omitempty"`
	WeeklyAvailableMinutes int      `json:"weeklyAvailableMinutes,omitempty"`
	PreferredStudyTimes    string   `json:"preferredStudyTimes,omitempty"`
	LearningStyle          string   `json:"learningStyle,omitempty"`
	ReminderTime           string   `json:"reminderTime,omitempty"`
}

type availabilitySlotPayload struct {
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Intensity string `json:"intensity,omitempty"`
	Priority  string `json:"priority,omitempty"`
}

type saveOnboardingRequest struct {
	Profile             onboardingProfilePayload  `json:"profile"`
	Availability        []availabilitySlotPayload `json:"availability"`
	ReplaceAvailability bool                      `json:"replaceAvailability"`
}

// GetOnboarding GET /onboarding — a 404, or a 200 with no stored profile,
// comes back as ErrNotFound; the caller decides that absence is not an error.
func (c *Client) GetOnboarding(ctx context.Context) (domain.OnboardingData, error) {
	reqURL := c.serverURL.JoinPath("onboarding")

	data, err := c.send(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.OnboardingData{}, err
	}

	raw := new(rawOnboarding)
	if len(data) > 0 {
		if err = json.Unmarshal(data, raw); err != nil {
			return domain.OnboardingData{}, serviceerrors.NewAppError(err)
		}
	}
	if raw.Profile == nil {
		return domain.OnboardingData{}, serviceerrors.NewNotFound().
			Wrap(domain.ErrNotFound, "onboarding profile")
	}

	return mapOnboarding(*raw), nil
}

// SaveOnboarding POST /onboarding — commits the accumulated draft; stored
// availability is replaced wholesale, matching the backend default.
func (c *Client) SaveOnboarding(ctx context.Context, profile domain.OnboardingProfile, availability []domain.AvailabilitySlot) (domain.OnboardingData, error) {
	reqURL := c.serverURL.JoinPath("onboarding")

	body := saveOnboardingRequest{
		Profile: onboardingProfilePayload{
			ProfileType:            string(profile.ProfileType),
			PrimaryGoal:            profile.PrimaryGoal,
			TargetDate:             profile.TargetDate,
			ExamType:               profile.ExamType,
			Motivation:             profile.Motivation,
			StudyFocusAreas:        profile.StudyFocusAreas,
			DailyAvailableMinutes:  profile.DailyAvailableMinutes,
			WeeklyAvailableMinutes: profile.WeeklyAvailableMinutes,
			PreferredStudyTimes:    profile.PreferredStudyTimes,
			LearningStyle:          profile.LearningStyle,
			ReminderTime:           profile.ReminderTime,
		},
		Availability:        make([]availabilitySlotPayload, 0, len(availability)),
		ReplaceAvailability: true,
	}
	for _, slot := range availability {
		body.Availability = append(body.Availability, availabilitySlotPayload{
			DayOfWeek: slot.DayOfWeek,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Intensity: slot.Intensity,
			Priority:  slot.Priority,
		})
	}

	data, err := c.send(ctx, http.MethodPost, reqURL, body)
	if err != nil {
		return domain.OnboardingData{}, err
	}

	raw := new(rawOnboarding)
	if err = json.Unmarshal(data, raw); err != nil {
		return domain.OnboardingData{}, serviceerrors.NewAppError(err)
	}
	if raw.Profile == nil {
		return domain.OnboardingData{}, serviceerrors.NewAppError(nil).
			Wrap(domain.ErrNotFound, "onboarding save returned no profile")
	}

	return mapOnboarding(*raw), nil
}
