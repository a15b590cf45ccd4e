package http

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"
)

func TestFlexIntCoercion(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{`12`, 12},
		{`"12"`, 12},
		{`12.0`, 12},
		{`null`, 0},
		{`""`, 0},
	}
	for _, tt := range tests {
		var v flexInt
		if err := json.Unmarshal([]byte(tt.in), &v); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.in, err)
		}
		if int(v) != tt.want {
			t.Fatalf("%s: expected %d, got %d", tt.in, tt.want, v)
		}
	}

	var v flexInt
	if err := json.Unmarshal([]byte(`"soon"`), &v); err == nil {
		t.Fatalf("non-numeric string must fail")
	}
}

func TestFlexBoolCoercion(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{`true`, true},
		{`false`, false},
		{`1`, true},
		{`0`, false},
		{`"1"`, true},
		{`"true"`, true},
		{`null`, false},
	}
	for _, tt := range tests {
		var v flexBool
		if err := json.Unmarshal([]byte(tt.in), &v); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.in, err)
		}
		if bool(v) != tt.want {
			t.Fatalf("%s: expected %v, got %v", tt.in, tt.want, v)
		}
	}
}

func TestFlexStringAcceptsNumbers(t *testing.T) {
	var v flexString
	if err := json.Unmarshal([]byte(`17`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(v) != "17" {
		t.Fatalf("expected \"17\", got %q", v)
	}

	if err := json.Unmarshal([]byte(`"abc-123"`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(v) != "abc-123" {
		t.Fatalf("expected \"abc-123\", got %q", v)
	}
}

func TestDateOnly(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-03-10T14:22:01.000Z", "2025-03-10"},
		{"2025-03-10T14:22:01Z", "2025-03-10"},
		{"2025-03-10 14:22:01", "2025-03-10"},
		{"2025-03-10", "2025-03-10"},
		{"", ""},
		{"next week", "next week"},
	}
	for _, tt := range tests {
		if got := dateOnly(tt.in); got != tt.want {
			t.Fatalf("dateOnly(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestMapOnboardingProfileAcceptsBothNamings(t *testing.T) {
	snake := []byte(`{
		"id": 7,
		"profile_type": "habit",
		"primary_goal": "Read 20 pages daily",
		"target_date": "2026-06-01T00:00:00.000Z",
		"study_focus_areas": ["math"],
		"daily_available_minutes": "45"
	}`)
	camel := []byte(`{
		"id": "7",
		"profileType": "habit",
		"primaryGoal": "Read 20 pages daily",
		"targetDate": "2026-06-01",
		"studyFocusAreas": ["math"],
		"dailyAvailableMinutes": 45
	}`)

	for _, payload := range [][]byte{snake, camel} {
		var raw rawOnboardingProfile
		if err := json.Unmarshal(payload, &raw); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		p := mapOnboardingProfile(raw)

		if p.ID != "7" {
			t.Fatalf("expected id 7, got %q", p.ID)
		}
		if string(p.ProfileType) != "habit" {
			t.Fatalf("expected habit, got %q", p.ProfileType)
		}
		if p.PrimaryGoal != "Read 20 pages daily" {
			t.Fatalf("unexpected goal %q", p.PrimaryGoal)
		}
		if p.TargetDate != "2026-06-01" {
			t.Fatalf("expected normalized date, got %q", p.TargetDate)
		}
		if len(p.StudyFocusAreas) != 1 || p.StudyFocusAreas[0] != "math" {
			t.Fatalf("focus areas lost: %v", p.StudyFocusAreas)
		}
		if p.DailyAvailableMinutes != 45 {
			t.Fatalf("expected 45 minutes, got %d", p.DailyAvailableMinutes)
		}
	}
}

func TestMapOnboardingProfileMissingOptionals(t *testing.T) {
	var raw rawOnboardingProfile
	if err := json.Unmarshal([]byte(`{"primary_goal": "g"}`), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	p := mapOnboardingProfile(raw)

	if p.TargetDate != "" || p.Motivation != "" || p.StudyFocusAreas != nil {
		t.Fatalf("missing optionals must map to zero values: %+v", p)
	}
	if p.DailyAvailableMinutes != 0 || p.WeeklyAvailableMinutes != 0 {
		t.Fatalf("missing minutes must map to 0")
	}
}

func testClient(now time.Time) *Client {
	c := NewClient(nil, url.URL{Scheme: "http", Host: "backend", Path: "/api"})
	c.now = func() time.Time { return now }
	return c
}

func TestMapGoalDerivations(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	c := testClient(now)

	var raw rawGoal
	payload := []byte(`{
		"id": 3,
		"description": "Finish the geometry unit before exams",
		"target_date": "2025-03-14T00:00:00.000Z",
		"is_completed": 0,
		"created_at": "2025-03-01T08:00:00.000Z"
	}`)
	if err := json.Unmarshal(payload, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	g := c.mapGoal(raw)

	if g.ID != "3" {
		t.Fatalf("expected id 3, got %q", g.ID)
	}
	if g.Title != "Finish the geometry unit before exams" {
		t.Fatalf("title must fall back to description, got %q", g.Title)
	}
	if g.TargetDate != "2025-03-14" {
		t.Fatalf("expected normalized target date, got %q", g.TargetDate)
	}
	if g.DaysRemaining == nil || *g.DaysRemaining != 4 {
		t.Fatalf("expected 4 days remaining, got %v", g.DaysRemaining)
	}
	if g.IsOverdue {
		t.Fatalf("future goal must not be overdue")
	}
}

func TestMapGoalOverdue(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	c := testClient(now)

	var raw rawGoal
	if err := json.Unmarshal([]byte(`{"id":"3","title":"t","target_date":"2025-03-01","is_completed":false}`), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	g := c.mapGoal(raw)

	if !g.IsOverdue {
		t.Fatalf("past incomplete goal must be overdue")
	}
	if g.DaysRemaining == nil || *g.DaysRemaining >= 0 {
		t.Fatalf("expected negative days remaining, got %v", g.DaysRemaining)
	}
}

func TestMapGoalServerDerivationsWin(t *testing.T) {
	c := testClient(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	var raw rawGoal
	if err := json.Unmarshal([]byte(`{"id":"3","title":"t","target_date":"2025-03-01","isOverdue":false,"daysRemaining":2}`), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	g := c.mapGoal(raw)

	if g.IsOverdue {
		t.Fatalf("server isOverdue must win over the derived value")
	}
	if g.DaysRemaining == nil || *g.DaysRemaining != 2 {
		t.Fatalf("server daysRemaining must win, got %v", g.DaysRemaining)
	}
}

func TestMapProgramCompletionPercentage(t *testing.T) {
	tests := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{0, 4, 0},
		{2, 4, 50},
		{2, 3, 67},
		{1, 3, 33},
		{3, 3, 100},
	}
	for _, tt := range tests {
		if got := completionPercentage(tt.completed, tt.total); got != tt.want {
			t.Fatalf("%d/%d: expected %d%%, got %d%%", tt.completed, tt.total, tt.want, got)
		}
	}
}

func TestMapProgramAcceptsBothNamings(t *testing.T) {
	payload := []byte(`{
		"id": 5,
		"title": "Week 12",
		"start_date": "2025-03-17T00:00:00.000Z",
		"end_date": "2025-03-23T00:00:00.000Z",
		"total_tasks": "6",
		"completed_tasks": 4,
		"isCurrentWeek": true,
		"tasks": [
			{"id": 1, "weekly_program_id": 5, "description": "Solve 30 problems", "task_date": "2025-03-18", "is_completed": 1}
		]
	}`)

	var raw rawProgram
	if err := json.Unmarshal(payload, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	p := mapProgram(raw)

	if p.ID != "5" || p.StartDate != "2025-03-17" || p.EndDate != "2025-03-23" {
		t.Fatalf("unexpected program header: %+v", p)
	}
	if p.TotalTasks != 6 || p.CompletedTasks != 4 || p.CompletionPercentage != 67 {
		t.Fatalf("unexpected task counts: %+v", p)
	}
	if !p.IsCurrentWeek {
		t.Fatalf("isCurrentWeek lost")
	}
	if len(p.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(p.Tasks))
	}
	task := p.Tasks[0]
	if task.ID != "1" || task.WeeklyProgramID != "5" || !task.IsCompleted {
		t.Fatalf("unexpected task: %+v", task)
	}
	if task.Title != "Solve 30 problems" {
		t.Fatalf("task title must fall back to description, got %q", task.Title)
	}
}

func TestMapUserCoercesNumericIDs(t *testing.T) {
	payload := []byte(`{
		"id": 42,
		"phone_number": "5551234567",
		"name": "Ayse",
		"surname": "Yilmaz",
		"gender": "female",
		"class_id": 8,
		"class_name": "8. Sinif"
	}`)

	var raw rawUser
	if err := json.Unmarshal(payload, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	u := mapUser(raw)

	if u.ID != "42" || u.ClassID != "8" {
		t.Fatalf("numeric ids must coerce to strings: %+v", u)
	}
	if u.PhoneNumber != "5551234567" || u.ClassName != "8. Sinif" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestMapAIPlanKeyFocusDrift(t *testing.T) {
	payload := []byte(`{
		"summary": "Short daily sessions work best for you.",
		"key_focus": ["consistency"],
		"goals": [{"title": "Finish unit 3", "description": "two sections a week"}],
		"schedule": [{"day": "monday", "focus": "math", "durationMinutes": "40"}],
		"generated_at": "2025-03-10T08:00:00Z"
	}`)

	var raw rawAIPlan
	if err := json.Unmarshal(payload, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	plan := mapAIPlan(&raw)

	if plan.Summary == "" || len(plan.KeyFocus) != 1 || plan.KeyFocus[0] != "consistency" {
		t.Fatalf("key focus drift not handled: %+v", plan)
	}
	if len(plan.Goals) != 1 || plan.Goals[0].Title != "Finish unit 3" {
		t.Fatalf("goals lost: %+v", plan.Goals)
	}
	if len(plan.Schedule) != 1 || plan.Schedule[0].DurationMinutes != 40 {
		t.Fatalf("schedule minutes not coerced: %+v", plan.Schedule)
	}
	if plan.GeneratedAt == "" {
		t.Fatalf("generated_at lost")
	}

	if mapAIPlan(nil) != nil {
		t.Fatalf("nil plan must stay nil")
	}
}
