package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/codebycinar/lgs-yks-mobile-app/internal/domain"
	"github.com/codebycinar/lgs-yks-mobile-app/internal/pkg/serviceerrors"
)

type staticTokens string

func (s staticTokens) Token(_ context.Context) string { return string(s) }

func newTestServer(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}

	return NewClient(srv.Client(), *u), srv
}

func TestSendAttachesBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get(AuthorizationKey)
		_, _ = w.Write([]byte(`{"data": {"id": 1, "phone_number": "5551234567"}}`))
	})
	client.SetTokenSource(staticTokens("tok-abc"))

	user, err := client.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if user.ID != "1" || user.PhoneNumber != "5551234567" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestSendOmitsHeaderWhenUnauthenticated(t *testing.T) {
	var gotAuth string
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get(AuthorizationKey)
		_, _ = w.Write([]byte(`{"data": {"message": "sent"}}`))
	})
	client.SetTokenSource(staticTokens(""))

	if _, err := client.Login(context.Background(), "5551234567"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("no token must mean no Authorization header, got %q", gotAuth)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["phoneNumber"] != "5551234567" {
			t.Errorf("unexpected payload: %v", body)
		}

		_, _ = w.Write([]byte(`{"data": {"message": "code sent", "expires_at": "2025-03-10T08:05:00Z"}}`))
	})

	challenge, err := client.Login(context.Background(), "5551234567")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if challenge.Message != "code sent" || challenge.ExpiresAt == "" {
		t.Fatalf("unexpected challenge: %+v", challenge)
	}
}

func TestVerifyRejectionMapsToInvalidCode(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnprocessableEntity} {
		client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"message": "invalid verification code"}`))
		})

		_, err := client.VerifySMS(context.Background(), "5551234567", "000000", nil)
		if !errors.Is(err, domain.ErrInvalidCode) {
			t.Fatalf("status %d: expected ErrInvalidCode, got %v", status, err)
		}
	}
}

func TestVerifySuccessReturnsTokenAndUser(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["verificationCode"] != "123456" || body["name"] != "Ayse" {
			t.Errorf("unexpected payload: %v", body)
		}

		_, _ = w.Write([]byte(`{"data": {"token": "tok-1", "user": {"id": 9, "phoneNumber": "5551234567", "name": "Ayse"}}}`))
	})

	result, err := client.VerifySMS(context.Background(), "5551234567", "123456",
		&domain.Registration{Name: "Ayse", Surname: "Yilmaz", ClassID: "8", Gender: domain.GenderFemale})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Token != "tok-1" || result.User.ID != "9" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestGetOnboardingAbsence(t *testing.T) {
	responses := []http.HandlerFunc{
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		},
		func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data": {"profile": null, "availability": []}}`))
		},
		func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data": null}`))
		},
	}

	for i, handler := range responses {
		client, _ := newTestServer(t, handler)

		_, err := client.GetOnboarding(context.Background())
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("case %d: expected ErrNotFound, got %v", i, err)
		}
	}
}

func TestGetOnboardingPresent(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": {
			"profile": {"id": 7, "profile_type": "habit", "primary_goal": "Read 20 pages daily"},
			"availability": [{"id": 1, "day_of_week": "2", "start_time": "18:00", "end_time": "19:00"}],
			"ai_plan": {"summary": "Keep sessions short."}
		}}`))
	})

	data, err := client.GetOnboarding(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Profile.PrimaryGoal != "Read 20 pages daily" {
		t.Fatalf("unexpected profile: %+v", data.Profile)
	}
	if len(data.Availability) != 1 || data.Availability[0].DayOfWeek != 2 {
		t.Fatalf("unexpected availability: %+v", data.Availability)
	}
	if data.AIPlan == nil || data.AIPlan.Summary == "" {
		t.Fatalf("ai plan lost: %+v", data.AIPlan)
	}
}

func TestSaveOnboardingPayload(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["replaceAvailability"] != true {
			t.Errorf("replaceAvailability must always be true: %v", body)
		}
		profile, _ := body["profile"].(map[string]any)
		if profile["primaryGoal"] != "Read 20 pages daily" {
			t.Errorf("unexpected profile payload: %v", profile)
		}

		_, _ = w.Write([]byte(`{"data": {"profile": {"id": 7, "primaryGoal": "Read 20 pages daily"}, "availability": []}}`))
	})

	data, err := client.SaveOnboarding(context.Background(),
		domain.OnboardingProfile{ProfileType: domain.ProfileHabit, PrimaryGoal: "Read 20 pages daily"},
		[]domain.AvailabilitySlot{{DayOfWeek: 2, StartTime: "18:00", EndTime: "19:00"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Profile.ID != "7" {
		t.Fatalf("unexpected saved profile: %+v", data.Profile)
	}
}

func TestUnauthorizedFiresHook(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	fired := 0
	client.OnUnauthorized(func(_ context.Context) { fired++ })

	_, err := client.CurrentUser(context.Background())
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if fired != 1 {
		t.Fatalf("expected hook to fire once, fired %d times", fired)
	}
}

func TestNetworkFailureMapping(t *testing.T) {
	client, srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := client.CurrentUser(context.Background())
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}

	appErr := serviceerrors.AppErrorFromError(err)
	if !appErr.IsNetworkError() {
		t.Fatalf("network failures must carry code 0, got %d", appErr.Code)
	}
}

func TestServerErrorCarriesMessage(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message": "database unavailable"}`))
	})

	_, err := client.Goals(context.Background(), "")
	if err == nil {
		t.Fatal("expected error")
	}

	appErr := serviceerrors.AppErrorFromError(err)
	if appErr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", appErr.Code)
	}
	if !appErr.IsInternalError() {
		t.Fatalf("500 must classify as internal")
	}
}

func TestGoalsStatusQuery(t *testing.T) {
	var gotQuery string
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"data": [{"id": 1, "title": "t", "is_completed": 0}]}`))
	})

	goals, err := client.Goals(context.Background(), "active")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "status=active" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
	if len(goals) != 1 || goals[0].ID != "1" {
		t.Fatalf("unexpected goals: %+v", goals)
	}
}

func TestEmptyBodyIsNotAnError(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.DeleteGoal(context.Background(), "3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
