package session

import "github.com/codebycinar/lgs-yks-mobile-app/internal/domain"

type State int

const (
	// Initializing startup state, nothing derived yet
	Initializing State = iota
	Unauthenticated
	AuthenticatedPendingOnboarding
	AuthenticatedOnboarded
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Unauthenticated:
		return "unauthenticated"
	case AuthenticatedPendingOnboarding:
		return "authenticated_pending_onboarding"
	case AuthenticatedOnboarded:
		return "authenticated_onboarded"
	}
	return "unknown"
}

// Snapshot is the observable session: user and onboarding payloads exist only
// in the states that carry them, so onboarded always implies authenticated.
type Snapshot struct {
	State      State
	User       *domain.User
	Onboarding *domain.OnboardingData
}

func (s Snapshot) IsAuthenticated() bool {
	return s.State == AuthenticatedPendingOnboarding || s.State == AuthenticatedOnboarded
}

func (s Snapshot) IsOnboarded() bool {
	return s.State == AuthenticatedOnboarded
}
