package session

import (
	"context"
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/codebycinar/lgs-yks-mobile-app/internal/domain"
	"github.com/codebycinar/lgs-yks-mobile-app/internal/pkg/logger"
	"github.com/codebycinar/lgs-yks-mobile-app/internal/pkg/serviceerrors"
)

const (
	phoneRule = "required,len=10,numeric"
	codeRule  = "required,len=6,numeric"
)

type backendClient interface {
	Login(ctx context.Context, phoneNumber string) (domain.SMSChallenge, error)
	Register(ctx context.Context, reg domain.Registration) (domain.SMSChallenge, error)
	VerifySMS(ctx context.Context, phoneNumber, code string, extras *domain.Registration) (domain.AuthResult, error)
	ResendSMS(ctx context.Context, phoneNumber string) (domain.SMSChallenge, error)
	CurrentUser(ctx context.Context) (domain.User, error)
	GetOnboarding(ctx context.Context) (domain.OnboardingData, error)
	SaveOnboarding(ctx context.Context, profile domain.OnboardingProfile, availability []domain.AvailabilitySlot) (domain.OnboardingData, error)
}

type credentialStore interface {
	Load(ctx context.Context) (domain.Credentials, error)
	Save(ctx context.Context, c domain.Credentials) error
	Clear(ctx context.Context) error
}

// Implementation owns the session state machine. It is the single writer of
// session transitions and of the credential store; the UI only observes.
type Implementation struct {
	client   backendClient
	store    credentialStore
	validate *validator.Validate

	mu         sync.Mutex
	state      State
	token      string
	user       domain.User
	onboarding *domain.OnboardingData
	// gen is bumped whenever the session identity changes; responses started
	// under an older gen are dropped instead of applied.
	gen uint64

	requesting bool
	verifying  bool
	committing bool

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

func NewImplementation(client backendClient, store credentialStore) *Implementation {
	return &Implementation{
		client:   client,
		store:    store,
		validate: validator.New(),
		state:    Initializing,
		subs:     map[int]func(Snapshot){},
	}
}

// Token implements the client's token source.
func (i *Implementation) Token(_ context.Context) string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.token
}

func (i *Implementation) Snapshot() Snapshot {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.snapshotLocked()
}

func (i *Implementation) snapshotLocked() Snapshot {
	snap := Snapshot{State: i.state}
	if i.state == AuthenticatedPendingOnboarding || i.state == AuthenticatedOnboarded {
		u := i.user
		snap.User = &u
	}
	if i.state == AuthenticatedOnboarded {
		snap.Onboarding = i.onboarding
	}
	return snap
}

// Subscribe registers an observer; the current snapshot is delivered
// immediately. The returned func cancels the subscription.
func (i *Implementation) Subscribe(fn func(Snapshot)) func() {
	i.subMu.Lock()
	id := i.nextSub
	i.nextSub++
	i.subs[id] = fn
	i.subMu.Unlock()

	fn(i.Snapshot())

	return func() {
		i.subMu.Lock()
		delete(i.subs, id)
		i.subMu.Unlock()
	}
}

func (i *Implementation) notify(snap Snapshot) {
	i.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(i.subs))
	for _, fn := range i.subs {
		fns = append(fns, fn)
	}
	i.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// apply runs mutate under the lock unless the session generation moved on
// since the request was issued, then notifies observers.
func (i *Implementation) apply(ctx context.Context, gen uint64, mutate func()) bool {
	i.mu.Lock()
	if i.gen != gen {
		i.mu.Unlock()
		logger.Debugf(ctx, "session: stale response ignored (gen %d, now %d)", gen, i.gen)
		return false
	}
	mutate()
	snap := i.snapshotLocked()
	i.mu.Unlock()

	i.notify(snap)
	return true
}

// Bootstrap derives the session state from the credential store and the
// backend. Every failure short of "profile not stored yet" resolves to
// Unauthenticated; the app starts either way.
func (i *Implementation) Bootstrap(ctx context.Context) (Snapshot, error) {
	i.mu.Lock()
	gen := i.gen
	i.mu.Unlock()

	creds, err := i.store.Load(ctx)
	if err != nil || creds.Token == "" {
		if err != nil && !errors.Is(err, domain.ErrNoCredentials) {
			logger.Errorf(ctx, "session: credential load failed, treating as absent: %v", err)
		}
		i.apply(ctx, gen, func() {
			i.resetLocked()
		})
		return i.Snapshot(), nil
	}

	// the cached token must be visible before the first authenticated request
	if !i.apply(ctx, gen, func() {
		i.token = creds.Token
		i.user = creds.User
	}) {
		return i.Snapshot(), nil
	}

	user, err := i.client.CurrentUser(ctx)
	if err != nil {
		return i.failClosed(ctx, gen, err), nil
	}

	onboarding, err := i.lookupOnboarding(ctx)
	if err != nil {
		return i.failClosed(ctx, gen, err), nil
	}

	// persist the refreshed snapshot only when the result is still current,
	// so a racing logout is never overwritten
	if i.apply(ctx, gen, func() {
		i.user = user
		i.setOnboardingLocked(onboarding)
	}) {
		if err = i.persistIfCurrent(ctx, gen, domain.Credentials{Token: creds.Token, User: user}); err != nil {
			logger.Errorf(ctx, "session: credential refresh failed: %v", err)
		}
	}

	return i.Snapshot(), nil
}

// failClosed drops everything rather than starting half-authenticated.
func (i *Implementation) failClosed(ctx context.Context, gen uint64, cause error) Snapshot {
	logger.Errorf(ctx, "session: bootstrap failed, clearing credentials: %v", cause)
	if err := i.store.Clear(ctx); err != nil {
		logger.Errorf(ctx, "session: credential clear failed: %v", err)
	}
	i.apply(ctx, gen, func() {
		i.resetLocked()
	})
	return i.Snapshot()
}

// persistIfCurrent writes creds, then undoes the write when the session moved
// on while the write was in flight: a logout racing the save must win.
func (i *Implementation) persistIfCurrent(ctx context.Context, gen uint64, creds domain.Credentials) error {
	if err := i.store.Save(ctx, creds); err != nil {
		return err
	}

	i.mu.Lock()
	stale := i.gen != gen
	i.mu.Unlock()

	if stale {
		logger.Debugf(ctx, "session: discarding credentials written by a stale request")
		return i.store.Clear(ctx)
	}

	return nil
}

func (i *Implementation) resetLocked() {
	i.state = Unauthenticated
	i.token = ""
	i.user = domain.User{}
	i.onboarding = nil
}

func (i *Implementation) setOnboardingLocked(data *domain.OnboardingData) {
	// nothing to derive once the session is gone
	if i.state == Unauthenticated {
		return
	}
	if data == nil {
		i.state = AuthenticatedPendingOnboarding
		i.onboarding = nil
		return
	}
	i.state = AuthenticatedOnboarded
	i.onboarding = data
}

// lookupOnboarding maps the 404-as-absence rule: nil data without error means
// "not onboarded yet".
func (i *Implementation) lookupOnboarding(ctx context.Context) (*domain.OnboardingData, error) {
	data, err := i.client.GetOnboarding(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &data, nil
}

func (i *Implementation) validatePhone(phoneNumber string) error {
	if err := i.validate.Var(phoneNumber, phoneRule); err != nil {
		return serviceerrors.NewValidation().Wrap(domain.ErrValidation, "phone number must be 10 digits")
	}
	return nil
}

func (i *Implementation) beginChallenge() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.requesting {
		return serviceerrors.NewAlreadyInProgress().Wrap(domain.ErrAlreadyInProgress, "sms challenge")
	}
	i.requesting = true
	return nil
}

func (i *Implementation) endChallenge() {
	i.mu.Lock()
	i.requesting = false
	i.mu.Unlock()
}

// Login requests an SMS challenge for an existing account. Session state does
// not change; no token is issued yet.
func (i *Implementation) Login(ctx context.Context, phoneNumber string) (domain.SMSChallenge, error) {
	if err := i.validatePhone(phoneNumber); err != nil {
		return domain.SMSChallenge{}, err
	}
	if err := i.beginChallenge(); err != nil {
		return domain.SMSChallenge{}, err
	}
	defer i.endChallenge()

	return i.client.Login(ctx, phoneNumber)
}

// Register requests an SMS challenge for a new account.
func (i *Implementation) Register(ctx context.Context, reg domain.Registration) (domain.SMSChallenge, error) {
	if err := i.validate.Struct(reg); err != nil {
		return domain.SMSChallenge{}, serviceerrors.NewValidation().
			Wrap(domain.ErrValidation, err.Error())
	}
	if err := i.beginChallenge(); err != nil {
		return domain.SMSChallenge{}, err
	}
	defer i.endChallenge()

	return i.client.Register(ctx, reg)
}

// ResendSMS requests a fresh code for a pending challenge.
func (i *Implementation) ResendSMS(ctx context.Context, phoneNumber string) (domain.SMSChallenge, error) {
	if err := i.validatePhone(phoneNumber); err != nil {
		return domain.SMSChallenge{}, err
	}
	if err := i.beginChallenge(); err != nil {
		return domain.SMSChallenge{}, err
	}
	defer i.endChallenge()

	return i.client.ResendSMS(ctx, phoneNumber)
}

// VerifySMS exchanges the code for a token+user pair, persists both, then the
// onboarding lookup decides which authenticated state follows. A rejected
// code leaves the session untouched.
func (i *Implementation) VerifySMS(ctx context.Context, phoneNumber, code string, extras *domain.Registration) (Snapshot, error) {
	if err := i.validatePhone(phoneNumber); err != nil {
		return i.Snapshot(), err
	}
	if err := i.validate.Var(code, codeRule); err != nil {
		return i.Snapshot(), serviceerrors.NewValidation().
			Wrap(domain.ErrValidation, "verification code must be 6 digits")
	}

	i.mu.Lock()
	if i.verifying {
		i.mu.Unlock()
		return i.Snapshot(), serviceerrors.NewAlreadyInProgress().
			Wrap(domain.ErrAlreadyInProgress, "verify sms")
	}
	i.verifying = true
	gen := i.gen
	i.mu.Unlock()
	defer func() {
		i.mu.Lock()
		i.verifying = false
		i.mu.Unlock()
	}()

	res, err := i.client.VerifySMS(ctx, phoneNumber, code, extras)
	if err != nil {
		return i.Snapshot(), err
	}

	// new identity: bump gen so responses of the old one are dropped. authGen
	// is captured under the same lock as the bump, so a logout landing later
	// invalidates both the store write and the onboarding apply below.
	var authGen uint64
	if !i.apply(ctx, gen, func() {
		i.gen++
		authGen = i.gen
		i.token = res.Token
		i.user = res.User
		i.state = AuthenticatedPendingOnboarding
		i.onboarding = nil
	}) {
		return i.Snapshot(), nil
	}

	if err = i.persistIfCurrent(ctx, authGen, domain.Credentials{Token: res.Token, User: res.User}); err != nil {
		return i.Snapshot(), err
	}

	onboarding, err := i.lookupOnboarding(ctx)
	if err != nil {
		// authenticated either way; onboarding state stays pending
		return i.Snapshot(), err
	}

	i.apply(ctx, authGen, func() {
		i.setOnboardingLocked(onboarding)
	})

	return i.Snapshot(), nil
}

// Logout clears the credential store and all cached session state. The store
// is cleared even when something else fails; stale credentials never survive.
func (i *Implementation) Logout(ctx context.Context) error {
	clearErr := i.store.Clear(ctx)

	i.mu.Lock()
	i.gen++
	gen := i.gen
	i.mu.Unlock()

	i.apply(ctx, gen, func() {
		i.resetLocked()
	})

	return clearErr
}

// ForceLogout is the hook the HTTP client invokes on an observed 401.
func (i *Implementation) ForceLogout(ctx context.Context) {
	if err := i.Logout(ctx); err != nil {
		logger.Errorf(ctx, "session: forced logout: %v", err)
	}
}

// RefreshUser re-fetches the user resource; the state the session is in does
// not change.
func (i *Implementation) RefreshUser(ctx context.Context) (domain.User, error) {
	snap := i.Snapshot()
	if !snap.IsAuthenticated() {
		return domain.User{}, serviceerrors.NewUnauthorized().
			Wrap(domain.ErrUnauthorized, "refresh user")
	}

	i.mu.Lock()
	gen := i.gen
	token := i.token
	i.mu.Unlock()

	user, err := i.client.CurrentUser(ctx)
	if err != nil {
		return domain.User{}, err
	}

	if !i.apply(ctx, gen, func() {
		i.user = user
	}) {
		return domain.User{}, serviceerrors.NewUnauthorized().
			Wrap(domain.ErrUnauthorized, "session changed during refresh")
	}

	if err = i.persistIfCurrent(ctx, gen, domain.Credentials{Token: token, User: user}); err != nil {
		return domain.User{}, err
	}

	return user, nil
}

// RefreshOnboarding re-runs the profile lookup without touching
// authentication. Absence truthfully moves the session back to pending.
func (i *Implementation) RefreshOnboarding(ctx context.Context) (Snapshot, error) {
	snap := i.Snapshot()
	if !snap.IsAuthenticated() {
		return snap, serviceerrors.NewUnauthorized().
			Wrap(domain.ErrUnauthorized, "refresh onboarding")
	}

	i.mu.Lock()
	gen := i.gen
	i.mu.Unlock()

	onboarding, err := i.lookupOnboarding(ctx)
	if err != nil {
		return i.Snapshot(), err
	}

	i.apply(ctx, gen, func() {
		i.setOnboardingLocked(onboarding)
	})

	return i.Snapshot(), nil
}

// CommitOnboarding sends the accumulated draft; at most one commit may be in
// flight. A failed commit leaves both the state and onboarding data untouched.
func (i *Implementation) CommitOnboarding(ctx context.Context, profile domain.OnboardingProfile, availability []domain.AvailabilitySlot) (domain.OnboardingData, error) {
	snap := i.Snapshot()
	if !snap.IsAuthenticated() {
		return domain.OnboardingData{}, serviceerrors.NewUnauthorized().
			Wrap(domain.ErrUnauthorized, "commit onboarding")
	}

	i.mu.Lock()
	if i.committing {
		i.mu.Unlock()
		return domain.OnboardingData{}, serviceerrors.NewAlreadyInProgress().
			Wrap(domain.ErrAlreadyInProgress, "commit onboarding")
	}
	i.committing = true
	gen := i.gen
	i.mu.Unlock()
	defer func() {
		i.mu.Lock()
		i.committing = false
		i.mu.Unlock()
	}()

	data, err := i.client.SaveOnboarding(ctx, profile, availability)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.OnboardingData{}, serviceerrors.NewNotFound().
				Wrap(domain.ErrOnboardingUnavailable, "onboarding endpoint")
		}
		return domain.OnboardingData{}, err
	}

	i.apply(ctx, gen, func() {
		i.setOnboardingLocked(&data)
	})

	return data, nil
}

// RestartOnboarding is a local soft reset: the wizard can be re-run while the
// server-side profile stays intact until the next commit overwrites it.
func (i *Implementation) RestartOnboarding(ctx context.Context) Snapshot {
	i.mu.Lock()
	if i.state == AuthenticatedOnboarded {
		i.state = AuthenticatedPendingOnboarding
		i.onboarding = nil
	}
	snap := i.snapshotLocked()
	i.mu.Unlock()

	i.notify(snap)
	logger.Debugf(ctx, "session: onboarding restarted")

	return snap
}
