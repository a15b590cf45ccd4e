package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/codebycinar/lgs-yks-mobile-app/internal/clients/backend/mock"
	"github.com/codebycinar/lgs-yks-mobile-app/internal/config"
	"github.com/codebycinar/lgs-yks-mobile-app/internal/pkg/logger"
	"github.com/codebycinar/lgs-yks-mobile-app/internal/store/credentials"
	"github.com/codebycinar/lgs-yks-mobile-app/internal/usecases/session"

	backendhttp "github.com/codebycinar/lgs-yks-mobile-app/internal/clients/backend/http"
)

func main() {
	log.Fatal(initService())
}

func initService() error {
	ctx := context.Background()

	initValues, err := initFlags()
	if err != nil {
		return err
	}

	cfg, err := config.Load(initValues.configPath)
	if err != nil {
		return err
	}

	l, err := logger.New(cfg.Env)
	if err != nil {
		return err
	}
	logger.SetGlobal(l)
	ctx = logger.ToContext(ctx, l)

	store, err := credentials.NewStore(cfg.Storage.CredentialsPath, cfg.Storage.SealKeyHex)
	if err != nil {
		return err
	}

	var sess *session.Implementation
	if initValues.useMock {
		sess = session.NewImplementation(mock.NewClient(), store)
	} else {
		baseURL, err := url.Parse(cfg.Backend.BaseURL)
		if err != nil {
			return err
		}

		backend := backendhttp.NewClient(&http.Client{Timeout: cfg.Backend.Timeout}, *baseURL)
		sess = session.NewImplementation(backend, store)
		backend.SetTokenSource(sess)
		backend.OnUnauthorized(sess.ForceLogout)
	}

	// the navigation gate in the app observes exactly this
	unsubscribe := sess.Subscribe(func(snap session.Snapshot) {
		logger.Infof(ctx, "session state: %s", snap.State)
	})
	defer unsubscribe()

	snap, err := sess.Bootstrap(ctx)
	if err != nil {
		return err
	}

	fmt.Println("state:", snap.State)
	if snap.User != nil {
		fmt.Printf("user: %s %s (%s)\n", snap.User.Name, snap.User.Surname, snap.User.PhoneNumber)
	}
	if snap.Onboarding != nil {
		fmt.Println("goal:", snap.Onboarding.Profile.PrimaryGoal)
	}

	return nil
}
