package credentials

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/codebycinar/lgs-yks-mobile-app/internal/domain"
)

// Store keeps the bearer token and last-known user snapshot in a single file
// surviving process restarts. With a seal key the file is AEAD-sealed,
// otherwise plain JSON.
type Store struct {
	mu      sync.Mutex
	path    string
	sealKey []byte
}

func NewStore(path string, sealKeyHex string) (*Store, error) {
	s := &Store{path: path}

	if sealKeyHex != "" {
		key, err := hex.DecodeString(sealKeyHex)
		if err != nil {
			return nil, fmt.Errorf("seal key hex decode error: %w", err)
		}
		if len(key) != chacha20poly1305.KeySize {
			return nil, fmt.Errorf("seal key must be %d bytes (hex %d chars)",
				chacha20poly1305.KeySize, chacha20poly1305.KeySize*2)
		}
		s.sealKey = key
	}

	return s, nil
}

func (s *Store) Load(_ context.Context) (domain.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Credentials{}, domain.ErrNoCredentials
		}
		return domain.Credentials{}, err
	}

	if s.sealKey != nil {
		blob, err = open(s.sealKey, blob)
		if err != nil {
			return domain.Credentials{}, err
		}
	}

	var c domain.Credentials
	if err = json.Unmarshal(blob, &c); err != nil {
		return domain.Credentials{}, err
	}
	if c.Token == "" {
		return domain.Credentials{}, domain.ErrNoCredentials
	}

	return c, nil
}

func (s *Store) Save(_ context.Context, c domain.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := json.Marshal(c)
	if err != nil {
		return err
	}

	if s.sealKey != nil {
		blob, err = seal(s.sealKey, blob)
		if err != nil {
			return err
		}
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err = os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}

	// write-then-rename, a torn write must not corrupt the stored session
	tmp := s.path + ".tmp"
	if err = os.WriteFile(tmp, blob, 0600); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}

func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}
