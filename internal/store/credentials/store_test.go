package credentials

import (
	"context"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/codebycinar/lgs-yks-mobile-app/internal/domain"
)

func testCredentials() domain.Credentials {
	return domain.Credentials{
		Token: "tok-1",
		User: domain.User{
			ID:          "9",
			PhoneNumber: "5551234567",
			Name:        "Ayse",
		},
	}
}

func TestLoadMissingFile(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "credentials.json"), "")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	_, err = store.Load(context.Background())
	if !errors.Is(err, domain.ErrNoCredentials) {
		t.Fatalf("expected ErrNoCredentials, got %v", err)
	}
}

func TestSaveLoadClearPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.json")
	store, err := NewStore(path, "")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	want := testCredentials()
	if err = store.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	if err = store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err = store.Load(ctx); !errors.Is(err, domain.ErrNoCredentials) {
		t.Fatalf("expected ErrNoCredentials after clear, got %v", err)
	}

	// clearing twice is fine
	if err = store.Clear(ctx); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestSaveLoadSealed(t *testing.T) {
	key := hex.EncodeToString(make([]byte, 32))
	path := filepath.Join(t.TempDir(), "credentials.bin")
	store, err := NewStore(path, key)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	want := testCredentials()
	if err = store.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	// the file on disk must not contain the token in the clear
	blob, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if len(blob) == 0 || string(blob[:1]) == "{" {
		t.Fatalf("sealed file looks like plain JSON")
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestLoadSealedWithWrongKeyFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.bin")
	ctx := context.Background()

	writer, err := NewStore(path, hex.EncodeToString(make([]byte, 32)))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err = writer.Save(ctx, testCredentials()); err != nil {
		t.Fatalf("save: %v", err)
	}

	other := make([]byte, 32)
	other[0] = 1
	reader, err := NewStore(path, hex.EncodeToString(other))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err = reader.Load(ctx); err == nil {
		t.Fatal("expected load with the wrong key to fail")
	}
}

func TestNewStoreRejectsBadKeys(t *testing.T) {
	if _, err := NewStore("credentials.json", "zz"); err == nil {
		t.Fatal("expected non-hex key to be rejected")
	}
	if _, err := NewStore("credentials.json", "abcd"); err == nil {
		t.Fatal("expected short key to be rejected")
	}
}

func TestEmptyTokenIsNoCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store, err := NewStore(path, "")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	if err = store.Save(ctx, domain.Credentials{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err = store.Load(ctx); !errors.Is(err, domain.ErrNoCredentials) {
		t.Fatalf("expected ErrNoCredentials, got %v", err)
	}
}
