package credentials

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// seal encrypts plain with XChaCha20-Poly1305, nonce prefixed to the output.
func seal(key, plain []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err = rand.Read(nonce); err != nil {
		return nil, err
	}

	return aead.Seal(nonce, nonce, plain, nil), nil
}

func open(key, blob []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}

	if len(blob) < aead.NonceSize() {
		return nil, fmt.Errorf("sealed credentials too short")
	}

	nonce, sealed := blob[:aead.NonceSize()], blob[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("credentials unseal error: %w", err)
	}

	return plain, nil
}
