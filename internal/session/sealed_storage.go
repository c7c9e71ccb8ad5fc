package session

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// SealedStorage encrypts values with XChaCha20-Poly1305 before handing them to the wrapped
// Storage. The entry key is bound as additional data so values cannot be swapped between keys.
type SealedStorage struct {
	inner  Storage
	aead   cipher.AEAD
	logger *zap.Logger
}

// NewSealedStorage derives a 256-bit key from passphrase with HKDF-SHA256.
func NewSealedStorage(inner Storage, passphrase string, logger *zap.Logger) (*SealedStorage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if passphrase == "" {
		return nil, errors.New("session: empty sealing passphrase")
	}
	key := make([]byte, chacha20poly1305.KeySize)
	kdf := hkdf.New(sha256.New, []byte(passphrase), nil, []byte("transitpay-session-v1"))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("session: derive key: %w", err)
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	return &SealedStorage{inner: inner, aead: aead, logger: logger}, nil
}

// Get opens the stored value. A value sealed under another passphrase, or never sealed at
// all, reads as absent so the next login overwrites it.
func (s *SealedStorage) Get(ctx context.Context, key string) (string, bool, error) {
	raw, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}
	plain, err := s.open(key, raw)
	if err != nil {
		s.logger.Warn("ignoring unreadable session value", zap.String("key", key), zap.Error(err))
		return "", false, nil
	}
	return plain, true, nil
}

func (s *SealedStorage) open(key, raw string) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("decode sealed value: %w", err)
	}
	if len(blob) < s.aead.NonceSize()+s.aead.Overhead() {
		return "", errors.New("sealed value too short")
	}
	nonce, ciphertext := blob[:s.aead.NonceSize()], blob[s.aead.NonceSize():]
	plain, err := s.aead.Open(nil, nonce, ciphertext, []byte(key))
	if err != nil {
		return "", errors.New("sealed value cannot be opened with this key")
	}
	return string(plain), nil
}

// Set seals value with a fresh random nonce.
func (s *SealedStorage) Set(ctx context.Context, key, value string) error {
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(value)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return err
	}
	blob := s.aead.Seal(nonce, nonce, []byte(value), []byte(key))
	return s.inner.Set(ctx, key, base64.StdEncoding.EncodeToString(blob))
}

// Delete passes through.
func (s *SealedStorage) Delete(ctx context.Context, keys ...string) error {
	return s.inner.Delete(ctx, keys...)
}
