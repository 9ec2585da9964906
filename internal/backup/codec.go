// Package backup encodes ledger bundles and writes them to a local directory
// or an S3-compatible bucket.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// ErrInvalidToken is returned when an encrypted bundle fails verification,
// usually because it was sealed with a different key.
var ErrInvalidToken = errors.New("backup token is invalid or was encrypted with another key")

// ErrMalformed is returned when a bundle is not valid JSON.
var ErrMalformed = errors.New("backup is malformed")

// GenerateKey returns a new random fernet key in its base64 form.
func GenerateKey() (string, error) {
	var k fernet.Key
	if err := k.Generate(); err != nil {
		return "", err
	}
	return k.Encode(), nil
}

// Encode serialises b as JSON. With a non-empty key the JSON is sealed in a
// fernet token.
func Encode(b model.Backup, key string) ([]byte, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal backup: %w", err)
	}
	if key == "" {
		return data, nil
	}

	k, err := fernet.DecodeKey(key)
	if err != nil {
		return nil, fmt.Errorf("invalid backup key: %w", err)
	}
	tok, err := fernet.EncryptAndSign(data, k)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt backup: %w", err)
	}
	return tok, nil
}

// Decode parses a bundle produced by Encode. Plain JSON is accepted with or
// without a key; a fernet token needs the key it was sealed with.
func Decode(data []byte, key string) (model.Backup, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return model.Backup{}, fmt.Errorf("%w: empty bundle", ErrMalformed)
	}

	if !IsPlain(data) {
		if key == "" {
			return model.Backup{}, apperrors.ErrBackupKeyRequired
		}
		k, err := fernet.DecodeKey(key)
		if err != nil {
			return model.Backup{}, fmt.Errorf("invalid backup key: %w", err)
		}
		msg := fernet.VerifyAndDecrypt(data, 0, []*fernet.Key{k})
		if msg == nil {
			return model.Backup{}, ErrInvalidToken
		}
		data = msg
	}

	var b model.Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return model.Backup{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if b.Version != model.BackupVersion {
		return model.Backup{}, fmt.Errorf("%w: %d", apperrors.ErrUnsupportedBackupVersion, b.Version)
	}
	if b.Assets == nil {
		b.Assets = []model.Asset{}
	}
	if b.Transactions == nil {
		b.Transactions = []model.Transaction{}
	}
	return b, nil
}

// IsPlain reports whether data is an unencrypted JSON bundle.
func IsPlain(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '{'
}

// FileName returns a unique object name for a bundle taken at t.
func FileName(t time.Time, encrypted bool) string {
	ext := "json"
	if encrypted {
		ext = "fernet"
	}
	return fmt.Sprintf("ledger-%s-%s.%s", t.UTC().Format("20060102T150405Z"), uuid.NewString()[:8], ext)
}
