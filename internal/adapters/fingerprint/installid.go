package fingerprint

// Package fingerprint supplies the stable per-device identifier the
// backend correlates accounts with. The identifier is a random id
// generated on first use and persisted under the user config directory,
// so it survives restarts the way a browser install id would.

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	apperrors "github.com/spinwheel/gatekeeper/internal/errors"
)

const (
	appDirName    = "gatekeeper"
	installIDFile = "device_id"
	dirMode       = 0o700
	fileMode      = 0o600
)

// Config controls the install-id source.
type Config struct {
	// Path overrides the install-id file location. Empty selects
	// <user config dir>/gatekeeper/device_id.
	Path string
}

// Source implements ports.FingerprintSource with a file-backed install id.
// The id is computed exactly once per process; every call returns the
// same value. Any filesystem error is fatal to the session flow.
type Source struct {
	path string

	once sync.Once
	id   string
	err  error
}

// NewSource creates an install-id source.
func NewSource(cfg Config) *Source {
	return &Source{path: cfg.Path}
}

// Fingerprint returns the stable install id, creating and persisting it
// on first use.
func (s *Source) Fingerprint(_ context.Context) (string, error) {
	s.once.Do(func() {
		s.id, s.err = s.loadOrCreate()
	})
	return s.id, s.err
}

func (s *Source) loadOrCreate() (string, error) {
	path := s.path
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return "", apperrors.Wrap(err, apperrors.ErrCodeFingerprint, "locate user config dir")
		}
		path = filepath.Join(configDir, appDirName, installIDFile)
	}

	data, err := os.ReadFile(path)
	if err == nil {
		id := strings.TrimSpace(string(data))
		if id == "" {
			return "", apperrors.Fingerprintf("install id file %s is empty", path)
		}
		return id, nil
	}
	if !os.IsNotExist(err) {
		return "", apperrors.Wrapf(err, apperrors.ErrCodeFingerprint, "read install id %s", path)
	}

	id := uuid.NewString()
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return "", apperrors.Wrapf(err, apperrors.ErrCodeFingerprint, "create install id dir for %s", path)
	}
	if err := os.WriteFile(path, []byte(id+"\n"), fileMode); err != nil {
		return "", apperrors.Wrapf(err, apperrors.ErrCodeFingerprint, "write install id %s", path)
	}
	return id, nil
}
