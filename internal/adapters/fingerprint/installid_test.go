package fingerprint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spinwheel/gatekeeper/internal/errors"
)

func TestSource_Fingerprint_CreatesAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "device_id")
	source := NewSource(Config{Path: path})

	id, err := source.Fingerprint(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, parsed.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, id+"\n", string(data))
}

func TestSource_Fingerprint_StableWithinProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device_id")
	source := NewSource(Config{Path: path})

	first, err := source.Fingerprint(context.Background())
	require.NoError(t, err)

	second, err := source.Fingerprint(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSource_Fingerprint_StableAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device_id")

	first, err := NewSource(Config{Path: path}).Fingerprint(context.Background())
	require.NoError(t, err)

	second, err := NewSource(Config{Path: path}).Fingerprint(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSource_Fingerprint_ReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device_id")
	require.NoError(t, os.WriteFile(path, []byte("  existing-id \n"), 0o600))

	id, err := NewSource(Config{Path: path}).Fingerprint(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "existing-id", id)
}

func TestSource_Fingerprint_EmptyFileIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device_id")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0o600))

	source := NewSource(Config{Path: path})
	_, err := source.Fingerprint(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsFingerprint(err))

	// The error sticks for the rest of the process.
	_, err = source.Fingerprint(context.Background())
	require.Error(t, err)
}

func TestSource_Fingerprint_UnwritableDirIsError(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}

	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o700) })

	source := NewSource(Config{Path: filepath.Join(dir, "sub", "device_id")})
	_, err := source.Fingerprint(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsFingerprint(err))
}
