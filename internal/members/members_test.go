package members

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	r := Seed()

	profile, ok := r.Verify("12345")
	assert.True(t, ok)
	assert.Equal(t, "Nguyễn Văn An", profile.Name)
	assert.Equal(t, "Gold", profile.Club)

	_, ok = r.Verify("54321")
	assert.True(t, ok)
}

func TestVerifyNormalizes(t *testing.T) {
	r := Seed()

	_, ok := r.Verify("  12345  ")
	assert.True(t, ok)
}

func TestVerifyRejectsUnknown(t *testing.T) {
	r := Seed()

	for _, code := range []string{"", "  ", "99999", "1234", "123456"} {
		_, ok := r.Verify(code)
		assert.False(t, ok, "code %q must be invalid", code)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "members.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"code": "AB100", "name": "Lê Minh", "club": "Platinum"}
	]`), 0o644))

	r, err := Load(path)
	require.NoError(t, err)

	profile, ok := r.Verify("ab100")
	assert.True(t, ok)
	assert.Equal(t, "Platinum", profile.Club)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
