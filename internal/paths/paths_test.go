package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDesktopToken(t *testing.T) {
	r := NewResolver()

	resolved, err := r.Resolve("{Desktop}/inbox")
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "Desktop")+"/inbox", resolved)
	assert.NotContains(t, resolved, "{Desktop}")
}

func TestResolveAppDataTokens(t *testing.T) {
	r := NewResolver()

	local, err := r.Resolve("{LocalAppData}/filerelay")
	require.NoError(t, err)
	cacheDir, err := os.UserCacheDir()
	require.NoError(t, err)
	assert.Equal(t, cacheDir+"/filerelay", local)

	roaming, err := r.Resolve("{AppData}/filerelay")
	require.NoError(t, err)
	configDir, err := os.UserConfigDir()
	require.NoError(t, err)
	assert.Equal(t, configDir+"/filerelay", roaming)
}

func TestResolveNoTokensUnchanged(t *testing.T) {
	r := NewResolver()

	resolved, err := r.Resolve("/var/spool/inbox")
	require.NoError(t, err)
	assert.Equal(t, "/var/spool/inbox", resolved)
}

func TestResolveUnknownTokenVerbatim(t *testing.T) {
	r := NewResolver()

	resolved, err := r.Resolve("{Unknown}/inbox")
	require.NoError(t, err)
	assert.Equal(t, "{Unknown}/inbox", resolved)
}

func TestResolveMultipleOccurrences(t *testing.T) {
	r := NewResolver()
	r.Register("{Spool}", func() (string, error) { return "/var/spool", nil })

	resolved, err := r.Resolve("{Spool}/in:{Spool}/out")
	require.NoError(t, err)
	assert.Equal(t, "/var/spool/in:/var/spool/out", resolved)
}

func TestRegisterCustomToken(t *testing.T) {
	r := NewResolver()
	r.Register("{Scratch}", func() (string, error) { return "/tmp/scratch", nil })

	resolved, err := r.Resolve("{Scratch}/drop")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/scratch/drop", resolved)
}

func TestResolverErrorPropagates(t *testing.T) {
	r := NewResolver()
	r.Register("{Broken}", func() (string, error) { return "", os.ErrPermission })

	_, err := r.Resolve("{Broken}/drop")
	assert.ErrorIs(t, err, os.ErrPermission)
}
