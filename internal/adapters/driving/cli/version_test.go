package cli

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
	assert.Equal(t, "Print the version number", versionCmd.Short)
}

func TestVersionCmd_Output(t *testing.T) {
	setupTestServices(t)
	originalVersion := version
	version = "1.0.0-test"
	t.Cleanup(func() { version = originalVersion })

	out, err := executeCommand("version")

	require.NoError(t, err)
	assert.Contains(t, out, "notebook 1.0.0-test")
	assert.Contains(t, out, runtime.GOOS+"/"+runtime.GOARCH)
}

func TestVersionCmd_RejectsArgs(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand("version", "extra")

	assert.Error(t, err)
}

func TestSetVersion(t *testing.T) {
	originalVersion := version
	t.Cleanup(func() { version = originalVersion })

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)

	SetVersion("")
	assert.Equal(t, "1.2.3", version, "empty version is ignored")
}
