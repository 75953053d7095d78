package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded := expandPath("~/.screenscribe/focus_log.csv")
	assert.Equal(t, filepath.Join(home, ".screenscribe", "focus_log.csv"), expanded)

	abs := expandPath("/tmp/report")
	assert.Equal(t, "/tmp/report", abs)
}

func TestRootCommandWiring(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	joined := strings.Join(names, " ")
	assert.Contains(t, joined, "focus")
	assert.Contains(t, joined, "cleanup")

	flag := rootCmd.Flags().Lookup("min-minutes")
	require.NotNil(t, flag)
	assert.Equal(t, "1", flag.DefValue)

	flag = rootCmd.Flags().Lookup("top")
	require.NotNil(t, flag)
	assert.Equal(t, "20", flag.DefValue)
}
