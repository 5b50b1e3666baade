package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestL_BeforeInitializeIsNoop(t *testing.T) {
	// Must not panic or write anywhere.
	L(CategoryAPI).Info("dropped")
}

func TestInitialize_WritesToFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "logs", "signify.log")

	require.NoError(t, Initialize("debug", file))
	defer func() { require.NoError(t, Initialize("info", "")) }()

	L(CategoryAPI).Info("request sent")
	L(CategorySession).Debug("session loaded")
	Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "request sent")
	assert.Contains(t, content, `"api"`)
	assert.Contains(t, content, "session loaded")
}

func TestInitialize_UnknownLevelFallsBackToInfo(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "signify.log")

	require.NoError(t, Initialize("chatty", file))
	defer func() { require.NoError(t, Initialize("info", "")) }()

	L(CategoryUI).Debug("suppressed at info")
	L(CategoryUI).Info("kept")
	Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "suppressed at info"))
	assert.Contains(t, string(data), "kept")
}

func TestL_SameCategoryReturnsSameLogger(t *testing.T) {
	a := L(CategoryIntake)
	b := L(CategoryIntake)
	assert.Same(t, a, b)
}
