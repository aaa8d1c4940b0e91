package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rural-assist/internal/common/camunda"
	"rural-assist/pkg/registry"
)

// ==========================
// Test Helper Functions
// ==========================

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		registryPath = ""
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func writeRegistry(t *testing.T, activities ...registry.Activity) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "activity-registry.json")
	reg := &registry.ActivityRegistry{Version: "1.0.0", Activities: activities}
	require.NoError(t, reg.Save(path))
	return path
}

func activity(id string) registry.Activity {
	return registry.Activity{
		ID:                   id,
		DisplayName:          id,
		Category:             "chat",
		TaskType:             id,
		ImplementationStatus: registry.StatusCompleted,
		Timeout:              "10s",
	}
}

// ==========================
// Commands
// ==========================

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "rural-assist")
	assert.Contains(t, out, "Version:    dev")
}

func TestRegistryCommands(t *testing.T) {
	path := writeRegistry(t, activity("detect-intent"), activity("survey-stats"))

	out, err := run(t, "registry", "validate", "--registry", path)
	require.NoError(t, err)
	assert.Contains(t, out, "registry OK: 2 activities")

	out, err = run(t, "registry", "list", "--registry", path)
	require.NoError(t, err)
	assert.Contains(t, out, "detect-intent")
	assert.Contains(t, out, "survey-stats")

	_, err = run(t, "registry", "set-status", "survey-stats", registry.StatusVerified, "--registry", path)
	require.NoError(t, err)

	reg, err := registry.LoadRegistry(path)
	require.NoError(t, err)
	a, ok := reg.Find("survey-stats")
	require.True(t, ok)
	assert.Equal(t, registry.StatusVerified, a.ImplementationStatus)
}

func TestRegistryValidate_Duplicate(t *testing.T) {
	path := writeRegistry(t, activity("detect-intent"), activity("detect-intent"))

	_, err := run(t, "registry", "validate", "--registry", path)
	assert.Error(t, err)
}

// ==========================
// Worker registry check
// ==========================

func TestCheckRegistry(t *testing.T) {
	path := writeRegistry(t, activity("detect-intent"))

	assert.NoError(t, checkRegistry(path, map[string]camunda.JobHandler{"detect-intent": nil}))

	err := checkRegistry(path, map[string]camunda.JobHandler{"detect-intent": nil, "search-faq": nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search-faq")
}
