package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func activity(id, taskType string) Activity {
	return Activity{
		ID:          id,
		DisplayName: id,
		Category:    "chat",
		TaskType:    taskType,
		Timeout:     "5s",
	}
}

// ==========================
// Validate
// ==========================

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		reg     ActivityRegistry
		wantErr string
	}{
		{
			name: "valid",
			reg:  ActivityRegistry{Activities: []Activity{activity("detect-intent", "detect-intent"), activity("resolve-data", "resolve-data")}},
		},
		{
			name:    "empty",
			reg:     ActivityRegistry{},
			wantErr: "no activities",
		},
		{
			name:    "duplicate id",
			reg:     ActivityRegistry{Activities: []Activity{activity("a", "a"), activity("a", "b")}},
			wantErr: "duplicate activity ID",
		},
		{
			name:    "duplicate task type",
			reg:     ActivityRegistry{Activities: []Activity{activity("a", "x"), activity("b", "x")}},
			wantErr: "duplicate task type",
		},
		{
			name:    "missing category",
			reg:     ActivityRegistry{Activities: []Activity{{ID: "a", DisplayName: "A", TaskType: "a"}}},
			wantErr: "Category",
		},
		{
			name: "bad timeout",
			reg: ActivityRegistry{Activities: []Activity{func() Activity {
				a := activity("a", "a")
				a.Timeout = "soon"
				return a
			}()}},
			wantErr: "invalid timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// ==========================
// Lookups
// ==========================

func TestTaskTypesAndMissing(t *testing.T) {
	reg := ActivityRegistry{Activities: []Activity{activity("b", "survey-stats"), activity("a", "detect-intent")}}

	assert.Equal(t, []string{"detect-intent", "survey-stats"}, reg.TaskTypes())
	assert.Equal(t, []string{"search-faq"}, reg.Missing([]string{"detect-intent", "search-faq"}))
	assert.Empty(t, reg.Missing([]string{"survey-stats"}))

	found, ok := reg.Find("survey-stats")
	assert.True(t, ok)
	assert.Equal(t, "b", found.ID)
}

func TestSetStatus(t *testing.T) {
	reg := ActivityRegistry{Activities: []Activity{activity("a", "a")}}

	require.NoError(t, reg.SetStatus("a", StatusVerified))
	assert.Equal(t, StatusVerified, reg.Activities[0].ImplementationStatus)
	assert.Error(t, reg.SetStatus("missing", StatusCompleted))
}

// ==========================
// Persistence
// ==========================

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "registry.json")
	reg := &ActivityRegistry{Version: "1.0.0", Activities: []Activity{activity("a", "a")}}

	require.NoError(t, reg.Save(path))
	assert.NotEmpty(t, reg.LastUpdated)

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, reg.Activities, loaded.Activities)
	assert.Equal(t, "1.0.0", loaded.Version)
}

func TestLoadRegistry_Errors(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "absent.json"))
	assert.True(t, os.IsNotExist(err))

	_, err = Parse([]byte(`{"activities": [`))
	assert.Error(t, err)
}

func TestShippedRegistry(t *testing.T) {
	reg, err := LoadRegistry(filepath.Join("..", "..", "configs", "activity-registry.json"))
	require.NoError(t, err)

	require.NoError(t, reg.Validate())
	assert.Equal(t, []string{
		"analyze-sentiment", "answer-question", "detect-intent", "generate-response",
		"resolve-data", "search-faq", "submit-survey", "survey-stats",
	}, reg.TaskTypes())
}
