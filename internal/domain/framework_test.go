package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameworkCatalog(t *testing.T) {
	catalog := FrameworkCatalog()
	require.Len(t, catalog, 6)

	keys := make([]string, 0, len(catalog))
	for _, f := range catalog {
		keys = append(keys, f.Key)
		assert.NotEmpty(t, f.Name)
		assert.NotEmpty(t, f.Author)
		assert.NotEmpty(t, f.Icon)
		assert.NotEmpty(t, f.Color)
		assert.NotEmpty(t, f.Fields)
	}
	assert.Equal(t, []string{
		FrameworkEisenhower,
		FrameworkTimeboxing,
		FrameworkImpactEffort,
		FrameworkKanban,
		FrameworkStopDoing,
		FrameworkPareto,
	}, keys)

	// callers cannot mutate the catalog through the returned slice
	catalog[0].Name = "tampered"
	fresh, ok := FrameworkByKey(FrameworkEisenhower)
	require.True(t, ok)
	assert.Equal(t, "Eisenhower Matrix", fresh.Name)
}

func TestValidFrameworkKey(t *testing.T) {
	assert.True(t, ValidFrameworkKey("kanban"))
	assert.False(t, ValidFrameworkKey("gtd"))
	assert.False(t, ValidFrameworkKey(""))
}

func TestValidateFrameworkPayload(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		payload map[string]any
		wantErr bool
	}{
		{"valid enum value", "kanban", map[string]any{"column": "doing"}, false},
		{"invalid enum value", "kanban", map[string]any{"column": "launchpad"}, true},
		{"unknown field", "kanban", map[string]any{"velocity": "high"}, true},
		{"unknown framework", "gtd", map[string]any{"column": "doing"}, true},
		{"numeric field", "timeboxing", map[string]any{"minutes": 25.0}, false},
		{"negative number", "timeboxing", map[string]any{"minutes": -1.0}, true},
		{"number as string", "timeboxing", map[string]any{"minutes": "25"}, true},
		{"enum as number", "timeboxing", map[string]any{"status": 3.0}, true},
		{"multiple fields", "timeboxing", map[string]any{"minutes": 15.0, "status": "running"}, false},
		{"empty payload", "pareto", map[string]any{}, false},
		{"eisenhower quadrant", "eisenhower", map[string]any{"quadrant": "delegate"}, false},
		{"impact effort quadrant", "impact_effort", map[string]any{"quadrant": "quick_wins"}, false},
		{"stop doing category", "stop_doing", map[string]any{"category": "stop"}, false},
		{"pareto category", "pareto", map[string]any{"category": "vital_few"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFrameworkPayload(tt.key, tt.payload)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
