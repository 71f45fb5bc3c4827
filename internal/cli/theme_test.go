package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickOptions_KeepsHiddenPresetIDs(t *testing.T) {
	app := testApp(t)
	visible, err := app.Explorer.VisibleNodes(context.Background())
	require.NoError(t, err)
	require.Len(t, visible, 8)

	options, unshown := pickOptions(visible, app.Explorer.Model(), []int{0, 5, 42, 5})

	require.Len(t, options, 9, "visible nodes plus the hidden preset id once")
	assert.Equal(t, 0, options[0].Value)
	last := options[len(options)-1]
	assert.Equal(t, 5, last.Value)
	assert.Equal(t, "#5   Interrogatories (hidden)", last.Key)
	assert.Equal(t, []int{42}, unshown, "unknown ids are handed back for Estimate to report")
}

func TestPickOptions_NoPreset(t *testing.T) {
	app := testApp(t)
	visible, err := app.Explorer.VisibleNodes(context.Background())
	require.NoError(t, err)

	options, unshown := pickOptions(visible, app.Explorer.Model(), nil)
	assert.Len(t, options, len(visible))
	assert.Empty(t, unshown)
	assert.Equal(t, "#3   Motion to Dismiss?", options[3].Key)
}
