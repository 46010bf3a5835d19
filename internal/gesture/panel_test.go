package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanelBounds(t *testing.T) {
	p := NewPanel(800, 24)
	assert.Equal(t, -726.0, p.Min())
}

func TestPanelLiveAndCommit(t *testing.T) {
	p := NewPanel(800, 24)
	p.Begin()
	require.True(t, p.Update(-100))
	assert.Equal(t, -100.0, p.Offset())
	assert.Equal(t, 0.0, p.Committed())

	require.True(t, p.End(-100))
	assert.Equal(t, -100.0, p.Committed())
	assert.Equal(t, -100.0, p.Offset())
}

func TestPanelOutOfBoundsUpdateDropped(t *testing.T) {
	p := NewPanel(800, 24)
	p.Begin()
	p.Update(-50)
	assert.False(t, p.Update(30+50))
	assert.Equal(t, -50.0, p.Offset())
	assert.False(t, p.Update(-1000))
	assert.Equal(t, -50.0, p.Offset())

	p.End(-1000)
	assert.Equal(t, -726.0, p.Committed())

	p.Begin()
	p.End(5000)
	assert.Equal(t, 0.0, p.Committed())
}

func TestPanelIgnoresStrayEvents(t *testing.T) {
	p := NewPanel(800, 24)
	assert.False(t, p.Update(-10))
	assert.False(t, p.End(-10))
	assert.Equal(t, 0.0, p.Offset())
}
