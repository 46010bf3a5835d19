package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndicatorArmOnce(t *testing.T) {
	ind := NewIndicator(60)
	assert.False(t, ind.Armed())
	assert.True(t, ind.Arm())
	assert.False(t, ind.Arm())
	assert.True(t, ind.Armed())
	assert.Equal(t, ArmedScale, ind.Target())

	assert.True(t, ind.Disarm())
	assert.False(t, ind.Disarm())
	assert.Equal(t, RestScale, ind.Target())
}

func TestIndicatorSpringSettles(t *testing.T) {
	ind := NewIndicator(60)
	require.True(t, ind.Settled())
	ind.Arm()
	require.False(t, ind.Settled())

	settled := false
	for i := 0; i < 1000 && !settled; i++ {
		settled = ind.Step()
	}
	require.True(t, settled)
	assert.Equal(t, ArmedScale, ind.Scale())
}

func TestIndicatorResetSnapsToRest(t *testing.T) {
	ind := NewIndicator(60)
	ind.Arm()
	ind.Step()
	ind.Step()
	ind.Reset()
	assert.False(t, ind.Armed())
	assert.Equal(t, RestScale, ind.Scale())
	assert.True(t, ind.Settled())
}
