package level

import (
	"testing"

	"github.com/dh1tw/opusctl/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRMS(t *testing.T) {
	v, err := RMS([]float32{0.5, -0.5, 0.5, -0.5})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v, 1e-6)

	_, err = RMS(nil)
	assert.Error(t, err)
}

func TestMeter(t *testing.T) {
	m := New()
	assert.Equal(t, float32(0), m.RMS())

	require.NoError(t, m.Write(audio.Msg{Data: []float32{1, -1}}))
	require.NoError(t, m.Write(audio.Msg{Data: []float32{0, 0}}))

	assert.InDelta(t, 0.7071, m.RMS(), 1e-4)
	assert.Equal(t, float32(1), m.Peak())
}

func TestDBFS(t *testing.T) {
	assert.InDelta(t, 0, DBFS(1), 1e-6)
	assert.InDelta(t, -6.0206, DBFS(0.5), 1e-3)
	assert.True(t, DBFS(0) < -1000)
}
