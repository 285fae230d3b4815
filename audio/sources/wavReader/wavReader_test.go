package wavReader

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/dh1tw/opusctl/audio"
	"github.com/dh1tw/opusctl/audio/sinks/wavWriter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, frames int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.wav")

	w, err := wavWriter.NewWavWriter(path, wavWriter.Samplerate(16000),
		wavWriter.Channels(2))
	require.NoError(t, err)

	data := make([]float32, frames*2)
	for i := range data {
		if i%2 == 0 {
			data[i] = 0.5
		} else {
			data[i] = -0.25
		}
	}

	require.NoError(t, w.Write(audio.Msg{
		Data:       data,
		Samplerate: 16000,
		Channels:   2,
		Frames:     frames,
	}))
	assert.Equal(t, frames, w.Frames())
	require.NoError(t, w.Close())
	return path
}

func TestWavReader(t *testing.T) {
	path := writeTestFile(t, 1000)

	r, err := NewWavReader(path, FramesPerBuffer(320))
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, float64(16000), r.Samplerate())
	assert.Equal(t, 2, r.Channels())

	var frames []int
	var last audio.Msg
	for {
		msg, err := r.Read()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		frames = append(frames, msg.Frames)
		last = msg
	}

	assert.Equal(t, []int{320, 320, 320, 40}, frames)
	assert.True(t, last.EOF)
	assert.InDelta(t, 0.5, last.Data[0], 0.001)
	assert.InDelta(t, -0.25, last.Data[1], 0.001)

	r.Rewind()
	msg, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, 320, msg.Frames)
	assert.False(t, msg.EOF)
}

func TestWavReaderInvalidFile(t *testing.T) {
	_, err := NewWavReader(filepath.Join(t.TempDir(), "missing.wav"))
	assert.Error(t, err)

	path := writeTestFile(t, 10)
	_, err = NewWavReader(path, FramesPerBuffer(0))
	assert.Error(t, err)
}
