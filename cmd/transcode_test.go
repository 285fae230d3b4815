package cmd

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/dh1tw/opusctl/audio"
	"github.com/dh1tw/opusctl/audio/nodes/level"
	"github.com/dh1tw/opusctl/audio/sinks/wavWriter"
	"github.com/dh1tw/opusctl/audio/sources/tone"
	"github.com/dh1tw/opusctl/audio/sources/wavReader"
	"github.com/dh1tw/opusctl/audiocodec/opus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTone writes 0.5s of a 440 Hz tone at half scale, 48 kHz mono.
func writeTone(t *testing.T, path string) {
	t.Helper()
	w, err := wavWriter.NewWavWriter(path, wavWriter.Samplerate(48000))
	require.NoError(t, err)
	src := tone.New(tone.Frequency(440))
	for i := 0; i < 25; i++ {
		msg, err := src.Read()
		require.NoError(t, err)
		require.NoError(t, w.Write(msg))
	}
	require.NoError(t, w.Close())
}

func fileRMS(t *testing.T, path string) float32 {
	t.Helper()
	r, err := wavReader.NewWavReader(path)
	require.NoError(t, err)
	m := level.New()
	for {
		msg, err := r.Read()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		require.NoError(t, m.Write(msg))
	}
	return m.RMS()
}

func TestTranscodeVolume(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	full := filepath.Join(dir, "full.wav")
	half := filepath.Join(dir, "half.wav")
	writeTone(t, in)

	_, err := transcode(in, full, 1, opus.App(opus.AppAudio))
	require.NoError(t, err)
	st, err := transcode(in, half, 0.5, opus.App(opus.AppAudio))
	require.NoError(t, err)

	// the level meter sees the decoded audio before the volume is applied
	assert.InDelta(t, fileRMS(t, full), st.rmsOut, 0.01)
	assert.InDelta(t, fileRMS(t, full)/2, fileRMS(t, half), 0.01)
}

// closeFailSink accepts every Write but can not be closed, like a wav
// file whose header can not be written.
type closeFailSink struct {
	frames int
	closed bool
	err    error
}

func (s *closeFailSink) Write(msg audio.Msg) error {
	s.frames += msg.Frames
	return nil
}

func (s *closeFailSink) Close() error {
	s.closed = true
	return s.err
}

func TestTranscodeReportsSinkCloseError(t *testing.T) {
	in := filepath.Join(t.TempDir(), "in.wav")
	writeTone(t, in)

	enc, err := opus.NewEncoder(opus.App(opus.AppAudio))
	require.NoError(t, err)
	defer enc.Close()

	r, err := wavReader.NewWavReader(in, wavReader.FramesPerBuffer(enc.FrameSamples()))
	require.NoError(t, err)

	errHeader := errors.New("writing wav header failed")
	out := &closeFailSink{err: errHeader}

	_, err = transcodeTo(enc, r, out)
	require.Error(t, err)
	assert.ErrorIs(t, err, errHeader)
	assert.True(t, out.closed)

	// all audio has been written before Close failed
	assert.Equal(t, 25*960, out.frames)
}

func TestTranscodeClosesSinkOnError(t *testing.T) {
	enc, err := opus.NewEncoder(opus.Samplerate(16000))
	require.NoError(t, err)
	defer enc.Close()

	// 48 kHz tone into a 16 kHz encoder
	out := &closeFailSink{}
	_, err = transcodeTo(enc, tone.New(), out)
	assert.Error(t, err)
	assert.Equal(t, 0, out.frames)
	assert.True(t, out.closed)
}
