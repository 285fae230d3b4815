package cmd

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/dh1tw/opusctl/audio/sinks/wavWriter"
	"github.com/dh1tw/opusctl/audio/sources/tone"
	"github.com/dh1tw/opusctl/audiocodec/opus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setConfig(t *testing.T, kv map[string]interface{}) {
	t.Helper()

	defaults := map[string]interface{}{
		"opus.samplerate":    48000,
		"opus.channels":      1,
		"opus.application":   "voip",
		"opus.bitrate":       "24000",
		"opus.complexity":    5,
		"opus.signal":        "auto",
		"opus.packet-loss":   0,
		"opus.inband-fec":    "off",
		"opus.bandwidth":     "auto",
		"opus.max-bandwidth": "wideband",
		"opus.frame-size":    "20ms",
		"opus.lsb-depth":     24,
	}
	for k, v := range kv {
		defaults[k] = v
	}
	for k, v := range defaults {
		viper.Set(k, v)
	}
	t.Cleanup(viper.Reset)
}

func newConfiguredEncoder(t *testing.T) *opus.OpusEncoder {
	t.Helper()
	opts, err := encoderOptionsFromConfig()
	require.NoError(t, err)
	enc, err := opus.NewEncoder(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { enc.Close() })
	return enc
}

func TestEncoderOptionsFromConfig(t *testing.T) {
	setConfig(t, map[string]interface{}{
		"opus.bitrate":    "32000",
		"opus.signal":     "voice",
		"opus.bandwidth":  "wideband",
		"opus.inband-fec": "on",
		"opus.frame-size": "10ms",
	})

	enc := newConfiguredEncoder(t)
	o := enc.Options()

	assert.Equal(t, opus.AppVoIP, o.Application)
	assert.Equal(t, 32000, o.Bitrate)
	assert.Equal(t, opus.SignalVoice, o.Signal)
	assert.Equal(t, opus.Wideband, o.Bandwidth)
	assert.Equal(t, opus.FECEnabled, o.InbandFEC)
	assert.Equal(t, opus.FrameSize10ms, o.FrameSize)
	assert.Equal(t, 480, enc.FrameSamples())
}

func TestEncoderOptionsFromConfigBitrateNames(t *testing.T) {
	setConfig(t, map[string]interface{}{"opus.bitrate": "max"})
	enc := newConfiguredEncoder(t)
	assert.Equal(t, opus.BitrateMax, enc.Options().Bitrate)
}

func TestCheckEncoderParameterValues(t *testing.T) {
	tt := []struct {
		key   string
		value interface{}
	}{
		{"opus.samplerate", 44100},
		{"opus.channels", 3},
		{"opus.application", "telephone"},
		{"opus.bitrate", "fast"},
		{"opus.signal", "noise"},
		{"opus.inband-fec", "maybe"},
		{"opus.bandwidth", "ultraband"},
		{"opus.max-bandwidth", "auto-ish"},
		{"opus.frame-size", "7ms"},
	}

	for _, tc := range tt {
		t.Run(tc.key, func(t *testing.T) {
			setConfig(t, map[string]interface{}{tc.key: tc.value})

			err := checkEncoderParameterValues()
			var perr *parmError
			require.True(t, errors.As(err, &perr), "got %v", err)
			assert.Equal(t, tc.key, perr.parm)
		})
	}
}

func TestCheckRejectedByEncoder(t *testing.T) {
	// parses fine, but is out of the range libopus accepts
	setConfig(t, map[string]interface{}{"opus.complexity": 11})

	err := check()
	assert.ErrorIs(t, err, opus.ErrBadArg)

	var perr *opus.ParamError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, opus.ParamComplexity, perr.Param)
}

func TestTranscode(t *testing.T) {
	setConfig(t, map[string]interface{}{
		"opus.bitrate":   "32000",
		"opus.bandwidth": "wideband",
	})
	opts, err := encoderOptionsFromConfig()
	require.NoError(t, err)

	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")

	// 1s of a 440 Hz tone, stereo, written in buffers which do not
	// line up with the 20ms opus frames
	w, err := wavWriter.NewWavWriter(in, wavWriter.Samplerate(48000), wavWriter.Channels(2))
	require.NoError(t, err)
	src := tone.New(tone.Frequency(440), tone.Channels(2), tone.FramesPerBuffer(1000))
	for i := 0; i < 48; i++ {
		msg, err := src.Read()
		require.NoError(t, err)
		require.NoError(t, w.Write(msg))
	}
	require.NoError(t, w.Close())

	st, err := transcode(in, out, 1, opts...)
	require.NoError(t, err)

	// 48000 frames in packets of 960 samples
	assert.Equal(t, 50, st.packets)
	assert.Equal(t, 960, st.samples)
	assert.Equal(t, opus.FrameSize20ms, st.frameSize)
	assert.Equal(t, 50, st.bandwidths[opus.Wideband])
	assert.InDelta(t, 0.354, st.rmsIn, 0.01)
	assert.InDelta(t, st.rmsIn, st.rmsOut, 0.1)
	assert.Greater(t, st.bitrate(), 0.0)
	assert.Less(t, st.bitrate(), 40000.0)
}

func TestTranscodeSamplerateMismatch(t *testing.T) {
	setConfig(t, map[string]interface{}{"opus.samplerate": 16000})
	opts, err := encoderOptionsFromConfig()
	require.NoError(t, err)

	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")

	w, err := wavWriter.NewWavWriter(in, wavWriter.Samplerate(48000))
	require.NoError(t, err)
	msg, err := tone.New().Read()
	require.NoError(t, err)
	require.NoError(t, w.Write(msg))
	require.NoError(t, w.Close())

	_, err = transcode(in, filepath.Join(dir, "out.wav"), 1, opts...)
	assert.Error(t, err)
}
