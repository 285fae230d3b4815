package opus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEncoderDefaults(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)
	defer enc.Close()

	opts := enc.Options()
	assert.Equal(t, 48000, opts.Samplerate)
	assert.Equal(t, 1, opts.Channels)
	assert.Equal(t, AppRestrictedLowdelay, opts.Application)
	assert.Equal(t, "opus", enc.Name())
	assert.Equal(t, 960, enc.FrameSamples())

	var cf Configurator
	bitrate, err := cf.Bitrate(enc.Handle())
	require.NoError(t, err)
	assert.Equal(t, 24000, bitrate)

	maxBw, err := cf.MaxBandwidth(enc.Handle())
	require.NoError(t, err)
	assert.Equal(t, Wideband, maxBw)
}

func TestNewEncoderRejectsOptions(t *testing.T) {
	_, err := NewEncoder(Complexity(12))
	var perr *ParamError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ParamComplexity, perr.Param)

	_, err = NewEncoder(Samplerate(44100))
	assert.True(t, errors.Is(err, ErrBadArg))
}

func TestEncoderSet(t *testing.T) {
	enc, err := NewEncoder(App(AppVoIP))
	require.NoError(t, err)
	defer enc.Close()

	require.NoError(t, enc.Set(ParamFrameSize, int(FrameSize40ms)))
	assert.Equal(t, FrameSize40ms, enc.Options().FrameSize)
	assert.Equal(t, 1920, enc.FrameSamples())

	v, err := enc.Get(ParamFrameSize)
	require.NoError(t, err)
	assert.Equal(t, int(FrameSize40ms), v)

	err = enc.Set(ParamBandwidth, 1106)
	assert.True(t, errors.Is(err, ErrBadArg))
	assert.Equal(t, BandwidthAuto, enc.Options().Bandwidth)

	require.NoError(t, enc.Set(ParamFrameSize, int(FrameSizeArg)))
	assert.Equal(t, 960, enc.FrameSamples())
}

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"voice wideband 20ms", []Option{App(AppVoIP), ForceBandwidth(Wideband), Frames(FrameSize20ms), Bitrate(32000)}},
		{"audio fullband 10ms", []Option{App(AppAudio), MaxBandwidth(Fullband), ForceBandwidth(Fullband), Frames(FrameSize10ms), Bitrate(64000)}},
		{"lowdelay 5ms", []Option{Frames(FrameSize5ms), Bitrate(48000)}},
		{"voice 60ms fec", []Option{App(AppVoIP), Frames(FrameSize60ms), FEC(FECEnabled), PacketLossPerc(10), SignalType(SignalVoice)}},
		{"16 kHz", []Option{Samplerate(16000), App(AppVoIP), LsbDepth(16)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			enc, err := NewEncoder(tc.opts...)
			require.NoError(t, err)
			defer enc.Close()

			sr := enc.Options().Samplerate
			dec, err := NewOpusDecoder(Samplerate(sr), Channels(1))
			require.NoError(t, err)

			pcm := sine(enc.FrameSamples(), sr)
			data := make([]byte, enc.MaxPacketSize())
			out := make([]float32, FrameSize120ms.Samples(sr))

			for i := 0; i < 5; i++ {
				n, err := enc.Encode(pcm, data)
				require.NoError(t, err)

				samples, err := PacketSamples(data[:n], sr)
				require.NoError(t, err)
				assert.Equal(t, enc.FrameSamples(), samples)

				m, err := dec.Decode(data[:n], out)
				require.NoError(t, err)
				assert.Equal(t, enc.FrameSamples(), m)
			}
		})
	}
}

func TestEncodeFloat32(t *testing.T) {
	enc, err := NewEncoder(Channels(2))
	require.NoError(t, err)
	defer enc.Close()

	pcm := make([]float32, 2*enc.FrameSamples())
	data := make([]byte, enc.MaxPacketSize())
	n, err := enc.Encode(pcm, data)
	require.NoError(t, err)
	assert.Greater(t, n, 0)

	_, err = enc.Encode([]int32{1, 2}, data)
	assert.Error(t, err)
}

func TestPacketInspectionErrors(t *testing.T) {
	_, err := PacketBandwidth(nil)
	assert.True(t, errors.Is(err, ErrBadArg))
	_, err = PacketFrames([]byte{})
	assert.True(t, errors.Is(err, ErrBadArg))

	// code 3 packet without the frame count byte
	_, err = PacketFrames([]byte{0x03})
	assert.True(t, errors.Is(err, ErrInvalidPacket))
}
