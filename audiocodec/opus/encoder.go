package opus

import (
	"fmt"

	ac "github.com/dh1tw/opusctl/audiocodec"
)

var _ ac.Encoder = (*OpusEncoder)(nil)

// defaultFrameSize is used to size the PCM buffers when the packet duration
// is taken from the Encode argument.
const defaultFrameSize = FrameSize20ms

// maxPacketSize is the largest Opus packet libopus will produce
// (RFC 6716, 3.2.1: 1275 bytes per frame, six frames of 20ms in 120ms).
const maxPacketSize = 1275 * 6

// OpusEncoder is the data structure for the opus encoder. This struct holds
// the encoder handle and the options it has been configured with.
type OpusEncoder struct {
	name    string
	options Options
	handle  *Handle
	cfg     Configurator
}

// NewEncoder is the constructor method for an Opus encoder.
func NewEncoder(opts ...Option) (*OpusEncoder, error) {

	oEnc := &OpusEncoder{
		name: "opus",
		options: Options{
			Samplerate:   48000,
			Channels:     1,
			MaxBandwidth: Wideband,
			Bandwidth:    BandwidthAuto,
			Application:  AppRestrictedLowdelay,
			Bitrate:      24000,
			Complexity:   5,
			Signal:       SignalAuto,
			FrameSize:    FrameSize20ms,
			LsbDepth:     24,
		},
	}

	for _, option := range opts {
		option(&oEnc.options)
	}

	handle, err := NewHandle(oEnc.options.Samplerate,
		oEnc.options.Channels,
		oEnc.options.Application)

	if err != nil {
		return nil, err
	}

	if err := oEnc.cfg.Apply(handle, oEnc.options); err != nil {
		handle.Close()
		return nil, err
	}

	oEnc.handle = handle
	return oEnc, nil
}

// Name returns the name of the audio codec
func (oEnc *OpusEncoder) Name() string {
	return oEnc.name
}

// Options returns a copy of the codec's options
func (oEnc *OpusEncoder) Options() Options {
	return oEnc.options
}

// Handle returns the underlying encoder handle. It stays owned by the
// OpusEncoder and is released by Close.
func (oEnc *OpusEncoder) Handle() *Handle {
	return oEnc.handle
}

// Set changes an encoder parameter on the live encoder. On success the
// value is also recorded in the encoder's Options.
func (oEnc *OpusEncoder) Set(p Param, value int) error {
	if err := oEnc.cfg.Set(oEnc.handle, p, value); err != nil {
		return err
	}

	switch p {
	case ParamBitrate:
		oEnc.options.Bitrate = value
	case ParamComplexity:
		oEnc.options.Complexity = value
	case ParamSignal:
		oEnc.options.Signal = Signal(value)
	case ParamPacketLossPerc:
		oEnc.options.PacketLossPerc = value
	case ParamInbandFEC:
		oEnc.options.InbandFEC = InbandFEC(value)
	case ParamBandwidth:
		oEnc.options.Bandwidth = Bandwidth(value)
	case ParamMaxBandwidth:
		oEnc.options.MaxBandwidth = Bandwidth(value)
	case ParamFrameSize:
		oEnc.options.FrameSize = FrameSize(value)
	case ParamLsbDepth:
		oEnc.options.LsbDepth = value
	}
	return nil
}

// Get reads an encoder parameter from the live encoder.
func (oEnc *OpusEncoder) Get(p Param) (int, error) {
	return oEnc.cfg.Get(oEnc.handle, p)
}

// FrameSamples returns the number of samples per channel which have to be
// passed to Encode for one packet.
func (oEnc *OpusEncoder) FrameSamples() int {
	fs := oEnc.options.FrameSize
	if fs == FrameSizeArg {
		fs = defaultFrameSize
	}
	return fs.Samples(oEnc.options.Samplerate)
}

// MaxPacketSize returns a buffer size large enough for any packet.
func (oEnc *OpusEncoder) MaxPacketSize() int {
	return maxPacketSize
}

// Encode either []float32 or []int16 with the opus codec into the supplied
// buffer. On success the amount of bytes written into the buffer will be returned.
func (oEnc *OpusEncoder) Encode(pcm interface{}, data []byte) (int, error) {
	switch v := pcm.(type) {
	case []float32:
		return oEnc.handle.EncodeFloat32(v, data)
	case []int16:
		return oEnc.handle.Encode(v, data)
	default:
		return 0, fmt.Errorf("can not encode type %T with opus codec", v)
	}
}

// Close releases the encoder handle.
func (oEnc *OpusEncoder) Close() error {
	return oEnc.handle.Close()
}
