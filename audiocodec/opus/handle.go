package opus

// #cgo pkg-config: opus
// #include <opus.h>
import "C"

import (
	"fmt"
)

// Handle is an owned libopus encoder state. It is created with NewHandle and
// must be released with Close. A Handle is not safe for concurrent use; the
// owner serializes access.
//
// A nil or closed Handle reports ErrInvalidState on every call.
type Handle struct {
	st         *C.OpusEncoder
	sampleRate int
	channels   int
	app        Application
}

// NewHandle creates a new libopus encoder. The sample rate, channel count and
// application are fixed for the lifetime of the Handle.
func NewHandle(sampleRate, channels int, app Application) (*Handle, error) {
	st, err := encoderCreate(sampleRate, channels, app)
	if err != nil {
		return nil, fmt.Errorf("create encoder (%d Hz, %d ch, %v): %w",
			sampleRate, channels, app, err)
	}

	return &Handle{
		st:         st,
		sampleRate: sampleRate,
		channels:   channels,
		app:        app,
	}, nil
}

// Close releases the libopus encoder. Closing a Handle more than once is a
// no-op.
func (h *Handle) Close() error {
	if h == nil || h.st == nil {
		return nil
	}
	encoderDestroy(h.st)
	h.st = nil
	return nil
}

// Valid reports whether the Handle can still be used.
func (h *Handle) Valid() bool {
	return h != nil && h.st != nil
}

// SampleRate returns the sample rate the encoder was created with.
func (h *Handle) SampleRate() int {
	if h == nil {
		return 0
	}
	return h.sampleRate
}

// Channels returns the channel count the encoder was created with.
func (h *Handle) Channels() int {
	if h == nil {
		return 0
	}
	return h.channels
}

// Application returns the application mode the encoder was created with.
func (h *Handle) Application() Application {
	if h == nil {
		return 0
	}
	return h.app
}

// SetCtl forwards a set request to opus_encoder_ctl.
func (h *Handle) SetCtl(request, value int32) error {
	if !h.Valid() {
		return ErrInvalidState
	}
	if !setRequests[request] {
		return ErrUnimplemented
	}
	return encoderSetCtl(h.st, request, value)
}

// GetCtl forwards a get request to opus_encoder_ctl.
func (h *Handle) GetCtl(request int32) (int32, error) {
	if !h.Valid() {
		return 0, ErrInvalidState
	}
	if !getRequests[request] {
		return 0, ErrUnimplemented
	}
	return encoderGetCtl(h.st, request)
}

// Encode encodes one frame of interleaved 16 bit PCM into data and returns
// the number of bytes written.
func (h *Handle) Encode(pcm []int16, data []byte) (int, error) {
	if !h.Valid() {
		return 0, ErrInvalidState
	}
	if len(pcm) == 0 || len(data) == 0 || len(pcm)%h.channels != 0 {
		return 0, ErrBadArg
	}
	return encodeInt16(h.st, pcm, len(pcm)/h.channels, data)
}

// EncodeFloat32 encodes one frame of interleaved float PCM in the range
// [-1, 1] into data and returns the number of bytes written.
func (h *Handle) EncodeFloat32(pcm []float32, data []byte) (int, error) {
	if !h.Valid() {
		return 0, ErrInvalidState
	}
	if len(pcm) == 0 || len(data) == 0 || len(pcm)%h.channels != 0 {
		return 0, ErrBadArg
	}
	return encodeFloat32(h.st, pcm, len(pcm)/h.channels, data)
}
