package tone

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/dh1tw/opusctl/audio"
)

// Tone implements the audio.Source interface and generates an endless
// sine wave.
type Tone struct {
	sync.Mutex
	options Options
	phase   float32
}

// New returns a Tone generator. By default it generates a 1 kHz tone at
// half scale, 48 kHz mono in buffers of 960 frames (20ms).
func New(opts ...Option) *Tone {
	t := &Tone{
		options: Options{
			Frequency:       1000,
			Amplitude:       0.5,
			Samplerate:      48000,
			Channels:        1,
			FramesPerBuffer: 960,
		},
	}

	for _, o := range opts {
		o(&t.options)
	}

	return t
}

// Read returns the next buffer of the tone. The phase continues across
// buffers.
func (t *Tone) Read() (audio.Msg, error) {
	t.Lock()
	defer t.Unlock()

	chs := t.options.Channels
	frames := t.options.FramesPerBuffer
	step := 2 * math32.Pi * t.options.Frequency / float32(t.options.Samplerate)

	data := make([]float32, 0, frames*chs)
	for i := 0; i < frames; i++ {
		v := t.options.Amplitude * math32.Sin(t.phase)
		for ch := 0; ch < chs; ch++ {
			data = append(data, v)
		}
		t.phase += step
		if t.phase >= 2*math32.Pi {
			t.phase -= 2 * math32.Pi
		}
	}

	return audio.Msg{
		Data:       data,
		Samplerate: t.options.Samplerate,
		Channels:   chs,
		Frames:     frames,
	}, nil
}

// Samplerate returns the sample rate of the tone.
func (t *Tone) Samplerate() float64 {
	return t.options.Samplerate
}

// Channels returns the number of channels of the tone.
func (t *Tone) Channels() int {
	return t.options.Channels
}
