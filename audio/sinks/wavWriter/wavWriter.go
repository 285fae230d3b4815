package wavWriter

import (
	"fmt"
	"os"
	"sync"

	"github.com/dh1tw/opusctl/audio"
	ga "github.com/go-audio/audio"
	wav "github.com/go-audio/wav"
)

// WavWriter implements the audio.Sink interface and is used to write (record)
// audio frames in the wav format.
type WavWriter struct {
	sync.Mutex
	file    *os.File
	encoder *wav.Encoder
	options Options
	volume  float32
	frames  int
}

// NewWavWriter returns a wavWriter to which audio frames can be written to.
// The audio data will be saved in the wav format.
func NewWavWriter(path string, opts ...Option) (*WavWriter, error) {

	w := &WavWriter{
		options: Options{
			Channels:   DefaultChannels,
			BitDepth:   DefaultBitDepth,
			Samplerate: DefaultSamplerate,
		},
		volume: 1.0,
	}

	for _, o := range opts {
		o(&w.options)
	}

	// make sure we only allow 16 / 24 bit Bitdepth (dynamic range)
	switch w.options.BitDepth {
	case 16, 24:
	default:
		w.options.BitDepth = 16
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w.file = f

	w.encoder = wav.NewEncoder(f, int(w.options.Samplerate),
		w.options.BitDepth, w.options.Channels, 1)

	return w, nil
}

// Close writes the wav header and closes the file.
func (w *WavWriter) Close() error {
	w.Lock()
	defer w.Unlock()
	err := w.encoder.Close()
	if cerr := w.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// SetVolume sets the volume for all incoming audio frames.
func (w *WavWriter) SetVolume(v float32) {
	w.Lock()
	defer w.Unlock()
	if v < 0 {
		w.volume = 0
	} else if v > 1 {
		w.volume = 1
	} else {
		w.volume = v
	}
}

// Volume returns the current volume.
func (w *WavWriter) Volume() float32 {
	w.Lock()
	defer w.Unlock()
	return w.volume
}

// Frames returns the number of frames written so far.
func (w *WavWriter) Frames() int {
	w.Lock()
	defer w.Unlock()
	return w.frames
}

// Write appends audio buffers to the wav file. The amount of channels will
// be adjusted if necessary; the samplerate must match the one of the file.
func (w *WavWriter) Write(msg audio.Msg) error {

	var aData []float32

	if msg.Samplerate != w.options.Samplerate {
		return fmt.Errorf("WavWriter: samplerate %v does not match file samplerate %v",
			msg.Samplerate, w.options.Samplerate)
	}

	// if necessary adjust the amount of audio channels
	if msg.Channels != w.options.Channels {
		aData = audio.AdjustChannels(msg.Channels, w.options.Channels, msg.Data)
	} else {
		aData = make([]float32, len(msg.Data))
		copy(aData, msg.Data)
	}

	w.Lock()
	defer w.Unlock()

	audio.AdjustVolume(w.volume, aData)

	buf := ga.IntBuffer{
		Format: &ga.Format{
			SampleRate:  int(w.options.Samplerate),
			NumChannels: w.options.Channels,
		},
		Data:           make([]int, 0, len(aData)),
		SourceBitDepth: w.options.BitDepth,
	}

	// max size of an audio sample converted from float32 to int
	max := 1 << (w.options.BitDepth - 1)

	for _, frame := range aData {
		f := int(frame * float32(max))
		if f > max-1 {
			buf.Data = append(buf.Data, max-1)
		} else if f < -max {
			buf.Data = append(buf.Data, -max)
		} else {
			buf.Data = append(buf.Data, f)
		}
	}

	if err := w.encoder.Write(&buf); err != nil {
		return err
	}

	w.frames += len(aData) / w.options.Channels

	return nil
}
