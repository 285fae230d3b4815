package wavReader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dh1tw/opusctl/audio"
	ga "github.com/go-audio/audio"
	wav "github.com/go-audio/wav"
)

// WavReader implements the audio.Source interface and is used to read
// audio frames from a wav file.
type WavReader struct {
	sync.Mutex
	options    Options
	buffer     []audio.Msg
	pos        int
	samplerate float64
	channels   int
}

// NewWavReader reads a wav file from disk into memory and returns a
// WavReader object which implements the audio.Source interface.
func NewWavReader(file string, opts ...Option) (*WavReader, error) {

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)

	if !dec.IsValidFile() {
		return nil, errors.New("invalid WAV file")
	}

	w := WavReader{
		buffer: []audio.Msg{},
		options: Options{
			FramesPerBuffer: DefaultFramesPerBuffer,
		},
	}

	for _, o := range opts {
		o(&w.options)
	}

	if w.options.FramesPerBuffer <= 0 {
		return nil, fmt.Errorf("invalid frames per buffer: %d", w.options.FramesPerBuffer)
	}

	format := dec.Format()
	if format == nil || format.NumChannels == 0 {
		return nil, errors.New("WAV file without format chunk")
	}

	w.samplerate = float64(format.SampleRate)
	w.channels = format.NumChannels

	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = 16
	}
	// full scale of a signed sample with the file's bit depth
	max := float32(int(1) << (bitDepth - 1))

	buf := &ga.IntBuffer{
		Data:           make([]int, w.options.FramesPerBuffer*format.NumChannels),
		Format:         format,
		SourceBitDepth: bitDepth,
	}

	for {
		n, err := dec.PCMBuffer(buf)
		if err != nil {
			return nil, err
		}

		if n == 0 {
			break
		}

		data := make([]float32, n)
		for i := 0; i < n; i++ {
			data[i] = float32(buf.Data[i]) / max
		}

		msg := audio.Msg{
			Data:       data,
			Channels:   format.NumChannels,
			Samplerate: w.samplerate,
			Frames:     n / format.NumChannels,
		}
		w.buffer = append(w.buffer, msg)
	}

	if len(w.buffer) == 0 {
		return nil, errors.New("WAV file contains no audio")
	}

	w.buffer[len(w.buffer)-1].EOF = true

	return &w, nil
}

// Read returns the next buffer of audio frames. The last buffer of the
// file has EOF set and may contain less than FramesPerBuffer frames.
// Afterwards Read returns io.EOF.
func (w *WavReader) Read() (audio.Msg, error) {
	w.Lock()
	defer w.Unlock()

	if w.pos >= len(w.buffer) {
		return audio.Msg{}, io.EOF
	}
	msg := w.buffer[w.pos]
	w.pos++
	return msg, nil
}

// Rewind starts reading from the beginning of the file again.
func (w *WavReader) Rewind() {
	w.Lock()
	defer w.Unlock()
	w.pos = 0
}

// Samplerate returns the sample rate of the wav file.
func (w *WavReader) Samplerate() float64 {
	return w.samplerate
}

// Channels returns the number of channels of the wav file.
func (w *WavReader) Channels() int {
	return w.channels
}

// Close shutsdown the wav reader
func (w *WavReader) Close() error {
	return nil
}
