package audio

// Msg contains an audio buffer with it's metadata. Data holds interleaved
// samples in the range [-1, 1].
type Msg struct {
	Data       []float32
	Samplerate float64
	Channels   int
	Frames     int  // Number of Frames in the buffer
	EOF        bool // End of File
}

// Source is implemented by everything which produces audio frames in
// fixed size chunks, e.g. a wav file or a tone generator.
type Source interface {
	Read() (Msg, error)
	Samplerate() float64
	Channels() int
}

// Sink is implemented by everything which consumes audio frames.
type Sink interface {
	Write(Msg) error
	Close() error
}
