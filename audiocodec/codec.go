package audiocodec

// Encoder is implemented by audio encoders. Encode accepts interleaved PCM
// (typically []float32 or []int16) and writes one packet into the buffer.
type Encoder interface {
	Name() string
	Encode(interface{}, []byte) (int, error)
	Close() error
}

// Decoder is implemented by audio decoders. Decode writes float32 PCM into
// the buffer and returns the number of samples per channel.
type Decoder interface {
	Name() string
	Decode([]byte, []float32) (int, error)
}
