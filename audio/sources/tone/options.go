package tone

// Option is the type for a function option
type Option func(*Options)

// Options contains the parameters of a tone generator.
type Options struct {
	Frequency       float32
	Amplitude       float32
	Samplerate      float64
	Channels        int
	FramesPerBuffer int
}

// Frequency is a functional option to set the tone frequency in Hz.
func Frequency(f float32) Option {
	return func(args *Options) {
		args.Frequency = f
	}
}

// Amplitude is a functional option to set the peak level (0 ... 1).
func Amplitude(a float32) Option {
	return func(args *Options) {
		args.Amplitude = a
	}
}

// Samplerate is a functional option to set the sample rate.
func Samplerate(s float64) Option {
	return func(args *Options) {
		args.Samplerate = s
	}
}

// Channels is a functional option to set the number of channels. All
// channels carry the same tone.
func Channels(chs int) Option {
	return func(args *Options) {
		args.Channels = chs
	}
}

// FramesPerBuffer is a functional option to set the amount of frames
// returned by every Read.
func FramesPerBuffer(n int) Option {
	return func(args *Options) {
		args.FramesPerBuffer = n
	}
}
