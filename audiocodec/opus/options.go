package opus

// Option is the type for a function option
type Option func(*Options)

// Options contains the parameters of an Opus encoder or decoder. Samplerate,
// Channels and Application are fixed when the codec is created; the other
// values are applied through a Configurator.
type Options struct {
	Samplerate     int
	Channels       int
	Application    Application
	Bitrate        int
	Complexity     int
	Signal         Signal
	PacketLossPerc int
	InbandFEC      InbandFEC
	Bandwidth      Bandwidth
	MaxBandwidth   Bandwidth
	FrameSize      FrameSize
	LsbDepth       int
}

// Samplerate is a functional option to set the sample rate of the codec
// (8000, 12000, 16000, 24000 or 48000 Hz).
func Samplerate(s int) Option {
	return func(args *Options) {
		args.Samplerate = s
	}
}

// Channels is a functional option to set the number of audio channels.
func Channels(chs int) Option {
	return func(args *Options) {
		args.Channels = chs
	}
}

// App is a functional option to set the encoder application mode.
func App(app Application) Option {
	return func(args *Options) {
		args.Application = app
	}
}

// Bitrate is a functional option to set the target bitrate in bit/s.
func Bitrate(b int) Option {
	return func(args *Options) {
		args.Bitrate = b
	}
}

// Complexity is a functional option to set the encoder complexity.
func Complexity(c int) Option {
	return func(args *Options) {
		args.Complexity = c
	}
}

func SignalType(s Signal) Option {
	return func(args *Options) {
		args.Signal = s
	}
}

func PacketLossPerc(p int) Option {
	return func(args *Options) {
		args.PacketLossPerc = p
	}
}

func FEC(f InbandFEC) Option {
	return func(args *Options) {
		args.InbandFEC = f
	}
}

// ForceBandwidth is a functional option to force the encoded bandpass.
func ForceBandwidth(bw Bandwidth) Option {
	return func(args *Options) {
		args.Bandwidth = bw
	}
}

// MaxBandwidth is a functional option to limit the encoded bandpass.
func MaxBandwidth(bw Bandwidth) Option {
	return func(args *Options) {
		args.MaxBandwidth = bw
	}
}

// Frames is a functional option to set the duration of one packet.
func Frames(fs FrameSize) Option {
	return func(args *Options) {
		args.FrameSize = fs
	}
}

func LsbDepth(d int) Option {
	return func(args *Options) {
		args.LsbDepth = d
	}
}
