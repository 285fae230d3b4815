package opus

import (
	"fmt"
	"strings"
	"time"

	opus "gopkg.in/hraban/opus.v2"
)

// auto is OPUS_AUTO
const auto = -1000

// Application is the coding mode of an encoder. It is fixed when the
// Handle is created.
type Application int

const (
	// AppVoIP optimizes for voice intelligibility
	AppVoIP = Application(opus.AppVoIP)
	// AppAudio optimizes for fidelity of non-voice signals like music
	AppAudio = Application(opus.AppAudio)
	// AppRestrictedLowdelay disables the speech modes for the lowest latency
	AppRestrictedLowdelay = Application(opus.AppRestrictedLowdelay)
)

func (a Application) String() string {
	switch a {
	case AppVoIP:
		return "voip"
	case AppAudio:
		return "audio"
	case AppRestrictedLowdelay:
		return "restricted_lowdelay"
	}
	return fmt.Sprintf("Application(%d)", int(a))
}

// ParseApplication returns the Application for its name (case insensitive).
func ParseApplication(s string) (Application, error) {
	switch strings.ToLower(s) {
	case "voip":
		return AppVoIP, nil
	case "audio":
		return AppAudio, nil
	case "restricted_lowdelay", "lowdelay":
		return AppRestrictedLowdelay, nil
	}
	return 0, fmt.Errorf("unknown opus application value %q", s)
}

// Bandwidth is the audio bandpass of the encoded signal.
type Bandwidth int

const (
	// BandwidthAuto lets the encoder pick the bandwidth (OPUS_AUTO).
	BandwidthAuto = Bandwidth(auto)
	// Narrowband is a 4 kHz bandpass
	Narrowband = Bandwidth(opus.Narrowband)
	// Mediumband is a 6 kHz bandpass
	Mediumband = Bandwidth(opus.Mediumband)
	// Wideband is an 8 kHz bandpass
	Wideband = Bandwidth(opus.Wideband)
	// SuperWideband is a 12 kHz bandpass
	SuperWideband = Bandwidth(opus.SuperWideband)
	// Fullband is a 20 kHz bandpass
	Fullband = Bandwidth(opus.Fullband)
)

// Bandwidths lists the fixed bandwidth tiers from narrow to full.
var Bandwidths = []Bandwidth{Narrowband, Mediumband, Wideband, SuperWideband, Fullband}

func (b Bandwidth) String() string {
	switch b {
	case BandwidthAuto:
		return "auto"
	case Narrowband:
		return "narrowband"
	case Mediumband:
		return "mediumband"
	case Wideband:
		return "wideband"
	case SuperWideband:
		return "superwideband"
	case Fullband:
		return "fullband"
	}
	return fmt.Sprintf("Bandwidth(%d)", int(b))
}

// Hz returns the upper frequency limit of the bandwidth tier.
func (b Bandwidth) Hz() int {
	switch b {
	case Narrowband:
		return 4000
	case Mediumband:
		return 6000
	case Wideband:
		return 8000
	case SuperWideband:
		return 12000
	case Fullband:
		return 20000
	}
	return 0
}

// ParseBandwidth returns the Bandwidth for its name (case insensitive).
func ParseBandwidth(s string) (Bandwidth, error) {
	switch strings.ToLower(s) {
	case "auto":
		return BandwidthAuto, nil
	case "narrowband":
		return Narrowband, nil
	case "mediumband":
		return Mediumband, nil
	case "wideband":
		return Wideband, nil
	case "superwideband":
		return SuperWideband, nil
	case "fullband":
		return Fullband, nil
	}
	return 0, fmt.Errorf("unknown opus bandwidth value %q", s)
}

// FrameSize is the duration of audio carried by one encoded packet.
type FrameSize int

const (
	// FrameSizeArg takes the frame size from the length of the PCM
	// handed to Encode.
	FrameSizeArg   FrameSize = 5000
	FrameSize2_5ms FrameSize = 5001
	FrameSize5ms   FrameSize = 5002
	FrameSize10ms  FrameSize = 5003
	FrameSize20ms  FrameSize = 5004
	FrameSize40ms  FrameSize = 5005
	FrameSize60ms  FrameSize = 5006
	FrameSize80ms  FrameSize = 5007
	FrameSize100ms FrameSize = 5008
	FrameSize120ms FrameSize = 5009
)

// FrameSizes lists every frame size from FrameSizeArg to FrameSize120ms.
var FrameSizes = []FrameSize{
	FrameSizeArg, FrameSize2_5ms, FrameSize5ms, FrameSize10ms, FrameSize20ms,
	FrameSize40ms, FrameSize60ms, FrameSize80ms, FrameSize100ms, FrameSize120ms,
}

var frameDurations = map[FrameSize]time.Duration{
	FrameSize2_5ms: 2500 * time.Microsecond,
	FrameSize5ms:   5 * time.Millisecond,
	FrameSize10ms:  10 * time.Millisecond,
	FrameSize20ms:  20 * time.Millisecond,
	FrameSize40ms:  40 * time.Millisecond,
	FrameSize60ms:  60 * time.Millisecond,
	FrameSize80ms:  80 * time.Millisecond,
	FrameSize100ms: 100 * time.Millisecond,
	FrameSize120ms: 120 * time.Millisecond,
}

// Duration returns the length of audio in one packet. It is 0 for
// FrameSizeArg and unknown values.
func (f FrameSize) Duration() time.Duration {
	return frameDurations[f]
}

// Samples returns the number of samples per channel in one packet at the
// given sample rate. It is 0 for FrameSizeArg and unknown values.
func (f FrameSize) Samples(sampleRate int) int {
	d := f.Duration()
	return int(int64(sampleRate) * int64(d) / int64(time.Second))
}

func (f FrameSize) String() string {
	if f == FrameSizeArg {
		return "arg"
	}
	if d, ok := frameDurations[f]; ok {
		return d.String()
	}
	return fmt.Sprintf("FrameSize(%d)", int(f))
}

// ParseFrameSize accepts "arg" or a duration like "20ms" or "2.5ms".
func ParseFrameSize(s string) (FrameSize, error) {
	if strings.ToLower(s) == "arg" {
		return FrameSizeArg, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("unknown opus frame size value %q", s)
	}
	return FrameSizeFromDuration(d)
}

// FrameSizeFromDuration returns the FrameSize which encodes d of audio.
func FrameSizeFromDuration(d time.Duration) (FrameSize, error) {
	for f, fd := range frameDurations {
		if fd == d {
			return f, nil
		}
	}
	return 0, fmt.Errorf("no opus frame size for %v", d)
}

// Signal hints the encoder about the kind of audio it receives.
type Signal int

const (
	SignalAuto  Signal = auto
	SignalVoice Signal = 3001
	SignalMusic Signal = 3002
)

func (s Signal) String() string {
	switch s {
	case SignalAuto:
		return "auto"
	case SignalVoice:
		return "voice"
	case SignalMusic:
		return "music"
	}
	return fmt.Sprintf("Signal(%d)", int(s))
}

// ParseSignal returns the Signal for its name (case insensitive).
func ParseSignal(s string) (Signal, error) {
	switch strings.ToLower(s) {
	case "auto":
		return SignalAuto, nil
	case "voice":
		return SignalVoice, nil
	case "music":
		return SignalMusic, nil
	}
	return 0, fmt.Errorf("unknown opus signal value %q", s)
}

// InbandFEC switches the in-band forward error correction.
type InbandFEC int

const (
	FECDisabled InbandFEC = 0
	FECEnabled  InbandFEC = 1
)

func (f InbandFEC) String() string {
	switch f {
	case FECDisabled:
		return "disabled"
	case FECEnabled:
		return "enabled"
	}
	return fmt.Sprintf("InbandFEC(%d)", int(f))
}

// special bitrate values
const (
	BitrateAuto = auto
	BitrateMax  = -1
)
