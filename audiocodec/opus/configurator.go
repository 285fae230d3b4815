package opus

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Controller is the generic control interface of an encoder: libopus'
// opus_encoder_ctl, split into setters and getters of int32 values.
// *Handle implements Controller.
type Controller interface {
	SetCtl(request, value int32) error
	GetCtl(request int32) (int32, error)
}

// Param names an encoder parameter.
type Param string

const (
	ParamBitrate        Param = "bitrate"
	ParamComplexity     Param = "complexity"
	ParamSignal         Param = "signal"
	ParamPacketLossPerc Param = "packet-loss"
	ParamInbandFEC      Param = "inband-fec"
	ParamBandwidth      Param = "bandwidth"
	ParamMaxBandwidth   Param = "max-bandwidth"
	ParamFrameSize      Param = "frame-size"
	ParamLsbDepth       Param = "lsb-depth"
)

type paramInfo struct {
	set, get int32
	domain   string
}

var params = map[Param]paramInfo{
	ParamBitrate: {setBitrateRequest, getBitrateRequest,
		"500...512000 bit/s, -1000 (auto), -1 (max)"},
	ParamComplexity: {setComplexityRequest, getComplexityRequest,
		"0...10"},
	ParamSignal: {setSignalRequest, getSignalRequest,
		"-1000 (auto), 3001 (voice), 3002 (music)"},
	ParamPacketLossPerc: {setPacketLossPercRequest, getPacketLossPercRequest,
		"0...100 %"},
	ParamInbandFEC: {setInbandFECRequest, getInbandFECRequest,
		"0 (disabled), 1 (enabled)"},
	ParamBandwidth: {setBandwidthRequest, getBandwidthRequest,
		"-1000 (auto), 1101 (NB), 1102 (MB), 1103 (WB), 1104 (SWB), 1105 (FB)"},
	ParamMaxBandwidth: {setMaxBandwidthRequest, getMaxBandwidthRequest,
		"1101 (NB), 1102 (MB), 1103 (WB), 1104 (SWB), 1105 (FB)"},
	ParamFrameSize: {setExpertFrameDurationRequest, getExpertFrameDurationRequest,
		"5000 (arg), 5001 (2.5ms), 5002 (5ms), 5003 (10ms), 5004 (20ms), " +
			"5005 (40ms), 5006 (60ms), 5007 (80ms), 5008 (100ms), 5009 (120ms)"},
	ParamLsbDepth: {setLsbDepthRequest, getLsbDepthRequest,
		"8...24 bit"},
}

var paramOrder = []Param{
	ParamBitrate, ParamComplexity, ParamSignal, ParamPacketLossPerc,
	ParamInbandFEC, ParamBandwidth, ParamMaxBandwidth, ParamFrameSize,
	ParamLsbDepth,
}

// Params returns all parameters the Configurator can set, in a stable order.
func Params() []Param {
	res := make([]Param, len(paramOrder))
	copy(res, paramOrder)
	return res
}

// ParseParam returns the Param with the given name.
func ParseParam(s string) (Param, error) {
	p := Param(strings.ToLower(s))
	if _, ok := params[p]; !ok {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownParam)
	}
	return p, nil
}

// SetRequest returns the libopus request code used to set the parameter.
func (p Param) SetRequest() int32 { return params[p].set }

// GetRequest returns the libopus request code used to read the parameter.
func (p Param) GetRequest() int32 { return params[p].get }

// Domain describes the values libopus accepts for the parameter.
func (p Param) Domain() string { return params[p].domain }

// Format renders a value of the parameter, using the names of the
// enumerated parameters.
func (p Param) Format(v int) string {
	switch p {
	case ParamSignal:
		return Signal(v).String()
	case ParamInbandFEC:
		return InbandFEC(v).String()
	case ParamBandwidth, ParamMaxBandwidth:
		return Bandwidth(v).String()
	case ParamFrameSize:
		return FrameSize(v).String()
	}
	return fmt.Sprintf("%d", v)
}

// Parse converts a textual value of the parameter into its integer form.
// Enumerated parameters accept their names ("wideband", "20ms", "voice",
// "enabled") as well as the numeric code.
func (p Param) Parse(s string) (int, error) {
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return v, nil
	}

	switch p {
	case ParamSignal:
		v, err := ParseSignal(s)
		return int(v), err
	case ParamInbandFEC:
		switch strings.ToLower(s) {
		case "enabled", "on", "true":
			return int(FECEnabled), nil
		case "disabled", "off", "false":
			return int(FECDisabled), nil
		}
	case ParamBandwidth, ParamMaxBandwidth:
		v, err := ParseBandwidth(s)
		return int(v), err
	case ParamFrameSize:
		v, err := ParseFrameSize(s)
		return int(v), err
	case ParamBitrate:
		switch strings.ToLower(s) {
		case "auto":
			return BitrateAuto, nil
		case "max":
			return BitrateMax, nil
		}
	}
	return 0, fmt.Errorf("invalid value %q for %s", s, p)
}

// Configurator applies typed parameter values to an encoder through its
// Controller. It holds no state; every call is forwarded to the encoder
// immediately and values are range checked by libopus only.
//
// Access to the Controller is not synchronized. The caller must make sure
// that no two goroutines use the same encoder at once.
type Configurator struct{}

func (Configurator) set(c Controller, p Param, value int) error {
	if c == nil {
		return &ParamError{Param: p, Value: value, Err: ErrInvalidState}
	}
	// libopus takes an opus_int32; anything wider would be truncated into
	// a different, possibly valid, value
	if value < math.MinInt32 || value > math.MaxInt32 {
		return &ParamError{Param: p, Value: value, Err: ErrBadArg}
	}
	if err := c.SetCtl(p.SetRequest(), int32(value)); err != nil {
		return &ParamError{Param: p, Value: value, Err: err}
	}
	return nil
}

func (Configurator) get(c Controller, p Param) (int, error) {
	if c == nil {
		return 0, fmt.Errorf("get %s: %w", p, ErrInvalidState)
	}
	v, err := c.GetCtl(p.GetRequest())
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", p, err)
	}
	return int(v), nil
}

// SetBitrate sets the target bitrate in bit/s. BitrateAuto and BitrateMax
// are accepted as well.
func (cf Configurator) SetBitrate(c Controller, bitrate int) error {
	return cf.set(c, ParamBitrate, bitrate)
}

// SetComplexity sets the computational complexity (0...10).
func (cf Configurator) SetComplexity(c Controller, complexity int) error {
	return cf.set(c, ParamComplexity, complexity)
}

// SetSignal sets the type of signal being encoded.
func (cf Configurator) SetSignal(c Controller, signal Signal) error {
	return cf.set(c, ParamSignal, int(signal))
}

// SetPacketLossPerc sets the expected packet loss in percent (0...100).
func (cf Configurator) SetPacketLossPerc(c Controller, perc int) error {
	return cf.set(c, ParamPacketLossPerc, perc)
}

// SetInbandFEC switches the in-band forward error correction.
func (cf Configurator) SetInbandFEC(c Controller, fec InbandFEC) error {
	return cf.set(c, ParamInbandFEC, int(fec))
}

// SetBandwidth forces the encoded bandpass.
func (cf Configurator) SetBandwidth(c Controller, bw Bandwidth) error {
	return cf.set(c, ParamBandwidth, int(bw))
}

// SetMaxBandwidth limits the bandpass the encoder may select.
func (cf Configurator) SetMaxBandwidth(c Controller, bw Bandwidth) error {
	return cf.set(c, ParamMaxBandwidth, int(bw))
}

// SetFrameSize sets the duration of audio carried by one packet.
func (cf Configurator) SetFrameSize(c Controller, fs FrameSize) error {
	return cf.set(c, ParamFrameSize, int(fs))
}

// SetLsbDepth sets the bit depth of the input signal (8...24).
func (cf Configurator) SetLsbDepth(c Controller, depth int) error {
	return cf.set(c, ParamLsbDepth, depth)
}

// Bitrate returns the bitrate in bit/s.
func (cf Configurator) Bitrate(c Controller) (int, error) {
	return cf.get(c, ParamBitrate)
}

// Complexity returns the computational complexity.
func (cf Configurator) Complexity(c Controller) (int, error) {
	return cf.get(c, ParamComplexity)
}

// Signal returns the configured signal type.
func (cf Configurator) Signal(c Controller) (Signal, error) {
	v, err := cf.get(c, ParamSignal)
	return Signal(v), err
}

// PacketLossPerc returns the expected packet loss in percent.
func (cf Configurator) PacketLossPerc(c Controller) (int, error) {
	return cf.get(c, ParamPacketLossPerc)
}

// InbandFEC returns the in-band FEC setting.
func (cf Configurator) InbandFEC(c Controller) (InbandFEC, error) {
	v, err := cf.get(c, ParamInbandFEC)
	return InbandFEC(v), err
}

// Bandwidth returns the bandpass libopus used for the most recently
// encoded frame. Before the first frame it reports libopus' initial value.
func (cf Configurator) Bandwidth(c Controller) (Bandwidth, error) {
	v, err := cf.get(c, ParamBandwidth)
	return Bandwidth(v), err
}

// MaxBandwidth returns the upper bandpass limit.
func (cf Configurator) MaxBandwidth(c Controller) (Bandwidth, error) {
	v, err := cf.get(c, ParamMaxBandwidth)
	return Bandwidth(v), err
}

// FrameSize returns the configured frame size.
func (cf Configurator) FrameSize(c Controller) (FrameSize, error) {
	v, err := cf.get(c, ParamFrameSize)
	return FrameSize(v), err
}

// LsbDepth returns the configured input bit depth.
func (cf Configurator) LsbDepth(c Controller) (int, error) {
	return cf.get(c, ParamLsbDepth)
}

// Set applies a value to a parameter selected by name.
func (cf Configurator) Set(c Controller, p Param, value int) error {
	if _, ok := params[p]; !ok {
		return fmt.Errorf("%q: %w", string(p), ErrUnknownParam)
	}
	return cf.set(c, p, value)
}

// Get reads a parameter selected by name.
func (cf Configurator) Get(c Controller, p Param) (int, error) {
	if _, ok := params[p]; !ok {
		return 0, fmt.Errorf("%q: %w", string(p), ErrUnknownParam)
	}
	return cf.get(c, p)
}

// Apply sets all encoder parameters of opts. The values are applied in a
// fixed order and Apply stops at the first value the encoder rejects.
func (cf Configurator) Apply(c Controller, opts Options) error {
	steps := []struct {
		p Param
		v int
	}{
		{ParamMaxBandwidth, int(opts.MaxBandwidth)},
		{ParamBandwidth, int(opts.Bandwidth)},
		{ParamFrameSize, int(opts.FrameSize)},
		{ParamSignal, int(opts.Signal)},
		{ParamBitrate, opts.Bitrate},
		{ParamComplexity, opts.Complexity},
		{ParamPacketLossPerc, opts.PacketLossPerc},
		{ParamInbandFEC, int(opts.InbandFEC)},
		{ParamLsbDepth, opts.LsbDepth},
	}

	for _, s := range steps {
		if err := cf.set(c, s.p, s.v); err != nil {
			return err
		}
	}
	return nil
}
