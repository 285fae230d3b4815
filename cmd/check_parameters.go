package cmd

import (
	"fmt"

	"github.com/dh1tw/opusctl/audiocodec/opus"
	"github.com/spf13/viper"
)

// checkEncoderParameterValues verifies that the opus.* settings from the
// config file and the pflags can be parsed. Whether a value lies within the
// range libopus accepts is only known once it is applied to an encoder.
func checkEncoderParameterValues() error {
	_, err := encoderOptionsFromConfig()
	return err
}

// encoderOptionsFromConfig translates the opus.* settings into encoder
// options.
func encoderOptionsFromConfig() ([]opus.Option, error) {

	sr := viper.GetInt("opus.samplerate")
	switch sr {
	case 8000, 12000, 16000, 24000, 48000:
	default:
		return nil, &parmError{
			parm: "opus.samplerate",
			msg:  "allowed values are [8000, 12000, 16000, 24000, 48000]",
		}
	}

	if chs := viper.GetInt("opus.channels"); chs < 1 || chs > 2 {
		return nil, &parmError{
			parm: "opus.channels",
			msg:  "allowed values are [1 (Mono), 2 (Stereo)]",
		}
	}

	app, err := opus.ParseApplication(viper.GetString("opus.application"))
	if err != nil {
		return nil, &parmError{
			parm: "opus.application",
			msg:  "allowed values are VOIP, AUDIO or RESTRICTED_LOWDELAY",
		}
	}

	opts := []opus.Option{
		opus.Samplerate(sr),
		opus.Channels(viper.GetInt("opus.channels")),
		opus.App(app),
		opus.Complexity(viper.GetInt("opus.complexity")),
		opus.PacketLossPerc(viper.GetInt("opus.packet-loss")),
		opus.LsbDepth(viper.GetInt("opus.lsb-depth")),
	}

	// parameters which can be given by name
	named := []struct {
		key   string
		param opus.Param
		msg   string
		opt   func(int) opus.Option
	}{
		{"opus.bitrate", opus.ParamBitrate,
			"must be a number in bit/s, AUTO or MAX",
			opus.Bitrate},
		{"opus.signal", opus.ParamSignal,
			"allowed values are AUTO, VOICE or MUSIC",
			func(v int) opus.Option { return opus.SignalType(opus.Signal(v)) }},
		{"opus.inband-fec", opus.ParamInbandFEC,
			"allowed values are ON or OFF",
			func(v int) opus.Option { return opus.FEC(opus.InbandFEC(v)) }},
		{"opus.bandwidth", opus.ParamBandwidth,
			"allowed values are AUTO, NARROWBAND, MEDIUMBAND, WIDEBAND, SUPERWIDEBAND, FULLBAND",
			func(v int) opus.Option { return opus.ForceBandwidth(opus.Bandwidth(v)) }},
		{"opus.max-bandwidth", opus.ParamMaxBandwidth,
			"allowed values are NARROWBAND, MEDIUMBAND, WIDEBAND, SUPERWIDEBAND, FULLBAND",
			func(v int) opus.Option { return opus.MaxBandwidth(opus.Bandwidth(v)) }},
		{"opus.frame-size", opus.ParamFrameSize,
			"allowed values are 2.5ms, 5ms, 10ms, 20ms, 40ms, 60ms, 80ms, 100ms, 120ms",
			func(v int) opus.Option { return opus.Frames(opus.FrameSize(v)) }},
	}

	for _, n := range named {
		v, err := n.param.Parse(viper.GetString(n.key))
		if err != nil {
			return nil, &parmError{parm: n.key, msg: n.msg}
		}
		opts = append(opts, n.opt(v))
	}

	return opts, nil
}

type parmError struct {
	parm string
	msg  string
}

func (p *parmError) Error() string {
	return fmt.Sprintf("%v: %v", p.parm, p.msg)
}
