package cmd

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/dh1tw/opusctl/audio"
	"github.com/dh1tw/opusctl/audio/nodes/level"
	"github.com/dh1tw/opusctl/audio/sinks/wavWriter"
	"github.com/dh1tw/opusctl/audio/sources/wavReader"
	"github.com/dh1tw/opusctl/audiocodec/opus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// transcodeCmd represents the transcode command
var transcodeCmd = &cobra.Command{
	Use:   "transcode <input.wav> <output.wav>",
	Short: "Encode a wav file with opus and decode it again",
	Long: `Encode a wav file with opus and decode it again

The input file is encoded with the configured opus.* parameters. The
packets are decoded right away and written to the output file, so the
effect of the parameters can be listened to. The samplerate of the wav
file must match opus.samplerate.
`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		readConfig()

		opts, err := encoderOptionsFromConfig()
		if err != nil {
			exit(err)
		}

		// bind the pflags to viper settings
		viper.BindPFlag("transcode.volume", cmd.Flags().Lookup("volume"))

		st, err := transcode(args[0], args[1],
			float32(viper.GetFloat64("transcode.volume")), opts...)
		if err != nil {
			exit(err)
		}
		st.print()
	},
}

func init() {
	RootCmd.AddCommand(transcodeCmd)
	transcodeCmd.Flags().Float32("volume", 1.0, "volume of the decoded audio written to the output file [0...1]")
}

type transcodeStats struct {
	packets    int
	bytes      int
	duration   time.Duration
	frameSize  opus.FrameSize
	samples    int
	bandwidths map[opus.Bandwidth]int
	rmsIn      float32
	rmsOut     float32
}

func (st transcodeStats) bitrate() float64 {
	if st.duration == 0 {
		return 0
	}
	return float64(st.bytes*8) / st.duration.Seconds()
}

func (st transcodeStats) print() {
	fmt.Printf("packets:          %d\n", st.packets)
	fmt.Printf("bytes:            %d\n", st.bytes)
	fmt.Printf("duration:         %v\n", st.duration)
	fmt.Printf("frame size:       %v (%d samples)\n", st.frameSize, st.samples)
	fmt.Printf("average bitrate:  %.0f bit/s\n", st.bitrate())

	bws := make([]opus.Bandwidth, 0, len(st.bandwidths))
	for bw := range st.bandwidths {
		bws = append(bws, bw)
	}
	sort.Slice(bws, func(i, j int) bool { return bws[i] < bws[j] })
	for _, bw := range bws {
		fmt.Printf("bandwidth:        %v (%d packets)\n", bw, st.bandwidths[bw])
	}

	fmt.Printf("level in:         %.1f dBFS\n", level.DBFS(st.rmsIn))
	fmt.Printf("level out:        %.1f dBFS\n", level.DBFS(st.rmsOut))
}

// transcode encodes the wav file in with an encoder configured by opts,
// decodes every packet and writes the result with the given volume into
// the wav file out.
func transcode(in, out string, volume float32, opts ...opus.Option) (transcodeStats, error) {

	enc, err := opus.NewEncoder(opts...)
	if err != nil {
		return transcodeStats{}, err
	}
	defer enc.Close()

	r, err := wavReader.NewWavReader(in, wavReader.FramesPerBuffer(enc.FrameSamples()))
	if err != nil {
		return transcodeStats{}, err
	}
	defer r.Close()

	w, err := wavWriter.NewWavWriter(out,
		wavWriter.Samplerate(r.Samplerate()),
		wavWriter.Channels(r.Channels()))
	if err != nil {
		return transcodeStats{}, err
	}
	w.SetVolume(volume)

	return transcodeTo(enc, r, w)
}

// transcodeTo encodes everything src delivers until io.EOF, decodes the
// packets again and writes the decoded audio to out. out is closed before
// transcodeTo returns; a failure to close it is reported as well, since
// sinks like the wav writer only finish their file on Close.
func transcodeTo(enc *opus.OpusEncoder, src audio.Source, out audio.Sink) (st transcodeStats, err error) {

	st.bandwidths = make(map[opus.Bandwidth]int)

	meterIn := level.New()
	meterOut := level.New()

	// decoded audio goes to the level meter and the output sink
	sinks := audio.NewDefaultRouter()
	sinks.AddSink("level", meterOut, true)
	sinks.AddSink("out", out, true)
	defer func() {
		if cerr := sinks.Close(); err == nil {
			err = cerr
		}
	}()

	encOpts := enc.Options()
	sr := encOpts.Samplerate
	chs := encOpts.Channels
	frames := enc.FrameSamples()

	if int(src.Samplerate()) != sr {
		return st, fmt.Errorf("samplerate of the input (%v Hz) does not match encoder samplerate (%d Hz)",
			src.Samplerate(), sr)
	}

	dec, err := opus.NewOpusDecoder(opus.Samplerate(sr), opus.Channels(chs))
	if err != nil {
		return st, err
	}

	pcm := make([]int16, 0, frames*chs)
	packet := make([]byte, enc.MaxPacketSize())
	// a packet can hold up to 120ms of audio
	decoded := make([]float32, sr/1000*120*chs)

	for {
		msg, err := src.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return st, err
		}

		meterIn.Write(msg)

		data := audio.AdjustChannels(msg.Channels, chs, msg.Data)
		// the last buffer of the file is padded with silence
		for len(data) < frames*chs {
			data = append(data, 0)
		}

		pcm = audio.ToInt16(data, pcm)
		n, err := enc.Encode(pcm, packet)
		if err != nil {
			return st, err
		}

		st.packets++
		st.bytes += n
		if bw, err := opus.PacketBandwidth(packet[:n]); err == nil {
			st.bandwidths[bw]++
		}
		if s, err := opus.PacketSamples(packet[:n], sr); err == nil {
			st.samples = s
		}

		nd, err := dec.Decode(packet[:n], decoded)
		if err != nil {
			return st, err
		}

		res := audio.Msg{
			Data:       decoded[:nd*chs],
			Samplerate: float64(sr),
			Channels:   chs,
			Frames:     nd,
		}
		if err := sinks.Write(res); err != nil {
			return st, err
		}
	}

	fs, err := enc.Get(opus.ParamFrameSize)
	if err != nil {
		return st, err
	}
	st.frameSize = opus.FrameSize(fs)
	st.duration = time.Duration(st.packets*frames) * time.Second / time.Duration(sr)
	st.rmsIn = meterIn.RMS()
	st.rmsOut = meterOut.RMS()

	return st, nil
}
