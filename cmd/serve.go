// Copyright © 2016 Tobias Wellnitz, DH1TW <Tobias.Wellnitz@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/dh1tw/opusctl/audio"
	"github.com/dh1tw/opusctl/audio/sources/tone"
	"github.com/dh1tw/opusctl/audio/sources/wavReader"
	"github.com/dh1tw/opusctl/audiocodec/opus"
	"github.com/dh1tw/opusctl/webserver"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a live encoder which can be configured through a REST API",
	Long: `Run a live encoder which can be configured through a REST API

The encoder is continuously fed with a test tone. Its parameters can be
read and changed through http://<address>:<port>/api/v1.0/encoder and every
change is pushed to the websocket clients connected to /ws.

Example:

$ curl -X PUT -d '{"name": "wideband"}' http://localhost:9090/api/encoder/bandwidth
`,
	Run: serve,
}

func init() {
	RootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("address", "w", "127.0.0.1", "address of the webserver")
	serveCmd.Flags().IntP("port", "k", 9090, "port of the webserver")
	serveCmd.Flags().Float32("tone-frequency", 1000, "frequency of the test tone in Hz")
	serveCmd.Flags().Float32("tone-amplitude", 0.5, "amplitude of the test tone [0...1]")
	serveCmd.Flags().String("wav", "", "wav file played in a loop instead of the test tone")
}

func serve(cmd *cobra.Command, args []string) {

	readConfig()

	// bind the pflags to viper settings
	viper.BindPFlag("http.address", cmd.Flags().Lookup("address"))
	viper.BindPFlag("http.port", cmd.Flags().Lookup("port"))
	viper.BindPFlag("tone.frequency", cmd.Flags().Lookup("tone-frequency"))
	viper.BindPFlag("tone.amplitude", cmd.Flags().Lookup("tone-amplitude"))
	viper.BindPFlag("wav.file", cmd.Flags().Lookup("wav"))

	opts, err := encoderOptionsFromConfig()
	if err != nil {
		exit(err)
	}

	enc, err := opus.NewEncoder(opts...)
	if err != nil {
		exit(err)
	}
	defer enc.Close()

	web, err := webserver.NewWebServer(webserver.Settings{
		Address: viper.GetString("http.address"),
		Port:    viper.GetInt("http.port"),
		Encoder: enc,
	})
	if err != nil {
		exit(err)
	}

	encOpts := enc.Options()

	// all opus frame sizes are multiples of 2.5ms, so the audio is
	// read in 2.5ms chunks
	chunk := encOpts.Samplerate / 400

	src := audio.NewSelector()
	src.AddSource("tone", tone.New(
		tone.Frequency(float32(viper.GetFloat64("tone.frequency"))),
		tone.Amplitude(float32(viper.GetFloat64("tone.amplitude"))),
		tone.Samplerate(float64(encOpts.Samplerate)),
		tone.Channels(encOpts.Channels),
		tone.FramesPerBuffer(chunk),
	))

	if file := viper.GetString("wav.file"); file != "" {
		wr, err := wavReader.NewWavReader(file, wavReader.FramesPerBuffer(chunk))
		if err != nil {
			exit(err)
		}
		if int(wr.Samplerate()) != encOpts.Samplerate {
			exit(fmt.Errorf("samplerate of %s (%v Hz) does not match encoder samplerate (%d Hz)",
				file, wr.Samplerate(), encOpts.Samplerate))
		}
		src.AddSource("wav", wr)
		if err := src.SetSource("wav"); err != nil {
			exit(err)
		}
	}
	log.Printf("feeding the encoder from source '%s'\n", src.ActiveSource())

	go func() {
		if err := web.Start(); err != nil {
			exit(err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go feedEncoder(ctx, web, src, encOpts.Samplerate, encOpts.Channels)

	// Channel to handle OS signals
	osSignals := make(chan os.Signal, 1)
	//subscribe to os.Interrupt (CTRL-C signal)
	signal.Notify(osSignals, os.Interrupt)

	<-osSignals
	cancel()

	sctx, scancel := context.WithTimeout(context.Background(), time.Second*2)
	defer scancel()
	if err := web.Shutdown(sctx); err != nil {
		log.Println(err)
	}
}

// feedEncoder encodes one frame from src in the rhythm of the frame size
// currently set on the encoder until ctx is cancelled.
func feedEncoder(ctx context.Context, web *webserver.WebServer, src audio.Source, sr, chs int) {

	frames := web.FrameSamples()
	ticker := time.NewTicker(frameDuration(frames, sr))
	defer ticker.Stop()

	packet := make([]byte, 1275*6)
	pcm := []int16{}
	// samples read from src but not encoded yet
	buf := []float32{}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		var srcErr error
		next := func(samples int) ([]int16, error) {
			// the frame size may have been changed through the API
			if samples != frames {
				frames = samples
				ticker.Reset(frameDuration(frames, sr))
			}

			for len(buf) < frames*chs {
				msg, err := src.Read()
				if err != nil {
					srcErr = err
					return nil, err
				}
				buf = append(buf, audio.AdjustChannels(msg.Channels, chs, msg.Data)...)
			}

			pcm = audio.ToInt16(buf[:frames*chs], pcm)
			buf = append([]float32{}, buf[frames*chs:]...)
			return pcm, nil
		}

		if _, err := web.EncodeFrameFunc(next, packet); err != nil {
			if srcErr != nil {
				log.Println(srcErr)
				return
			}
			log.Println(fmt.Errorf("encoding frame: %w", err))
		}
	}
}

func frameDuration(frames, sr int) time.Duration {
	return time.Duration(frames) * time.Second / time.Duration(sr)
}
