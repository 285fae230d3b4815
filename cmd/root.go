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
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "opusctl",
	Short: "Configure and exercise Opus encoder parameters",
	Long: `opusctl configures the parameters of a libopus encoder.

The bitrate, complexity, signal type, expected packet loss, inband FEC,
bandwidth, frame size and LSB depth can be set through the config file,
command line flags or, while the encoder is running, through a REST API.
`,
}

// Execute adds all child commands to the root command sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		exit(err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.opusctl.yaml)")

	RootCmd.PersistentFlags().Int("samplerate", 48000, "opus samplerate [8000, 12000, 16000, 24000, 48000]")
	RootCmd.PersistentFlags().Int("channels", 1, "opus channels [1, 2]")
	RootCmd.PersistentFlags().String("application", "restricted_lowdelay", "opus application [voip, audio, restricted_lowdelay]")
	RootCmd.PersistentFlags().String("bitrate", "24000", "opus bitrate in bit/s [500...512000, auto, max]")
	RootCmd.PersistentFlags().Int("complexity", 5, "opus complexity [0...10]")
	RootCmd.PersistentFlags().String("signal", "auto", "opus signal type [auto, voice, music]")
	RootCmd.PersistentFlags().Int("packet-loss", 0, "expected packet loss in percent [0...100]")
	RootCmd.PersistentFlags().String("inband-fec", "off", "opus inband forward error correction [on, off]")
	RootCmd.PersistentFlags().String("bandwidth", "auto", "opus bandwidth [auto, narrowband, mediumband, wideband, superwideband, fullband]")
	RootCmd.PersistentFlags().String("max-bandwidth", "wideband", "opus max bandwidth [narrowband, mediumband, wideband, superwideband, fullband]")
	RootCmd.PersistentFlags().String("frame-size", "20ms", "opus frame size [2.5ms, 5ms, 10ms, 20ms, 40ms, 60ms, 80ms, 100ms, 120ms]")
	RootCmd.PersistentFlags().Int("lsb-depth", 24, "significant bits of the input signal [8...24]")

	viper.BindPFlag("opus.samplerate", RootCmd.PersistentFlags().Lookup("samplerate"))
	viper.BindPFlag("opus.channels", RootCmd.PersistentFlags().Lookup("channels"))
	viper.BindPFlag("opus.application", RootCmd.PersistentFlags().Lookup("application"))
	viper.BindPFlag("opus.bitrate", RootCmd.PersistentFlags().Lookup("bitrate"))
	viper.BindPFlag("opus.complexity", RootCmd.PersistentFlags().Lookup("complexity"))
	viper.BindPFlag("opus.signal", RootCmd.PersistentFlags().Lookup("signal"))
	viper.BindPFlag("opus.packet-loss", RootCmd.PersistentFlags().Lookup("packet-loss"))
	viper.BindPFlag("opus.inband-fec", RootCmd.PersistentFlags().Lookup("inband-fec"))
	viper.BindPFlag("opus.bandwidth", RootCmd.PersistentFlags().Lookup("bandwidth"))
	viper.BindPFlag("opus.max-bandwidth", RootCmd.PersistentFlags().Lookup("max-bandwidth"))
	viper.BindPFlag("opus.frame-size", RootCmd.PersistentFlags().Lookup("frame-size"))
	viper.BindPFlag("opus.lsb-depth", RootCmd.PersistentFlags().Lookup("lsb-depth"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" { // enable ability to specify config file via flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			exit(err)
		}
		viper.SetConfigName(".opusctl") // name of config file (without extension)
		viper.AddConfigPath(home)       // adding home directory as first search path
	}

	viper.SetEnvPrefix("opusctl")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// readConfig tries to read the config file. A missing config file is not
// an error.
func readConfig() {
	err := viper.ReadInConfig()
	switch err.(type) {
	case nil:
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	case viper.ConfigFileNotFoundError:
	default:
		exit(fmt.Errorf("error parsing config file %v: %w", viper.ConfigFileUsed(), err))
	}
}

func exit(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
