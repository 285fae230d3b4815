package cmd

import (
	"fmt"

	"github.com/dh1tw/opusctl/audiocodec/opus"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configured encoder parameters",
	Long: `Validate the configured encoder parameters

The opus.* values from the config file and the command line flags are
applied to a freshly created encoder. The first value libopus rejects is
reported; otherwise the resulting encoder settings are printed.
`,
	Run: func(cmd *cobra.Command, args []string) {
		readConfig()
		if err := check(); err != nil {
			exit(err)
		}
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
}

func check() error {
	opts, err := encoderOptionsFromConfig()
	if err != nil {
		return err
	}

	enc, err := opus.NewEncoder(opts...)
	if err != nil {
		return err
	}
	defer enc.Close()

	h := enc.Handle()
	fmt.Printf("encoder: %d Hz, %d channel(s), %s\n",
		h.SampleRate(), h.Channels(), h.Application())

	for _, p := range opus.Params() {
		v, err := enc.Get(p)
		if err != nil {
			return err
		}
		fmt.Printf("  %-14s %s\n", p, p.Format(v))
	}
	return nil
}
