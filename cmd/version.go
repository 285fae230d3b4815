package cmd

import (
	"fmt"
	"runtime"
	"time"

	"github.com/dh1tw/opusctl/audiocodec/opus"
	"github.com/spf13/cobra"
)

var version string
var commitHash string

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of opusctl",
	Long:  `All software has versions. This is opusctl's.`,
	Run: func(cmd *cobra.Command, args []string) {
		printOpusctlVersion()
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}

func printOpusctlVersion() {
	buildDate := time.Now().Format(time.RFC3339)
	fmt.Printf("opusctl Version: %s, %s/%s, BuildDate: %s, Commit: %s\n",
		version, runtime.GOOS, runtime.GOARCH, buildDate, commitHash)
	fmt.Printf("linked against %s\n", opus.LibraryVersion())
}
