package cmd

import (
	"os"
	"text/template"

	"github.com/dh1tw/opusctl/audiocodec/opus"
	"github.com/spf13/cobra"
)

// paramsCmd represents the params command
var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "List all encoder parameters and their value domains",
	Long:  `List all encoder parameters, their libopus request codes and value domains`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := listParams(); err != nil {
			exit(err)
		}
	},
}

func init() {
	RootCmd.AddCommand(paramsCmd)
}

type paramInfo struct {
	Name       string
	SetRequest int32
	GetRequest int32
	Domain     string
}

var paramsTmpl = template.Must(template.New("").Parse(
	`
Encoder parameters ({{. | len}}):
{{range .}}
	Name:         {{.Name}}
	Set request:  {{.SetRequest}}
	Get request:  {{.GetRequest}}
	Values:       {{.Domain}}
{{end}}`,
))

// listParams prints all parameters the encoder can be configured with
func listParams() error {
	ps := []paramInfo{}
	for _, p := range opus.Params() {
		ps = append(ps, paramInfo{
			Name:       string(p),
			SetRequest: p.SetRequest(),
			GetRequest: p.GetRequest(),
			Domain:     p.Domain(),
		})
	}
	return paramsTmpl.Execute(os.Stdout, ps)
}
