package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jsphweid/ustkit/file"
	"github.com/jsphweid/ustkit/model"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var inspectYAML bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectYAML, "yaml", false, "print the summary as YAML")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.ust>...",
	Short: "Inspects projects",
	Long:  `Prints tempo, note counts, length and pitch range of each project.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, path := range args {
			sum, err := file.Summarize(path)
			cobra.CheckErr(err)
			if inspectYAML {
				out, err := yaml.Marshal(sum)
				cobra.CheckErr(err)
				fmt.Printf("---\n%s", out)
				continue
			}
			fmt.Print(formatSummary(sum))
		}
	},
}

func formatSummary(s model.Summary) string {
	res := fmt.Sprintf("%v (%v)\n", s.File, humanize.Bytes(uint64(s.Size)))
	if s.ProjectName != "" {
		res += fmt.Sprintf("  project: %v\n", s.ProjectName)
	}
	res += fmt.Sprintf("  tempo:   %v\n", s.Tempo)
	res += fmt.Sprintf("  notes:   %v (%v voiced)\n", humanize.Comma(int64(s.Notes)), humanize.Comma(int64(s.Voiced)))
	res += fmt.Sprintf("  length:  %v ticks\n", s.Length)
	if s.High != nil && s.Low != nil {
		res += fmt.Sprintf("  range:   %v-%v\n", *s.Low, *s.High)
	}
	return res
}
