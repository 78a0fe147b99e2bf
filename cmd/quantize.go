package cmd

import (
	"fmt"

	"github.com/jsphweid/ustkit/constants"
	"github.com/jsphweid/ustkit/file"
	"github.com/spf13/cobra"
)

var quantizeOpts struct {
	out      string
	standard int
	force    bool
}

func init() {
	quantizeCmd.Flags().StringVarP(&quantizeOpts.out, "out", "o", "", "output path (default: <input>-quantized.ust)")
	quantizeCmd.Flags().IntVarP(&quantizeOpts.standard, "standard", "s", constants.TicksPerBeat/4, "grid in ticks")
	quantizeCmd.Flags().BoolVarP(&quantizeOpts.force, "force", "f", false, "overwrite an existing output file")
	rootCmd.AddCommand(quantizeCmd)
}

var quantizeCmd = &cobra.Command{
	Use:   "quantize <file.ust>",
	Short: "Snaps note lengths to a grid",
	Long:  `Rounds every note length to the nearest multiple of the grid (half to even).`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		out := quantizeOpts.out
		if out == "" {
			out = derivePath(args[0], "-quantized", ".ust")
		}
		s, err := file.Open(args[0])
		cobra.CheckErr(err)
		before := s.Count()
		cobra.CheckErr(s.Quantize(quantizeOpts.standard))
		cobra.CheckErr(file.Save(s, out, quantizeOpts.force))
		fmt.Printf("Wrote %v notes to %v (%v dropped)\n", s.Count(), out, before-s.Count())
	},
}
