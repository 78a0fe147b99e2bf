package cmd

import (
	"fmt"

	"github.com/jsphweid/ustkit/constants"
	"github.com/jsphweid/ustkit/convert"
	"github.com/jsphweid/ustkit/file"
	"github.com/spf13/cobra"
)

var convertOpts struct {
	out   string
	alt   bool
	thin  int
	force bool
}

func init() {
	convertCmd.Flags().StringVarP(&convertOpts.out, "out", "o", "", "output .ust path (default: input with .ust extension)")
	convertCmd.Flags().BoolVar(&convertOpts.alt, "alt", false, "use the alternate lyric column")
	convertCmd.Flags().IntVar(&convertOpts.thin, "thin", constants.GetThinStride(), "drop flat pitch points off this stride (0 keeps all)")
	convertCmd.Flags().BoolVarP(&convertOpts.force, "force", "f", false, "overwrite an existing output file")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <file.nn>",
	Short: "Converts an NN note list to a project",
	Long:  `Converts an NN fixed-column note list to a .ust project, filling gaps with rests.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		out := convertOpts.out
		if out == "" {
			out = derivePath(args[0], "", ".ust")
		}
		opts := convert.NNOptions{UseAltLyric: convertOpts.alt, ThinStride: convertOpts.thin}
		cobra.CheckErr(convertNN(args[0], out, opts, convertOpts.force))
	},
}

func convertNN(in, out string, opts convert.NNOptions, force bool) error {
	s, err := file.OpenNN(in, opts)
	if err != nil {
		return err
	}
	if err := file.Save(s, out, force); err != nil {
		return err
	}
	fmt.Printf("Wrote %v notes to %v\n", s.Count(), out)
	return nil
}
