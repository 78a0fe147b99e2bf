package cmd

import (
	"fmt"
	"os"

	"github.com/jsphweid/ustkit/file"
	"github.com/jsphweid/ustkit/midi"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var exportOpts struct {
	out   string
	force bool
}

func init() {
	exportCmd.Flags().StringVarP(&exportOpts.out, "out", "o", "", "output .mid path (default: input with .mid extension)")
	exportCmd.Flags().BoolVarP(&exportOpts.force, "force", "f", false, "overwrite an existing output file")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <file.ust>",
	Short: "Exports a project as MIDI",
	Long:  `Writes a single-track standard MIDI file with tempo, lyric and note events.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		out := exportOpts.out
		if out == "" {
			out = derivePath(args[0], "", ".mid")
		}
		cobra.CheckErr(exportMidi(args[0], out, exportOpts.force))
		fmt.Printf("Wrote %v\n", out)
	},
}

func exportMidi(in, out string, force bool) error {
	s, err := file.Open(in)
	if err != nil {
		return err
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(out, flags, 0644)
	if err != nil {
		return errors.Wrap(err, "could not create midi file")
	}
	defer f.Close()
	if err := midi.Export(s, f); err != nil {
		return err
	}
	return f.Close()
}
