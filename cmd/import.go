package cmd

import (
	"fmt"

	"github.com/jsphweid/ustkit/file"
	"github.com/jsphweid/ustkit/midi"
	"github.com/spf13/cobra"
)

var importOpts struct {
	out   string
	track int
	force bool
}

func init() {
	importCmd.Flags().StringVarP(&importOpts.out, "out", "o", "", "output .ust path (default: input with .ust extension)")
	importCmd.Flags().IntVarP(&importOpts.track, "track", "t", 0, "track to read")
	importCmd.Flags().BoolVarP(&importOpts.force, "force", "f", false, "overwrite an existing output file")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file.mid>",
	Short: "Imports a MIDI track as a project",
	Long:  `Reads one track of a standard MIDI file as a monophonic melody.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		out := importOpts.out
		if out == "" {
			out = derivePath(args[0], "", ".ust")
		}
		mf, err := midi.ReadMidiFile(args[0])
		cobra.CheckErr(err)
		s, err := midi.ToSequence(mf, importOpts.track)
		cobra.CheckErr(err)
		cobra.CheckErr(file.Save(s, out, importOpts.force))
		fmt.Printf("Wrote %v notes to %v\n", s.Count(), out)
	},
}
