package cmd

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ustkit",
	Short: "UTAU project toolkit",
	Long:  `Reads, edits, converts and serves UTAU note projects (.ust) and NN note lists.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// derivePath swaps the extension of in for ext, adding suffix before it.
// Used when a command is not given an output path.
func derivePath(in, suffix, ext string) string {
	base := strings.TrimSuffix(in, filepath.Ext(in))
	return base + suffix + ext
}
