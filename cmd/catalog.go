package cmd

import (
	"fmt"
	"strconv"

	"github.com/jsphweid/ustkit/db"
	"github.com/jsphweid/ustkit/file"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

func init() {
	catalogCmd.AddCommand(catalogPutCmd)
	catalogCmd.AddCommand(catalogGetCmd)
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Project catalog in DynamoDB",
	Long:  `Stores and looks up project summaries in DynamoDB.`,
}

var catalogPutCmd = &cobra.Command{
	Use:   "put <dir> [maxNum]",
	Short: "Catalogs every project under a directory",
	Long:  `Catalogs every project under a directory`,
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		var maxNum int
		if len(args) == 2 {
			arg1, err := strconv.Atoi(args[1])
			cobra.CheckErr(err)
			maxNum = arg1
		}
		summaries, err := file.SummarizeAll(args[0], maxNum)
		cobra.CheckErr(err)
		cobra.CheckErr(db.PutSummaries(summaries))
		fmt.Printf("Cataloged %v projects\n", len(summaries))
	},
}

var catalogGetCmd = &cobra.Command{
	Use:   "get <path>...",
	Short: "Looks up cataloged projects",
	Long:  `Looks up cataloged projects by their path relative to the directory given to put`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		found, err := db.GetSummaries(args)
		cobra.CheckErr(err)
		for _, name := range args {
			s, ok := found[name]
			if !ok {
				fmt.Printf("%v not in catalog\n", name)
				continue
			}
			out, err := yaml.Marshal(s)
			cobra.CheckErr(err)
			fmt.Printf("---\n%s", out)
		}
	},
}
