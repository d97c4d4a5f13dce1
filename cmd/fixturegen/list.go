package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/snappyswift/fixturegen/internal/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List corpus entries and their input sizes",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	c, err := loadCodec()
	if err != nil {
		return err
	}
	cp, err := loadCorpus(c)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tINPUT\tFIXTURE")
	for _, tc := range cp.Cases() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", tc.Name, formatBytes(int64(len(tc.Input))), store.ArtifactName(tc.Name, c.Extension()))
	}
	return tw.Flush()
}
