package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tradedesk/htsagent/pkg/docstore"
)

func init() {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create and seed the document store",
		Run:   runInit,
	}

	cmd.Flags().String("csv", "", "Also import passages from a csv file with a content column")

	RootCmd.AddCommand(cmd)
}

func runInit(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	docs, err := docstore.Open(docstore.StoreConfig{DBPath: cfg.Documents.DBPath})
	if err != nil {
		exitErr("open document store", err)
	}
	defer docs.Close()

	if err := docs.Initialize(cmd.Context()); err != nil {
		exitErr("initialize document store", err)
	}
	color.Green("✓ Document store ready at %s", cfg.Documents.DBPath)

	if csvPath, _ := cmd.Flags().GetString("csv"); csvPath != "" {
		n, err := docs.ImportCSV(cmd.Context(), csvPath)
		if err != nil {
			exitErr("import csv", err)
		}
		color.Green("✓ Imported %d passages from %s", n, csvPath)
	}
}
