package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the duty history to a spreadsheet or PDF",
		Run:   runExport,
	}

	cmd.Flags().String("format", "excel", "Export format: excel or pdf")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	user := requireUser()

	a, cleanup := buildAgent(cmd, cfg, false)
	defer cleanup()

	sess, err := a.NewSession(user)
	if err != nil {
		exitErr("load session", err)
	}
	if len(sess.Duties) == 0 {
		color.Yellow("No duty history to export.")
		return
	}

	format, _ := cmd.Flags().GetString("format")
	path, err := a.ExportDuty(sess, format, cfg.Export.Dir)
	if err != nil {
		exitErr("export", err)
	}
	color.Green("✓ Exported %d entries to %s", len(sess.Duties), path)
}
