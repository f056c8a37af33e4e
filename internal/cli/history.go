package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:       "history [rag|duty]",
		Short:     "Show or prune a user's interaction history",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"rag", "duty"},
		Run:       runHistory,
	}

	cmd.Flags().Int("delete", 0, "Delete entry N (1-based) instead of listing")

	RootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	user := requireUser()

	a, cleanup := buildAgent(cmd, cfg, false)
	defer cleanup()

	sess, err := a.NewSession(user)
	if err != nil {
		exitErr("load session", err)
	}

	flow := args[0]
	deleteN, _ := cmd.Flags().GetInt("delete")

	if deleteN > 0 {
		switch flow {
		case "rag":
			err = a.DeleteQueryEntry(sess, deleteN-1)
		case "duty":
			err = a.DeleteDutyEntry(sess, deleteN-1)
		}
		if err != nil {
			exitErr("delete entry", err)
		}
		color.Green("✓ Deleted entry %d", deleteN)
		return
	}

	switch flow {
	case "rag":
		if len(sess.Queries) == 0 {
			fmt.Println("No query history.")
			return
		}
		for i, entry := range sess.Queries {
			color.Green("%d. Q: %s", i+1, entry.Query)
			fmt.Printf("   A: %s\n", entry.Response)
		}
	case "duty":
		if len(sess.Duties) == 0 {
			fmt.Println("No duty history.")
			return
		}
		for i, entry := range sess.Duties {
			color.Green("%d. %s", i+1, entry.HTSCode)
			fmt.Printf("   cost $%.2f  freight $%.2f  insurance $%.2f  duty $%.2f  total $%.2f\n",
				entry.ProductCost, entry.Freight, entry.Insurance, entry.DutyCost, entry.TotalLandedCost)
		}
	}
}
