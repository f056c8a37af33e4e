package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "duty",
		Short: "Calculate duty and total landed cost for an HTS code",
		Run:   runDuty,
	}

	cmd.Flags().String("code", "", "HTS classification code (required)")
	cmd.Flags().Float64("cost", 0, "Product cost in dollars")
	cmd.Flags().Float64("freight", 0, "Freight cost in dollars")
	cmd.Flags().Float64("insurance", 0, "Insurance cost in dollars")

	cmd.MarkFlagRequired("code")

	RootCmd.AddCommand(cmd)
}

func runDuty(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	user := requireUser()

	code, _ := cmd.Flags().GetString("code")
	cost, _ := cmd.Flags().GetFloat64("cost")
	freight, _ := cmd.Flags().GetFloat64("freight")
	insurance, _ := cmd.Flags().GetFloat64("insurance")

	// The core assumes non-negative inputs; reject bad ones here.
	for name, v := range map[string]float64{"cost": cost, "freight": freight, "insurance": insurance} {
		if v < 0 {
			exitErr("validate inputs", fmt.Errorf("%s must be non-negative, got %v", name, v))
		}
	}

	a, cleanup := buildAgent(cmd, cfg, false)
	defer cleanup()

	sess, err := a.NewSession(user)
	if err != nil {
		exitErr("load session", err)
	}

	result, err := a.CalculateDuty(sess, code, cost, freight, insurance)
	if err != nil {
		exitErr("save history", err)
	}

	color.Cyan("Duty Cost:         $%.2f", result.DutyCost)
	color.Cyan("Total Landed Cost: $%.2f", result.TotalLandedCost)
}
