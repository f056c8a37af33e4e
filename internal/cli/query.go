package cli

import (
	"bufio"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "query [question]",
		Short: "Ask a question about the trade-agreement corpus",
		Run:   runQuery,
	}

	RootCmd.AddCommand(cmd)
}

func runQuery(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	user := requireUser()

	a, cleanup := buildAgent(cmd, cfg, true)
	defer cleanup()

	sess, err := a.NewSession(user)
	if err != nil {
		exitErr("load session", err)
	}

	assistantPrompt := color.New(color.FgCyan).PrintfFunc()

	if len(args) > 0 {
		answer, err := a.AnswerQuery(cmd.Context(), sess, strings.Join(args, " "))
		if err != nil {
			exitErr("save history", err)
		}
		assistantPrompt("%s\n", answer)
		return
	}

	// Interactive loop
	color.Cyan("Ask about the trade agreements (type 'exit' to quit)")
	scanner := bufio.NewScanner(os.Stdin)
	userPrompt := color.New(color.FgGreen).PrintfFunc()

	for {
		userPrompt("\nYou: ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if strings.EqualFold(query, "exit") {
			break
		}

		answer, err := a.AnswerQuery(cmd.Context(), sess, query)
		if err != nil {
			exitErr("save history", err)
		}
		assistantPrompt("Answer: %s\n", answer)
	}
}
