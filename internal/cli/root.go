// Package cli implements the htsagent CLI commands. The CLI is the
// boundary collaborator of the core: it validates identifiers and cost
// inputs, then calls the agent's two entry points.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tradedesk/htsagent/internal/models"
	"github.com/tradedesk/htsagent/internal/types"
	"github.com/tradedesk/htsagent/pkg/agent"
	"github.com/tradedesk/htsagent/pkg/config"
	"github.com/tradedesk/htsagent/pkg/docstore"
	"github.com/tradedesk/htsagent/pkg/index"
	"github.com/tradedesk/htsagent/pkg/llm"
	"github.com/tradedesk/htsagent/pkg/memory"
	"github.com/tradedesk/htsagent/pkg/router"
	"github.com/tradedesk/htsagent/pkg/tariff"
)

var (
	configPath string
	userID     string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "htsagent",
	Short: "Trade-agreement Q&A and HTS duty calculation",
	Long:  "Answers questions about trade-agreement documents and computes landed costs from the HTS tariff schedule, keeping a per-user history of both.",
}

func init() {
	godotenv.Load()

	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	RootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "", "4-digit user identifier")
}

func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		exitErr("load config", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "config: %v\n", e)
		}
		os.Exit(1)
	}
	return cfg
}

func requireUser() string {
	if !agent.ValidIdentifier(userID) {
		exitErr("validate user", fmt.Errorf("invalid user ID %q, enter a 4-digit number", userID))
	}
	return userID
}

func newEmbedder(cfg *config.Config) *llm.Embedder {
	emb, err := llm.NewEmbedderWithConfig(llm.EmbedderConfig{
		Model:   cfg.Embedder.Model,
		BaseURL: cfg.Embedder.BaseURL,
		Timeout: time.Duration(cfg.Embedder.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		exitErr("init embedder", err)
	}
	return emb
}

// openIndex returns the configured semantic index. The disk backend is
// opened lazily so a missing or unreadable index file surfaces at query
// time, where the router degrades to keyword search or an error answer
// instead of aborting the command.
func openIndex(cmd *cobra.Command, cfg *config.Config) types.Index {
	switch cfg.Index.Backend {
	case "pgvector":
		if cfg.Index.ConnString == "" {
			return nil
		}
		idx, err := index.NewPgVector(cmd.Context(), index.PgVectorConfig{
			ConnString: cfg.Index.ConnString,
			TableName:  cfg.Index.TableName,
			VectorDim:  cfg.Index.VectorDim,
			Embedder:   newEmbedder(cfg),
		})
		if err != nil {
			exitErr("open pgvector index", err)
		}
		return idx
	default:
		return index.NewLazyDisk(index.DiskConfig{
			Path:     cfg.Index.Path,
			Embedder: newEmbedder(cfg),
		})
	}
}

// buildAgent wires the full core. The returned cleanup closes the
// stores.
func buildAgent(cmd *cobra.Command, cfg *config.Config, withIndex bool) (*agent.Agent, func()) {
	docs, err := docstore.Open(docstore.StoreConfig{DBPath: cfg.Documents.DBPath})
	if err != nil {
		exitErr("open document store", err)
	}

	var idx types.Index
	if withIndex {
		idx = openIndex(cmd, cfg)
	}

	schedule := tariff.NewSchedule(tariff.ScheduleConfig{CSVPath: cfg.Tariff.CSVPath})

	a := agent.New(agent.Config{
		Router: router.NewWithConfig(router.RouterConfig{
			Index:           idx,
			Documents:       docs,
			SemanticTimeout: time.Duration(cfg.Embedder.TimeoutSeconds) * time.Second,
		}),
		Calculator:  tariff.NewCalculator(tariff.CalculatorConfig{Source: schedule}),
		QueryMemory: memory.NewStore[models.QueryEntry](cfg.Memory.Dir, memory.FlowRAG),
		DutyMemory:  memory.NewStore[models.DutyEntry](cfg.Memory.Dir, memory.FlowDuty),
	})

	cleanup := func() {
		docs.Close()
		if idx != nil {
			idx.Close()
		}
	}
	return a, cleanup
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
