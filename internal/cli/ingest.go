package cli

import (
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/tradedesk/htsagent/internal/types"
	"github.com/tradedesk/htsagent/pkg/index"
	"github.com/tradedesk/htsagent/pkg/ingest"
)

func init() {
	cmd := &cobra.Command{
		Use:   "ingest [files or globs]",
		Short: "Build the semantic index from a document corpus",
		Args:  cobra.MinimumNArgs(1),
		Run:   runIngest,
	}

	RootCmd.AddCommand(cmd)
}

func runIngest(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	sources, err := ingest.LoadPaths(args)
	if err != nil {
		exitErr("load corpus", err)
	}
	color.Blue("Loaded %d documents", len(sources))

	var writer types.IndexWriter
	switch cfg.Index.Backend {
	case "pgvector":
		idx, err := index.NewPgVector(cmd.Context(), index.PgVectorConfig{
			ConnString: cfg.Index.ConnString,
			TableName:  cfg.Index.TableName,
			VectorDim:  cfg.Index.VectorDim,
			Embedder:   newEmbedder(cfg),
		})
		if err != nil {
			exitErr("open pgvector index", err)
		}
		defer idx.Close()
		writer = idx
	default:
		writer = index.NewDiskWriter(cfg.Index.Path, cfg.Embedder.Model, cfg.Index.VectorDim)
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.BlueString("Embedding corpus...")),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
	)

	builder := ingest.NewBuilder(ingest.BuilderConfig{
		Embedder: newEmbedder(cfg),
		Writer:   writer,
		Chunker: ingest.NewChunker(ingest.ChunkerConfig{
			ChunkSize:      cfg.Ingest.ChunkSize,
			ChunkOverlap:   cfg.Ingest.ChunkOverlap,
			MinChunkLength: cfg.Ingest.MinChunkLength,
		}),
		RateLimit: cfg.Ingest.RateLimit,
		OnProgress: func(done, total int) {
			bar.ChangeMax(total)
			bar.Set(done)
		},
	})

	n, err := builder.Build(cmd.Context(), sources)
	if err != nil {
		exitErr("build index", err)
	}
	bar.Finish()
	color.Green("\n✓ Indexed %d passages", n)
}
