package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yumyai/skdist/logger"
	mydb "github.com/yumyai/skdist/pkg/db"
	"github.com/yumyai/skdist/pkg/params"
	"github.com/yumyai/skdist/pkg/workers"
)

// Engine is the sketching/distance engine the resolved parameters are handed to.
type Engine interface {
	Run(ctx context.Context, sketch params.SketchParams, cmd params.CommandParams) error
}

// logEngine only reports what it was given.
type logEngine struct{}

func (logEngine) Run(ctx context.Context, sketch params.SketchParams, cmd params.CommandParams) error {
	logger.Info("Handing off to sketch engine",
		zap.Stringer("mode", cmd.Mode),
		zap.Int("k", sketch.K),
		zap.Int("c", sketch.C),
		zap.Bool("amino_acid", sketch.IsAminoAcid),
		zap.Int("refs", len(cmd.RefFiles)),
		zap.Int("queries", len(cmd.QueryFiles)),
	)
	return nil
}

type app struct {
	engine   Engine
	manifest string
	now      func() time.Time
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "skdist",
		Short: "Sketch genomes and compute ANI/AAI distances between them",
		Long: `skdist builds compact k-mer sketches of genomes and compares them.

  sketch    build sketches from FASTA files
  dist      distances between a query set and a reference set
  triangle  all-pairs distances within one set
  search    nearest references for queries in a pre-sketched database`,
		Version:       VERSION,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		// let a mistyped subcommand reach ParseMode even with its flags attached
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			// anything reaching here did not match a subcommand
			_, err := params.ParseMode(args[0])
			return err
		},
	}
	root.PersistentFlags().StringVar(&a.manifest, "manifest", os.Getenv("SKDIST_MANIFEST"),
		"sqlite file that records every resolved run (env SKDIST_MANIFEST)")

	root.AddCommand(
		newSketchCmd(a),
		newDistCmd(a),
		newTriangleCmd(a),
		newSearchCmd(a),
	)
	return root
}

func newSketchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   params.SketchString + " [fasta...]",
		Short: "Build sketches from FASTA files",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, fastaPositional(args))
		},
	}
	fs := cmd.Flags()
	addCommonFlags(fs)
	addFastaListFlag(fs)
	addSketchFlags(fs)
	return cmd
}

func newDistCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   params.DistString + " [query] [reference]",
		Short: "Compute distances between queries and references",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			positional := params.ArgMap{}
			if len(args) > 0 {
				positional[params.FlagQuery] = args[:1]
			}
			if len(args) > 1 {
				positional[params.FlagReference] = args[1:2]
			}
			return a.run(cmd, positional)
		},
	}
	fs := cmd.Flags()
	addCommonFlags(fs)
	addSketchFlags(fs)
	addQueryFlags(fs)
	addEstimatorFlags(fs)
	fs.StringArrayP(params.FlagReferences, "r", nil, "Reference FASTA or sketch files")
	fs.String(params.FlagReferenceList, "", "File listing reference files, one per line")
	return cmd
}

func newTriangleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   params.TriangleString + " [fasta...]",
		Short: "Compute all-pairs distances within one set",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, fastaPositional(args))
		},
	}
	fs := cmd.Flags()
	addCommonFlags(fs)
	addFastaListFlag(fs)
	addSketchFlags(fs)
	addEstimatorFlags(fs)
	fs.Bool(params.FlagSparse, false, "Sparse output, one line per pair")
	fs.StringP(params.FlagScreen, "s", "", "Screen out pairs below this identity (default 0.0, off)")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   params.SearchString + " [query...]",
		Short: "Search queries against a pre-sketched database",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			positional := params.ArgMap{}
			if len(args) > 0 {
				positional[params.FlagQuery] = args
			}
			return a.run(cmd, positional)
		},
	}
	fs := cmd.Flags()
	addCommonFlags(fs)
	addQueryFlags(fs)
	addEstimatorFlags(fs)
	fs.StringP(params.FlagDatabase, "d", "", "Folder of pre-built sketches (required)")
	fs.StringP(params.FlagScreen, "s", "", "Screen out pairs below this identity (default 0.00)")
	return cmd
}

func fastaPositional(args []string) params.ArgMap {
	positional := params.ArgMap{}
	if len(args) > 0 {
		positional[params.FlagFastaFiles] = args
	}
	return positional
}

// Numeric flags stay strings; the resolver owns parsing.
func addCommonFlags(fs *pflag.FlagSet) {
	fs.StringP(params.FlagThreads, "t", "", "Number of threads (required)")
	fs.BoolP(params.FlagVerbose, "v", false, "Debug level logging")
	fs.Bool(params.FlagTrace, false, "Trace level logging")
	fs.StringP(params.FlagOutput, "o", "", "Output file name")
}

func addFastaListFlag(fs *pflag.FlagSet) {
	fs.StringP(params.FlagFastaList, "l", "", "File listing FASTA files, one per line")
}

func addSketchFlags(fs *pflag.FlagSet) {
	fs.BoolP(params.FlagAAI, "a", false, "Amino acid mode")
	fs.StringP(params.FlagK, "k", "", fmt.Sprintf("k-mer size (default %d, %d with --aai)", params.DefaultK, params.DefaultKAAI))
	fs.StringP(params.FlagC, "c", "", fmt.Sprintf("Compression factor (default %d, %d with --aai)", params.DefaultC, params.DefaultCAAI))
}

func addQueryFlags(fs *pflag.FlagSet) {
	fs.StringArrayP(params.FlagQueries, "q", nil, "Query FASTA or sketch files")
	fs.String(params.FlagQueryList, "", "File listing query files, one per line")
	fs.StringP(params.FlagMaxResults, "n", "", fmt.Sprintf("Maximum results per query (default %d)", params.DefaultMaxResults))
}

func addEstimatorFlags(fs *pflag.FlagSet) {
	fs.Bool(params.FlagRobust, false, "Robust estimator, trims extreme k-mer windows")
	fs.Bool(params.FlagMedian, false, "Median estimator instead of the mean")
}

func (a *app) run(cmd *cobra.Command, positional params.ArgMap) error {

	mode, err := params.ParseMode(cmd.Name())
	if err != nil {
		return err
	}

	res, err := params.Resolve(mode, params.FlagArgs{Flags: cmd.Flags(), Positional: positional})
	if err != nil {
		return err
	}

	logger.SetLevel(levelFor(res.Runtime.Verbosity))

	rt, err := workers.Configure(workers.Config{Threads: res.Runtime.Threads})
	if err != nil {
		return err
	}
	defer rt.Release()

	runID := uuid.New()
	doc, err := params.Describe(res)
	if err != nil {
		return fmt.Errorf("failed to describe parameters: %w", err)
	}

	logger.Info("Resolved parameters",
		zap.String("run_id", runID.String()),
		zap.Stringer("mode", mode),
		zap.Int("threads", rt.Threads()),
		zap.Bool("refs_are_sketch", res.Command.RefsAreSketch),
		zap.Bool("queries_are_sketch", res.Command.QueriesAreSketch),
	)
	logger.Debug("Resolved configuration", zap.String("run_id", runID.String()), zap.ByteString("yaml", doc))
	logger.Trace("Input files",
		zap.Strings("refs", res.Command.RefFiles),
		zap.Strings("queries", res.Command.QueryFiles),
	)

	ctx := cmd.Context()
	if a.manifest != "" {
		if err := a.record(ctx, runID, res, doc); err != nil {
			return err
		}
	}

	return a.engine.Run(ctx, res.Sketch, res.Command)
}

func (a *app) record(ctx context.Context, runID uuid.UUID, res params.Resolution, doc []byte) error {

	rdb, err := mydb.NewRunDB(a.manifest)
	if err != nil {
		return err
	}
	defer rdb.Close()

	prev, err := latestRun(ctx, rdb)
	if err != nil {
		return err
	}
	if prev != nil {
		logger.Info("Previous run in manifest",
			zap.String("run_id", prev.ID.String()),
			zap.String("mode", prev.Mode),
			zap.Time("created_at", prev.CreatedAt),
		)
	}

	now := time.Now
	if a.now != nil {
		now = a.now
	}

	err = rdb.Record(ctx, mydb.Run{
		ID:        runID,
		Mode:      res.Command.Mode.String(),
		Threads:   res.Runtime.Threads,
		CreatedAt: now(),
		Params:    string(doc),
	})
	if err != nil {
		return err
	}

	logger.Debug("Recorded run", zap.String("run_id", runID.String()), zap.String("manifest", a.manifest))
	return nil
}

// latestRun returns the newest recorded run, or nil for an empty manifest.
func latestRun(ctx context.Context, rdb *mydb.RunDB) (*mydb.Run, error) {
	runs, err := rdb.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return runs[0], nil
}

func levelFor(v params.Verbosity) zapcore.Level {
	switch v {
	case params.VerbosityTrace:
		return logger.TraceLevel
	case params.VerbosityDebug:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}
