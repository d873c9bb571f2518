package main

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/yumyai/skdist/logger"
	mydb "github.com/yumyai/skdist/pkg/db"
	"github.com/yumyai/skdist/pkg/params"
)

func TestMain(m *testing.M) {
	if err := logger.InitLogger(zapcore.WarnLevel); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type captureEngine struct {
	calls  int
	sketch params.SketchParams
	cmd    params.CommandParams
}

func (e *captureEngine) Run(ctx context.Context, sketch params.SketchParams, cmd params.CommandParams) error {
	e.calls++
	e.sketch = sketch
	e.cmd = cmd
	return nil
}

func execute(t *testing.T, a *app, argv ...string) error {
	t.Helper()
	defer logger.SetLevel(zapcore.WarnLevel)

	root := newRootCmd(a)
	root.SetArgs(argv)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestDistCommand(t *testing.T) {
	engine := &captureEngine{}
	require.NoError(t, execute(t, &app{engine: engine}, "dist", "-t", "2", "q.fa", "r.fa"))

	require.Equal(t, 1, engine.calls)
	assert.Equal(t, params.SketchParams{K: params.DefaultK, C: params.DefaultC}, engine.sketch)
	assert.Equal(t, params.ModeDist, engine.cmd.Mode)
	assert.Equal(t, []string{"r.fa"}, engine.cmd.RefFiles)
	assert.Equal(t, []string{"q.fa"}, engine.cmd.QueryFiles)
	assert.False(t, engine.cmd.RefsAreSketch)
	assert.False(t, engine.cmd.QueriesAreSketch)
	assert.Equal(t, params.DefaultMaxResults, engine.cmd.MaxResults)
}

func TestDistCommandFlags(t *testing.T) {
	engine := &captureEngine{}
	err := execute(t, &app{engine: engine}, "dist", "-t", "1",
		"-r", "r1.sketch", "-r", "r2.marker", "-q", "q.fa", "--aai", "-k", "8", "-n", "3", "--median")
	require.NoError(t, err)

	assert.Equal(t, []string{"r1.sketch", "r2.marker"}, engine.cmd.RefFiles)
	assert.True(t, engine.cmd.RefsAreSketch)
	assert.Equal(t, 8, engine.sketch.K)
	assert.Equal(t, params.DefaultCAAI, engine.sketch.C)
	assert.True(t, engine.sketch.IsAminoAcid)
	assert.Equal(t, uint(3), engine.cmd.MaxResults)
	assert.True(t, engine.cmd.Median)
	assert.False(t, engine.cmd.Robust)
}

func TestTriangleCommand(t *testing.T) {
	engine := &captureEngine{}
	err := execute(t, &app{engine: engine}, "triangle", "-t", "1", "a.sketch", "b.sketch", "--sparse", "-s", "0.5")
	require.NoError(t, err)

	assert.True(t, engine.cmd.RefsAreSketch)
	assert.True(t, engine.cmd.Sparse)
	assert.True(t, engine.cmd.Screen)
	assert.Equal(t, 0.5, engine.cmd.ScreenVal)
}

func TestSketchCommandFromList(t *testing.T) {
	list := filepath.Join(t.TempDir(), "genomes.txt")
	require.NoError(t, os.WriteFile(list, []byte("g1.fa\n g2.fa \n"), 0644))

	engine := &captureEngine{}
	require.NoError(t, execute(t, &app{engine: engine}, "sketch", "-t", "1", "-l", list, "-o", "sketches"))

	assert.Equal(t, params.ModeSketch, engine.cmd.Mode)
	assert.Equal(t, []string{"g1.fa", "g2.fa"}, engine.cmd.RefFiles)
	assert.Equal(t, "sketches", engine.cmd.OutFileName)
}

func TestSearchCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "g.sketch"), []byte("x"), 0644))

	engine := &captureEngine{}
	require.NoError(t, execute(t, &app{engine: engine}, "search", "-t", "1", "-d", dir, "q.sketch"))

	assert.Equal(t, params.ModeSearch, engine.cmd.Mode)
	assert.Equal(t, []string{filepath.Join(dir, "g.sketch")}, engine.cmd.RefFiles)
	assert.True(t, engine.cmd.RefsAreSketch)
	assert.True(t, engine.cmd.QueriesAreSketch)
	assert.True(t, engine.cmd.Screen)
}

func TestSearchCommandManyQueries(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "g.sketch"), []byte("x"), 0644))

	engine := &captureEngine{}
	require.NoError(t, execute(t, &app{engine: engine}, "search", "-t", "1", "-d", dir, "q1.sketch", "q2.sketch"))

	require.Equal(t, 1, engine.calls)
	assert.Equal(t, []string{"q1.sketch", "q2.sketch"}, engine.cmd.QueryFiles)
	assert.True(t, engine.cmd.QueriesAreSketch)
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		kind error
	}{
		{"UnknownMode", []string{"index", "-t", "1"}, params.ErrUnrecognizedMode},
		{"MissingThreads", []string{"sketch", "a.fa"}, params.ErrMissingInput},
		{"BadThreads", []string{"sketch", "-t", "x", "a.fa"}, params.ErrInvalidNumber},
		{"NoReferences", []string{"triangle", "-t", "1"}, params.ErrMissingInput},
		{"BadK", []string{"dist", "-t", "1", "q.fa", "r.fa", "-k", "big"}, params.ErrInvalidNumber},
		{"MissingDatabase", []string{"search", "-t", "1", "q.fa"}, params.ErrMissingInput},
		{"BadDatabase", []string{"search", "-t", "1", "-d", "/nonexistent/skdist/db"}, params.ErrDirectoryUnreadable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &captureEngine{}
			err := execute(t, &app{engine: engine}, tt.argv...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
			assert.Zero(t, engine.calls)
		})
	}
}

func TestVerbosityApplied(t *testing.T) {
	var seen zapcore.Level
	engine := engineFunc(func() { seen = logger.Level() })

	require.NoError(t, execute(t, &app{engine: engine}, "sketch", "-t", "1", "--trace", "a.fa"))
	assert.Equal(t, logger.TraceLevel, seen)

	require.NoError(t, execute(t, &app{engine: engine}, "sketch", "-t", "1", "-v", "a.fa"))
	assert.Equal(t, zapcore.DebugLevel, seen)
}

type engineFunc func()

func (f engineFunc) Run(ctx context.Context, sketch params.SketchParams, cmd params.CommandParams) error {
	f()
	return nil
}

func TestManifestRecording(t *testing.T) {
	manifest := filepath.Join(t.TempDir(), "runs.db")
	t.Setenv("SKDIST_MANIFEST", manifest)

	stamp := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	a := &app{engine: &captureEngine{}, now: func() time.Time { return stamp }}
	require.NoError(t, execute(t, a, "dist", "-t", "3", "q.fa", "r.fa"))

	rdb, err := mydb.NewRunDB(manifest)
	require.NoError(t, err)
	defer rdb.Close()

	runs, err := rdb.List(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "dist", runs[0].Mode)
	assert.Equal(t, 3, runs[0].Threads)
	assert.True(t, stamp.Equal(runs[0].CreatedAt))
	assert.Contains(t, runs[0].Params, "r.fa")
}

func TestLatestRun(t *testing.T) {
	ctx := context.Background()
	rdb, err := mydb.NewRunDB(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer rdb.Close()

	prev, err := latestRun(ctx, rdb)
	require.NoError(t, err)
	assert.Nil(t, prev)

	base := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	for i, mode := range []string{"sketch", "dist"} {
		require.NoError(t, rdb.Record(ctx, mydb.Run{
			ID:        uuid.New(),
			Mode:      mode,
			Threads:   1,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
			Params:    "{}",
		}))
	}

	prev, err = latestRun(ctx, rdb)
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, "dist", prev.Mode)
}

func TestManifestSecondRun(t *testing.T) {
	manifest := filepath.Join(t.TempDir(), "runs.db")
	a := &app{engine: &captureEngine{}, manifest: manifest}

	require.NoError(t, execute(t, a, "--manifest", manifest, "sketch", "-t", "1", "a.fa"))
	require.NoError(t, execute(t, a, "--manifest", manifest, "triangle", "-t", "1", "a.fa"))

	rdb, err := mydb.NewRunDB(manifest)
	require.NoError(t, err)
	defer rdb.Close()

	runs, err := rdb.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestManifestFlagOverridesEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SKDIST_MANIFEST", filepath.Join(dir, "env.db"))
	flagPath := filepath.Join(dir, "flag.db")

	require.NoError(t, execute(t, &app{engine: &captureEngine{}}, "--manifest", flagPath, "sketch", "-t", "1", "a.fa"))

	_, err := os.Stat(flagPath)
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "env.db"))
	assert.True(t, os.IsNotExist(err))
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, levelFor(params.VerbosityInfo))
	assert.Equal(t, zapcore.DebugLevel, levelFor(params.VerbosityDebug))
	assert.Equal(t, logger.TraceLevel, levelFor(params.VerbosityTrace))
}

func TestLogEngine(t *testing.T) {
	err := logEngine{}.Run(context.Background(), params.DefaultSketchParams(), params.CommandParams{Mode: params.ModeSketch})
	assert.NoError(t, err)
}
