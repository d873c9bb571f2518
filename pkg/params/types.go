package params

import "math"

// Default (k, c) pairs per alphabet.
const (
	DefaultK    = 15
	DefaultC    = 125
	DefaultKAAI = 6
	DefaultCAAI = 15
)

const (
	// DefaultMaxResults applies to dist and search when -n is not given.
	DefaultMaxResults uint = 1000000000
	// UnboundedResults is carried by modes that have no -n flag.
	UnboundedResults uint = math.MaxUint
)

// Suffix conventions used to recognise pre-built sketch artifacts.
const (
	SketchSuffix = ".sketch"
	MarkerSuffix = ".marker"
)

// SketchParams are the algorithmic settings for sketch construction.
type SketchParams struct {
	K           int  `yaml:"k"`
	C           int  `yaml:"c"`
	UseSyncmers bool `yaml:"use_syncmers"`
	IsAminoAcid bool `yaml:"amino_acid"`
}

func NewSketchParams(c, k int, useSyncmers, aminoAcid bool) SketchParams {
	return SketchParams{
		K:           k,
		C:           c,
		UseSyncmers: useSyncmers,
		IsAminoAcid: aminoAcid,
	}
}

// DefaultSketchParams is the nucleotide pair used where no override path exists.
func DefaultSketchParams() SketchParams {
	return NewSketchParams(DefaultC, DefaultK, false, false)
}

// defaultKC returns the alphabet-dependent (k, c) pair.
func defaultKC(aminoAcid bool) (int, int) {
	if aminoAcid {
		return DefaultKAAI, DefaultCAAI
	}
	return DefaultK, DefaultC
}

// CommandParams is the resolved execution configuration handed to the engine.
// It is read-only once returned.
type CommandParams struct {
	Mode             Mode     `yaml:"mode"`
	RefFiles         []string `yaml:"ref_files"`
	QueryFiles       []string `yaml:"query_files"`
	RefsAreSketch    bool     `yaml:"refs_are_sketch"`
	QueriesAreSketch bool     `yaml:"queries_are_sketch"`
	OutFileName      string   `yaml:"out_file_name"`
	MaxResults       uint     `yaml:"max_results"`
	Screen           bool     `yaml:"screen"`
	ScreenVal        float64  `yaml:"screen_val"`
	Robust           bool     `yaml:"robust"`
	Median           bool     `yaml:"median"`
	Sparse           bool     `yaml:"sparse"`
}

// RuntimeParams configure the process-wide collaborators (worker pool, log sink).
type RuntimeParams struct {
	Threads   int       `yaml:"threads"`
	Verbosity Verbosity `yaml:"verbosity"`
}

// Resolution is everything produced for one invocation.
type Resolution struct {
	Sketch  SketchParams  `yaml:"sketch"`
	Command CommandParams `yaml:"command"`
	Runtime RuntimeParams `yaml:"runtime"`
}
