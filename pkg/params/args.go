package params

import "github.com/spf13/pflag"

// Logical flag names read by the resolver.
const (
	FlagFastaFiles    = "fasta-files"
	FlagFastaList     = "fasta-list"
	FlagReference     = "reference"
	FlagReferences    = "references"
	FlagReferenceList = "reference-list"
	FlagQuery         = "query"
	FlagQueries       = "queries"
	FlagQueryList     = "query-list"
	FlagDatabase      = "database"
	FlagThreads       = "threads"
	FlagVerbose       = "verbose"
	FlagTrace         = "trace"
	FlagAAI           = "aai"
	FlagK             = "kmer"
	FlagC             = "compression"
	FlagMaxResults    = "max-results"
	FlagScreen        = "screen"
	FlagOutput        = "output"
	FlagRobust        = "robust"
	FlagMedian        = "median"
	FlagSparse        = "sparse"
)

// Args is a read-only view of one parsed invocation.
type Args interface {
	// Lookup returns the values given for name, and whether any were given.
	Lookup(name string) ([]string, bool)
	// Present reports whether name appeared at all (used for boolean switches).
	Present(name string) bool
}

// ArgMap is an in-memory Args. A key with no values is a bare switch.
type ArgMap map[string][]string

func (m ArgMap) Lookup(name string) ([]string, bool) {
	v, ok := m[name]
	return v, ok && len(v) > 0
}

func (m ArgMap) Present(name string) bool {
	_, ok := m[name]
	return ok
}

// FlagArgs adapts a parsed pflag set plus named positional arguments.
type FlagArgs struct {
	Flags      *pflag.FlagSet
	Positional ArgMap
}

func (a FlagArgs) Lookup(name string) ([]string, bool) {
	if v, ok := a.Positional.Lookup(name); ok {
		return v, true
	}
	f := a.changed(name)
	if f == nil {
		return nil, false
	}
	if sv, ok := f.Value.(pflag.SliceValue); ok {
		v := sv.GetSlice()
		return v, len(v) > 0
	}
	return []string{f.Value.String()}, true
}

func (a FlagArgs) Present(name string) bool {
	if a.Positional.Present(name) {
		return true
	}
	f := a.changed(name)
	if f == nil {
		return false
	}
	// an explicit --flag=false is not a request
	if f.Value.Type() == "bool" {
		return f.Value.String() == "true"
	}
	return true
}

func (a FlagArgs) changed(name string) *pflag.Flag {
	if a.Flags == nil {
		return nil
	}
	f := a.Flags.Lookup(name)
	if f == nil || !f.Changed {
		return nil
	}
	return f
}
