package params

import (
	"fmt"
	"math"
	"slices"
	"strconv"
)

type sourceKind int

const (
	direct   sourceKind = iota // values are the paths themselves
	listFile                   // value names a file of paths
)

type source struct {
	name string
	kind sourceKind
}

// Candidate sources per logical input, highest priority first.
var (
	fastaSources = []source{
		{FlagFastaFiles, direct},
		{FlagFastaList, listFile},
	}
	distRefSources = []source{
		{FlagReference, direct},
		{FlagReferences, direct},
		{FlagReferenceList, listFile},
	}
	querySources = []source{
		{FlagQuery, direct},
		{FlagQueries, direct},
		{FlagQueryList, listFile},
	}
)

var flagDisplay = map[string]string{
	FlagThreads:       "-t",
	FlagK:             "-k",
	FlagC:             "-c",
	FlagMaxResults:    "-n",
	FlagScreen:        "-s",
	FlagDatabase:      "-d",
	FlagOutput:        "-o",
	FlagFastaFiles:    "fasta files",
	FlagFastaList:     "--fasta-list",
	FlagReference:     "reference",
	FlagReferences:    "--references",
	FlagReferenceList: "--reference-list",
	FlagQuery:         "query",
	FlagQueries:       "--queries",
	FlagQueryList:     "--query-list",
}

func display(name string) string {
	if d, ok := flagDisplay[name]; ok {
		return d
	}
	return "--" + name
}

// firstPresent resolves the first candidate that appears in args.
func firstPresent[T any](args Args, names []string, convert func(name string, vals []string) (T, error)) (T, bool, error) {
	for _, name := range names {
		vals, ok := args.Lookup(name)
		if !ok {
			continue
		}
		v, err := convert(name, vals)
		return v, true, err
	}
	var zero T
	return zero, false, nil
}

// resolveInputs returns the paths from the first present source. Direct
// values win over list files.
func resolveInputs(args Args, sources []source) ([]string, bool, error) {
	names := make([]string, len(sources))
	kinds := make(map[string]sourceKind, len(sources))
	for i, s := range sources {
		names[i] = s.name
		kinds[s.name] = s.kind
	}

	return firstPresent(args, names, func(name string, vals []string) ([]string, error) {
		if kinds[name] == listFile {
			return ExpandFileList(vals[0])
		}
		return slices.Clone(vals), nil
	})
}

func invalidNumber(name, value, want string, err error) error {
	return &Error{
		Field: display(name),
		Kind:  ErrInvalidNumber,
		Msg:   fmt.Sprintf("%q is not %s", value, want),
		Err:   err,
	}
}

func parsePositive(name string, vals []string) (int, error) {
	n, err := strconv.Atoi(vals[0])
	if err != nil || n <= 0 {
		return 0, invalidNumber(name, vals[0], "a positive integer", err)
	}
	return n, nil
}

func parseUnsigned(name string, vals []string) (uint, error) {
	n, err := strconv.ParseUint(vals[0], 10, 0)
	if err != nil {
		return 0, invalidNumber(name, vals[0], "a non-negative integer", err)
	}
	return uint(n), nil
}

func parseFloat(name string, vals []string) (float64, error) {
	f, err := strconv.ParseFloat(vals[0], 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, invalidNumber(name, vals[0], "a finite number", err)
	}
	return f, nil
}

// numberFlag parses name, falling back to def when it is absent.
func numberFlag[T any](args Args, name string, def T, parse func(string, []string) (T, error)) (T, error) {
	v, found, err := firstPresent(args, []string{name}, parse)
	if err != nil {
		return v, err
	}
	if !found {
		return def, nil
	}
	return v, nil
}

func stringFlag(args Args, name string) string {
	if vals, ok := args.Lookup(name); ok {
		return vals[0]
	}
	return ""
}
