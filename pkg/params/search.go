package params

import (
	"github.com/yumyai/skdist/pkg/db"
)

// resolveSearch handles search mode, whose reference side is a folder of
// pre-built sketches rather than a file list.
func resolveSearch(args Args) (SketchParams, CommandParams, error) {
	maxResults, err := numberFlag(args, FlagMaxResults, DefaultMaxResults, parseUnsigned)
	if err != nil {
		return SketchParams{}, CommandParams{}, err
	}

	// not enforced non-empty here; the engine reports an empty search
	queryFiles, _, err := resolveInputs(args, querySources)
	if err != nil {
		return SketchParams{}, CommandParams{}, err
	}

	folder, ok := args.Lookup(FlagDatabase)
	if !ok {
		return SketchParams{}, CommandParams{}, &Error{
			Field: display(FlagDatabase),
			Kind:  ErrMissingInput,
			Msg:   "sketched database folder is required",
		}
	}
	refFiles, err := db.NewSketchDB(folder[0]).List()
	if err != nil {
		return SketchParams{}, CommandParams{}, &Error{
			Field: display(FlagDatabase),
			Kind:  ErrDirectoryUnreadable,
			Msg:   "Issue with folder specified by -d option",
			Err:   err,
		}
	}

	screenVal, err := numberFlag(args, FlagScreen, 0, parseFloat)
	if err != nil {
		return SketchParams{}, CommandParams{}, err
	}

	cmd := CommandParams{
		Mode:       ModeSearch,
		RefFiles:   refFiles,
		QueryFiles: queryFiles,
		// the database folder holds sketches by construction
		RefsAreSketch:    true,
		QueriesAreSketch: AreSketches(queryFiles, searchQueryConventions),
		OutFileName:      stringFlag(args, FlagOutput),
		MaxResults:       maxResults,
		// screening is always on in search, whatever the threshold
		Screen:    true,
		ScreenVal: screenVal,
		Robust:    args.Present(FlagRobust),
		Median:    args.Present(FlagMedian),
		Sparse:    false,
	}

	// k and c come embedded in the database sketches
	return DefaultSketchParams(), cmd, nil
}
