package params

// Resolve turns one invocation of mode into the configuration consumed by
// the sketching/distance engine. Any missing required input or malformed
// number is returned as an *Error; nothing is guessed.
func Resolve(mode Mode, args Args) (Resolution, error) {
	rt, err := resolveRuntime(args)
	if err != nil {
		return Resolution{}, err
	}

	if mode == ModeSearch {
		sketch, cmd, err := resolveSearch(args)
		if err != nil {
			return Resolution{}, err
		}
		return assemble(sketch, cmd, rt), nil
	}

	var refSources []source
	switch mode {
	case ModeSketch, ModeTriangle:
		refSources = fastaSources
	case ModeDist:
		refSources = distRefSources
	default:
		return Resolution{}, &Error{Field: "subcommand", Kind: ErrUnrecognizedMode, Msg: mode.String()}
	}

	aminoAcid := args.Present(FlagAAI)

	refFiles, found, err := resolveInputs(args, refSources)
	if err != nil {
		return Resolution{}, err
	}
	if !found {
		return Resolution{}, &Error{Field: "reference", Kind: ErrMissingInput, Msg: "No reference inputs found"}
	}

	var queryFiles []string
	maxResults := UnboundedResults
	if mode == ModeDist {
		maxResults, err = numberFlag(args, FlagMaxResults, DefaultMaxResults, parseUnsigned)
		if err != nil {
			return Resolution{}, err
		}
		// queries are optional for dist
		queryFiles, _, err = resolveInputs(args, querySources)
		if err != nil {
			return Resolution{}, err
		}
	}

	// alphabet defaults first so -k/-c always win
	defK, defC := defaultKC(aminoAcid)
	k, err := numberFlag(args, FlagK, defK, parsePositive)
	if err != nil {
		return Resolution{}, err
	}
	c, err := numberFlag(args, FlagC, defC, parsePositive)
	if err != nil {
		return Resolution{}, err
	}

	var screenVal float64
	if mode == ModeTriangle {
		screenVal, err = numberFlag(args, FlagScreen, 0, parseFloat)
		if err != nil {
			return Resolution{}, err
		}
	}

	var robust, median bool
	if mode == ModeTriangle || mode == ModeDist {
		robust = args.Present(FlagRobust)
		median = args.Present(FlagMedian)
	}

	cmd := CommandParams{
		Mode:             mode,
		RefFiles:         refFiles,
		QueryFiles:       queryFiles,
		RefsAreSketch:    AreSketches(refFiles, sketchConventions),
		QueriesAreSketch: AreSketches(queryFiles, sketchConventions),
		OutFileName:      stringFlag(args, FlagOutput),
		MaxResults:       maxResults,
		Screen:           screenVal > 0,
		ScreenVal:        screenVal,
		Robust:           robust,
		Median:           median,
		Sparse:           mode == ModeTriangle && args.Present(FlagSparse),
	}

	return assemble(NewSketchParams(c, k, false, aminoAcid), cmd, rt), nil
}

// resolveRuntime reads the thread count and logging verbosity.
func resolveRuntime(args Args) (RuntimeParams, error) {
	threads, found, err := firstPresent(args, []string{FlagThreads}, parsePositive)
	if err != nil {
		return RuntimeParams{}, err
	}
	if !found {
		return RuntimeParams{}, &Error{Field: display(FlagThreads), Kind: ErrMissingInput, Msg: "thread count is required"}
	}

	verbosity := VerbosityInfo
	if args.Present(FlagVerbose) {
		verbosity = VerbosityDebug
	}
	if args.Present(FlagTrace) {
		verbosity = VerbosityTrace
	}

	return RuntimeParams{Threads: threads, Verbosity: verbosity}, nil
}
