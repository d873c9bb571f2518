package params

import "fmt"

type Mode int

const (
	ModeSketch Mode = iota
	ModeDist
	ModeTriangle
	ModeSearch
)

// Subcommand names, one per mode.
const (
	SketchString   = "sketch"
	DistString     = "dist"
	TriangleString = "triangle"
	SearchString   = "search"
)

func (m Mode) String() string {
	switch m {
	case ModeSketch:
		return SketchString
	case ModeDist:
		return DistString
	case ModeTriangle:
		return TriangleString
	case ModeSearch:
		return SearchString
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseMode maps an invoked subcommand name to its Mode.
func ParseMode(name string) (Mode, error) {
	switch name {
	case SketchString:
		return ModeSketch, nil
	case DistString:
		return ModeDist, nil
	case TriangleString:
		return ModeTriangle, nil
	case SearchString:
		return ModeSearch, nil
	default:
		return 0, &Error{
			Field: "subcommand",
			Kind:  ErrUnrecognizedMode,
			Msg:   fmt.Sprintf("%q is not one of sketch, dist, triangle, search", name),
		}
	}
}

// Verbosity is the logging level requested on the command line.
type Verbosity int

const (
	VerbosityInfo Verbosity = iota
	VerbosityDebug
	VerbosityTrace
)

func (v Verbosity) String() string {
	switch v {
	case VerbosityDebug:
		return "debug"
	case VerbosityTrace:
		return "trace"
	default:
		return "info"
	}
}

func (v Verbosity) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
