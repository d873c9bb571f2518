package params

import (
	"slices"

	"gopkg.in/yaml.v3"
)

// assemble packages resolved values. Slices are copied so the result shares
// nothing with the caller's argument set.
func assemble(sketch SketchParams, cmd CommandParams, rt RuntimeParams) Resolution {
	cmd.RefFiles = cloneOrEmpty(cmd.RefFiles)
	cmd.QueryFiles = cloneOrEmpty(cmd.QueryFiles)

	return Resolution{
		Sketch:  sketch,
		Command: cmd,
		Runtime: rt,
	}
}

func cloneOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}

// Describe renders a resolution as YAML.
func Describe(res Resolution) ([]byte, error) {
	return yaml.Marshal(res)
}
