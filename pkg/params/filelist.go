package params

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"strings"
)

// ExpandFileList reads a list file and returns its lines, trimmed, in file
// order. Blank lines are kept as empty strings.
func ExpandFileList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		kind := ErrFileUnreadable
		if errors.Is(err, fs.ErrNotExist) {
			kind = ErrFileNotFound
		}
		return nil, &Error{Field: path, Kind: kind, Msg: "cannot open list file", Err: err}
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, &Error{Field: path, Kind: ErrFileUnreadable, Msg: "cannot read list file", Err: err}
	}

	return lines, nil
}
