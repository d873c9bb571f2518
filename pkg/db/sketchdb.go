package db

import (
	"fmt"
	"os"
	"path/filepath"
)

type SketchDBError struct {
	Dir string
	Err error
}

func (e *SketchDBError) Error() string {
	return fmt.Sprintf("Sketch database error: %s: %v", e.Dir, e.Err)
}

func (e *SketchDBError) Unwrap() error { return e.Err }

// folder which hosts pre-built sketches for search
type SketchDB struct {
	Dir string
}

func NewSketchDB(dir string) *SketchDB {
	return &SketchDB{Dir: dir}
}

// List returns the path of every entry in the folder, in directory order.
// Entries are not checked; the folder is sketched by construction.
func (sdb *SketchDB) List() ([]string, error) {

	entries, err := os.ReadDir(sdb.Dir)
	if err != nil {
		return nil, &SketchDBError{Dir: sdb.Dir, Err: err}
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, filepath.Join(sdb.Dir, e.Name()))
	}

	return paths, nil
}
