package catalog

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/boyter/gocodewalker"

	"github.com/jesspatton/lazyjest/filesystem"
)

// Build walks root and returns a catalog of test files and their cases.
// A non-existent root yields an empty catalog; an existing but unreadable
// root is an error. Individual files that cannot be read (deleted between
// listing and reading) are skipped.
func Build(root string, patterns []string) (*Catalog, error) {
	cat := &Catalog{Root: root}

	if _, err := os.Stat(root); os.IsNotExist(err) {
		return cat, nil
	}
	if _, err := os.ReadDir(root); err != nil {
		return nil, err
	}

	queue := make(chan *gocodewalker.File, 100)
	walker := gocodewalker.NewFileWalker(root, queue)
	walker.ExcludeDirectory = append(walker.ExcludeDirectory, filesystem.IgnoredDirs()...)

	go func() {
		_ = walker.Start()
	}()

	var paths []string
	for f := range queue {
		if filesystem.IsTestFile(f.Location, patterns) {
			paths = append(paths, f.Location)
		}
	}
	sort.Strings(paths)

	for _, path := range paths {
		file, err := loadFile(root, path)
		if err != nil {
			continue
		}
		cat.Files = append(cat.Files, file)
	}

	return cat, nil
}

func loadFile(root, path string) (*TestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}

	f := &TestFile{
		Path:    path,
		RelPath: rel,
		source:  string(data),
		loaded:  true,
	}
	f.Cases = ExtractCases(f.source)
	return f, nil
}
