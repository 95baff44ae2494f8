package sweep

import (
	"fmt"
	"path/filepath"
	"sort"
)

// DirectionalFiles locates the capture files of a directional session.
// Each heading may have multiple captures; the newest (by the timestamp
// embedded in the filename) wins. Missing headings are simply absent
// from the result.
func DirectionalFiles(dir string) (map[Heading]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("scanning session directory: %w", err)
	}

	files := make(map[Heading]string)
	for _, path := range paths {
		heading, ok := HeadingFromFilename(path)
		if !ok {
			continue
		}
		// Filenames embed a sortable timestamp, so the lexicographic
		// maximum is the most recent capture.
		if prev, ok := files[heading]; !ok || filepath.Base(path) > filepath.Base(prev) {
			files[heading] = path
		}
	}

	return files, nil
}

// TrackingFiles locates the scan files of a tracking session, ordered
// by capture time (filenames of the form scan_YYYYMMDD_HHMMSS.csv sort
// chronologically).
func TrackingFiles(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "scan_*.csv"))
	if err != nil {
		return nil, fmt.Errorf("scanning session directory: %w", err)
	}

	sort.Strings(paths)
	return paths, nil
}
