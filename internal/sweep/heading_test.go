package sweep

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHeadingDegrees(t *testing.T) {
	tests := []struct {
		heading Heading
		degrees float64
	}{
		{North, 0},
		{Northeast, 45},
		{East, 90},
		{Southeast, 135},
		{South, 180},
		{Southwest, 225},
		{West, 270},
		{Northwest, 315},
	}

	for _, tt := range tests {
		deg, ok := tt.heading.Degrees()
		if !ok {
			t.Errorf("Expected %s to have a compass angle", tt.heading)
			continue
		}
		if deg != tt.degrees {
			t.Errorf("Expected %s at %f degrees, got %f", tt.heading, tt.degrees, deg)
		}
	}

	for _, h := range []Heading{Up, Down} {
		if _, ok := h.Degrees(); ok {
			t.Errorf("Expected %s to have no compass angle", h)
		}
		if h.IsCompass() {
			t.Errorf("Expected %s to not be a compass heading", h)
		}
	}
}

func TestHeadingFromFilename(t *testing.T) {
	tests := []struct {
		path    string
		heading Heading
		ok      bool
	}{
		{"north_20250101_120000.csv", North, true},
		{"/data/session/southwest_20250101_120000.csv", Southwest, true},
		{"NORTHEAST_20250101_120000.csv", Northeast, true},
		{"up_20250101_120000.csv", Up, true},
		{"down.csv", Down, true},
		{"scan_20250101_120000.csv", "", false},
		{"northerly_20250101_120000.csv", "", false},
	}

	for _, tt := range tests {
		heading, ok := HeadingFromFilename(tt.path)
		if ok != tt.ok {
			t.Errorf("HeadingFromFilename(%q): expected ok=%v, got %v", tt.path, tt.ok, ok)
			continue
		}
		if heading != tt.heading {
			t.Errorf("HeadingFromFilename(%q): expected %q, got %q", tt.path, tt.heading, heading)
		}
	}
}

func TestDirectionalFiles(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"north_20250101_120000.csv",
		"north_20250101_140000.csv", // newer capture of the same heading
		"east_20250101_120000.csv",
		"up_20250101_120000.csv",
		"notes.txt",
		"scan_20250101_120000.csv",
	}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte{}, 0o644); err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
	}

	found, err := DirectionalFiles(dir)
	if err != nil {
		t.Fatalf("Failed to scan directory: %v", err)
	}

	if len(found) != 3 {
		t.Fatalf("Expected 3 headings, got %d", len(found))
	}
	if got := filepath.Base(found[North]); got != "north_20250101_140000.csv" {
		t.Errorf("Expected newest north capture, got %s", got)
	}
	if _, ok := found[East]; !ok {
		t.Errorf("Expected east capture to be found")
	}
	if _, ok := found[Up]; !ok {
		t.Errorf("Expected up capture to be found")
	}
}

func TestTrackingFiles(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"scan_20250101_130000.csv",
		"scan_20250101_120000.csv",
		"north_20250101_120000.csv",
	}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte{}, 0o644); err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
	}

	found, err := TrackingFiles(dir)
	if err != nil {
		t.Fatalf("Failed to scan directory: %v", err)
	}

	if len(found) != 2 {
		t.Fatalf("Expected 2 scan files, got %d", len(found))
	}
	if filepath.Base(found[0]) != "scan_20250101_120000.csv" {
		t.Errorf("Expected chronological order, got %s first", filepath.Base(found[0]))
	}
}
