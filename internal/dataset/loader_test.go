package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeScript(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "missions.sql")
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatalf("writing script: %v", err)
	}
	return path
}

const testSchema = `
CREATE TABLE isro_space_missions (
    mission_name TEXT, launch_vehicle TEXT, orbit_type TEXT,
    application TEXT, outcome TEXT, launch_site TEXT, launch_date TEXT
);
`

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.sql"))
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestLoadFileBadScript(t *testing.T) {
	path := writeScript(t, "NOT VALID SQL;")
	_, err := LoadFile(path)
	var integrity *IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected IntegrityError, got %v", err)
	}
}

func TestLoadFileMissingTable(t *testing.T) {
	path := writeScript(t, "CREATE TABLE other (x TEXT);")
	_, err := LoadFile(path)
	var integrity *IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected IntegrityError for missing table, got %v", err)
	}
}

func TestLoadFileEmptyTable(t *testing.T) {
	path := writeScript(t, testSchema)
	_, err := LoadFile(path)
	var integrity *IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected IntegrityError for empty table, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeScript(t, testSchema+`
INSERT INTO isro_space_missions VALUES
('B', 'PSLV-C2', 'SSPO', 'EO', 'Launch Successful', 'SHAR', '2002-03-04'),
('A', 'PSLV-C1', 'SSPO', 'EO', 'Launch Unsuccessful', 'SHAR', '2001-01-02'),
('C', 'GSLV-D1', NULL, 'Comms', 'Launch Successful', 'SHAR', '2003-05-06');
`)
	data, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) != 3 {
		t.Fatalf("expected 3 records, got %d", len(data))
	}
	if data[0].Name != "A" {
		t.Errorf("expected earliest launch first, got %q", data[0].Name)
	}
	if data[2].Orbit != "SSPO" {
		t.Errorf("NULL orbit not mode-filled: got %q", data[2].Orbit)
	}
	if data[0].Success != 0 || data[1].Success != 1 {
		t.Errorf("success flags wrong: %d, %d", data[0].Success, data[1].Success)
	}
}

func TestBundledDatasetLoads(t *testing.T) {
	data, err := Load()
	if err != nil {
		t.Fatalf("bundled dataset failed to load: %v", err)
	}
	if data.Empty() {
		t.Fatal("bundled dataset is empty")
	}
	for i, m := range data {
		if m.Vehicle == "" || m.Orbit == "" || m.Application == "" || m.Outcome == "" || m.Site == "" {
			t.Errorf("record %d has an empty cleaned column", i)
		}
		if m.Cumulative != i+1 {
			t.Errorf("record %d: Cumulative = %d, want %d", i, m.Cumulative, i+1)
		}
	}
	// The historical record skews heavily toward success.
	if rate := data.SuccessRate(); rate < 0.7 || rate > 1 {
		t.Errorf("implausible overall success rate: %v", rate)
	}
}
