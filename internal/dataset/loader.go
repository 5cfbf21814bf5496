package dataset

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

//go:embed missions.sql
var bundledSQL string

// ErrDataUnavailable reports that the dataset source is missing entirely.
var ErrDataUnavailable = errors.New("dataset source unavailable")

// IntegrityError reports a dataset source that is present but malformed:
// the script fails to execute, the mission table is missing or empty, or a
// record cannot be engineered. Non-retryable.
type IntegrityError struct {
	Reason string
	Err    error
}

func (e *IntegrityError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dataset integrity: %s: %v", e.Reason, e.Err)
	}
	return "dataset integrity: " + e.Reason
}

func (e *IntegrityError) Unwrap() error { return e.Err }

// Raw is one row as read from the mission table, before cleaning. Nil fields
// are missing values, filled with the column mode during engineering.
type Raw struct {
	Name        *string
	Vehicle     *string
	Orbit       *string
	Application *string
	Outcome     *string
	Site        *string
	LaunchDate  *string
}

const missionTable = "isro_space_missions"

// Load executes the bundled mission dump in an in-memory database and
// returns the engineered dataset.
func Load() (Dataset, error) {
	return loadScript(bundledSQL)
}

// LoadFile loads an external SQL dump instead of the bundled one.
func LoadFile(path string) (Dataset, error) {
	script, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDataUnavailable, path)
		}
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	return loadScript(string(script))
}

// loadScript executes a (possibly multi-statement) SQL script against an
// in-memory sqlite database, scans the mission table, and engineers features.
func loadScript(script string) (Dataset, error) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	defer conn.Close()

	if _, err := conn.Exec(script); err != nil {
		return nil, &IntegrityError{Reason: "executing dataset script", Err: err}
	}

	rows, err := conn.Query(
		"SELECT mission_name, launch_vehicle, orbit_type, application, outcome, launch_site, launch_date FROM " + missionTable,
	)
	if err != nil {
		return nil, &IntegrityError{Reason: "reading mission table", Err: err}
	}
	defer rows.Close()

	var raws []Raw
	for rows.Next() {
		var r Raw
		if err := rows.Scan(&r.Name, &r.Vehicle, &r.Orbit, &r.Application, &r.Outcome, &r.Site, &r.LaunchDate); err != nil {
			return nil, &IntegrityError{Reason: "scanning mission record", Err: err}
		}
		raws = append(raws, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &IntegrityError{Reason: "iterating mission table", Err: err}
	}
	if len(raws) == 0 {
		return nil, &IntegrityError{Reason: "mission table is empty"}
	}

	return Engineer(raws)
}
