package gtfsdb

import (
	"context"
	"database/sql"
	"fmt"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// gtfsTables lists the tables filled from a feed, children first.
var gtfsTables = []string{
	"stop_times",
	"frequencies",
	"transfers",
	"trips",
	"calendar_dates",
	"calendar",
	"shapes",
	"routes",
	"stops",
	"agency",
}

const listAgencies = `
SELECT agency_id, agency_name, agency_url, agency_timezone,
       agency_lang, agency_phone, agency_fare_url, agency_email
FROM agency
ORDER BY agency_id
`

func (q *Queries) ListAgencies(ctx context.Context) ([]Agency, error) {
	rows, err := q.db.QueryContext(ctx, listAgencies)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var items []Agency
	for rows.Next() {
		var i Agency
		if err := rows.Scan(&i.ID, &i.Name, &i.Url, &i.Timezone,
			&i.Lang, &i.Phone, &i.FareUrl, &i.Email); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listRoutes = `
SELECT route_id, agency_id, route_short_name, route_long_name,
       route_type, route_color, route_text_color
FROM routes
ORDER BY route_id
`

func (q *Queries) ListRoutes(ctx context.Context) ([]Route, error) {
	rows, err := q.db.QueryContext(ctx, listRoutes)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var items []Route
	for rows.Next() {
		var i Route
		if err := rows.Scan(&i.ID, &i.AgencyID, &i.ShortName, &i.LongName,
			&i.Type, &i.Color, &i.TextColor); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const stopColumns = `
stop_id, stop_code, stop_name, stop_lat, stop_lon,
location_type, parent_station, wheelchair_boarding, platform_code
`

func scanStop(row interface{ Scan(...any) error }) (Stop, error) {
	var i Stop
	err := row.Scan(&i.ID, &i.Code, &i.Name, &i.Lat, &i.Lon,
		&i.LocationType, &i.ParentStation, &i.WheelchairBoarding, &i.PlatformCode)
	return i, err
}

func (q *Queries) GetStop(ctx context.Context, id string) (Stop, error) {
	row := q.db.QueryRowContext(ctx, "SELECT "+stopColumns+" FROM stops WHERE stop_id = ?", id)
	return scanStop(row)
}

type GetStopsWithinBoundsParams struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// GetStopsWithinBounds returns the stops with coordinates inside the box.
// Stops without coordinates never match.
func (q *Queries) GetStopsWithinBounds(ctx context.Context, arg GetStopsWithinBoundsParams) ([]Stop, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+stopColumns+` FROM stops
		WHERE stop_lat BETWEEN ? AND ? AND stop_lon BETWEEN ? AND ?
		ORDER BY stop_id`,
		arg.MinLat, arg.MaxLat, arg.MinLon, arg.MaxLon)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var items []Stop
	for rows.Next() {
		i, err := scanStop(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const getImportMetadata = `
SELECT run_id, file_hash, file_source, import_time, row_errors
FROM import_metadata
WHERE id = 1
`

func (q *Queries) GetImportMetadata(ctx context.Context) (ImportMetadata, error) {
	var i ImportMetadata
	err := q.db.QueryRowContext(ctx, getImportMetadata).Scan(
		&i.RunID, &i.FileHash, &i.FileSource, &i.ImportTime, &i.RowErrors)
	return i, err
}

const upsertImportMetadata = `
INSERT INTO import_metadata (id, run_id, file_hash, file_source, import_time, row_errors)
VALUES (1, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    run_id = excluded.run_id,
    file_hash = excluded.file_hash,
    file_source = excluded.file_source,
    import_time = excluded.import_time,
    row_errors = excluded.row_errors
`

func (q *Queries) UpsertImportMetadata(ctx context.Context, arg ImportMetadata) error {
	_, err := q.db.ExecContext(ctx, upsertImportMetadata,
		arg.RunID, arg.FileHash, arg.FileSource, arg.ImportTime, arg.RowErrors)
	return err
}

// clearAllGTFSData empties every feed table. Import metadata is kept.
func (q *Queries) clearAllGTFSData(ctx context.Context) error {
	for _, table := range gtfsTables {
		if _, err := q.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("error clearing %s: %w", table, err)
		}
	}
	return nil
}
