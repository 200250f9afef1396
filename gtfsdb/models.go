package gtfsdb

import "database/sql"

type Agency struct {
	ID       string
	Name     string
	Url      string
	Timezone string
	Lang     sql.NullString
	Phone    sql.NullString
	FareUrl  sql.NullString
	Email    sql.NullString
}

type Route struct {
	ID        string
	AgencyID  sql.NullString
	ShortName sql.NullString
	LongName  sql.NullString
	Type      int64
	Color     sql.NullString
	TextColor sql.NullString
}

type Stop struct {
	ID                 string
	Code               sql.NullString
	Name               sql.NullString
	Lat                sql.NullFloat64
	Lon                sql.NullFloat64
	LocationType       sql.NullInt64
	ParentStation      sql.NullString
	WheelchairBoarding sql.NullInt64
	PlatformCode       sql.NullString
}

// ImportMetadata describes the last successful import. There is at most one row.
type ImportMetadata struct {
	RunID      string
	FileHash   string
	FileSource string
	ImportTime int64 // unix milliseconds
	RowErrors  int64
}
