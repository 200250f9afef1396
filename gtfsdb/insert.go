package gtfsdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"gtfsreader.onebusaway.org/gtfs"
)

// batch is one table's worth of rows taken from a feed
type batch struct {
	table   string
	columns []string
	size    int
	row     func(i int) []any
}

func batchOf[T any](table string, columns []string, records []T, values func(T) []any) batch {
	return batch{
		table:   table,
		columns: columns,
		size:    len(records),
		row:     func(i int) []any { return values(records[i]) },
	}
}

// insertBatch adds the rows of b with a single prepared statement. Rows
// whose key is already present are ignored, so the first record with a
// given id wins as it does in the feed's own index.
func (q *Queries) insertBatch(ctx context.Context, b batch) error {
	if b.size == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(b.columns)), ", ")
	stmt, err := q.db.PrepareContext(ctx, fmt.Sprintf(
		"INSERT OR IGNORE INTO %s (%s) VALUES (%s)",
		b.table, strings.Join(b.columns, ", "), placeholders))
	if err != nil {
		return fmt.Errorf("error preparing %s insert: %w", b.table, err)
	}
	defer stmt.Close() // nolint:errcheck

	for i := 0; i < b.size; i++ {
		if _, err := stmt.ExecContext(ctx, b.row(i)...); err != nil {
			return fmt.Errorf("error inserting into %s: %w", b.table, err)
		}
	}
	return nil
}

func feedBatches(f *gtfs.Feed) []batch {
	return []batch{
		batchOf("agency", []string{
			"agency_id", "agency_name", "agency_url", "agency_timezone",
			"agency_lang", "agency_phone", "agency_fare_url", "agency_email",
		}, f.Agencies, func(a gtfs.Agency) []any {
			return []any{a.ID, a.Name, a.URL, a.Timezone,
				toNullString(a.Lang), toNullString(a.Phone), toNullString(a.FareURL), toNullString(a.Email)}
		}),
		batchOf("stops", []string{
			"stop_id", "stop_code", "stop_name", "stop_desc", "stop_lat", "stop_lon",
			"zone_id", "stop_url", "location_type", "parent_station", "stop_timezone",
			"wheelchair_boarding", "level_id", "platform_code",
		}, f.Stops, func(s gtfs.Stop) []any {
			return []any{s.ID, toNullString(s.Code), toNullString(s.Name), toNullString(s.Desc),
				toNullFloat(s.Lat), toNullFloat(s.Lon),
				toNullString(s.ZoneID), toNullString(s.URL), toNullInt(s.LocationType),
				toNullString(s.ParentStation), toNullString(s.Timezone),
				toNullInt(s.WheelchairBoarding), toNullString(s.LevelID), toNullString(s.PlatformCode)}
		}),
		batchOf("routes", []string{
			"route_id", "agency_id", "route_short_name", "route_long_name", "route_desc",
			"route_type", "route_url", "route_color", "route_text_color", "route_sort_order",
			"continuous_pickup", "continuous_drop_off",
		}, f.Routes, func(r gtfs.Route) []any {
			return []any{r.ID, toNullString(r.AgencyID), toNullString(r.ShortName), toNullString(r.LongName),
				toNullString(r.Desc), int64(r.Type), toNullString(r.URL),
				toNullColor(r.Color), toNullColor(r.TextColor), toNullInt(r.SortOrder),
				toNullInt(r.ContinuousPickup), toNullInt(r.ContinuousDropOff)}
		}),
		batchOf("trips", []string{
			"trip_id", "route_id", "service_id", "trip_headsign", "trip_short_name",
			"direction_id", "block_id", "shape_id", "wheelchair_accessible", "bikes_allowed",
		}, f.Trips, func(t gtfs.Trip) []any {
			return []any{t.ID, t.RouteID, t.ServiceID, toNullString(t.Headsign), toNullString(t.ShortName),
				toNullInt(t.DirectionID), toNullString(t.BlockID), toNullString(t.ShapeID),
				toNullInt(t.WheelchairAccessible), toNullInt(t.BikesAllowed)}
		}),
		batchOf("stop_times", []string{
			"trip_id", "arrival_time", "departure_time", "stop_id", "stop_sequence",
			"stop_headsign", "pickup_type", "drop_off_type", "shape_dist_traveled", "timepoint",
		}, f.StopTimes, func(st gtfs.StopTime) []any {
			return []any{st.TripID, toNullInt(st.ArrivalTime), toNullInt(st.DepartureTime),
				st.StopID, int64(st.StopSequence), toNullString(st.StopHeadsign),
				toNullInt(st.PickupType), toNullInt(st.DropOffType),
				toNullFloat(st.ShapeDistTraveled), boolToInt(st.IsTimepoint())}
		}),
		batchOf("calendar", []string{
			"service_id", "monday", "tuesday", "wednesday", "thursday", "friday",
			"saturday", "sunday", "start_date", "end_date",
		}, f.Calendars, func(c gtfs.Calendar) []any {
			return []any{c.ServiceID,
				boolToInt(bool(c.Monday)), boolToInt(bool(c.Tuesday)), boolToInt(bool(c.Wednesday)),
				boolToInt(bool(c.Thursday)), boolToInt(bool(c.Friday)), boolToInt(bool(c.Saturday)),
				boolToInt(bool(c.Sunday)), c.StartDate.String(), c.EndDate.String()}
		}),
		batchOf("calendar_dates", []string{
			"service_id", "date", "exception_type",
		}, f.CalendarDates, func(cd gtfs.CalendarDate) []any {
			return []any{cd.ServiceID, cd.Date.String(), int64(cd.ExceptionType)}
		}),
		batchOf("shapes", []string{
			"shape_id", "lat", "lon", "shape_pt_sequence", "shape_dist_traveled",
		}, f.Shapes, func(p gtfs.ShapePoint) []any {
			return []any{p.ShapeID, float64(p.Lat), float64(p.Lon), int64(p.Sequence), toNullFloat(p.DistTraveled)}
		}),
		batchOf("frequencies", []string{
			"trip_id", "start_time", "end_time", "headway_secs", "exact_times",
		}, f.Frequencies, func(fr gtfs.Frequency) []any {
			return []any{fr.TripID, int64(fr.StartTime), int64(fr.EndTime), int64(fr.HeadwaySecs), toNullInt(fr.ExactTimes)}
		}),
		batchOf("transfers", []string{
			"from_stop_id", "to_stop_id", "from_route_id", "to_route_id",
			"from_trip_id", "to_trip_id", "transfer_type", "min_transfer_time",
		}, f.Transfers, func(t gtfs.Transfer) []any {
			return []any{toNullString(t.FromStopID), toNullString(t.ToStopID),
				toNullString(t.FromRouteID), toNullString(t.ToRouteID),
				toNullString(t.FromTripID), toNullString(t.ToTripID),
				int64(t.TransferType), toNullInt(t.MinTransferTime)}
		}),
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// toNullString converts a string to sql.NullString
func toNullString(s string) sql.NullString {
	return sql.NullString{
		String: s,
		Valid:  s != "",
	}
}

func toNullInt[T ~int | ~int32 | ~uint32](p *T) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func toNullFloat[T ~float64](p *T) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: float64(*p), Valid: true}
}

func toNullColor(c *gtfs.Color) sql.NullString {
	if c == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: c.String(), Valid: true}
}
