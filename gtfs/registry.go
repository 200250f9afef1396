package gtfs

import (
	"fmt"
	"reflect"
	"strings"
)

// FileKind names a known GTFS file.
type FileKind string

const (
	FileAgency         FileKind = "agency.txt"
	FileStops          FileKind = "stops.txt"
	FileRoutes         FileKind = "routes.txt"
	FileTrips          FileKind = "trips.txt"
	FileStopTimes      FileKind = "stop_times.txt"
	FileCalendar       FileKind = "calendar.txt"
	FileCalendarDates  FileKind = "calendar_dates.txt"
	FileFareAttributes FileKind = "fare_attributes.txt"
	FileFareRules      FileKind = "fare_rules.txt"
	FileShapes         FileKind = "shapes.txt"
	FileFrequencies    FileKind = "frequencies.txt"
	FileTransfers      FileKind = "transfers.txt"
	FileFeedInfo       FileKind = "feed_info.txt"
	FilePathways       FileKind = "pathways.txt"
	FileLevels         FileKind = "levels.txt"
	FileAttributions   FileKind = "attributions.txt"
)

// ParseFileKind accepts a file name with or without the .txt suffix.
func ParseFileKind(name string) (FileKind, bool) {
	name = strings.TrimSpace(name)
	if !strings.HasSuffix(name, ".txt") {
		name += ".txt"
	}
	_, ok := registry.byName[FileKind(name)]
	return FileKind(name), ok
}

// Base returns the file name without its .txt suffix.
func (k FileKind) Base() string {
	return strings.TrimSuffix(string(k), ".txt")
}

// Presence is the file-level requirement of a known file.
type Presence int

const (
	Required Presence = iota
	ConditionallyRequired
	Optional
)

func (p Presence) String() string {
	switch p {
	case Required:
		return "required"
	case ConditionallyRequired:
		return "conditionally required"
	case Optional:
		return "optional"
	}
	return fmt.Sprintf("Presence(%d)", int(p))
}

// Rule decides how many files of a conditional group must be present.
type Rule int

const (
	AtLeastOne Rule = iota
	ExactlyOne
)

// Condition ties conditionally required files together.
type Condition struct {
	Group       string
	Rule        Rule
	Description string
}

// Column describes one declared column of a known file.
type Column struct {
	Name     string
	Required bool
	Kind     string
}

// FileSchema is the registry entry of one known file.
type FileSchema struct {
	Kind      FileKind
	Presence  Presence
	Condition *Condition
	// IDColumn is set for files whose rows are addressable by identifier.
	IDColumn string
	Columns  []Column

	plan    *recordPlan
	load    func(f *Feed, rows *Rows) (RowErrors, error)
	records func(f *Feed) []any
	at      func(f *Feed, i int) any
	ids     func(f *Feed) []string
}

// RequiredColumns lists the names of the columns every row must carry.
func (s FileSchema) RequiredColumns() []string {
	var names []string
	for _, c := range s.Columns {
		if c.Required {
			names = append(names, c.Name)
		}
	}
	return names
}

// RecordType is the Go type rows of the file decode into.
func (s FileSchema) RecordType() reflect.Type {
	return s.plan.typ
}

var serviceCondition = &Condition{
	Group:       "service",
	Rule:        AtLeastOne,
	Description: "calendar.txt or calendar_dates.txt must be present",
}

func entry[T any](kind FileKind, presence Presence, cond *Condition, idColumn string,
	slot func(f *Feed) *[]T, idOf func(T) string) FileSchema {
	p, err := planOf[T]()
	if err != nil {
		panic(fmt.Sprintf("gtfs: schema %s: %v", kind, err))
	}

	s := FileSchema{
		Kind:      kind,
		Presence:  presence,
		Condition: cond,
		IDColumn:  idColumn,
		plan:      p,
	}
	for _, fp := range p.fields {
		s.Columns = append(s.Columns, Column{Name: fp.column, Required: !fp.optional, Kind: fp.kind})
	}

	s.load = func(f *Feed, rows *Rows) (RowErrors, error) {
		recs, lines, errs, err := decodeRows[T](p, rows)
		*slot(f) = recs
		f.lines[kind] = lines
		return errs, err
	}
	s.records = func(f *Feed) []any {
		recs := *slot(f)
		out := make([]any, len(recs))
		for i := range recs {
			out[i] = &recs[i]
		}
		return out
	}
	s.at = func(f *Feed, i int) any {
		return &(*slot(f))[i]
	}
	if idOf != nil {
		s.ids = func(f *Feed) []string {
			recs := *slot(f)
			ids := make([]string, len(recs))
			for i, r := range recs {
				ids[i] = idOf(r)
			}
			return ids
		}
	}
	return s
}

type schemaRegistry struct {
	ordered []FileSchema
	byName  map[FileKind]*FileSchema
}

// registry lists every known file in requiredness order.
var registry = newRegistry(
	entry(FileAgency, Required, nil, "agency_id",
		func(f *Feed) *[]Agency { return &f.Agencies }, func(a Agency) string { return a.ID }),
	entry(FileStops, Required, nil, "stop_id",
		func(f *Feed) *[]Stop { return &f.Stops }, func(s Stop) string { return s.ID }),
	entry(FileRoutes, Required, nil, "route_id",
		func(f *Feed) *[]Route { return &f.Routes }, func(r Route) string { return r.ID }),
	entry(FileTrips, Required, nil, "trip_id",
		func(f *Feed) *[]Trip { return &f.Trips }, func(t Trip) string { return t.ID }),
	entry[StopTime](FileStopTimes, Required, nil, "",
		func(f *Feed) *[]StopTime { return &f.StopTimes }, nil),
	entry(FileCalendar, ConditionallyRequired, serviceCondition, "service_id",
		func(f *Feed) *[]Calendar { return &f.Calendars }, func(c Calendar) string { return c.ServiceID }),
	entry[CalendarDate](FileCalendarDates, ConditionallyRequired, serviceCondition, "",
		func(f *Feed) *[]CalendarDate { return &f.CalendarDates }, nil),
	entry(FileFareAttributes, Optional, nil, "fare_id",
		func(f *Feed) *[]FareAttribute { return &f.FareAttributes }, func(a FareAttribute) string { return a.ID }),
	entry[FareRule](FileFareRules, Optional, nil, "",
		func(f *Feed) *[]FareRule { return &f.FareRules }, nil),
	entry[ShapePoint](FileShapes, Optional, nil, "",
		func(f *Feed) *[]ShapePoint { return &f.Shapes }, nil),
	entry[Frequency](FileFrequencies, Optional, nil, "",
		func(f *Feed) *[]Frequency { return &f.Frequencies }, nil),
	entry[Transfer](FileTransfers, Optional, nil, "",
		func(f *Feed) *[]Transfer { return &f.Transfers }, nil),
	entry[FeedInfo](FileFeedInfo, Optional, nil, "",
		func(f *Feed) *[]FeedInfo { return &f.FeedInfo }, nil),
	entry(FilePathways, Optional, nil, "pathway_id",
		func(f *Feed) *[]Pathway { return &f.Pathways }, func(p Pathway) string { return p.ID }),
	entry(FileLevels, Optional, nil, "level_id",
		func(f *Feed) *[]Level { return &f.Levels }, func(l Level) string { return l.ID }),
	entry(FileAttributions, Optional, nil, "attribution_id",
		func(f *Feed) *[]Attribution { return &f.Attributions }, func(a Attribution) string { return a.ID }),
)

func newRegistry(schemas ...FileSchema) *schemaRegistry {
	r := &schemaRegistry{ordered: schemas, byName: make(map[FileKind]*FileSchema, len(schemas))}
	for i := range r.ordered {
		r.byName[r.ordered[i].Kind] = &r.ordered[i]
	}
	return r
}

// Lookup returns the registry entry for a known file name.
func Lookup(name string) (FileSchema, bool) {
	kind, _ := ParseFileKind(name)
	s, ok := registry.byName[kind]
	if !ok {
		return FileSchema{}, false
	}
	return *s, true
}

// Schemas returns every registry entry in requiredness order.
func Schemas() []FileSchema {
	out := make([]FileSchema, len(registry.ordered))
	copy(out, registry.ordered)
	return out
}

// checkPresence enforces file-level requirements against src, in registry
// order. The first violation is returned.
func (r *schemaRegistry) checkPresence(src TabularSource) error {
	groups := make(map[string][]FileKind)
	present := make(map[string]int)
	var conds []*Condition

	for _, s := range r.ordered {
		has := src.Has(string(s.Kind))
		switch s.Presence {
		case Required:
			if !has {
				return &FeedError{Kind: ErrMissingRequiredFile, File: string(s.Kind)}
			}
		case ConditionallyRequired:
			g := s.Condition.Group
			if _, seen := groups[g]; !seen {
				conds = append(conds, s.Condition)
			}
			groups[g] = append(groups[g], s.Kind)
			if has {
				present[g]++
			}
		}
	}

	for _, c := range conds {
		n := present[c.Group]
		if n == 0 || (c.Rule == ExactlyOne && n > 1) {
			return &FeedError{
				Kind:   ErrAmbiguousConditionalRequirement,
				Detail: fmt.Sprintf("%s (%d of %v present)", c.Description, n, groups[c.Group]),
			}
		}
	}
	return nil
}
