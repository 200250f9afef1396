package gtfs

// Agency is a row of agency.txt.
type Agency struct {
	ID       string `csv:"agency_id,omitempty"`
	Name     string `csv:"agency_name"`
	URL      string `csv:"agency_url"`
	Timezone string `csv:"agency_timezone"`
	Lang     string `csv:"agency_lang,omitempty"`
	Phone    string `csv:"agency_phone,omitempty"`
	FareURL  string `csv:"agency_fare_url,omitempty"`
	Email    string `csv:"agency_email,omitempty"`
}

// Stop is a row of stops.txt. Coordinates are optional because generic nodes
// and boarding areas may omit them.
type Stop struct {
	ID                 string        `csv:"stop_id"`
	Code               string        `csv:"stop_code,omitempty"`
	Name               string        `csv:"stop_name,omitempty"`
	TTSName            string        `csv:"tts_stop_name,omitempty"`
	Desc               string        `csv:"stop_desc,omitempty"`
	Lat                *Latitude     `csv:"stop_lat"`
	Lon                *Longitude    `csv:"stop_lon"`
	ZoneID             string        `csv:"zone_id,omitempty"`
	URL                string        `csv:"stop_url,omitempty"`
	LocationType       *LocationType `csv:"location_type"`
	ParentStation      string        `csv:"parent_station,omitempty"`
	Timezone           string        `csv:"stop_timezone,omitempty"`
	WheelchairBoarding *Availability `csv:"wheelchair_boarding"`
	LevelID            string        `csv:"level_id,omitempty"`
	PlatformCode       string        `csv:"platform_code,omitempty"`
}

// Location returns the location type, defaulting to a plain stop.
func (s Stop) Location() LocationType {
	if s.LocationType == nil {
		return LocationStop
	}
	return *s.LocationType
}

// Route is a row of routes.txt.
type Route struct {
	ID                string                   `csv:"route_id"`
	AgencyID          string                   `csv:"agency_id,omitempty"`
	ShortName         string                   `csv:"route_short_name,omitempty"`
	LongName          string                   `csv:"route_long_name,omitempty"`
	Desc              string                   `csv:"route_desc,omitempty"`
	Type              RouteType                `csv:"route_type"`
	URL               string                   `csv:"route_url,omitempty"`
	Color             *Color                   `csv:"route_color"`
	TextColor         *Color                   `csv:"route_text_color"`
	SortOrder         *uint32                  `csv:"route_sort_order"`
	ContinuousPickup  *ContinuousPickupDropOff `csv:"continuous_pickup"`
	ContinuousDropOff *ContinuousPickupDropOff `csv:"continuous_drop_off"`
	NetworkID         string                   `csv:"network_id,omitempty"`
}

// ColorOrDefault returns route_color, or white when the feed leaves it out.
func (r Route) ColorOrDefault() Color {
	if r.Color == nil {
		return White
	}
	return *r.Color
}

// TextColorOrDefault returns route_text_color, or black when absent.
func (r Route) TextColorOrDefault() Color {
	if r.TextColor == nil {
		return Black
	}
	return *r.TextColor
}

// Trip is a row of trips.txt.
type Trip struct {
	RouteID              string        `csv:"route_id"`
	ServiceID            string        `csv:"service_id"`
	ID                   string        `csv:"trip_id"`
	Headsign             string        `csv:"trip_headsign,omitempty"`
	ShortName            string        `csv:"trip_short_name,omitempty"`
	DirectionID          *DirectionID  `csv:"direction_id"`
	BlockID              string        `csv:"block_id,omitempty"`
	ShapeID              string        `csv:"shape_id,omitempty"`
	WheelchairAccessible *Availability `csv:"wheelchair_accessible"`
	BikesAllowed         *Availability `csv:"bikes_allowed"`
}

// StopTime is a row of stop_times.txt. Arrival and departure are optional
// between timepoints.
type StopTime struct {
	TripID            string                   `csv:"trip_id"`
	ArrivalTime       *ServiceTime             `csv:"arrival_time"`
	DepartureTime     *ServiceTime             `csv:"departure_time"`
	StopID            string                   `csv:"stop_id"`
	StopSequence      uint32                   `csv:"stop_sequence"`
	StopHeadsign      string                   `csv:"stop_headsign,omitempty"`
	PickupType        *PickupDropOffType       `csv:"pickup_type"`
	DropOffType       *PickupDropOffType       `csv:"drop_off_type"`
	ContinuousPickup  *ContinuousPickupDropOff `csv:"continuous_pickup"`
	ContinuousDropOff *ContinuousPickupDropOff `csv:"continuous_drop_off"`
	ShapeDistTraveled *float64                 `csv:"shape_dist_traveled"`
	Timepoint         *Flag                    `csv:"timepoint"`
}

// IsTimepoint reports whether the times are exact. An absent timepoint
// column means exact.
func (st StopTime) IsTimepoint() bool {
	if st.Timepoint == nil {
		return true
	}
	return bool(*st.Timepoint)
}

// Calendar is a row of calendar.txt.
type Calendar struct {
	ServiceID string `csv:"service_id"`
	Monday    Flag   `csv:"monday"`
	Tuesday   Flag   `csv:"tuesday"`
	Wednesday Flag   `csv:"wednesday"`
	Thursday  Flag   `csv:"thursday"`
	Friday    Flag   `csv:"friday"`
	Saturday  Flag   `csv:"saturday"`
	Sunday    Flag   `csv:"sunday"`
	StartDate Date   `csv:"start_date"`
	EndDate   Date   `csv:"end_date"`
}

// CalendarDate is a row of calendar_dates.txt.
type CalendarDate struct {
	ServiceID     string        `csv:"service_id"`
	Date          Date          `csv:"date"`
	ExceptionType ExceptionType `csv:"exception_type"`
}

// FareAttribute is a row of fare_attributes.txt.
type FareAttribute struct {
	ID               string        `csv:"fare_id"`
	Price            float64       `csv:"price"`
	CurrencyType     string        `csv:"currency_type"`
	PaymentMethod    PaymentMethod `csv:"payment_method"`
	Transfers        *Transfers    `csv:"transfers"`
	AgencyID         string        `csv:"agency_id,omitempty"`
	TransferDuration *uint32       `csv:"transfer_duration"`
}

// TransferLimit returns the allowed number of transfers. The transfers
// column is always present but left empty for unlimited transfers.
func (f FareAttribute) TransferLimit() Transfers {
	if f.Transfers == nil {
		return TransfersUnlimited
	}
	return *f.Transfers
}

// FareRule is a row of fare_rules.txt.
type FareRule struct {
	FareID        string `csv:"fare_id"`
	RouteID       string `csv:"route_id,omitempty"`
	OriginID      string `csv:"origin_id,omitempty"`
	DestinationID string `csv:"destination_id,omitempty"`
	ContainsID    string `csv:"contains_id,omitempty"`
}

// ShapePoint is a row of shapes.txt.
type ShapePoint struct {
	ShapeID      string    `csv:"shape_id"`
	Lat          Latitude  `csv:"shape_pt_lat"`
	Lon          Longitude `csv:"shape_pt_lon"`
	Sequence     uint32    `csv:"shape_pt_sequence"`
	DistTraveled *float64  `csv:"shape_dist_traveled"`
}

// Frequency is a row of frequencies.txt.
type Frequency struct {
	TripID      string      `csv:"trip_id"`
	StartTime   ServiceTime `csv:"start_time"`
	EndTime     ServiceTime `csv:"end_time"`
	HeadwaySecs uint32      `csv:"headway_secs"`
	ExactTimes  *ExactTimes `csv:"exact_times"`
}

// Transfer is a row of transfers.txt.
type Transfer struct {
	FromStopID      string       `csv:"from_stop_id,omitempty"`
	ToStopID        string       `csv:"to_stop_id,omitempty"`
	FromRouteID     string       `csv:"from_route_id,omitempty"`
	ToRouteID       string       `csv:"to_route_id,omitempty"`
	FromTripID      string       `csv:"from_trip_id,omitempty"`
	ToTripID        string       `csv:"to_trip_id,omitempty"`
	TransferType    TransferType `csv:"transfer_type"`
	MinTransferTime *uint32      `csv:"min_transfer_time"`
}

// FeedInfo is a row of feed_info.txt.
type FeedInfo struct {
	PublisherName string `csv:"feed_publisher_name"`
	PublisherURL  string `csv:"feed_publisher_url"`
	Lang          string `csv:"feed_lang"`
	DefaultLang   string `csv:"default_lang,omitempty"`
	StartDate     *Date  `csv:"feed_start_date"`
	EndDate       *Date  `csv:"feed_end_date"`
	Version       string `csv:"feed_version,omitempty"`
	ContactEmail  string `csv:"feed_contact_email,omitempty"`
	ContactURL    string `csv:"feed_contact_url,omitempty"`
}

// Pathway is a row of pathways.txt.
type Pathway struct {
	ID                   string      `csv:"pathway_id"`
	FromStopID           string      `csv:"from_stop_id"`
	ToStopID             string      `csv:"to_stop_id"`
	Mode                 PathwayMode `csv:"pathway_mode"`
	IsBidirectional      Flag        `csv:"is_bidirectional"`
	Length               *float64    `csv:"length"`
	TraversalTime        *uint32     `csv:"traversal_time"`
	StairCount           *int32      `csv:"stair_count"`
	MaxSlope             *float64    `csv:"max_slope"`
	MinWidth             *float64    `csv:"min_width"`
	SignpostedAs         string      `csv:"signposted_as,omitempty"`
	ReversedSignpostedAs string      `csv:"reversed_signposted_as,omitempty"`
}

// Level is a row of levels.txt.
type Level struct {
	ID    string  `csv:"level_id"`
	Index float64 `csv:"level_index"`
	Name  string  `csv:"level_name,omitempty"`
}

// Attribution is a row of attributions.txt.
type Attribution struct {
	ID               string `csv:"attribution_id,omitempty"`
	AgencyID         string `csv:"agency_id,omitempty"`
	RouteID          string `csv:"route_id,omitempty"`
	TripID           string `csv:"trip_id,omitempty"`
	OrganizationName string `csv:"organization_name"`
	IsProducer       *Flag  `csv:"is_producer"`
	IsOperator       *Flag  `csv:"is_operator"`
	IsAuthority      *Flag  `csv:"is_authority"`
	URL              string `csv:"attribution_url,omitempty"`
	Email            string `csv:"attribution_email,omitempty"`
	Phone            string `csv:"attribution_phone,omitempty"`
}
