package gtfs

import (
	"fmt"
	"strconv"
)

// Enumerated GTFS codes are plain integers. A code outside the published set
// is kept as is; Known reports whether it is one of the named values and
// String renders it as Other(n).

func enumString(names map[int]string, code int) string {
	if n, ok := names[code]; ok {
		return n
	}
	return fmt.Sprintf("Other(%d)", code)
}

// RouteType is the route_type of routes.txt, including the extended
// hierarchical codes (100-1599).
type RouteType int

const (
	RouteTypeTram       RouteType = 0
	RouteTypeSubway     RouteType = 1
	RouteTypeRail       RouteType = 2
	RouteTypeBus        RouteType = 3
	RouteTypeFerry      RouteType = 4
	RouteTypeCableCar   RouteType = 5
	RouteTypeGondola    RouteType = 6
	RouteTypeFunicular  RouteType = 7
	RouteTypeTrolleybus RouteType = 11
	RouteTypeMonorail   RouteType = 12

	// Categories that only exist in the extended code space.
	RouteTypeCoach RouteType = 200
	RouteTypeAir   RouteType = 1100
	RouteTypeTaxi  RouteType = 1500
)

var routeTypeNames = map[int]string{
	0: "Tram", 1: "Subway", 2: "Rail", 3: "Bus", 4: "Ferry", 5: "CableCar",
	6: "Gondola", 7: "Funicular", 11: "Trolleybus", 12: "Monorail",
	200: "Coach", 1100: "Air", 1500: "Taxi",
}

// Category folds an extended route type onto the basic route type it
// belongs to. Codes that belong to no known family are returned unchanged.
func (t RouteType) Category() RouteType {
	switch {
	case t >= 0 && t <= 12:
		return t
	case t >= 100 && t < 200:
		return RouteTypeRail
	case t >= 200 && t < 300:
		return RouteTypeCoach
	case t >= 400 && t < 500:
		return RouteTypeSubway
	case t >= 700 && t < 900:
		return RouteTypeBus
	case t >= 900 && t < 1000:
		return RouteTypeTram
	case t >= 1000 && t < 1100, t >= 1200 && t < 1300:
		return RouteTypeFerry
	case t >= 1100 && t < 1200:
		return RouteTypeAir
	case t >= 1300 && t < 1400:
		return RouteTypeGondola
	case t >= 1400 && t < 1500:
		return RouteTypeFunicular
	case t >= 1500 && t < 1600:
		return RouteTypeTaxi
	}
	return t
}

func (t RouteType) Known() bool {
	_, ok := routeTypeNames[int(t.Category())]
	return ok
}

func (t RouteType) String() string {
	return enumString(routeTypeNames, int(t.Category()))
}

func (t RouteType) MarshalCSV() (string, error) {
	return strconv.Itoa(int(t)), nil
}

// PickupDropOffType is pickup_type / drop_off_type of stop_times.txt.
type PickupDropOffType int

const (
	PickupDropOffRegular              PickupDropOffType = 0
	PickupDropOffNone                 PickupDropOffType = 1
	PickupDropOffPhoneAgency          PickupDropOffType = 2
	PickupDropOffCoordinateWithDriver PickupDropOffType = 3
)

var pickupDropOffNames = map[int]string{0: "Regular", 1: "None", 2: "PhoneAgency", 3: "CoordinateWithDriver"}

func (t PickupDropOffType) Known() bool {
	_, ok := pickupDropOffNames[int(t)]
	return ok
}

func (t PickupDropOffType) String() string {
	return enumString(pickupDropOffNames, int(t))
}

func (t PickupDropOffType) MarshalCSV() (string, error) {
	return strconv.Itoa(int(t)), nil
}

// ContinuousPickupDropOff is continuous_pickup / continuous_drop_off.
// Absent means no continuous stopping.
type ContinuousPickupDropOff int

const (
	ContinuousStopping             ContinuousPickupDropOff = 0
	NoContinuousStopping           ContinuousPickupDropOff = 1
	ContinuousPhoneAgency          ContinuousPickupDropOff = 2
	ContinuousCoordinateWithDriver ContinuousPickupDropOff = 3
)

var continuousNames = map[int]string{0: "Continuous", 1: "NotAvailable", 2: "PhoneAgency", 3: "CoordinateWithDriver"}

func (t ContinuousPickupDropOff) Known() bool {
	_, ok := continuousNames[int(t)]
	return ok
}

func (t ContinuousPickupDropOff) String() string {
	return enumString(continuousNames, int(t))
}

func (t ContinuousPickupDropOff) MarshalCSV() (string, error) {
	return strconv.Itoa(int(t)), nil
}

// LocationType is location_type of stops.txt. Absent means a stop.
type LocationType int

const (
	LocationStop         LocationType = 0
	LocationStation      LocationType = 1
	LocationEntrance     LocationType = 2
	LocationGenericNode  LocationType = 3
	LocationBoardingArea LocationType = 4
)

var locationTypeNames = map[int]string{0: "Stop", 1: "Station", 2: "Entrance", 3: "GenericNode", 4: "BoardingArea"}

func (t LocationType) Known() bool {
	_, ok := locationTypeNames[int(t)]
	return ok
}

func (t LocationType) String() string {
	return enumString(locationTypeNames, int(t))
}

func (t LocationType) MarshalCSV() (string, error) {
	return strconv.Itoa(int(t)), nil
}

// Availability is used by wheelchair_boarding, wheelchair_accessible and
// bikes_allowed.
type Availability int

const (
	AvailabilityUnknown      Availability = 0
	AvailabilityAvailable    Availability = 1
	AvailabilityNotAvailable Availability = 2
)

var availabilityNames = map[int]string{0: "Unknown", 1: "Available", 2: "NotAvailable"}

func (a Availability) Known() bool {
	_, ok := availabilityNames[int(a)]
	return ok
}

func (a Availability) String() string {
	return enumString(availabilityNames, int(a))
}

func (a Availability) MarshalCSV() (string, error) {
	return strconv.Itoa(int(a)), nil
}

// DirectionID is direction_id of trips.txt.
type DirectionID int

const (
	DirectionOutbound DirectionID = 0
	DirectionInbound  DirectionID = 1
)

var directionNames = map[int]string{0: "Outbound", 1: "Inbound"}

func (d DirectionID) Known() bool {
	_, ok := directionNames[int(d)]
	return ok
}

func (d DirectionID) String() string {
	return enumString(directionNames, int(d))
}

func (d DirectionID) MarshalCSV() (string, error) {
	return strconv.Itoa(int(d)), nil
}

// ExceptionType is exception_type of calendar_dates.txt.
type ExceptionType int

const (
	ServiceAdded   ExceptionType = 1
	ServiceRemoved ExceptionType = 2
)

var exceptionNames = map[int]string{1: "Added", 2: "Removed"}

func (e ExceptionType) Known() bool {
	_, ok := exceptionNames[int(e)]
	return ok
}

func (e ExceptionType) String() string {
	return enumString(exceptionNames, int(e))
}

func (e ExceptionType) MarshalCSV() (string, error) {
	return strconv.Itoa(int(e)), nil
}

// PaymentMethod is payment_method of fare_attributes.txt.
type PaymentMethod int

const (
	PaymentOnBoard        PaymentMethod = 0
	PaymentBeforeBoarding PaymentMethod = 1
)

var paymentNames = map[int]string{0: "OnBoard", 1: "BeforeBoarding"}

func (p PaymentMethod) Known() bool {
	_, ok := paymentNames[int(p)]
	return ok
}

func (p PaymentMethod) String() string {
	return enumString(paymentNames, int(p))
}

func (p PaymentMethod) MarshalCSV() (string, error) {
	return strconv.Itoa(int(p)), nil
}

// Transfers is the transfers column of fare_attributes.txt. The column is
// required but may be empty, which means unlimited transfers.
type Transfers int

const (
	TransfersNone      Transfers = 0
	TransfersOnce      Transfers = 1
	TransfersTwice     Transfers = 2
	TransfersUnlimited Transfers = -1
)

var transfersNames = map[int]string{0: "None", 1: "Once", 2: "Twice", -1: "Unlimited"}

func (t Transfers) Known() bool {
	_, ok := transfersNames[int(t)]
	return ok
}

func (t Transfers) String() string {
	return enumString(transfersNames, int(t))
}

func (t Transfers) MarshalCSV() (string, error) {
	if t == TransfersUnlimited {
		return "", nil
	}
	return strconv.Itoa(int(t)), nil
}

// TransferType is transfer_type of transfers.txt.
type TransferType int

const (
	TransferRecommended TransferType = 0
	TransferTimed       TransferType = 1
	TransferMinimumTime TransferType = 2
	TransferNotPossible TransferType = 3
	TransferInSeat      TransferType = 4
	TransferReBoard     TransferType = 5
)

var transferTypeNames = map[int]string{
	0: "Recommended", 1: "Timed", 2: "MinimumTime", 3: "NotPossible", 4: "InSeat", 5: "ReBoard",
}

func (t TransferType) Known() bool {
	_, ok := transferTypeNames[int(t)]
	return ok
}

func (t TransferType) String() string {
	return enumString(transferTypeNames, int(t))
}

func (t TransferType) MarshalCSV() (string, error) {
	return strconv.Itoa(int(t)), nil
}

// PathwayMode is pathway_mode of pathways.txt.
type PathwayMode int

const (
	PathwayWalkway        PathwayMode = 1
	PathwayStairs         PathwayMode = 2
	PathwayMovingSidewalk PathwayMode = 3
	PathwayEscalator      PathwayMode = 4
	PathwayElevator       PathwayMode = 5
	PathwayFareGate       PathwayMode = 6
	PathwayExitGate       PathwayMode = 7
)

var pathwayModeNames = map[int]string{
	1: "Walkway", 2: "Stairs", 3: "MovingSidewalk", 4: "Escalator", 5: "Elevator", 6: "FareGate", 7: "ExitGate",
}

func (p PathwayMode) Known() bool {
	_, ok := pathwayModeNames[int(p)]
	return ok
}

func (p PathwayMode) String() string {
	return enumString(pathwayModeNames, int(p))
}

func (p PathwayMode) MarshalCSV() (string, error) {
	return strconv.Itoa(int(p)), nil
}

// ExactTimes is exact_times of frequencies.txt.
type ExactTimes int

const (
	FrequencyBased ExactTimes = 0
	ScheduleBased  ExactTimes = 1
)

var exactTimesNames = map[int]string{0: "FrequencyBased", 1: "ScheduleBased"}

func (e ExactTimes) Known() bool {
	_, ok := exactTimesNames[int(e)]
	return ok
}

func (e ExactTimes) String() string {
	return enumString(exactTimesNames, int(e))
}

func (e ExactTimes) MarshalCSV() (string, error) {
	return strconv.Itoa(int(e)), nil
}
