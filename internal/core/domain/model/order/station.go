package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Station identifies a physical or logical display consuming a filtered view
// of the order set. Each station sees only the slice of the pipeline it works.
type Station int

const (
	// StationUnknown represents an invalid or undefined station.
	StationUnknown Station = iota

	// StationKitchen is the kitchen display.
	StationKitchen

	// StationDesign is the design display.
	StationDesign

	// StationFinalCheck is the final check display.
	StationFinalCheck
)

// getStationStrings returns a map of Station values to their wire representations.
func getStationStrings() map[Station]string {
	return map[Station]string{
		StationUnknown:    "UNKNOWN",
		StationKitchen:    "KITCHEN",
		StationDesign:     "DESIGN",
		StationFinalCheck: "FINAL_CHECK",
	}
}

// StationFromString parses the wire representation of a station.
func StationFromString(s string) (Station, error) {
	for station, str := range getStationStrings() {
		if str == s && station != StationUnknown {
			return station, nil
		}
	}
	return StationUnknown, errs.NewValueIsInvalidErrorWithCause(
		"station",
		fmt.Errorf("%q is not a known station", s),
	)
}

// Validate checks if the Station value is valid.
func (s Station) Validate() error {
	if s <= StationUnknown || s > StationFinalCheck {
		return errs.NewValueIsInvalidErrorWithCause("station", fmt.Errorf("%d is not a valid station", s))
	}
	return nil
}

// String returns the wire representation of the station.
func (s Station) String() string {
	if str, ok := getStationStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// QueueStatus returns the waiting-for-claim status worked by this station.
func (s Station) QueueStatus() Status {
	switch s {
	case StationKitchen:
		return KitchenQueue
	case StationDesign:
		return DesignQueue
	case StationFinalCheck:
		return FinalCheckQueue
	default:
		return Unknown
	}
}

// ProcessingStatus returns the in-flight status worked by this station.
func (s Station) ProcessingStatus() Status {
	switch s {
	case StationKitchen:
		return KitchenProcessing
	case StationDesign:
		return DesignProcessing
	case StationFinalCheck:
		return FinalCheckProcessing
	default:
		return Unknown
	}
}

// Leg returns the fulfillment leg this station works, if any.
// The final check station reviews whole orders and has no leg.
func (s Station) Leg() (Leg, bool) {
	switch s {
	case StationKitchen:
		return LegKitchen, true
	case StationDesign:
		return LegDesign, true
	default:
		return LegUnknown, false
	}
}

// Leg identifies one of the two fulfillment tracks an order may require.
type Leg int

const (
	// LegUnknown represents an invalid or undefined leg.
	LegUnknown Leg = iota

	// LegKitchen is the kitchen fulfillment track.
	LegKitchen

	// LegDesign is the design fulfillment track.
	LegDesign
)

// getLegStrings returns a map of Leg values to their wire representations.
func getLegStrings() map[Leg]string {
	return map[Leg]string{
		LegUnknown: "UNKNOWN",
		LegKitchen: "KITCHEN",
		LegDesign:  "DESIGN",
	}
}

// LegFromString parses the wire representation of a leg.
func LegFromString(s string) (Leg, error) {
	for leg, str := range getLegStrings() {
		if str == s && leg != LegUnknown {
			return leg, nil
		}
	}
	return LegUnknown, errs.NewValueIsInvalidErrorWithCause(
		"leg",
		fmt.Errorf("%q is not a known fulfillment leg", s),
	)
}

// Validate checks if the Leg value is valid.
func (l Leg) Validate() error {
	if l != LegKitchen && l != LegDesign {
		return errs.NewValueIsInvalidErrorWithCause("leg", fmt.Errorf("%d is not a valid leg", l))
	}
	return nil
}

// String returns the wire representation of the leg.
func (l Leg) String() string {
	if str, ok := getLegStrings()[l]; ok {
		return str
	}
	return "UNKNOWN"
}

// QueueStatus returns the waiting-for-claim status of this leg.
// It is the destination status of a send-back targeting the leg.
func (l Leg) QueueStatus() Status {
	switch l {
	case LegKitchen:
		return KitchenQueue
	case LegDesign:
		return DesignQueue
	default:
		return Unknown
	}
}

// ReadyStatus returns the terminal status of this leg.
func (l Leg) ReadyStatus() Status {
	switch l {
	case LegKitchen:
		return KitchenReady
	case LegDesign:
		return DesignReady
	default:
		return Unknown
	}
}

// Station returns the station that works this leg.
func (l Leg) Station() Station {
	switch l {
	case LegKitchen:
		return StationKitchen
	case LegDesign:
		return StationDesign
	default:
		return StationUnknown
	}
}
