package commands

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Action identifies one staff-requested stage transition.
type Action int

const (
	// ActionUnknown represents an invalid or undefined action.
	ActionUnknown Action = iota

	// ActionStartProcessing claims a queued order for the acting staff member.
	ActionStartProcessing

	// ActionMarkReady finishes the staff member's work at their station.
	ActionMarkReady

	// ActionSendToDesign hands a finished kitchen leg to the design stage.
	ActionSendToDesign

	// ActionSendToFinalCheck advances a finished order to final check.
	ActionSendToFinalCheck

	// ActionSendBack returns an order from final check for rework.
	ActionSendBack
)

// getActionStrings returns a map of Action values to their wire representations.
func getActionStrings() map[Action]string {
	return map[Action]string{
		ActionUnknown:          "UNKNOWN",
		ActionStartProcessing:  "START_PROCESSING",
		ActionMarkReady:        "MARK_READY",
		ActionSendToDesign:     "SEND_TO_DESIGN",
		ActionSendToFinalCheck: "SEND_TO_FINAL_CHECK",
		ActionSendBack:         "SEND_BACK",
	}
}

// ActionFromString parses the wire representation of an action.
func ActionFromString(s string) (Action, error) {
	for action, str := range getActionStrings() {
		if str == s && action != ActionUnknown {
			return action, nil
		}
	}
	return ActionUnknown, errs.NewValueIsInvalidErrorWithCause(
		"action",
		fmt.Errorf("%q is not a known transition action", s),
	)
}

// Validate checks if the Action value is valid.
func (a Action) Validate() error {
	if a <= ActionUnknown || a > ActionSendBack {
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%d is not a valid action", a))
	}
	return nil
}

// String returns the wire representation of the action.
func (a Action) String() string {
	if str, ok := getActionStrings()[a]; ok {
		return str
	}
	return "UNKNOWN"
}
