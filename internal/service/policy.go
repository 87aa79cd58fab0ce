package service

import (
	"fmt"
	"strings"

	"buildboard-api/internal/model"
)

// TransitionPolicy decides which direct status writes and flag toggles the
// board accepts.
type TransitionPolicy string

const (
	// PolicyPermissive accepts any status for any request and flag toggles
	// in every status.
	PolicyPermissive TransitionPolicy = "permissive"

	// PolicyForwardOnly accepts only the single next step
	// (pending, scheduled, in-build, ready-for-pickup) and flag toggles only
	// while a request is pending or scheduled.
	PolicyForwardOnly TransitionPolicy = "forward-only"
)

// ParseTransitionPolicy parses a policy name. Empty means permissive.
func ParseTransitionPolicy(s string) (TransitionPolicy, error) {
	switch TransitionPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyPermissive:
		return PolicyPermissive, nil
	case PolicyForwardOnly:
		return PolicyForwardOnly, nil
	}
	return "", fmt.Errorf("unknown transition policy %q", s)
}

func (p TransitionPolicy) checkStatus(current, target model.Status) error {
	if p != PolicyForwardOnly {
		return nil
	}
	if !current.CanAdvanceTo(target) {
		return fmt.Errorf("%w: %s to %s", ErrIllegalTransition, current, target)
	}
	return nil
}

func (p TransitionPolicy) checkFlag(current model.Status) error {
	if p != PolicyForwardOnly {
		return nil
	}
	if current != model.StatusPending && current != model.StatusScheduled {
		return fmt.Errorf("%w: %s", ErrFlagLocked, current)
	}
	return nil
}
