package statemachine

import (
	"context"
	"fmt"

	"github.com/jurisconnect/jurisconnect-api/internal/models"
	"github.com/looplab/fsm"
)

// DemandFSM models the regular demand lifecycle:
// Pendente → Em Andamento → Cumprida, with cancellation possible from any
// non-terminal state. Status writes themselves are not restricted to these
// edges (any of the four values may be set directly), so the machine is used
// to classify transitions, not to reject them.
type DemandFSM struct {
	demand *models.Demand
	fsm    *fsm.FSM
}

// NewDemandFSM creates a state machine positioned at the demand's current status
func NewDemandFSM(demand *models.Demand) *DemandFSM {
	d := &DemandFSM{demand: demand}

	d.fsm = fsm.NewFSM(
		demand.Status,
		fsm.Events{
			{Name: "start", Src: []string{models.DemandStatusPending}, Dst: models.DemandStatusInProgress},
			{Name: "complete", Src: []string{models.DemandStatusInProgress}, Dst: models.DemandStatusCompleted},
			{Name: "cancel", Src: []string{models.DemandStatusPending, models.DemandStatusInProgress}, Dst: models.DemandStatusCancelled},
		},
		fsm.Callbacks{},
	)

	return d
}

// Current returns the current state
func (d *DemandFSM) Current() string {
	return d.fsm.Current()
}

// CanReach reports whether target is reachable from the current status via a
// single regular lifecycle event. Setting the same status again is treated as
// regular (a no-op re-assertion, common when a handler retries).
func (d *DemandFSM) CanReach(target string) bool {
	if d.fsm.Current() == target {
		return true
	}
	for _, event := range d.fsm.AvailableTransitions() {
		if d.destinationOf(event) == target && d.fsm.Can(event) {
			return true
		}
	}
	return false
}

// Fire attempts the regular lifecycle event leading to target
func (d *DemandFSM) Fire(ctx context.Context, target string) error {
	for _, event := range d.fsm.AvailableTransitions() {
		if d.destinationOf(event) == target {
			if err := d.fsm.Event(ctx, event); err != nil {
				return fmt.Errorf("failed to transition demand to %s: %w", target, err)
			}
			d.demand.Status = d.fsm.Current()
			return nil
		}
	}
	return fmt.Errorf("no transition from %s to %s", d.fsm.Current(), target)
}

func (d *DemandFSM) destinationOf(event string) string {
	switch event {
	case "start":
		return models.DemandStatusInProgress
	case "complete":
		return models.DemandStatusCompleted
	case "cancel":
		return models.DemandStatusCancelled
	}
	return ""
}
