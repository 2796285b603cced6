package policy

import (
	"github.com/jurisconnect/jurisconnect-api/internal/models"
)

// Actor is the authenticated identity performing a request
type Actor struct {
	ID      uint
	Profile string
}

// IsAdmin returns true for admin actors
func (a Actor) IsAdmin() bool {
	return a.Profile == models.ProfileAdmin
}

// OwnerRefs carries the ownership references of a demand-scoped resource
type OwnerRefs struct {
	ClienteID        uint
	CorrespondenteID *uint
}

// DemandRefs projects a demand into its ownership references
func DemandRefs(d *models.Demand) OwnerRefs {
	return OwnerRefs{
		ClienteID:        d.ClienteID,
		CorrespondenteID: d.CorrespondenteID,
	}
}

// CanAccess is the shared visibility predicate for demands and everything
// hanging off them (attachments, activity logs). Admins see everything,
// clients see their own demands, correspondents see demands assigned to them.
func CanAccess(refs OwnerRefs, actor Actor) bool {
	switch actor.Profile {
	case models.ProfileAdmin:
		return true
	case models.ProfileClient:
		return refs.ClienteID == actor.ID
	case models.ProfileCorrespondent:
		return refs.CorrespondenteID != nil && *refs.CorrespondenteID == actor.ID
	}
	return false
}

// CanChangeStatus guards demand status transitions: clients never, the
// assigned correspondent only, admins always.
func CanChangeStatus(refs OwnerRefs, actor Actor) bool {
	switch actor.Profile {
	case models.ProfileAdmin:
		return true
	case models.ProfileCorrespondent:
		return refs.CorrespondenteID != nil && *refs.CorrespondenteID == actor.ID
	}
	return false
}

// CanDeleteAttachment is narrower than read access: only the uploader or an
// admin may remove an attachment, regardless of demand ownership.
func CanDeleteAttachment(uploaderID uint, actor Actor) bool {
	return actor.IsAdmin() || uploaderID == actor.ID
}
