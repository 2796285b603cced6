package policy

import (
	"testing"

	"github.com/jurisconnect/jurisconnect-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCanAccess(t *testing.T) {
	assigned := uint(7)
	refs := OwnerRefs{ClienteID: 10, CorrespondenteID: &assigned}
	unassigned := OwnerRefs{ClienteID: 10}

	tests := []struct {
		name  string
		refs  OwnerRefs
		actor Actor
		want  bool
	}{
		{"admin always", refs, Actor{ID: 99, Profile: models.ProfileAdmin}, true},
		{"owning client", refs, Actor{ID: 10, Profile: models.ProfileClient}, true},
		{"other client", refs, Actor{ID: 11, Profile: models.ProfileClient}, false},
		{"assigned correspondent", refs, Actor{ID: 7, Profile: models.ProfileCorrespondent}, true},
		{"other correspondent", refs, Actor{ID: 8, Profile: models.ProfileCorrespondent}, false},
		{"correspondent on unassigned demand", unassigned, Actor{ID: 7, Profile: models.ProfileCorrespondent}, false},
		{"unknown profile", refs, Actor{ID: 10, Profile: "visitante"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccess(tt.refs, tt.actor))
		})
	}
}

func TestCanChangeStatus(t *testing.T) {
	assigned := uint(7)
	refs := OwnerRefs{ClienteID: 10, CorrespondenteID: &assigned}

	// Clients never change status, not even the owner
	assert.False(t, CanChangeStatus(refs, Actor{ID: 10, Profile: models.ProfileClient}))
	assert.True(t, CanChangeStatus(refs, Actor{ID: 7, Profile: models.ProfileCorrespondent}))
	assert.False(t, CanChangeStatus(refs, Actor{ID: 8, Profile: models.ProfileCorrespondent}))
	assert.True(t, CanChangeStatus(refs, Actor{ID: 1, Profile: models.ProfileAdmin}))
}

func TestCanDeleteAttachment(t *testing.T) {
	// The uploader may delete their own file even without owning the demand
	assert.True(t, CanDeleteAttachment(5, Actor{ID: 5, Profile: models.ProfileCorrespondent}))
	assert.True(t, CanDeleteAttachment(5, Actor{ID: 1, Profile: models.ProfileAdmin}))
	assert.False(t, CanDeleteAttachment(5, Actor{ID: 6, Profile: models.ProfileClient}))
}
