package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type ownedResource struct {
	owner int
}

func (r ownedResource) OwnerID() int { return r.owner }

type moderatedResource struct {
	owner     int
	moderator int
}

func (r moderatedResource) OwnerID() int     { return r.owner }
func (r moderatedResource) ModeratorID() int { return r.moderator }

func TestAuthorize(t *testing.T) {
	testCases := []struct {
		name     string
		resource Owned
		actor    int
		action   Action
		wantErr  error
	}{
		{"owner updates", ownedResource{owner: 1}, 1, ActionUpdate, nil},
		{"owner deletes", ownedResource{owner: 1}, 1, ActionDelete, nil},
		{"stranger updates", ownedResource{owner: 1}, 2, ActionUpdate, ErrForbidden},
		{"stranger deletes", ownedResource{owner: 1}, 2, ActionDelete, ErrForbidden},
		{"moderator deletes", moderatedResource{owner: 1, moderator: 2}, 2, ActionDelete, nil},
		{"moderator cannot update", moderatedResource{owner: 1, moderator: 2}, 2, ActionUpdate, ErrForbidden},
		{"third user on moderated", moderatedResource{owner: 1, moderator: 2}, 3, ActionDelete, ErrForbidden},
		{"anonymous actor", ownedResource{owner: 0}, 0, ActionDelete, ErrForbidden},
		{"nil resource", nil, 1, ActionDelete, ErrForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantErr, Authorize(tc.resource, tc.actor, tc.action))
		})
	}
}
