package common

type Action string

const (
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Owned is implemented by every resource that has an author.
type Owned interface {
	OwnerID() int
}

// Moderated resources can also be deleted by a second user, e.g. the owner
// of the video a comment was written on.
type Moderated interface {
	ModeratorID() int
}

// Authorize is the single ownership policy for mutations. Owners may update
// and delete; moderators may only delete.
func Authorize(resource Owned, actorID int, action Action) error {
	if resource == nil || actorID <= 0 {
		return ErrForbidden
	}

	if resource.OwnerID() == actorID {
		return nil
	}

	if action == ActionDelete {
		if m, ok := resource.(Moderated); ok && m.ModeratorID() == actorID {
			return nil
		}
	}

	return ErrForbidden
}
