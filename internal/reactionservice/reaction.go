package reactionservice

// Reaction is the state of one user towards one target. The values match the
// kind column of video_reactions.
type Reaction int8

const (
	None    Reaction = 0
	Like    Reaction = 1
	Dislike Reaction = -1
)

func (r Reaction) String() string {
	switch r {
	case Like:
		return "like"
	case Dislike:
		return "dislike"
	default:
		return "none"
	}
}

// next returns the state after the user asks for requested while in current.
// Asking for the current state again removes it.
func next(current, requested Reaction) Reaction {
	if requested == current {
		return None
	}
	return requested
}

// counterDelta is the change to the like and dislike counters when moving from one state to another.
func counterDelta(from, to Reaction) (likes, dislikes int) {
	switch from {
	case Like:
		likes--
	case Dislike:
		dislikes--
	}

	switch to {
	case Like:
		likes++
	case Dislike:
		dislikes++
	}

	return likes, dislikes
}
