package reactionservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNext(t *testing.T) {
	testCases := []struct {
		current   Reaction
		requested Reaction
		want      Reaction
	}{
		{None, Like, Like},
		{None, Dislike, Dislike},
		{Like, Like, None},
		{Dislike, Dislike, None},
		{Like, Dislike, Dislike},
		{Dislike, Like, Like},
	}

	for _, tc := range testCases {
		t.Run(tc.current.String()+" to "+tc.requested.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, next(tc.current, tc.requested))
		})
	}
}

func TestCounterDelta(t *testing.T) {
	testCases := []struct {
		from         Reaction
		to           Reaction
		wantLikes    int
		wantDislikes int
	}{
		{None, Like, 1, 0},
		{None, Dislike, 0, 1},
		{Like, None, -1, 0},
		{Dislike, None, 0, -1},
		{Like, Dislike, -1, 1},
		{Dislike, Like, 1, -1},
		{None, None, 0, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.from.String()+" to "+tc.to.String(), func(t *testing.T) {
			likes, dislikes := counterDelta(tc.from, tc.to)
			assert.Equal(t, tc.wantLikes, likes)
			assert.Equal(t, tc.wantDislikes, dislikes)
		})
	}
}

// Applying the same request twice always lands back where it started from None.
func TestNextIsInvolutive(t *testing.T) {
	for _, requested := range []Reaction{Like, Dislike} {
		once := next(None, requested)
		twice := next(once, requested)

		assert.Equal(t, requested, once)
		assert.Equal(t, None, twice)

		likes1, dislikes1 := counterDelta(None, once)
		likes2, dislikes2 := counterDelta(once, twice)
		assert.Zero(t, likes1+likes2)
		assert.Zero(t, dislikes1+dislikes2)
	}
}
