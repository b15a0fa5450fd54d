package reactionservice

import (
	"context"
	"database/sql"

	"github.com/sushihentaime/recipehub/internal/common"
)

func NewReactionService(db *sql.DB) *ReactionService {
	return &ReactionService{m: newReactionModel(db)}
}

// ToggleVideoReaction applies a like or dislike request. Repeating the current
// reaction removes it; the opposite reaction replaces it.
func (s *ReactionService) ToggleVideoReaction(ctx context.Context, userID, videoID int, requested Reaction) (*VideoReaction, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	validateInt(v, videoID, "id")
	v.Check(requested == Like || requested == Dislike, "reaction", "must be like or dislike")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.toggleVideo(ctx, userID, videoID, requested)
}

func (s *ReactionService) VideoStatus(ctx context.Context, userID, videoID int) (*VideoReaction, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	validateInt(v, videoID, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.videoStatus(ctx, userID, videoID)
}

func (s *ReactionService) ToggleBlogLike(ctx context.Context, userID, blogID int) (*LikeResult, error) {
	return s.toggleLike(ctx, blogLikes, userID, blogID)
}

func (s *ReactionService) BlogStatus(ctx context.Context, userID, blogID int) (*LikeResult, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	validateInt(v, blogID, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.likeStatus(ctx, blogLikes, userID, blogID)
}

func (s *ReactionService) ToggleCommentLike(ctx context.Context, userID, commentID int) (*LikeResult, error) {
	return s.toggleLike(ctx, commentLikes, userID, commentID)
}

func (s *ReactionService) toggleLike(ctx context.Context, l ledger, userID, targetID int) (*LikeResult, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	validateInt(v, targetID, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.toggleLike(ctx, l, userID, targetID)
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
