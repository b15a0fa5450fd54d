package reactionservice

import "database/sql"

// VideoReaction is the viewer's state on a video together with its counters.
type VideoReaction struct {
	IsLiked       bool `json:"isLiked"`
	IsDisliked    bool `json:"isDisliked"`
	LikesCount    int  `json:"likesCount"`
	DislikesCount int  `json:"dislikesCount"`
}

func newVideoReaction(r Reaction, likes, dislikes int) *VideoReaction {
	return &VideoReaction{
		IsLiked:       r == Like,
		IsDisliked:    r == Dislike,
		LikesCount:    likes,
		DislikesCount: dislikes,
	}
}

// LikeResult is the viewer's state on a like-only target together with its counter.
type LikeResult struct {
	IsLiked bool `json:"isLiked"`
	Likes   int  `json:"likes"`
}

// ledger describes a like-only reaction set: the table holding one row per
// (user, target) and the aggregate row caching its size. All names are
// compile-time constants.
type ledger struct {
	table        string
	targetColumn string
	counterTable string
	counterCol   string
}

var (
	blogLikes = ledger{
		table:        "blog_likes",
		targetColumn: "blog_id",
		counterTable: "blogs",
		counterCol:   "likes_count",
	}

	commentLikes = ledger{
		table:        "comment_likes",
		targetColumn: "comment_id",
		counterTable: "comments",
		counterCol:   "likes_count",
	}
)

type ReactionModel struct {
	db *sql.DB
}

type ReactionService struct {
	m *ReactionModel
}
