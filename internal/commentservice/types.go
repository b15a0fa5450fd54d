package commentservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/recipehub/internal/common"
)

type TargetKind string

const (
	TargetBlog  TargetKind = "blog"
	TargetVideo TargetKind = "video"
)

// Target is the blog or video a comment belongs to.
type Target struct {
	Kind TargetKind
	ID   int
}

func (t Target) column() string {
	if t.Kind == TargetVideo {
		return "video_id"
	}
	return "blog_id"
}

type Comment struct {
	ID         int           `json:"id"`
	BlogID     *int          `json:"blogId,omitempty"`
	VideoID    *int          `json:"videoId,omitempty"`
	Content    string        `json:"content"`
	Author     common.Author `json:"user"`
	LikesCount int           `json:"likes"`
	CreatedAt  time.Time     `json:"createdAt"`

	videoOwnerID int
}

func (c *Comment) OwnerID() int {
	return c.Author.ID
}

// ModeratorID is the author of the video the comment was written on, or zero for blog comments.
func (c *Comment) ModeratorID() int {
	return c.videoOwnerID
}

type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

type CommentModel struct {
	db *sql.DB
}

type CommentService struct {
	m *CommentModel
}
