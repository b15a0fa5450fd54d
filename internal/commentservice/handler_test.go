package commentservice

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sushihentaime/recipehub/internal/common"
)

type fixture struct {
	s           *CommentService
	db          *sql.DB
	blogAuthor  int
	videoAuthor int
	commenter   int
	stranger    int
	blogID      int
	videoID     int
}

func setupTestEnvironment(t *testing.T) fixture {
	db := common.TestDB("file://../../migrations", t)

	f := fixture{
		s:           NewCommentService(db),
		db:          db,
		blogAuthor:  common.TestUser(t, db, "Anna", "anna@example.com"),
		videoAuthor: common.TestUser(t, db, "Ben", "ben@example.com"),
		commenter:   common.TestUser(t, db, "Cleo", "cleo@example.com"),
		stranger:    common.TestUser(t, db, "Dan", "dan@example.com"),
	}

	err := db.QueryRow(`
		INSERT INTO blogs (title, description, servings, difficulty, author_id)
		VALUES ('Soup', 'Warm soup', 2, 'Easy', $1)
		RETURNING id`, f.blogAuthor).Scan(&f.blogID)
	if err != nil {
		t.Fatalf("could not insert blog: %v", err)
	}

	err = db.QueryRow(`
		INSERT INTO videos (title, description, video_url, author_id)
		VALUES ('Bread', 'Sourdough', 'https://cdn.example.com/bread.mp4', $1)
		RETURNING id`, f.videoAuthor).Scan(&f.videoID)
	if err != nil {
		t.Fatalf("could not insert video: %v", err)
	}

	return f
}

func (f fixture) count(t *testing.T) int {
	var n int
	err := f.db.QueryRow("SELECT COUNT(*) FROM comments").Scan(&n)
	assert.NoError(t, err)
	return n
}

func TestAddComment(t *testing.T) {
	f := setupTestEnvironment(t)
	ctx := context.Background()

	testCases := []struct {
		name        string
		target      Target
		content     string
		expectedErr error
	}{
		{
			name:    "blog comment",
			target:  Target{Kind: TargetBlog, ID: f.blogID},
			content: "  Lovely soup!  ",
		},
		{
			name:    "video comment",
			target:  Target{Kind: TargetVideo, ID: f.videoID},
			content: "Great crumb",
		},
		{
			name:        "blank content",
			target:      Target{Kind: TargetBlog, ID: f.blogID},
			content:     "   ",
			expectedErr: common.ValidationError{Errors: map[string]string{"content": "must be provided"}},
		},
		{
			name:        "too long",
			target:      Target{Kind: TargetBlog, ID: f.blogID},
			content:     strings.Repeat("a", MaxContentLength+1),
			expectedErr: common.ValidationError{Errors: map[string]string{"content": "must not be more than 2000 characters long"}},
		},
		{
			name:        "missing blog",
			target:      Target{Kind: TargetBlog, ID: f.blogID + 1000},
			content:     "Hello?",
			expectedErr: common.ErrRecordNotFound,
		},
		{
			name:        "missing video",
			target:      Target{Kind: TargetVideo, ID: f.videoID + 1000},
			content:     "Hello?",
			expectedErr: common.ErrRecordNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := f.s.AddComment(ctx, tc.target, f.commenter, tc.content)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil {
				assert.Equal(t, strings.TrimSpace(tc.content), c.Content)
				assert.Equal(t, "Cleo", c.Author.Name)
				assert.True(t, c.belongsTo(tc.target))
			}
		})
	}

	assert.Equal(t, 2, f.count(t))
}

func TestListComments(t *testing.T) {
	f := setupTestEnvironment(t)
	ctx := context.Background()
	blog := Target{Kind: TargetBlog, ID: f.blogID}

	var last *Comment
	for _, content := range []string{"first", "second", "third"} {
		c, err := f.s.AddComment(ctx, blog, f.commenter, content)
		assert.NoError(t, err)
		last = c
	}

	_, err := f.s.AddComment(ctx, Target{Kind: TargetVideo, ID: f.videoID}, f.commenter, "elsewhere")
	assert.NoError(t, err)

	comments, pagination, err := f.s.ListComments(ctx, blog, 1, 2)
	assert.NoError(t, err)
	assert.Equal(t, Pagination{Total: 3, Page: 1, Pages: 2}, pagination)
	assert.Len(t, comments, 2)
	assert.Equal(t, last.ID, comments[0].ID)

	comments, pagination, err = f.s.ListComments(ctx, blog, 2, 2)
	assert.NoError(t, err)
	assert.Equal(t, Pagination{Total: 3, Page: 2, Pages: 2}, pagination)
	assert.Len(t, comments, 1)
	assert.Equal(t, "first", comments[0].Content)

	comments, pagination, err = f.s.ListComments(ctx, blog, 3, 2)
	assert.NoError(t, err)
	assert.Equal(t, Pagination{Total: 3, Page: 3, Pages: 2}, pagination)
	assert.Empty(t, comments)

	_, _, err = f.s.ListComments(ctx, blog, 0, 2)
	assert.IsType(t, common.ValidationError{}, err)
}

func TestDeleteComment(t *testing.T) {
	f := setupTestEnvironment(t)
	ctx := context.Background()

	blogComment, err := f.s.AddComment(ctx, Target{Kind: TargetBlog, ID: f.blogID}, f.commenter, "on the blog")
	assert.NoError(t, err)
	videoComment, err := f.s.AddComment(ctx, Target{Kind: TargetVideo, ID: f.videoID}, f.commenter, "on the video")
	assert.NoError(t, err)
	ownVideoComment, err := f.s.AddComment(ctx, Target{Kind: TargetVideo, ID: f.videoID}, f.commenter, "mine")
	assert.NoError(t, err)

	testCases := []struct {
		name        string
		delete      func() error
		expectedErr error
		remaining   int
	}{
		{
			name:        "stranger on blog comment",
			delete:      func() error { return f.s.DeleteComment(ctx, blogComment.ID, f.stranger) },
			expectedErr: common.ErrForbidden,
			remaining:   3,
		},
		{
			name:        "blog author is not a moderator",
			delete:      func() error { return f.s.DeleteComment(ctx, blogComment.ID, f.blogAuthor) },
			expectedErr: common.ErrForbidden,
			remaining:   3,
		},
		{
			name:        "stranger on video comment",
			delete:      func() error { return f.s.DeleteTargetComment(ctx, Target{Kind: TargetVideo, ID: f.videoID}, videoComment.ID, f.stranger) },
			expectedErr: common.ErrForbidden,
			remaining:   3,
		},
		{
			name:        "comment addressed through the wrong video",
			delete:      func() error { return f.s.DeleteTargetComment(ctx, Target{Kind: TargetVideo, ID: f.videoID + 1}, videoComment.ID, f.commenter) },
			expectedErr: common.ErrRecordNotFound,
			remaining:   3,
		},
		{
			name:      "author deletes blog comment",
			delete:    func() error { return f.s.DeleteComment(ctx, blogComment.ID, f.commenter) },
			remaining: 2,
		},
		{
			name:      "video owner moderates",
			delete:    func() error { return f.s.DeleteTargetComment(ctx, Target{Kind: TargetVideo, ID: f.videoID}, videoComment.ID, f.videoAuthor) },
			remaining: 1,
		},
		{
			name:      "author deletes video comment",
			delete:    func() error { return f.s.DeleteComment(ctx, ownVideoComment.ID, f.commenter) },
			remaining: 0,
		},
		{
			name:        "already deleted",
			delete:      func() error { return f.s.DeleteComment(ctx, ownVideoComment.ID, f.commenter) },
			expectedErr: common.ErrRecordNotFound,
			remaining:   0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedErr, tc.delete())
			assert.Equal(t, tc.remaining, f.count(t))
		})
	}
}
