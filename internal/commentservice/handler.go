package commentservice

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sushihentaime/recipehub/internal/common"
)

const MaxContentLength = 2000

func NewCommentService(db *sql.DB) *CommentService {
	return &CommentService{m: newCommentModel(db)}
}

// AddComment attaches a comment to the target. A missing target is reported as common.ErrRecordNotFound.
func (s *CommentService) AddComment(ctx context.Context, target Target, authorID int, content string) (*Comment, error) {
	content = strings.TrimSpace(content)

	v := common.NewValidator()
	validateTarget(v, target)
	validateInt(v, authorID, "user_id")
	validateContent(v, content)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	id, err := s.m.insert(ctx, target, authorID, content)
	if err != nil {
		return nil, err
	}

	return s.m.getByID(ctx, id)
}

func (s *CommentService) GetComment(ctx context.Context, id int) (*Comment, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getByID(ctx, id)
}

// ListComments returns a page of the target's comments, newest first.
func (s *CommentService) ListComments(ctx context.Context, target Target, page, limit int) ([]*Comment, Pagination, error) {
	v := common.NewValidator()
	validateTarget(v, target)
	common.ValidateFilters(v, common.Filters{Page: page, Limit: limit})
	if !v.Valid() {
		return nil, Pagination{}, v.ValidationError()
	}

	offset := (page - 1) * limit

	comments, total, err := s.m.list(ctx, target, limit, offset)
	if err != nil {
		return nil, Pagination{}, err
	}

	meta := common.CalculateMetadata(total, page, limit)

	return comments, Pagination{Total: total, Page: page, Pages: meta.TotalPages}, nil
}

// DeleteComment removes a comment. Its author may delete it, and so may the
// author of the video it was written on.
func (s *CommentService) DeleteComment(ctx context.Context, id, requesterID int) error {
	c, err := s.GetComment(ctx, id)
	if err != nil {
		return err
	}

	return s.delete(ctx, c, requesterID)
}

// DeleteTargetComment is DeleteComment for a comment addressed through its
// target. A comment that belongs to another target is reported as missing.
func (s *CommentService) DeleteTargetComment(ctx context.Context, target Target, id, requesterID int) error {
	c, err := s.GetComment(ctx, id)
	if err != nil {
		return err
	}

	if !c.belongsTo(target) {
		return common.ErrRecordNotFound
	}

	return s.delete(ctx, c, requesterID)
}

func (s *CommentService) delete(ctx context.Context, c *Comment, requesterID int) error {
	err := common.Authorize(c, requesterID, common.ActionDelete)
	if err != nil {
		return err
	}

	return s.m.delete(ctx, c.ID)
}

func (c *Comment) belongsTo(t Target) bool {
	switch t.Kind {
	case TargetVideo:
		return c.VideoID != nil && *c.VideoID == t.ID
	case TargetBlog:
		return c.BlogID != nil && *c.BlogID == t.ID
	default:
		return false
	}
}

func validateTarget(v *common.Validator, t Target) {
	v.Check(common.PermittedValue(t.Kind, TargetBlog, TargetVideo), "target", "must be a blog or a video")
	validateInt(v, t.ID, "id")
}

func validateContent(v *common.Validator, content string) {
	v.Check(content != "", "content", "must be provided")
	v.Check(v.CheckStringLength(content, 0, MaxContentLength), "content", "must not be more than 2000 characters long")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
