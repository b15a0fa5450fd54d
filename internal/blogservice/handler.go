package blogservice

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sushihentaime/recipehub/internal/common"
)

func NewBlogService(db *sql.DB) *BlogService {
	return &BlogService{m: newBlogModel(db)}
}

// apply copies the provided fields of in onto b, stripping script and iframe elements from text.
func (in BlogInput) apply(b *Blog) {
	if in.Title != nil {
		b.Title = strings.TrimSpace(sanitizeMarkdown(*in.Title))
	}
	if in.Description != nil {
		b.Description = strings.TrimSpace(sanitizeMarkdown(*in.Description))
	}
	if in.PrepTime != nil {
		b.PrepTime = *in.PrepTime
	}
	if in.CookTime != nil {
		b.CookTime = *in.CookTime
	}
	if in.Servings != nil {
		b.Servings = *in.Servings
	}
	if in.Difficulty != nil {
		b.Difficulty = *in.Difficulty
	}
	if in.Ingredients != nil {
		b.Ingredients = sanitizeAll(in.Ingredients)
	}
	if in.Instructions != nil {
		b.Instructions = sanitizeAll(in.Instructions)
	}
	if in.Content != nil {
		b.Content = sanitizeMarkdown(*in.Content)
	}
	if in.Image != nil {
		b.Image = strings.TrimSpace(*in.Image)
	}
}

// CreateBlog creates a new recipe blog for the author.
func (s *BlogService) CreateBlog(ctx context.Context, authorID int, in BlogInput) (*Blog, error) {
	blog := &Blog{
		Ingredients:  []string{},
		Instructions: []string{},
		Author:       common.Author{ID: authorID},
	}
	in.apply(blog)

	v := common.NewValidator()
	validateInt(v, authorID, "author_id")
	v.Check(in.Ingredients != nil, "ingredients", "must be provided")
	v.Check(in.Instructions != nil, "instructions", "must be provided")
	validateBlog(v, blog)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err := s.m.insert(ctx, blog)
	if err != nil {
		return nil, err
	}

	return s.m.getBlogByID(ctx, blog.ID)
}

// GetBlogByID returns a blog with its author.
func (s *BlogService) GetBlogByID(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBlogByID(ctx, id)
}

// UpdateBlog updates a blog post. Only the author can update it.
func (s *BlogService) UpdateBlog(ctx context.Context, id, requesterID int, in BlogInput) (*Blog, error) {
	blog, err := s.GetBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = common.Authorize(blog, requesterID, common.ActionUpdate)
	if err != nil {
		return nil, err
	}

	in.apply(blog)

	v := common.NewValidator()
	validateBlog(v, blog)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err = s.m.updateBlog(ctx, blog)
	if err != nil {
		return nil, err
	}

	return blog, nil
}

// DeleteBlog deletes a blog post. Only the author can delete it.
func (s *BlogService) DeleteBlog(ctx context.Context, id, requesterID int) error {
	blog, err := s.GetBlogByID(ctx, id)
	if err != nil {
		return err
	}

	err = common.Authorize(blog, requesterID, common.ActionDelete)
	if err != nil {
		return err
	}

	return s.m.deleteBlog(ctx, id)
}

// GetBlogs returns a page of blogs, newest first unless another sort is requested.
func (s *BlogService) GetBlogs(ctx context.Context, q ListQuery) ([]*Blog, common.Metadata, error) {
	q.Filters.SortSafelist = SortSafelist
	if q.Filters.Sort == "" {
		q.Filters.Sort = "-createdAt"
	}

	v := common.NewValidator()
	common.ValidateFilters(v, q.Filters)
	if !v.Valid() {
		return nil, common.Metadata{}, v.ValidationError()
	}

	blogs, total, err := s.m.getBlogs(ctx, q)
	if err != nil {
		return nil, common.Metadata{}, err
	}

	return blogs, common.CalculateMetadata(total, q.Filters.Page, q.Filters.Limit), nil
}

func (s *BlogService) GetBlogsLikedBy(ctx context.Context, userID, limit int) ([]*Blog, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	validateInt(v, limit, "limit")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBlogsLikedBy(ctx, userID, limit)
}
