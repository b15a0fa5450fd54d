package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sushihentaime/recipehub/internal/common"
)

var (
	ErrUserForeignKey = errors.New("author does not exist")
)

const blogColumns = `
	b.id, b.title, b.description, b.prep_time, b.cook_time, b.servings, b.difficulty,
	b.ingredients, b.instructions, b.content, b.image_url, b.likes_count,
	b.created_at, b.updated_at, b.version,
	u.id AS author_id, u.name AS author_name, u.avatar AS author_avatar`

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBlog(row scanner, extra ...any) (*Blog, error) {
	var b Blog

	dest := append(extra,
		&b.ID, &b.Title, &b.Description, &b.PrepTime, &b.CookTime, &b.Servings, &b.Difficulty,
		pq.Array(&b.Ingredients), pq.Array(&b.Instructions), &b.Content, &b.Image, &b.LikesCount,
		&b.CreatedAt, &b.UpdatedAt, &b.Version,
		&b.Author.ID, &b.Author.Name, &b.Author.Avatar,
	)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	return &b, nil
}

func (m *BlogModel) insert(ctx context.Context, b *Blog) error {
	query := `
		INSERT INTO blogs (title, description, prep_time, cook_time, servings, difficulty, ingredients, instructions, content, image_url, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	args := []any{
		b.Title,
		b.Description,
		b.PrepTime,
		b.CookTime,
		b.Servings,
		b.Difficulty,
		pq.Array(b.Ingredients),
		pq.Array(b.Instructions),
		b.Content,
		b.Image,
		b.Author.ID,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&b.ID)
	if err != nil {
		switch {
		case common.ForeignKeyViolation(err, "blogs_author_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

// getBlogByID joins the users table to attach the author's display fields.
func (m *BlogModel) getBlogByID(ctx context.Context, id int) (*Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		JOIN users u ON u.id = b.author_id
		WHERE b.id = $1`

	b, err := scanBlog(m.db.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return b, nil
}

func (m *BlogModel) updateBlog(ctx context.Context, b *Blog) error {
	query := `
		UPDATE blogs
		SET title = $1, description = $2, prep_time = $3, cook_time = $4, servings = $5, difficulty = $6,
			ingredients = $7, instructions = $8, content = $9, image_url = $10, updated_at = NOW(), version = version + 1
		WHERE id = $11 AND version = $12
		RETURNING updated_at, version`

	args := []any{
		b.Title,
		b.Description,
		b.PrepTime,
		b.CookTime,
		b.Servings,
		b.Difficulty,
		pq.Array(b.Ingredients),
		pq.Array(b.Instructions),
		b.Content,
		b.Image,
		b.ID,
		b.Version,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&b.UpdatedAt, &b.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return common.ErrEditConflict
		default:
			return err
		}
	}

	return nil
}

func (m *BlogModel) deleteBlog(ctx context.Context, id int) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return common.ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

// getBlogs returns one page of blogs matching the title search and the total number of matches.
func (m *BlogModel) getBlogs(ctx context.Context, q ListQuery) ([]*Blog, int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*) OVER(), `+blogColumns+`
		FROM blogs b
		JOIN users u ON u.id = b.author_id
		WHERE ($1 = '' OR b.title ILIKE $2)
		AND ($3 = 0 OR b.author_id = $3)
		ORDER BY %s
		LIMIT $4 OFFSET $5`, q.Filters.OrderBy())

	args := []any{
		q.Filters.Search,
		q.Filters.SearchPattern(),
		q.AuthorID,
		q.Filters.Limit,
		q.Filters.Offset(),
	}

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	total := 0
	blogs := []*Blog{}

	for rows.Next() {
		b, err := scanBlog(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		blogs = append(blogs, b)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `
		SELECT COUNT(*)
		FROM blogs b
		WHERE ($1 = '' OR b.title ILIKE $2)
		AND ($3 = 0 OR b.author_id = $3)`

	total, err = common.CountPastEnd(ctx, m.db, len(blogs), q.Filters.Offset(), total, countQuery, args[:3]...)
	if err != nil {
		return nil, 0, err
	}

	return blogs, total, nil
}

func (m *BlogModel) getBlogsLikedBy(ctx context.Context, userID, limit int) ([]*Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blog_likes l
		JOIN blogs b ON b.id = l.blog_id
		JOIN users u ON u.id = b.author_id
		WHERE l.user_id = $1
		ORDER BY l.created_at DESC, b.id DESC
		LIMIT $2`

	rows, err := m.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []*Blog{}
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}
