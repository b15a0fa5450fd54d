package commentservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sushihentaime/recipehub/internal/common"
)

var (
	ErrUserForeignKey = errors.New("comment author does not exist")
)

const commentColumns = `
	c.id, c.blog_id, c.video_id, c.content, c.likes_count, c.created_at,
	u.id, u.name, u.avatar, COALESCE(v.author_id, 0)`

func newCommentModel(db *sql.DB) *CommentModel {
	return &CommentModel{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanComment(row scanner, extra ...any) (*Comment, error) {
	var c Comment

	dest := append(extra,
		&c.ID, &c.BlogID, &c.VideoID, &c.Content, &c.LikesCount, &c.CreatedAt,
		&c.Author.ID, &c.Author.Name, &c.Author.Avatar, &c.videoOwnerID,
	)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	return &c, nil
}

func (m *CommentModel) insert(ctx context.Context, target Target, userID int, content string) (int, error) {
	var blogID, videoID *int
	if target.Kind == TargetVideo {
		videoID = &target.ID
	} else {
		blogID = &target.ID
	}

	query := `
		INSERT INTO comments (blog_id, video_id, user_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id int
	err := m.db.QueryRowContext(ctx, query, blogID, videoID, userID, content).Scan(&id)
	if err != nil {
		switch {
		case common.ForeignKeyViolation(err, "comments_blog_id_fkey"), common.ForeignKeyViolation(err, "comments_video_id_fkey"):
			return 0, common.ErrRecordNotFound
		case common.ForeignKeyViolation(err, "comments_user_id_fkey"):
			return 0, ErrUserForeignKey
		default:
			return 0, err
		}
	}

	return id, nil
}

func (m *CommentModel) getByID(ctx context.Context, id int) (*Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments c
		JOIN users u ON u.id = c.user_id
		LEFT JOIN videos v ON v.id = c.video_id
		WHERE c.id = $1`

	c, err := scanComment(m.db.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return c, nil
}

// list returns a page of the target's comments, newest first, and the total count.
func (m *CommentModel) list(ctx context.Context, target Target, limit, offset int) ([]*Comment, int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*) OVER(), `+commentColumns+`
		FROM comments c
		JOIN users u ON u.id = c.user_id
		LEFT JOIN videos v ON v.id = c.video_id
		WHERE c.%s = $1
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT $2 OFFSET $3`, target.column())

	rows, err := m.db.QueryContext(ctx, query, target.ID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	total := 0
	comments := []*Comment{}

	for rows.Next() {
		c, err := scanComment(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM comments WHERE %s = $1`, target.column())

	total, err = common.CountPastEnd(ctx, m.db, len(comments), offset, total, countQuery, target.ID)
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

func (m *CommentModel) delete(ctx context.Context, id int) error {
	query := `
		DELETE FROM comments
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
