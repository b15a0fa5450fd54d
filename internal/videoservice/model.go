package videoservice

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

// videoColumns selects a video with its author. The author columns are aliased
// so ORDER BY can name id and created_at without ambiguity.
const videoColumns = `
	v.id, v.title, v.description, v.ingredients, v.cooking_steps, v.category, v.duration,
	v.video_url, v.thumbnail_url, v.views, v.likes_count, v.dislikes_count,
	v.created_at, v.updated_at, v.version,
	u.id AS author_id, u.name AS author_name, u.avatar AS author_avatar`

func newVideoModel(db *sql.DB) *VideoModel {
	return &VideoModel{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanVideo(row scanner, extra ...any) (*Video, error) {
	var v Video

	dest := append(extra,
		&v.ID, &v.Title, &v.Description, pq.Array(&v.Ingredients), &v.CookingSteps, &v.Category, &v.Duration,
		&v.VideoURL, &v.ThumbnailURL, &v.Views, &v.LikesCount, &v.DislikesCount,
		&v.CreatedAt, &v.UpdatedAt, &v.Version,
		&v.Author.ID, &v.Author.Name, &v.Author.Avatar,
	)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	return &v, nil
}

func (m *VideoModel) insert(ctx context.Context, v *Video) error {
	query := `
		INSERT INTO videos (title, description, ingredients, cooking_steps, category, duration, video_url, thumbnail_url, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	args := []any{
		v.Title,
		v.Description,
		pq.Array(v.Ingredients),
		v.CookingSteps,
		v.Category,
		v.Duration,
		v.VideoURL,
		v.ThumbnailURL,
		v.Author.ID,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&v.ID)
	if err != nil {
		switch {
		case common.ForeignKeyViolation(err, "videos_author_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

func (m *VideoModel) getByID(ctx context.Context, id int) (*Video, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM videos v
		JOIN users u ON u.id = v.author_id
		WHERE v.id = $1`

	v, err := scanVideo(m.db.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return v, nil
}

// update replaces the mutable fields, guarded by the version the caller read.
func (m *VideoModel) update(ctx context.Context, v *Video) error {
	query := `
		UPDATE videos
		SET title = $1, description = $2, ingredients = $3, cooking_steps = $4, category = $5,
			duration = $6, video_url = $7, thumbnail_url = $8, updated_at = NOW(), version = version + 1
		WHERE id = $9 AND version = $10
		RETURNING updated_at, version`

	args := []any{
		v.Title,
		v.Description,
		pq.Array(v.Ingredients),
		v.CookingSteps,
		v.Category,
		v.Duration,
		v.VideoURL,
		v.ThumbnailURL,
		v.ID,
		v.Version,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&v.UpdatedAt, &v.Version)
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

func (m *VideoModel) delete(ctx context.Context, id int) error {
	query := `
		DELETE FROM videos
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

// list returns one page of videos and the total number of matches.
func (m *VideoModel) list(ctx context.Context, q ListQuery) ([]*Video, int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*) OVER(), `+videoColumns+`
		FROM videos v
		JOIN users u ON u.id = v.author_id
		WHERE ($1 = '' OR v.title ILIKE $2)
		AND ($3 = '' OR v.category = $3)
		AND ($4 = 0 OR v.author_id = $4)
		ORDER BY %s
		LIMIT $5 OFFSET $6`, q.Filters.OrderBy())

	args := []any{
		q.Filters.Search,
		q.Filters.SearchPattern(),
		q.Category,
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
	videos := []*Video{}

	for rows.Next() {
		v, err := scanVideo(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		videos = append(videos, v)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `
		SELECT COUNT(*)
		FROM videos v
		WHERE ($1 = '' OR v.title ILIKE $2)
		AND ($3 = '' OR v.category = $3)
		AND ($4 = 0 OR v.author_id = $4)`

	total, err = common.CountPastEnd(ctx, m.db, len(videos), q.Filters.Offset(), total, countQuery, args[:4]...)
	if err != nil {
		return nil, 0, err
	}

	return videos, total, nil
}

// listLikedBy returns the videos the user liked, most recently liked first.
func (m *VideoModel) listLikedBy(ctx context.Context, userID, limit int) ([]*Video, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM video_reactions r
		JOIN videos v ON v.id = r.video_id
		JOIN users u ON u.id = v.author_id
		WHERE r.user_id = $1 AND r.kind = 1
		ORDER BY r.created_at DESC, v.id DESC
		LIMIT $2`

	rows, err := m.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	videos := []*Video{}
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return videos, nil
}

func (m *VideoModel) incrementViews(ctx context.Context, id int) (int, error) {
	query := `
		UPDATE videos
		SET views = views + 1
		WHERE id = $1
		RETURNING views`

	var views int
	err := m.db.QueryRowContext(ctx, query, id).Scan(&views)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return 0, common.ErrRecordNotFound
		default:
			return 0, err
		}
	}

	return views, nil
}
