package reactionservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sushihentaime/recipehub/internal/common"
)

func newReactionModel(db *sql.DB) *ReactionModel {
	return &ReactionModel{db: db}
}

// toggleVideo moves the user's reaction on the video to next(current, requested).
// The video row is locked for the whole transaction so concurrent toggles on the
// same video apply one after another.
func (m *ReactionModel) toggleVideo(ctx context.Context, userID, videoID int, requested Reaction) (*VideoReaction, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer common.Rollback(tx)

	var likes, dislikes int
	err = tx.QueryRowContext(ctx, `
		SELECT likes_count, dislikes_count
		FROM videos
		WHERE id = $1
		FOR UPDATE`, videoID).Scan(&likes, &dislikes)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	current, err := videoReaction(ctx, tx, userID, videoID)
	if err != nil {
		return nil, err
	}

	target := next(current, requested)

	if current != None {
		_, err = tx.ExecContext(ctx, `
			DELETE FROM video_reactions
			WHERE user_id = $1 AND video_id = $2`, userID, videoID)
		if err != nil {
			return nil, err
		}
	}

	if target != None {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO video_reactions (user_id, video_id, kind)
			VALUES ($1, $2, $3)`, userID, videoID, target)
		if err != nil {
			return nil, err
		}
	}

	likesDelta, dislikesDelta := counterDelta(current, target)

	err = tx.QueryRowContext(ctx, `
		UPDATE videos
		SET likes_count = GREATEST(likes_count + $2, 0), dislikes_count = GREATEST(dislikes_count + $3, 0)
		WHERE id = $1
		RETURNING likes_count, dislikes_count`, videoID, likesDelta, dislikesDelta).Scan(&likes, &dislikes)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return newVideoReaction(target, likes, dislikes), nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func videoReaction(ctx context.Context, q queryer, userID, videoID int) (Reaction, error) {
	var r Reaction

	err := q.QueryRowContext(ctx, `
		SELECT kind
		FROM video_reactions
		WHERE user_id = $1 AND video_id = $2`, userID, videoID).Scan(&r)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return None, nil
		default:
			return None, err
		}
	}

	return r, nil
}

func (m *ReactionModel) videoStatus(ctx context.Context, userID, videoID int) (*VideoReaction, error) {
	var likes, dislikes int
	err := m.db.QueryRowContext(ctx, `
		SELECT likes_count, dislikes_count
		FROM videos
		WHERE id = $1`, videoID).Scan(&likes, &dislikes)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	r, err := videoReaction(ctx, m.db, userID, videoID)
	if err != nil {
		return nil, err
	}

	return newVideoReaction(r, likes, dislikes), nil
}

// toggleLike flips the user's membership in a like-only ledger and keeps the cached counter in step.
func (m *ReactionModel) toggleLike(ctx context.Context, l ledger, userID, targetID int) (*LikeResult, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer common.Rollback(tx)

	var likes int
	err = tx.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
		FOR UPDATE`, l.counterCol, l.counterTable), targetID).Scan(&likes)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	current, err := likeState(ctx, tx, l, userID, targetID)
	if err != nil {
		return nil, err
	}

	target := next(current, Like)

	if target == None {
		_, err = tx.ExecContext(ctx, fmt.Sprintf(`
			DELETE FROM %s
			WHERE user_id = $1 AND %s = $2`, l.table, l.targetColumn), userID, targetID)
	} else {
		_, err = tx.ExecContext(ctx, fmt.Sprintf(`
			INSERT INTO %s (user_id, %s)
			VALUES ($1, $2)`, l.table, l.targetColumn), userID, targetID)
	}
	if err != nil {
		return nil, err
	}

	delta, _ := counterDelta(current, target)

	err = tx.QueryRowContext(ctx, fmt.Sprintf(`
		UPDATE %[1]s
		SET %[2]s = GREATEST(%[2]s + $2, 0)
		WHERE id = $1
		RETURNING %[2]s`, l.counterTable, l.counterCol), targetID, delta).Scan(&likes)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &LikeResult{IsLiked: target == Like, Likes: likes}, nil
}

func likeState(ctx context.Context, q queryer, l ledger, userID, targetID int) (Reaction, error) {
	var exists bool

	err := q.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s WHERE user_id = $1 AND %s = $2
		)`, l.table, l.targetColumn), userID, targetID).Scan(&exists)
	if err != nil {
		return None, err
	}

	if exists {
		return Like, nil
	}
	return None, nil
}

func (m *ReactionModel) likeStatus(ctx context.Context, l ledger, userID, targetID int) (*LikeResult, error) {
	var likes int
	err := m.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1`, l.counterCol, l.counterTable), targetID).Scan(&likes)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	r, err := likeState(ctx, m.db, l, userID, targetID)
	if err != nil {
		return nil, err
	}

	return &LikeResult{IsLiked: r == Like, Likes: likes}, nil
}
