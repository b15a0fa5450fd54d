package recipeservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/lib/pq"
	"github.com/sushihentaime/recipehub/internal/common"
)

var ErrUserForeignKey = errors.New("user does not exist")

func newRecipeModel(db *sql.DB) *RecipeModel {
	return &RecipeModel{db: db}
}

// insert stores an audit record. A record whose event id is already stored is
// skipped, so a redelivered message never creates a second row.
func (m *RecipeModel) insert(ctx context.Context, r *Record) error {
	prefs, err := json.Marshal(r.Preferences)
	if err != nil {
		return err
	}

	recipe, err := json.Marshal(r.GeneratedRecipe)
	if err != nil {
		return err
	}

	ingredients := r.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}

	query := `
		INSERT INTO ai_recipes (event_id, user_id, ingredients, preferences, generated_recipe, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id) DO NOTHING`

	_, err = m.db.ExecContext(ctx, query, r.EventID, r.UserID, pq.Array(ingredients), prefs, recipe, r.CreatedAt)
	if err != nil {
		if common.ForeignKeyViolation(err, "ai_recipes_user_id_fkey") {
			return ErrUserForeignKey
		}
		return err
	}

	return nil
}

func (m *RecipeModel) history(ctx context.Context, userID, limit, offset int) ([]*Record, int, error) {
	query := `
		SELECT COUNT(*) OVER(), id, event_id, user_id, ingredients, preferences, generated_recipe, created_at
		FROM ai_recipes
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := m.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		total   int
		records = []*Record{}
	)

	for rows.Next() {
		var (
			r      Record
			prefs  []byte
			recipe []byte
		)

		err := rows.Scan(&total, &r.ID, &r.EventID, &r.UserID, pq.Array(&r.Ingredients), &prefs, &recipe, &r.CreatedAt)
		if err != nil {
			return nil, 0, err
		}

		if err := json.Unmarshal(prefs, &r.Preferences); err != nil {
			return nil, 0, err
		}
		if err := json.Unmarshal(recipe, &r.GeneratedRecipe); err != nil {
			return nil, 0, err
		}

		records = append(records, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	total, err = common.CountPastEnd(ctx, m.db, len(records), offset, total, `SELECT COUNT(*) FROM ai_recipes WHERE user_id = $1`, userID)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
