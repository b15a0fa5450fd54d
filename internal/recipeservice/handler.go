package recipeservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sushihentaime/recipehub/internal/common"
)

const (
	DefaultTimeout = 30 * time.Second
	persistTimeout = 10 * time.Second
)

func NewRecipeService(db *sql.DB, gen Generator, mb common.MessageProducer, logger *slog.Logger, timeout time.Duration) *RecipeService {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &RecipeService{
		m:       newRecipeModel(db),
		gen:     gen,
		mb:      mb,
		logger:  logger,
		timeout: timeout,
	}
}

// Generate asks the provider for a recipe built from ingredients and returns
// it in display form. The structured result is recorded asynchronously.
func (s *RecipeService) Generate(ctx context.Context, userID int, ingredients []string, prefs Preferences) (*Recipe, error) {
	cleaned := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if ing = strings.TrimSpace(ing); ing != "" {
			cleaned = append(cleaned, ing)
		}
	}

	v := common.NewValidator()
	v.Check(userID > 0, "user_id", "must be greater than zero")
	v.Check(len(cleaned) > 0, "ingredients", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.gen.Generate(genCtx, BuildPrompt(cleaned, prefs))
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	recipe, err := ParseRecipe(text)
	if err != nil {
		s.logger.Error("could not parse generated recipe", "error", err, "raw", text)
		return nil, err
	}

	s.record(ctx, &Record{
		EventID:         uuid.NewString(),
		UserID:          userID,
		Ingredients:     cleaned,
		Preferences:     prefs,
		GeneratedRecipe: *recipe,
		CreatedAt:       time.Now().UTC().Truncate(time.Second),
	})

	return Transform(recipe), nil
}

// record publishes the audit event, falling back to a direct insert when the broker is unavailable.
func (s *RecipeService) record(ctx context.Context, r *Record) {
	data, err := json.Marshal(r)
	if err == nil {
		err = s.mb.Publish(ctx, data, common.RecipeGeneratedKey, common.RecipeExchange)
		if err == nil {
			return
		}
	}

	s.logger.Error("could not publish generated recipe, storing it directly", "error", err, "event_id", r.EventID)

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		if err := s.m.insert(ctx, r); err != nil {
			s.logger.Error("could not store generated recipe", "error", err, "event_id", r.EventID)
		}
	}()
}

// Wait blocks until records stored outside the broker are written.
func (s *RecipeService) Wait() {
	s.pending.Wait()
}

// History lists the recipes generated for userID, newest first.
func (s *RecipeService) History(ctx context.Context, userID, page, limit int) ([]*Record, common.Metadata, error) {
	f := common.Filters{Page: page, Limit: limit}

	v := common.NewValidator()
	v.Check(userID > 0, "user_id", "must be greater than zero")
	common.ValidateFilters(v, f)
	if !v.Valid() {
		return nil, common.Metadata{}, v.ValidationError()
	}

	records, total, err := s.m.history(ctx, userID, f.Limit, f.Offset())
	if err != nil {
		return nil, common.Metadata{}, err
	}

	return records, common.CalculateMetadata(total, page, limit), nil
}
