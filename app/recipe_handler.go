package main

import (
	"errors"
	"net/http"

	"github.com/sushihentaime/recipehub/internal/common"
	"github.com/sushihentaime/recipehub/internal/recipeservice"
)

type generateRecipeRequest struct {
	Ingredients []string                  `json:"ingredients"`
	Preferences recipeservice.Preferences `json:"preferences"`
}

func (app *application) generateRecipeHandler(w http.ResponseWriter, r *http.Request) {
	var input generateRecipeRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	recipe, err := app.recipeService.Generate(r.Context(), user.ID, input.Ingredients, input.Preferences)
	if err != nil {
		var (
			validationErr common.ValidationError
			generationErr *recipeservice.GenerationError
			parseErr      *recipeservice.RecipeParseError
		)

		switch {
		case errors.As(err, &validationErr):
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		case errors.As(err, &generationErr):
			app.upstreamErrorResponse(w, r, err, generationErr.Details())
		case errors.As(err, &parseErr):
			app.upstreamErrorResponse(w, r, err, parseErr.Error())
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, recipe, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) recipeHistoryHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	v := common.NewValidator()

	page := app.readInt(qs, "page", common.DefaultPage, v)
	limit := app.readInt(qs, "limit", common.DefaultLimit, v)
	if !v.Valid() {
		app.failedValidationErrorResponse(w, r, v.Errors)
		return
	}

	user := app.getUserContext(r)

	records, metadata, err := app.recipeService.History(r.Context(), user.ID, page, limit)
	if err != nil {
		app.contentErrorResponse(w, r, err)
		return
	}

	env := envelope{
		"recipes":     records,
		"totalPages":  metadata.TotalPages,
		"currentPage": metadata.CurrentPage,
		"total":       metadata.Total,
	}

	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
