package main

import (
	"net/http"

	"github.com/sushihentaime/recipehub/internal/commentservice"
	"github.com/sushihentaime/recipehub/internal/common"
)

func (app *application) listComments(w http.ResponseWriter, r *http.Request, kind commentservice.TargetKind) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	qs := r.URL.Query()
	v := common.NewValidator()

	page := app.readInt(qs, "page", common.DefaultPage, v)
	limit := app.readInt(qs, "limit", common.DefaultLimit, v)
	if !v.Valid() {
		app.failedValidationErrorResponse(w, r, v.Errors)
		return
	}

	target := commentservice.Target{Kind: kind, ID: id}

	comments, pagination, err := app.commentService.ListComments(r.Context(), target, page, limit)
	if err != nil {
		app.contentErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"comments": comments, "pagination": pagination}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type addCommentRequest struct {
	Content string `json:"content"`
}

func (app *application) addComment(w http.ResponseWriter, r *http.Request, kind commentservice.TargetKind) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	var input addCommentRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)
	target := commentservice.Target{Kind: kind, ID: id}

	comment, err := app.commentService.AddComment(r.Context(), target, user.ID, input.Content)
	if err != nil {
		app.contentErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"comment": comment}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	user := app.getUserContext(r)

	err = app.commentService.DeleteComment(r.Context(), id, user.ID)
	if err != nil {
		app.contentErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "comment deleted successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) likeCommentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	user := app.getUserContext(r)

	result, err := app.reactionService.ToggleCommentLike(r.Context(), user.ID, id)
	if err != nil {
		app.contentErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, result, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
