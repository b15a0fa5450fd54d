package main

import (
	"net/http"

	"github.com/sushihentaime/recipehub/internal/blogservice"
	"github.com/sushihentaime/recipehub/internal/commentservice"
	"github.com/sushihentaime/recipehub/internal/common"
)

func (app *application) listBlogsHandler(w http.ResponseWriter, r *http.Request) {
	v := common.NewValidator()

	q := blogservice.ListQuery{Filters: app.readFilters(r.URL.Query(), v)}
	if !v.Valid() {
		app.failedValidationErrorResponse(w, r, v.Errors)
		return
	}

	blogs, metadata, err := app.blogService.GetBlogs(r.Context(), q)
	if err != nil {
		app.contentErrorResponse(w, r, err)
		return
	}

	env := envelope{
		"blogs":       blogs,
		"totalPages":  metadata.TotalPages,
		"currentPage": metadata.CurrentPage,
		"total":       metadata.Total,
	}

	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input blogservice.BlogInput

	// Parse the request body
	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	blog, err := app.blogService.CreateBlog(r.Context(), user.ID, input)
	if err != nil {
		app.contentErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"blog": blog}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	blog, err := app.blogService.GetBlogByID(r.Context(), id)
	if err != nil {
		app.contentErrorResponse(w, r, err)
		return
	}

	target := commentservice.Target{Kind: commentservice.TargetBlog, ID: id}
	comments, pagination, err := app.commentService.ListComments(r.Context(), target, common.DefaultPage, common.DefaultLimit)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	env := envelope{
		"blog":       blog,
		"comments":   comments,
		"pagination": pagination,
	}

	user := app.getUserContext(r)
	if !user.IsAnonymous() {
		status, err := app.reactionService.BlogStatus(r.Context(), user.ID, id)
		if err != nil {
			app.contentErrorResponse(w, r, err)
			return
		}
		env["isLiked"] = status.IsLiked
	}

	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) updateBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	var input blogservice.BlogInput

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	blog, err := app.blogService.UpdateBlog(r.Context(), id, user.ID, input)
	if err != nil {
		app.contentErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blog": blog}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	user := app.getUserContext(r)

	err = app.blogService.DeleteBlog(r.Context(), id, user.ID)
	if err != nil {
		app.contentErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "blog deleted successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) likeBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	user := app.getUserContext(r)

	result, err := app.reactionService.ToggleBlogLike(r.Context(), user.ID, id)
	if err != nil {
		app.contentErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, result, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) blogLikeStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	user := app.getUserContext(r)

	result, err := app.reactionService.BlogStatus(r.Context(), user.ID, id)
	if err != nil {
		app.contentErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, result, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) listBlogCommentsHandler(w http.ResponseWriter, r *http.Request) {
	app.listComments(w, r, commentservice.TargetBlog)
}

func (app *application) addBlogCommentHandler(w http.ResponseWriter, r *http.Request) {
	app.addComment(w, r, commentservice.TargetBlog)
}
