package main

import (
	"errors"
	"net/http"

	"github.com/sushihentaime/recipehub/internal/commentservice"
	"github.com/sushihentaime/recipehub/internal/common"
	"github.com/sushihentaime/recipehub/internal/reactionservice"
	"github.com/sushihentaime/recipehub/internal/videoservice"
)

func (app *application) listVideosHandler(w http.ResponseWriter, r *http.Request) {
	app.writeVideoPage(w, r, 0)
}

// writeVideoPage answers a paginated video listing, narrowed to authorID when it is set.
func (app *application) writeVideoPage(w http.ResponseWriter, r *http.Request, authorID int) {
	qs := r.URL.Query()
	v := common.NewValidator()

	q := videoservice.ListQuery{
		Filters:  app.readFilters(qs, v),
		Category: app.readString(qs, "category", ""),
		AuthorID: authorID,
	}
	if !v.Valid() {
		app.failedValidationErrorResponse(w, r, v.Errors)
		return
	}

	videos, metadata, err := app.videoService.ListVideos(r.Context(), q)
	if err != nil {
		app.contentErrorResponse(w, r, err)
		return
	}

	env := envelope{
		"videos":      videos,
		"totalPages":  metadata.TotalPages,
		"currentPage": metadata.CurrentPage,
		"total":       metadata.Total,
	}

	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createVideoHandler(w http.ResponseWriter, r *http.Request) {
	var input videoservice.VideoInput

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	video, err := app.videoService.CreateVideo(r.Context(), user.ID, input)
	if err != nil {
		if errors.Is(err, videoservice.ErrUserForeignKey) {
			app.authenticationRequiredResponse(w, r, "user not found")
			return
		}
		app.contentErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"video": video}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// getVideoHandler returns the video with its first page of comments, and the
// viewer's reaction when the request carries a session.
func (app *application) getVideoHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	video, err := app.videoService.GetVideoByID(r.Context(), id)
	if err != nil {
		app.contentErrorResponse(w, r, err)
		return
	}

	target := commentservice.Target{Kind: commentservice.TargetVideo, ID: id}
	comments, pagination, err := app.commentService.ListComments(r.Context(), target, common.DefaultPage, common.DefaultLimit)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	env := envelope{
		"video":      video,
		"comments":   comments,
		"pagination": pagination,
	}

	user := app.getUserContext(r)
	if !user.IsAnonymous() {
		reaction, err := app.reactionService.VideoStatus(r.Context(), user.ID, id)
		if err != nil {
			app.contentErrorResponse(w, r, err)
			return
		}
		env["reaction"] = reaction
	}

	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) updateVideoHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	var input videoservice.VideoInput

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	video, err := app.videoService.UpdateVideo(r.Context(), id, user.ID, input)
	if err != nil {
		app.contentErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"video": video}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteVideoHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	user := app.getUserContext(r)

	err = app.videoService.DeleteVideo(r.Context(), id, user.ID)
	if err != nil {
		app.contentErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "video deleted successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) likeVideoHandler(w http.ResponseWriter, r *http.Request) {
	app.reactToVideo(w, r, reactionservice.Like)
}

func (app *application) dislikeVideoHandler(w http.ResponseWriter, r *http.Request) {
	app.reactToVideo(w, r, reactionservice.Dislike)
}

func (app *application) reactToVideo(w http.ResponseWriter, r *http.Request, requested reactionservice.Reaction) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	user := app.getUserContext(r)

	reaction, err := app.reactionService.ToggleVideoReaction(r.Context(), user.ID, id, requested)
	if err != nil {
		app.contentErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, reaction, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) viewVideoHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	views, err := app.videoService.AddView(r.Context(), id)
	if err != nil {
		app.contentErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"views": views}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) listVideoCommentsHandler(w http.ResponseWriter, r *http.Request) {
	app.listComments(w, r, commentservice.TargetVideo)
}

func (app *application) addVideoCommentHandler(w http.ResponseWriter, r *http.Request) {
	app.addComment(w, r, commentservice.TargetVideo)
}

func (app *application) deleteVideoCommentHandler(w http.ResponseWriter, r *http.Request) {
	videoID, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	commentID, err := app.readIDParam(r, "commentId")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	user := app.getUserContext(r)
	target := commentservice.Target{Kind: commentservice.TargetVideo, ID: videoID}

	err = app.commentService.DeleteTargetComment(r.Context(), target, commentID, user.ID)
	if err != nil {
		app.contentErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "comment deleted successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
