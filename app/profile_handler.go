package main

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sushihentaime/recipehub/internal/blogservice"
	"github.com/sushihentaime/recipehub/internal/common"
	"github.com/sushihentaime/recipehub/internal/userservice"
	"github.com/sushihentaime/recipehub/internal/videoservice"
)

// profileContentLimit is how many items each profile content listing returns.
const profileContentLimit = 10

func (app *application) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	user := app.getUserContext(r)

	profile, err := app.userService.GetProfile(r.Context(), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, profile, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	var input userservice.ProfileInput

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	updated, err := app.userService.UpdateProfile(r.Context(), user.ID, input)
	if err != nil {
		app.contentErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"user": updated}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// profileContentHandler lists the caller's own videos or blogs, or what they liked.
func (app *application) profileContentHandler(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	user := app.getUserContext(r)
	ctx := r.Context()

	newest := common.Filters{Page: 1, Limit: profileContentLimit}

	var env envelope

	switch params.ByName("contentType") {
	case "videos":
		videos, _, err := app.videoService.ListVideos(ctx, videoservice.ListQuery{Filters: newest, AuthorID: user.ID})
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
		env = envelope{"videos": videos}
	case "blogs":
		blogs, _, err := app.blogService.GetBlogs(ctx, blogservice.ListQuery{Filters: newest, AuthorID: user.ID})
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
		env = envelope{"blogs": blogs}
	case "liked":
		videos, err := app.videoService.ListLikedBy(ctx, user.ID, profileContentLimit)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
		blogs, err := app.blogService.GetBlogsLikedBy(ctx, user.ID, profileContentLimit)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
		env = envelope{"videos": videos, "blogs": blogs}
	default:
		app.badRequestErrorResponse(w, r, errors.New("invalid content type"))
		return
	}

	err := app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) profileVideosHandler(w http.ResponseWriter, r *http.Request) {
	user := app.getUserContext(r)
	app.writeVideoPage(w, r, user.ID)
}
