package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/api/healthcheck", app.healthCheckHandler)

	// auth
	router.HandlerFunc(http.MethodPost, "/api/auth/register", app.registerUserHandler)
	router.HandlerFunc(http.MethodPost, "/api/auth/login", app.loginUserHandler)
	router.HandlerFunc(http.MethodPost, "/api/auth/logout", app.logoutUserHandler)

	// videos
	router.HandlerFunc(http.MethodGet, "/api/videos", app.listVideosHandler)
	router.HandlerFunc(http.MethodPost, "/api/videos", app.requireAuthUser(app.createVideoHandler))
	router.HandlerFunc(http.MethodGet, "/api/videos/:id", app.getVideoHandler)
	router.HandlerFunc(http.MethodPut, "/api/videos/:id", app.requireAuthUser(app.updateVideoHandler))
	router.HandlerFunc(http.MethodDelete, "/api/videos/:id", app.requireAuthUser(app.deleteVideoHandler))
	router.HandlerFunc(http.MethodPut, "/api/videos/:id/like", app.requireAuthUser(app.likeVideoHandler))
	router.HandlerFunc(http.MethodPut, "/api/videos/:id/dislike", app.requireAuthUser(app.dislikeVideoHandler))
	router.HandlerFunc(http.MethodPut, "/api/videos/:id/view", app.requireAuthUser(app.viewVideoHandler))
	router.HandlerFunc(http.MethodGet, "/api/videos/:id/comments", app.listVideoCommentsHandler)
	router.HandlerFunc(http.MethodPost, "/api/videos/:id/comments", app.requireAuthUser(app.addVideoCommentHandler))
	router.HandlerFunc(http.MethodDelete, "/api/videos/:id/comments/:commentId", app.requireAuthUser(app.deleteVideoCommentHandler))

	// blogs
	router.HandlerFunc(http.MethodGet, "/api/blogs", app.listBlogsHandler)
	router.HandlerFunc(http.MethodPost, "/api/blogs", app.requireAuthUser(app.createBlogHandler))
	router.HandlerFunc(http.MethodGet, "/api/blogs/:id", app.getBlogHandler)
	router.HandlerFunc(http.MethodPut, "/api/blogs/:id", app.requireAuthUser(app.updateBlogHandler))
	router.HandlerFunc(http.MethodDelete, "/api/blogs/:id", app.requireAuthUser(app.deleteBlogHandler))
	router.HandlerFunc(http.MethodPost, "/api/blogs/:id/like", app.requireAuthUser(app.likeBlogHandler))
	router.HandlerFunc(http.MethodGet, "/api/blogs/:id/like-status", app.requireAuthUser(app.blogLikeStatusHandler))
	router.HandlerFunc(http.MethodGet, "/api/blogs/:id/comments", app.listBlogCommentsHandler)
	router.HandlerFunc(http.MethodPost, "/api/blogs/:id/comments", app.requireAuthUser(app.addBlogCommentHandler))

	// comments
	router.HandlerFunc(http.MethodDelete, "/api/comments/:id", app.requireAuthUser(app.deleteCommentHandler))
	router.HandlerFunc(http.MethodPost, "/api/comments/:id/like", app.requireAuthUser(app.likeCommentHandler))

	// recipes
	router.HandlerFunc(http.MethodPost, "/api/generate-recipe", app.limitRecipeGeneration(app.generateRecipeHandler))
	router.HandlerFunc(http.MethodGet, "/api/recipes/history", app.requireAuthUser(app.recipeHistoryHandler))

	// profile
	router.HandlerFunc(http.MethodGet, "/api/profile", app.requireAuthUser(app.getProfileHandler))
	router.HandlerFunc(http.MethodPut, "/api/profile", app.requireAuthUser(app.updateProfileHandler))
	router.HandlerFunc(http.MethodPut, "/api/profile/update", app.requireAuthUser(app.updateProfileHandler))
	router.HandlerFunc(http.MethodGet, "/api/profile/content/:contentType", app.requireAuthUser(app.profileContentHandler))
	router.HandlerFunc(http.MethodGet, "/api/profile/videos", app.requireAuthUser(app.profileVideosHandler))

	// media
	router.HandlerFunc(http.MethodPost, "/api/uploads/:kind", app.requireAuthUser(app.uploadMediaHandler))

	return app.recoverPanic(app.logRequest(app.enableCORS(app.rateLimit(app.authenticate(router)))))
}
