package main

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sushihentaime/recipehub/internal/common"
	"github.com/sushihentaime/recipehub/internal/mediaservice"
)

// multipartMemory is how much of an upload is buffered in memory before spilling to disk.
const multipartMemory = 10 << 20

func (app *application) uploadMediaHandler(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())

	kind, ok := mediaservice.ParseKind(params.ByName("kind"))
	if !ok {
		app.notFoundErrorResponse(w, r)
		return
	}

	// leave room for the multipart framing around the file
	r.Body = http.MaxBytesReader(w, r.Body, kind.MaxSize()+1<<20)

	err := r.ParseMultipartForm(multipartMemory)
	if err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			app.fileTooLargeResponse(w, r, mediaservice.ErrFileTooLarge)
			return
		}
		app.badRequestErrorResponse(w, r, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		app.failedValidationErrorResponse(w, r, map[string]string{"file": "must be provided"})
		return
	}
	defer file.Close()

	user := app.getUserContext(r)

	upload, err := app.mediaService.Upload(r.Context(), user.ID, kind, header.Filename, header.Size, file)
	if err != nil {
		var validationErr common.ValidationError
		switch {
		case errors.Is(err, mediaservice.ErrFileTooLarge):
			app.fileTooLargeResponse(w, r, err)
		case errors.Is(err, mediaservice.ErrUnsupportedMedia):
			app.unsupportedMediaResponse(w, r, err)
		case errors.As(err, &validationErr):
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, upload, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
