package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"teamgate/internal/apperr"
	"teamgate/internal/http/api"
	"teamgate/internal/lib/sl"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
)

// RenderBusinessError serializes a taxonomy error into the uniform 200
// {error} body. Anything outside the taxonomy is internal: logged in full,
// masked on the wire.
func RenderBusinessError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	if apperr.IsDomain(err) {
		render.JSON(w, r, api.Error(err.Error()))
		return
	}

	log.Error("unhandled business error", sl.Err(err))
	render.JSON(w, r, api.InternalError())
}

func NewLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func DecodeErrorResponse(t *testing.T, body *bytes.Buffer) api.ErrorResponse {
	var resp api.ErrorResponse
	err := json.NewDecoder(body).Decode(&resp)
	assert.NoError(t, err)
	return resp
}
