package asset

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/songshare/service/internal/logging"
	"github.com/songshare/service/internal/media"
	"github.com/songshare/service/internal/request"
	"github.com/songshare/service/internal/response"
	"github.com/songshare/service/internal/storage"
)

// Handler holds HTTP handlers for asset endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new asset Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type createRequest struct {
	ImageData string `json:"image_data" example:"data:image/png;base64,iVBORw0KGgo..."`
}

// Create godoc
//
//	@Summary		Attach an image to a song
//	@Description	Decodes a base64 data URI (png, gif or jpeg), uploads it to object storage and records its dimensions.
//	@Tags			assets
//	@Accept			json
//	@Produce		json
//	@Param			song_id	path		int				true	"Song ID"
//	@Param			request	body		createRequest	true	"Image data URI"
//	@Success		201		{object}	View
//	@Failure		400		{object}	response.ErrorBody
//	@Failure		429		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Failure		502		{object}	response.ErrorBody
//	@Router			/image/{song_id}/song/ [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	songID, err := request.ID(r, "song_id")
	if err != nil {
		response.BadRequest(w, ErrSongNotFound.Error())
		return
	}

	var req createRequest
	if err := request.DecodeJSON(r, &req); err != nil && !errors.Is(err, request.ErrEmptyBody) {
		response.BadRequest(w, "invalid request body")
		return
	}

	a, err := h.svc.Create(r.Context(), songID, req.ImageData)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Created(w, a)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrSongNotFound), errors.Is(err, ErrNoImageData):
		response.BadRequest(w, err.Error())
	case errors.Is(err, media.ErrMalformedInput),
		errors.Is(err, media.ErrUnsupportedMediaType),
		errors.Is(err, media.ErrDecode):
		var ie *IngestError
		if errors.As(err, &ie) {
			err = ie.Err
		}
		response.BadRequest(w, err.Error())
	case errors.Is(err, storage.ErrUpload):
		response.BadGateway(w, storage.ErrUpload.Error())
	default:
		logging.FromContext(r.Context()).Error("create asset", zap.Error(err))
		response.InternalError(w)
	}
}
