package song

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/songshare/service/internal/logging"
	"github.com/songshare/service/internal/request"
	"github.com/songshare/service/internal/response"
)

// Handler holds HTTP handlers for song endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new song Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type createRequest struct {
	Name        *string `json:"name"        example:"Blue in Green"`
	Description *string `json:"description" example:"late night"`
	ArtistName  *string `json:"artistname"  example:"Miles Davis"`
	SongLink    *string `json:"song_link"   example:"https://example.com/blue-in-green"`
}

type listData struct {
	Songs []Song `json:"songs"`
}

// List godoc
//
//	@Summary		List songs
//	@Description	Returns every song with its images.
//	@Tags			songs
//	@Produce		json
//	@Success		200	{object}	listData
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/music/ [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	songs, err := h.svc.List(r.Context())
	if err != nil {
		h.internalError(w, r, "list songs", err)
		return
	}
	response.OK(w, listData{Songs: songs})
}

// Create godoc
//
//	@Summary		Create a song
//	@Description	Adds a song owned by the given user. Only name is required.
//	@Tags			songs
//	@Accept			json
//	@Produce		json
//	@Param			user_id	path		int				true	"User ID"
//	@Param			request	body		createRequest	true	"Song fields"
//	@Success		201		{object}	Song
//	@Failure		400		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/create/song/{user_id}/ [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := request.ID(r, "user_id")
	if err != nil {
		response.BadRequest(w, ErrUserNotFound.Error())
		return
	}

	var req createRequest
	if err := request.DecodeJSON(r, &req); err != nil && !errors.Is(err, request.ErrEmptyBody) {
		response.BadRequest(w, "invalid request body")
		return
	}

	s, err := h.svc.Create(r.Context(), userID, CreateInput{
		Name:        req.Name,
		Description: req.Description,
		ArtistName:  req.ArtistName,
		SongLink:    req.SongLink,
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrNameRequired) {
			response.BadRequest(w, err.Error())
			return
		}
		h.internalError(w, r, "create song", err)
		return
	}
	response.Created(w, s)
}

// Get godoc
//
//	@Summary		Get a song
//	@Tags			songs
//	@Produce		json
//	@Param			id	path		int	true	"Song ID"
//	@Success		200	{object}	Song
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/get/song/{id}/ [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		response.BadRequest(w, ErrNotFound.Error())
		return
	}

	s, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if h.svc.IsNotFound(err) {
			response.BadRequest(w, ErrNotFound.Error())
			return
		}
		h.internalError(w, r, "get song", err)
		return
	}
	response.OK(w, s)
}

// Delete godoc
//
//	@Summary		Delete a song
//	@Description	Deletes the song and its images, returning the song as it was.
//	@Tags			songs
//	@Produce		json
//	@Param			id	path		int	true	"Song ID"
//	@Success		200	{object}	Song
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/delete/song/{id}/ [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		response.BadRequest(w, ErrNotFound.Error())
		return
	}

	s, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		if h.svc.IsNotFound(err) {
			response.BadRequest(w, ErrNotFound.Error())
			return
		}
		h.internalError(w, r, "delete song", err)
		return
	}
	response.OK(w, s)
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	logging.FromContext(r.Context()).Error(op, zap.Error(err))
	response.InternalError(w)
}
