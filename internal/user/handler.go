package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/songshare/service/internal/logging"
	"github.com/songshare/service/internal/request"
	"github.com/songshare/service/internal/response"
)

// Handler holds HTTP handlers for user endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new user Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type createRequest struct {
	Name      *string    `json:"name"       example:"Alice"`
	ClassYear *yearValue `json:"class_year" swaggertype:"string" example:"2025"`
}

// yearValue accepts a class year sent either as a string or a number.
type yearValue string

func (y *yearValue) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*y = yearValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*y = yearValue(n.String())
	return nil
}

// Create godoc
//
//	@Summary		Create a user
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		createRequest	true	"Name and class year"
//	@Success		200		{object}	User
//	@Failure		400		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/create/user/ [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := request.DecodeJSON(r, &req); err != nil && !errors.Is(err, request.ErrEmptyBody) {
		response.BadRequest(w, "invalid request body")
		return
	}

	var classYear *string
	if req.ClassYear != nil {
		v := string(*req.ClassYear)
		classYear = &v
	}

	u, err := h.svc.Create(r.Context(), req.Name, classYear)
	if err != nil {
		if errors.Is(err, ErrMissingField) {
			response.BadRequest(w, err.Error())
			return
		}
		logging.FromContext(r.Context()).Error("create user", zap.Error(err))
		response.InternalError(w)
		return
	}
	response.OK(w, u)
}

// Get godoc
//
//	@Summary		Get a user
//	@Description	Returns the user with their songs and images.
//	@Tags			users
//	@Produce		json
//	@Param			id	path		int	true	"User ID"
//	@Success		200	{object}	User
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/get/user/{id}/ [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		response.BadRequest(w, ErrNotFound.Error())
		return
	}

	u, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if h.svc.IsNotFound(err) {
			response.BadRequest(w, ErrNotFound.Error())
			return
		}
		logging.FromContext(r.Context()).Error("get user", zap.Error(err))
		response.InternalError(w)
		return
	}
	response.OK(w, u)
}

// Delete godoc
//
//	@Summary		Delete a user
//	@Description	Deletes the user, their songs and every image attached to them.
//	@Tags			users
//	@Produce		json
//	@Param			id	path		int	true	"User ID"
//	@Success		200	{object}	User
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/delete/user/{id}/ [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		response.BadRequest(w, ErrNotFound.Error())
		return
	}

	u, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		if h.svc.IsNotFound(err) {
			response.BadRequest(w, ErrNotFound.Error())
			return
		}
		logging.FromContext(r.Context()).Error("delete user", zap.Error(err))
		response.InternalError(w)
		return
	}
	response.OK(w, u)
}
