package handler

import (
	"encoding/json"
	"net/http"

	"github.com/AadiZee/car-system-api/internal/application/car"
	"github.com/AadiZee/car-system-api/internal/domain"
	"github.com/AadiZee/car-system-api/internal/pkg/validate"
	"github.com/go-chi/chi/v5"
)

// CarHandler handles car inventory endpoints.
type CarHandler struct {
	svc car.Service
}

func NewCarHandler(svc car.Service) *CarHandler { return &CarHandler{svc: svc} }

func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CarHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CarHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateCarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Car Record Deleted"})
}

func (h *CarHandler) List(w http.ResponseWriter, r *http.Request) {
	cars, err := h.svc.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CarListEnvelope{Message: "Records Found!", Data: cars})
}

func (h *CarHandler) Paginate(w http.ResponseWriter, r *http.Request) {
	var req domain.PaginateCarsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := h.svc.Paginate(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *CarHandler) AttachPhoto(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c, err := h.svc.AttachPhoto(r.Context(), chi.URLParam(r, "id"), r.Body, contentType)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CarHandler) PhotoURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.svc.PhotoURL(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PhotoEnvelope{URL: url})
}
