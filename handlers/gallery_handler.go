package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/thahbeeb/artsfest-api/models"
	"github.com/thahbeeb/artsfest-api/services"
)

type GalleryHandler struct {
	galleryService services.GalleryService
}

func NewGalleryHandler(galleryService services.GalleryService) *GalleryHandler {
	return &GalleryHandler{galleryService: galleryService}
}

// CreateGalleryItem handles POST /api/gallery as multipart: the "file" part
// carries the media, plain form fields the caption, type and category.
func (h *GalleryHandler) CreateGalleryItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(50 << 20); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		badRequestResponse(w, r, errors.New("file is required"))
		return
	}
	defer file.Close()

	input := services.GalleryInput{
		Caption:  r.FormValue("caption"),
		Type:     models.GalleryMediaType(r.FormValue("type")),
		Category: r.FormValue("category"),
	}

	item, err := h.galleryService.CreateGalleryItem(r.Context(), input, services.GalleryUpload{
		FileName:    header.Filename,
		FileSize:    header.Size,
		ContentType: header.Header.Get("Content-Type"),
		File:        file,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"gallery_item": item,
	}

	err = writeJSON(w, http.StatusCreated, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GalleryHandler) GetGalleryItemByID(w http.ResponseWriter, r *http.Request) {
	itemID, err := getIDFromURL(r, "galleryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	item, err := h.galleryService.GetGalleryItemByID(r.Context(), itemID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"gallery_item": item,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GalleryHandler) ListGalleryItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.galleryService.ListGalleryItems(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"gallery": items,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GalleryHandler) UpdateGalleryItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := getIDFromURL(r, "galleryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.GalleryInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	item, err := h.galleryService.UpdateGalleryItem(r.Context(), itemID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"gallery_item": item,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GalleryHandler) DeleteGalleryItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := getIDFromURL(r, "galleryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.galleryService.DeleteGalleryItem(r.Context(), itemID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
