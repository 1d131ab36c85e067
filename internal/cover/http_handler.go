package cover

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"lendingapi/internal/httpx"
)

const maxCoverBytes = 10 << 20 // 10 MiB

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Get handles GET /api/books/{id}/cover
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := coverID(w, r)
	if !ok {
		return
	}

	data, err := h.service.Find(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "No cover stored for this book", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	w.Header().Set("Content-Type", data.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data.Content)
}

// Put handles PUT /api/books/{id}/cover with a multipart "cover" file field.
func (h *HTTPHandler) Put(w http.ResponseWriter, r *http.Request) {
	id, ok := coverID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxCoverBytes); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_BODY", "Expected multipart form with a cover file", nil)
		return
	}
	file, header, err := r.FormFile("cover")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_BODY", "Missing cover file field", nil)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := h.service.Save(r.Context(), id, Data{Content: content, ContentType: contentType}); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func coverID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_ID", "Book id must be a UUID", nil)
		return uuid.Nil, false
	}
	return id, true
}
