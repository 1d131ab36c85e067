package book

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"lendingapi/internal/httpx"
)

// AddBookRequest is the body of POST /api/books.
type AddBookRequest struct {
	ISBN          string   `json:"isbn" validate:"required,isbn"`
	Title         string   `json:"title" validate:"required"`
	NumberOfPages *int     `json:"numberOfPages" validate:"omitempty,gte=1,lte=10000"`
	Authors       []string `json:"authors"`
}

// BorrowBookRequest is the body of POST /api/books/{id}/borrow.
type BorrowBookRequest struct {
	Borrower string `json:"borrower" validate:"required"`
}

type HTTPHandler struct {
	collection *Collection
}

func NewHTTPHandler(collection *Collection) *HTTPHandler {
	return &HTTPHandler{collection: collection}
}

// Add handles POST /api/books
func (h *HTTPHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON", nil)
		return
	}

	if details := validateStruct(req); details != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid book data", details)
		return
	}

	data, details := buildBookData(req)
	if details != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid book data", details)
		return
	}

	created, err := h.collection.Add(r.Context(), data)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, ToRepresentation(created, httpx.IsCurator(r)))
}

// GetByID handles GET /api/books/{id}
func (h *HTTPHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(w, r)
	if !ok {
		return
	}

	b, err := h.collection.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book does not exist", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, ToRepresentation(b, httpx.IsCurator(r)))
}

// Borrow handles POST /api/books/{id}/borrow
func (h *HTTPHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(w, r)
	if !ok {
		return
	}

	var req BorrowBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON", nil)
		return
	}
	if details := validateStruct(req); details != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid borrow request", details)
		return
	}

	updated, err := h.collection.Borrow(r.Context(), id, Borrower(req.Borrower))
	if err != nil {
		h.writeUpdateError(w, err, "Book is not available")
		return
	}
	httpx.JSON(w, http.StatusOK, ToRepresentation(updated, httpx.IsCurator(r)))
}

// Return handles POST /api/books/{id}/return
func (h *HTTPHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(w, r)
	if !ok {
		return
	}

	updated, err := h.collection.Return(r.Context(), id)
	if err != nil {
		h.writeUpdateError(w, err, "Book is not borrowed")
		return
	}
	httpx.JSON(w, http.StatusOK, ToRepresentation(updated, httpx.IsCurator(r)))
}

// Delete handles DELETE /api/books/{id} and always answers 204, whether or
// not a book existed.
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(w, r)
	if !ok {
		return
	}

	if err := h.collection.Delete(r.Context(), id); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HTTPHandler) writeUpdateError(w http.ResponseWriter, err error, conflictMessage string) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book does not exist", nil)
	case errors.Is(err, ErrUpdateConflict):
		httpx.JSONError(w, http.StatusConflict, "UPDATE_CONFLICT", conflictMessage, nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

func bookID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_ID", "Book id must be a UUID", nil)
		return uuid.Nil, false
	}
	return id, true
}

func buildBookData(req AddBookRequest) (BookData, []httpx.ErrorDetail) {
	var details []httpx.ErrorDetail

	isbn, err := NewISBN(req.ISBN)
	if err != nil {
		details = append(details, httpx.ErrorDetail{Field: "isbn", Message: err.Error()})
	}
	title, err := NewTitle(req.Title)
	if err != nil {
		details = append(details, httpx.ErrorDetail{Field: "title", Message: err.Error()})
	}

	var pages *NumberOfPages
	if req.NumberOfPages != nil {
		p, err := NewNumberOfPages(*req.NumberOfPages)
		if err != nil {
			details = append(details, httpx.ErrorDetail{Field: "numberOfPages", Message: err.Error()})
		} else {
			pages = &p
		}
	}

	if details != nil {
		return BookData{}, details
	}

	authors := make([]Author, 0, len(req.Authors))
	for _, a := range req.Authors {
		authors = append(authors, Author(a))
	}

	return BookData{
		ISBN:          isbn,
		Title:         title,
		NumberOfPages: pages,
		Authors:       NormalizeAuthors(authors),
	}, nil
}
