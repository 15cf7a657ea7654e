// Package api provides HTTP API handlers for the Visiosson demo.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/aviy453/visiosson/internal/store"
)

// ItemsHandler handles HTTP requests for catalog item resources. Edits apply
// to the store; running sessions keep the catalog they loaded at startup.
type ItemsHandler struct {
	store *store.Store
}

// NewItemsHandler creates a new ItemsHandler with the given store.
func NewItemsHandler(s *store.Store) *ItemsHandler {
	return &ItemsHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *ItemsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Parse the path to determine if this is a collection or item request
	// Expected paths: /api/items or /api/items/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/items")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/items
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// Item endpoint: /api/items/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type createItemRequest struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageRef string `json:"imageRef"`
	Position int    `json:"position"`
}

type itemResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageRef string `json:"imageRef"`
	Position int    `json:"position"`
}

type listItemsResponse struct {
	Items []itemResponse `json:"items"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Item to an itemResponse.
func toResponse(it *store.Item) itemResponse {
	return itemResponse{
		ID:       it.ID,
		Title:    it.Title,
		ImageRef: it.ImageRef,
		Position: it.Position,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/items and returns all items in catalog order.
func (h *ItemsHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.Items().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list items")
		return
	}

	response := listItemsResponse{Items: make([]itemResponse, 0, len(items))}
	for _, it := range items {
		response.Items = append(response.Items, toResponse(it))
	}

	writeJSON(w, http.StatusOK, response)
}

// create handles POST /api/items and inserts a new catalog item.
func (h *ItemsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	item := &store.Item{
		ID:       req.ID,
		Title:    req.Title,
		ImageRef: req.ImageRef,
		Position: req.Position,
	}

	if err := h.store.Items().Create(item); err != nil {
		writeError(w, http.StatusConflict, "Failed to create item")
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(item))
}

// get handles GET /api/items/{id} and returns a single item.
func (h *ItemsHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	item, err := h.store.Items().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get item")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(item))
}

// delete handles DELETE /api/items/{id} and removes an item.
func (h *ItemsHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Items().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
