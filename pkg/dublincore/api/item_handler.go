package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/tendant/simple-dublincore/pkg/dublincore"
)

// ItemHandler handles HTTP requests for items, site options and their
// Dublin Core tags.
type ItemHandler struct {
	service dublincore.Service
	auth    *jwtauth.JWTAuth
}

// NewItemHandler creates a new item handler. When auth is nil the write
// routes are left unauthenticated.
func NewItemHandler(service dublincore.Service, auth *jwtauth.JWTAuth) *ItemHandler {
	return &ItemHandler{
		service: service,
		auth:    auth,
	}
}

// NewJWTAuth returns an HS256 verifier for secret, or nil when secret is empty.
func NewJWTAuth(secret string) *jwtauth.JWTAuth {
	if secret == "" {
		return nil
	}
	return jwtauth.New("HS256", []byte(secret), nil)
}

// Routes returns the routes for items and options
func (h *ItemHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/items/{id}", h.GetItem)
	r.Get("/items/{id}/attachments", h.ListAttachments)
	r.Get("/items/{id}/dublin-core", h.GetDublinCore)
	r.Get("/options", h.GetOptions)

	r.Group(func(r chi.Router) {
		if h.auth != nil {
			r.Use(jwtauth.Verifier(h.auth))
			r.Use(jwtauth.Authenticator)
		}
		r.Post("/items", h.CreateItem)
		r.Put("/items/{id}", h.UpdateItem)
		r.Delete("/items/{id}", h.DeleteItem)
		r.Put("/options", h.SetOptions)
	})

	return r
}

// CreateItemRequest is the request body for creating an item
type CreateItemRequest struct {
	Kind        string            `json:"kind"`
	Title       string            `json:"title"`
	Slug        string            `json:"slug"`
	Permalink   string            `json:"permalink"`
	Author      dublincore.Author `json:"author"`
	Description string            `json:"description"`
	Excerpt     string            `json:"excerpt"`
	Body        string            `json:"body"`
	Keywords    string            `json:"keywords"`
	Categories  []string          `json:"categories"`
	Tags        []string          `json:"tags"`
	MimeType    string            `json:"mime_type"`
	ParentID    string            `json:"parent_id"`
	PublishedAt *time.Time        `json:"published_at"`
}

// UpdateItemRequest is the request body for updating an item.
// Omitted fields are left unchanged.
type UpdateItemRequest struct {
	Title       *string            `json:"title"`
	Slug        *string            `json:"slug"`
	Permalink   *string            `json:"permalink"`
	Author      *dublincore.Author `json:"author"`
	Description *string            `json:"description"`
	Excerpt     *string            `json:"excerpt"`
	Body        *string            `json:"body"`
	Keywords    *string            `json:"keywords"`
	Categories  []string           `json:"categories"`
	Tags        []string           `json:"tags"`
	MimeType    *string            `json:"mime_type"`
}

// DublinCoreResponse is the response body for the tags of an item
type DublinCoreResponse struct {
	ItemID string           `json:"item_id"`
	Tags   []dublincore.Tag `json:"tags"`
	HTML   string           `json:"html"`
}

// CreateItem creates a new item
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	createReq := dublincore.CreateItemRequest{
		Kind:        dublincore.ItemKind(req.Kind),
		Title:       req.Title,
		Slug:        req.Slug,
		Permalink:   req.Permalink,
		Author:      req.Author,
		Description: req.Description,
		Excerpt:     req.Excerpt,
		Body:        req.Body,
		Keywords:    req.Keywords,
		Categories:  req.Categories,
		Tags:        req.Tags,
		MimeType:    req.MimeType,
	}
	if req.ParentID != "" {
		parentID, err := uuid.Parse(req.ParentID)
		if err != nil {
			slog.Error("Invalid parent ID", "parent_id", req.ParentID, "error", err)
			http.Error(w, "Invalid parent ID", http.StatusBadRequest)
			return
		}
		createReq.ParentID = &parentID
	}
	if req.PublishedAt != nil {
		createReq.PublishedAt = *req.PublishedAt
	}

	item, err := h.service.CreateItem(r.Context(), createReq)
	if err != nil {
		h.writeError(w, r, "Failed to create item", err)
		return
	}

	slog.Info("Item created", "item_id", item.ID.String(), "kind", item.Kind, "subject", subject(r))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, item)
}

// GetItem returns an item by ID
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	item, err := h.service.GetItem(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "Failed to get item", err)
		return
	}
	render.JSON(w, r, item)
}

// UpdateItem applies a partial update to an item
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.service.UpdateItem(r.Context(), dublincore.UpdateItemRequest{
		ID:          id,
		Title:       req.Title,
		Slug:        req.Slug,
		Permalink:   req.Permalink,
		Author:      req.Author,
		Description: req.Description,
		Excerpt:     req.Excerpt,
		Body:        req.Body,
		Keywords:    req.Keywords,
		Categories:  req.Categories,
		Tags:        req.Tags,
		MimeType:    req.MimeType,
	})
	if err != nil {
		h.writeError(w, r, "Failed to update item", err)
		return
	}

	slog.Info("Item updated", "item_id", item.ID.String(), "subject", subject(r))
	render.JSON(w, r, item)
}

// DeleteItem soft-deletes an item
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteItem(r.Context(), id); err != nil {
		h.writeError(w, r, "Failed to delete item", err)
		return
	}

	slog.Info("Item deleted", "item_id", id.String(), "subject", subject(r))
	w.WriteHeader(http.StatusNoContent)
}

// ListAttachments returns the attachments of an item
func (h *ItemHandler) ListAttachments(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	if _, err := h.service.GetItem(r.Context(), id); err != nil {
		h.writeError(w, r, "Failed to get item", err)
		return
	}

	items, err := h.service.ListAttachments(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "Failed to list attachments", err)
		return
	}
	if items == nil {
		items = []*dublincore.Item{}
	}
	render.JSON(w, r, items)
}

// GetOptions returns the site-wide Dublin Core options
func (h *ItemHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.GetOptions(r.Context())
	if err != nil {
		h.writeError(w, r, "Failed to get options", err)
		return
	}
	render.JSON(w, r, opts)
}

// SetOptions replaces the site-wide Dublin Core options
func (h *ItemHandler) SetOptions(w http.ResponseWriter, r *http.Request) {
	var opts dublincore.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.SetOptions(r.Context(), opts); err != nil {
		h.writeError(w, r, "Failed to set options", err)
		return
	}

	slog.Info("Options updated", "auto_dublin_core", opts.AutoDublinCore, "subject", subject(r))
	render.JSON(w, r, opts)
}

// GetDublinCore returns the Dublin Core tags of an item.
//
// Query parameters: singular (default true), front_page (default false) and
// page. Clients accepting text/html receive the rendered meta tags instead of
// JSON.
func (h *ItemHandler) GetDublinCore(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	view, err := parseView(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tags, err := h.service.HeadTags(r.Context(), id, view)
	if err != nil {
		h.writeError(w, r, "Failed to build dublin core tags", err)
		return
	}

	head := dublincore.RenderHead(tags)
	if render.GetAcceptedContentType(r) == render.ContentTypeHTML {
		render.HTML(w, r, head)
		return
	}

	if tags == nil {
		tags = []dublincore.Tag{}
	}
	render.JSON(w, r, DublinCoreResponse{
		ItemID: id.String(),
		Tags:   tags,
		HTML:   head,
	})
}

func parseView(r *http.Request) (dublincore.View, error) {
	view := dublincore.SingleView()
	q := r.URL.Query()

	if v := q.Get("singular"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return view, errors.New("invalid singular parameter")
		}
		view.Singular = b
	}
	if v := q.Get("front_page"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return view, errors.New("invalid front_page parameter")
		}
		view.FrontPage = b
	}
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return view, errors.New("invalid page parameter")
		}
		view.Page = n
	}
	return view, nil
}

func itemID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		slog.Error("Invalid item ID", "item_id", raw, "error", err)
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps service errors to HTTP status codes.
func (h *ItemHandler) writeError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, dublincore.ErrItemNotFound):
		status = http.StatusNotFound
	case errors.Is(err, dublincore.ErrInvalidItem),
		errors.Is(err, dublincore.ErrInvalidParent),
		errors.Is(err, dublincore.ErrInvalidOptions):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), msg, "error", err)
	} else {
		slog.WarnContext(r.Context(), msg, "status", status, "error", err)
	}
	http.Error(w, err.Error(), status)
}

// subject returns the JWT subject of an authenticated request, if any.
func subject(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil || claims == nil {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}
