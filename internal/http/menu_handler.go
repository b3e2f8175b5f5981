package http

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/fjod/coffee-shop/internal/catalog"
	"github.com/fjod/coffee-shop/internal/domain"
	"github.com/go-chi/chi/v5"
)

type MenuReader interface {
	FindItem(id int64) (domain.Item, bool)
	ByCategory(category string) []domain.Item
	Search(query string) []domain.Item
}

type MenuHandler struct {
	menu MenuReader
}

func NewMenuHandler(menu MenuReader) *MenuHandler {
	return &MenuHandler{menu: menu}
}

type MenuResponse struct {
	Items []domain.Item `json:"items"`
	Count int           `json:"count"`
}

type ItemResponse struct {
	domain.Item
	OptionLabels map[string]string `json:"optionLabels,omitempty"`
}

// GET /api/v1/menu?category=&q=&min_price=&max_price=&sort=
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	lo, err := parsePrice(query.Get("min_price"), 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "min_price must be a non-negative integer")
		return
	}
	hi, err := parsePrice(query.Get("max_price"), math.MaxInt64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "max_price must be a non-negative integer")
		return
	}

	category := query.Get("category")
	var items []domain.Item
	if q := strings.TrimSpace(query.Get("q")); q != "" {
		items = h.menu.Search(q)
		if category != "" && category != catalog.CategoryAll {
			items = filterCategory(items, domain.Category(category))
		}
	} else {
		items = h.menu.ByCategory(category)
	}

	items = catalog.FilterByPrice(items, lo, hi)
	items = catalog.Sort(items, query.Get("sort"))
	if items == nil {
		items = []domain.Item{}
	}

	respondJSON(w, http.StatusOK, MenuResponse{Items: items, Count: len(items)})
}

// GET /api/v1/menu/{id}
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_request", "id must be a positive integer")
		return
	}

	item, ok := h.menu.FindItem(id)
	if !ok {
		respondError(w, http.StatusNotFound, "catalog_miss", "item not found in catalog")
		return
	}

	labels := make(map[string]string, len(item.Options))
	for _, group := range item.Options {
		labels[group.Key] = catalog.OptionLabel(group.Key)
	}
	respondJSON(w, http.StatusOK, ItemResponse{Item: item, OptionLabels: labels})
}

func parsePrice(raw string, fallback domain.Amount) (domain.Amount, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, strconv.ErrSyntax
	}
	return domain.Amount(v), nil
}

func filterCategory(items []domain.Item, category domain.Category) []domain.Item {
	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}
