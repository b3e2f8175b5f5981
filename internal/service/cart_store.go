package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/fjod/coffee-shop/internal/catalog"
	"github.com/fjod/coffee-shop/internal/domain"
	"github.com/fjod/coffee-shop/internal/storage"
	"github.com/google/uuid"
)

// Catalog is the read-only menu the cart prices items from.
type Catalog interface {
	FindItem(id int64) (domain.Item, bool)
	PriceForSize(basePrice domain.Amount, size string) domain.Amount
}

// CartStore owns the cart lines and the order type. Every mutation is
// written to the store before it becomes visible in memory.
type CartStore struct {
	catalog     Catalog
	store       storage.Store
	deliveryFee domain.Amount

	mu        sync.RWMutex
	lines     []domain.CartLine
	orderType domain.OrderType
}

// NewCartStore rehydrates the cart from store. Missing or undecodable data
// falls back to an empty pickup cart; only read failures are returned.
func NewCartStore(ctx context.Context, c Catalog, store storage.Store, deliveryFee domain.Amount) (*CartStore, error) {
	s := &CartStore{
		catalog:     c,
		store:       store,
		deliveryFee: deliveryFee,
		lines:       []domain.CartLine{},
		orderType:   domain.OrderTypePickup,
	}

	lines, err := s.loadLines(ctx)
	if err != nil {
		return nil, err
	}
	s.lines = lines

	orderType, err := s.loadOrderType(ctx)
	if err != nil {
		return nil, err
	}
	s.orderType = orderType

	return s, nil
}

func (s *CartStore) loadLines(ctx context.Context) ([]domain.CartLine, error) {
	data, err := s.store.Get(ctx, storage.KeyCart)
	if errors.Is(err, storage.ErrNotFound) {
		return []domain.CartLine{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	var stored []domain.CartLine
	if errUnmarshal := json.Unmarshal(data, &stored); errUnmarshal != nil {
		slog.WarnContext(ctx, "discarding stored cart",
			"error", fmt.Errorf("%w: %v", storage.ErrCorrupt, errUnmarshal))
		return []domain.CartLine{}, nil
	}

	lines := make([]domain.CartLine, 0, len(stored))
	for _, line := range stored {
		if line.Quantity < 1 || line.ID == "" {
			slog.WarnContext(ctx, "dropping invalid stored cart line", "line_id", line.ID, "quantity", line.Quantity)
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (s *CartStore) loadOrderType(ctx context.Context) (domain.OrderType, error) {
	data, err := s.store.Get(ctx, storage.KeyOrderType)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.OrderTypePickup, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read order type: %w", err)
	}

	orderType, errParse := domain.ParseOrderType(string(data))
	if errParse != nil {
		slog.WarnContext(ctx, "discarding stored order type",
			"error", fmt.Errorf("%w: %v", storage.ErrCorrupt, errParse))
		return domain.OrderTypePickup, nil
	}
	return orderType, nil
}

// AddItem puts one unit of the catalog item with the given options into the
// cart, merging with an existing line of the same configuration. It returns
// the affected line. An unknown item leaves the cart unchanged and returns
// ErrCatalogMiss.
func (s *CartStore) AddItem(ctx context.Context, catalogID int64, options domain.Options) (domain.CartLine, error) {
	item, ok := s.catalog.FindItem(catalogID)
	if !ok {
		slog.WarnContext(ctx, "add item: not in catalog", "catalog_id", catalogID)
		return domain.CartLine{}, fmt.Errorf("%w: %d", ErrCatalogMiss, catalogID)
	}

	size, _ := options.Get("size")
	if size == "" {
		size = catalog.DefaultSize
	}
	unitPrice := s.catalog.PriceForSize(item.Price, size)

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := slices.Clone(s.lines)
	idx := slices.IndexFunc(lines, func(l domain.CartLine) bool {
		return l.Matches(catalogID, options)
	})
	if idx >= 0 {
		lines[idx].Quantity++
	} else {
		lines = append(lines, domain.CartLine{
			ID:        newLineID(),
			CatalogID: item.ID,
			Name:      item.Name,
			UnitPrice: unitPrice,
			Image:     item.Image,
			Options:   slices.Clone(options),
			Quantity:  1,
		})
		idx = len(lines) - 1
	}

	if err := s.commitLines(ctx, lines); err != nil {
		return domain.CartLine{}, err
	}
	line := lines[idx]
	line.Options = slices.Clone(line.Options)
	return line, nil
}

// RemoveLine deletes the line if present.
func (s *CartStore) RemoveLine(ctx context.Context, lineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.removeLocked(ctx, lineID)
}

func (s *CartStore) removeLocked(ctx context.Context, lineID string) error {
	idx := s.indexLocked(lineID)
	if idx < 0 {
		return nil
	}
	lines := slices.Delete(slices.Clone(s.lines), idx, idx+1)
	return s.commitLines(ctx, lines)
}

// SetQuantity changes a line's quantity; zero or less removes the line.
func (s *CartStore) SetQuantity(ctx context.Context, lineID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return s.removeLocked(ctx, lineID)
	}

	idx := s.indexLocked(lineID)
	if idx < 0 {
		return nil
	}
	lines := slices.Clone(s.lines)
	lines[idx].Quantity = quantity
	return s.commitLines(ctx, lines)
}

func (s *CartStore) SetOrderType(ctx context.Context, orderType domain.OrderType) error {
	if _, err := domain.ParseOrderType(string(orderType)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidOrderType, orderType)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(ctx, storage.KeyOrderType, []byte(orderType)); err != nil {
		slog.ErrorContext(ctx, "persist order type", "error", err)
		return fmt.Errorf("failed to save order type: %w", err)
	}
	s.orderType = orderType
	return nil
}

// Clear empties the cart. The order type is kept.
func (s *CartStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commitLines(ctx, []domain.CartLine{})
}

func (s *CartStore) Totals() domain.Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.totalsLocked()
}

func (s *CartStore) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.itemCountLocked()
}

func (s *CartStore) OrderType() domain.OrderType {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.orderType
}

// Lines returns a copy of the cart lines in insertion order.
func (s *CartStore) Lines() []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.linesLocked()
}

// View returns lines, count, order type and totals under one read lock so
// they always agree with each other.
func (s *CartStore) View() domain.CartView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.CartView{
		Lines:     s.linesLocked(),
		ItemCount: s.itemCountLocked(),
		OrderType: s.orderType,
		Totals:    s.totalsLocked(),
	}
}

func (s *CartStore) totalsLocked() domain.Totals {
	var subtotal domain.Amount
	for _, line := range s.lines {
		subtotal += line.Total()
	}

	var fee domain.Amount
	if s.orderType == domain.OrderTypeDelivery {
		fee = s.deliveryFee
	}
	return domain.Totals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Total:       subtotal + fee,
	}
}

func (s *CartStore) itemCountLocked() int {
	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

func (s *CartStore) linesLocked() []domain.CartLine {
	lines := make([]domain.CartLine, len(s.lines))
	for i, line := range s.lines {
		line.Options = slices.Clone(line.Options)
		lines[i] = line
	}
	return lines
}

// SnapshotForCheckout returns the display-ready line items.
func (s *CartStore) SnapshotForCheckout() []domain.CheckoutItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.CheckoutItem, 0, len(s.lines))
	for _, line := range s.lines {
		items = append(items, line.CheckoutItem())
	}
	return items
}

func (s *CartStore) indexLocked(lineID string) int {
	return slices.IndexFunc(s.lines, func(l domain.CartLine) bool { return l.ID == lineID })
}

// commitLines writes lines to the store and only then replaces the
// in-memory copy. Callers hold s.mu.
func (s *CartStore) commitLines(ctx context.Context, lines []domain.CartLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	if err := s.store.Set(ctx, storage.KeyCart, data); err != nil {
		slog.ErrorContext(ctx, "persist cart", "error", err)
		return fmt.Errorf("failed to save cart: %w", err)
	}
	s.lines = lines
	return nil
}

func newLineID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
