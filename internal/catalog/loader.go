package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fjod/coffee-shop/internal/domain"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"
)

const maxDocumentSize = 10 << 20 // 10MB

// Loader fetches the menu document once. Concurrent callers share a single
// fetch; a failed fetch is not remembered so a later call may retry.
type Loader struct {
	source string
	client *http.Client
	sfg    singleflight.Group

	mu   sync.RWMutex
	menu domain.Menu
}

// NewLoader accepts a file path or an http(s) URL.
func NewLoader(source string) *Loader {
	return &Loader{
		source: source,
		client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Load returns the menu. On any failure it returns an empty menu for every
// known category together with the error, so the caller can log and go on.
func (l *Loader) Load(ctx context.Context) (domain.Menu, error) {
	l.mu.RLock()
	menu := l.menu
	l.mu.RUnlock()
	if menu != nil {
		return menu, nil
	}

	v, err, _ := l.sfg.Do(l.source, func() (interface{}, error) {
		l.mu.RLock()
		cached := l.menu
		l.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		data, err := l.read(ctx)
		if err != nil {
			return nil, err
		}
		menu, err := Parse(data)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.menu = menu
		l.mu.Unlock()
		return menu, nil
	})
	if err != nil {
		return domain.EmptyMenu(), fmt.Errorf("load menu from %s: %w", l.source, err)
	}
	return v.(domain.Menu), nil
}

func (l *Loader) read(ctx context.Context) ([]byte, error) {
	if !strings.HasPrefix(l.source, "http://") && !strings.HasPrefix(l.source, "https://") {
		return os.ReadFile(l.source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
}

// Parse decodes a menu document. Every known category is present in the
// result even when the document omits it.
func Parse(data []byte) (domain.Menu, error) {
	var doc map[domain.Category][]domain.Item
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse menu: %w", err)
	}

	menu := domain.EmptyMenu()
	for category, items := range doc {
		if items == nil {
			items = []domain.Item{}
		}
		menu[category] = items
	}
	return menu, nil
}
