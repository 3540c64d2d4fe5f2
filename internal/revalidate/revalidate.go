// Package revalidate tracks a version per list view. Mutations bump the
// version of the views they affect; list endpoints expose it as an ETag so
// clients refetch only after a change.
package revalidate

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"storefront-service/pkg/metrics"
)

// View names a cached list
type View string

const (
	ViewOrders     View = "orders"
	ViewProducts   View = "products"
	ViewCategories View = "categories"
	ViewBanners    View = "banners"
)

// Registry holds the current version of every view. Versions restart at zero
// with the process, so tags also carry the registry's creation epoch.
type Registry struct {
	mu        sync.RWMutex
	epoch     string
	versions  map[View]uint64
	listeners []func(View)
}

func New() *Registry {
	return &Registry{
		epoch:    strconv.FormatInt(time.Now().UnixNano(), 36),
		versions: make(map[View]uint64),
	}
}

// Subscribe registers fn to be called after each invalidation
func (r *Registry) Subscribe(fn func(View)) {
	r.mu.Lock()
	r.listeners = append(r.listeners, fn)
	r.mu.Unlock()
}

// Invalidate bumps the version of each view
func (r *Registry) Invalidate(views ...View) {
	r.mu.Lock()
	for _, v := range views {
		r.versions[v]++
	}
	listeners := append([]func(View){}, r.listeners...)
	r.mu.Unlock()

	for _, v := range views {
		metrics.ViewInvalidationsCounter.WithLabelValues(string(v)).Inc()
		for _, fn := range listeners {
			fn(v)
		}
	}
}

func (r *Registry) Version(v View) uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.versions[v]
}

// ETag returns a weak entity tag for the view's current version
func (r *Registry) ETag(v View) string {
	return fmt.Sprintf(`W/"%s-%s.%d"`, v, r.epoch, r.Version(v))
}
