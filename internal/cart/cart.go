// Package cart keeps the shopper's cart in a signed cookie session.
package cart

import (
	"encoding/gob"
	"math"
	"net/http"
	"sort"
	"storefront-service/internal/model"
	"storefront-service/internal/service"

	"github.com/gorilla/sessions"
	"github.com/shopspring/decimal"
)

const (
	SessionName = "storefront-cart"
	itemsKey    = "items"
	maxAge      = 7 * 24 * 60 * 60
)

func init() {
	gob.Register(map[uint]int{})
}

// Store loads and saves carts from the request cookies
type Store struct {
	sessions *sessions.CookieStore
}

func NewStore(key []byte, secure bool) *Store {
	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{sessions: store}
}

// Load returns the cart of the request. A missing or tampered cookie yields
// an empty cart.
func (s *Store) Load(r *http.Request) *Cart {
	// Get always returns a usable session, even when decoding fails
	session, _ := s.sessions.Get(r, SessionName)
	items, ok := session.Values[itemsKey].(map[uint]int)
	if !ok {
		items = make(map[uint]int)
	}
	return &Cart{session: session, items: items}
}

// Cart maps product ids to quantities
type Cart struct {
	session *sessions.Session
	items   map[uint]int
}

// Save writes the cart cookie to the response
func (c *Cart) Save(r *http.Request, w http.ResponseWriter) error {
	c.session.Values[itemsKey] = c.items
	return c.session.Save(r, w)
}

func (c *Cart) Quantity(productID uint) int {
	return c.items[productID]
}

// Add increases the quantity of a product. It refuses non-positive amounts
// and totals that would overflow.
func (c *Cart) Add(productID uint, quantity int) bool {
	current := c.items[productID]
	if quantity <= 0 || current > math.MaxInt-quantity {
		return false
	}
	c.items[productID] = current + quantity
	return true
}

// Set replaces the quantity of a product; zero or less removes it
func (c *Cart) Set(productID uint, quantity int) {
	if quantity <= 0 {
		delete(c.items, productID)
		return
	}
	c.items[productID] = quantity
}

func (c *Cart) Remove(productID uint) {
	delete(c.items, productID)
}

func (c *Cart) Clear() {
	c.items = make(map[uint]int)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Count is the number of units in the cart
func (c *Cart) Count() int {
	n := 0
	for _, q := range c.items {
		n += q
	}
	return n
}

// ProductIDs returns the ids in the cart in ascending order
func (c *Cart) ProductIDs() []uint {
	ids := make([]uint, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// LineItems converts the cart into order line items
func (c *Cart) LineItems() []service.LineItemInput {
	out := make([]service.LineItemInput, 0, len(c.items))
	for _, id := range c.ProductIDs() {
		out = append(out, service.LineItemInput{ProductID: id, Quantity: c.items[id]})
	}
	return out
}

// Line is one cart entry priced at the current product price
type Line struct {
	Product  model.Product   `json:"produto"`
	Quantity int             `json:"quantidade"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Summary is the priced view of a cart
type Summary struct {
	Lines []Line          `json:"itens"`
	Count int             `json:"quantidadeTotal"`
	Total decimal.Decimal `json:"total"`
}

// Price builds the summary from current product data. Products no longer in
// the catalog are dropped from the cart and reported as removed.
func (c *Cart) Price(products map[uint]model.Product) (Summary, []uint) {
	summary := Summary{Lines: []Line{}, Total: decimal.Zero}
	var removed []uint
	for _, id := range c.ProductIDs() {
		p, ok := products[id]
		if !ok {
			removed = append(removed, id)
			delete(c.items, id)
			continue
		}
		qty := c.items[id]
		subtotal := p.Price.Mul(decimal.NewFromInt(int64(qty)))
		summary.Lines = append(summary.Lines, Line{Product: p, Quantity: qty, Subtotal: subtotal})
		summary.Count += qty
		summary.Total = summary.Total.Add(subtotal)
	}
	return summary, removed
}
