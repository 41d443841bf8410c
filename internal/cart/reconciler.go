// Package cart owns the in-memory cart for the current session. Depending
// on the session identity it reconciles against the local guest store or the
// backend, and broadcasts every accepted change to subscribers.
package cart

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/greenbasket/storefront/internal/domain"
)

// Gateway is the backend cart contract. Every mutation is followed by a
// refetch because the server is the single source of truth once
// authenticated; optimistic local deltas are never trusted.
type Gateway interface {
	FetchCart(ctx context.Context) (domain.CartSnapshot, error)
	AddItem(ctx context.Context, productID int64, quantity int) error
	RemoveItem(ctx context.Context, lineID int64) error
	SetQuantity(ctx context.Context, lineID int64, quantity int) error
	ClearCart(ctx context.Context) error
}

// GuestStore persists the anonymous cart between sessions.
type GuestStore interface {
	Load() domain.CartSnapshot
	Save(domain.CartSnapshot)
}

type Listener func(domain.CartSnapshot)

// Reconciler holds the authoritative snapshot for the session. The mutex
// guards its fields only and is never held across gateway calls, so
// overlapping mutate-then-refetch sequences are not serialised: the last
// refetch to complete wins, matching the documented backend contract.
type Reconciler struct {
	gateway Gateway
	store   GuestStore
	logger  *zap.Logger

	mu        sync.Mutex
	identity  domain.Identity
	snapshot  domain.CartSnapshot
	listeners map[int]Listener
	nextSub   int
}

// NewReconciler starts anonymous and seeds the snapshot from the guest
// store.
func NewReconciler(gateway Gateway, store GuestStore, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		gateway:   gateway,
		store:     store,
		logger:    logger,
		snapshot:  store.Load(),
		listeners: make(map[int]Listener),
	}
}

func (r *Reconciler) CurrentSnapshot() domain.CartSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot.Clone()
}

func (r *Reconciler) Identity() domain.Identity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.identity
}

// Subscribe registers a listener for snapshot changes and returns its
// unsubscribe function. Listeners receive a defensive copy.
func (r *Reconciler) Subscribe(fn Listener) func() {
	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.listeners[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}

// SetIdentity handles sign-in and sign-out transitions.
//
// Sign-in discards the guest snapshot and replaces it with a server fetch;
// guest items are not merged into the server cart. Sign-out clears the
// in-memory cart to empty and does not restore any prior guest snapshot.
func (r *Reconciler) SetIdentity(ctx context.Context, identity domain.Identity) error {
	r.mu.Lock()
	previous := r.identity
	r.identity = identity
	r.mu.Unlock()

	switch {
	case identity.IsAuthenticated():
		r.setSnapshot(domain.CartSnapshot{})
		return r.refetch(ctx)
	case previous.IsAuthenticated():
		r.setSnapshot(domain.CartSnapshot{})
	}
	return nil
}

// AddToCart adds one unit of the product. Guest carts merge by product id:
// an existing line gains quantity 1, otherwise a new line is appended with
// the product id doubling as the line id.
func (r *Reconciler) AddToCart(ctx context.Context, product domain.Product) error {
	if r.Identity().IsAuthenticated() {
		if err := r.gateway.AddItem(ctx, product.ID, 1); err != nil {
			return err
		}
		return r.refetch(ctx)
	}

	r.applyGuest(func(lines []domain.CartLine) []domain.CartLine {
		for i := range lines {
			if lines[i].ProductID == product.ID {
				lines[i].Quantity++
				return lines
			}
		}
		return append(lines, domain.CartLine{
			LineID:    product.ID,
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  1,
			ImageRef:  product.ImageURL,
		})
	})
	return nil
}

func (r *Reconciler) RemoveFromCart(ctx context.Context, lineID int64) error {
	if r.Identity().IsAuthenticated() {
		if err := r.gateway.RemoveItem(ctx, lineID); err != nil {
			return err
		}
		return r.refetch(ctx)
	}

	r.applyGuest(func(lines []domain.CartLine) []domain.CartLine {
		kept := lines[:0]
		for _, l := range lines {
			if l.LineID != lineID {
				kept = append(kept, l)
			}
		}
		return kept
	})
	return nil
}

// UpdateQuantity replaces a line's quantity. Quantities below 1 are ignored
// outright: lines are removed through RemoveFromCart, never by zeroing.
func (r *Reconciler) UpdateQuantity(ctx context.Context, lineID int64, quantity int) error {
	if quantity < 1 {
		return nil
	}

	if r.Identity().IsAuthenticated() {
		if err := r.gateway.SetQuantity(ctx, lineID, quantity); err != nil {
			return err
		}
		return r.refetch(ctx)
	}

	r.applyGuest(func(lines []domain.CartLine) []domain.CartLine {
		for i := range lines {
			if lines[i].LineID == lineID {
				lines[i].Quantity = quantity
				break
			}
		}
		return lines
	})
	return nil
}

func (r *Reconciler) ClearCart(ctx context.Context) error {
	if r.Identity().IsAuthenticated() {
		if err := r.gateway.ClearCart(ctx); err != nil {
			return err
		}
		return r.refetch(ctx)
	}

	r.applyGuest(func([]domain.CartLine) []domain.CartLine {
		return nil
	})
	return nil
}

// refetch resynchronises from the server after a successful mutation. On
// fetch failure the last-known-good snapshot stays in place; the snapshot is
// never left partially applied.
func (r *Reconciler) refetch(ctx context.Context) error {
	snap, err := r.gateway.FetchCart(ctx)
	if err != nil {
		r.logger.Warn("cart refetch failed, keeping last known snapshot", zap.Error(err))
		return err
	}
	r.setSnapshot(snap)
	return nil
}

// applyGuest runs a pure mutation against a copy of the current lines,
// installs the result, persists it and notifies subscribers.
func (r *Reconciler) applyGuest(mutate func([]domain.CartLine) []domain.CartLine) {
	r.mu.Lock()
	snap := domain.CartSnapshot{Lines: mutate(r.snapshot.Clone().Lines)}
	r.snapshot = snap
	listeners := r.listenerList()
	r.mu.Unlock()

	r.store.Save(snap)
	broadcast(listeners, snap)
}

func (r *Reconciler) setSnapshot(snap domain.CartSnapshot) {
	r.mu.Lock()
	r.snapshot = snap
	listeners := r.listenerList()
	r.mu.Unlock()

	broadcast(listeners, snap)
}

func (r *Reconciler) listenerList() []Listener {
	listeners := make([]Listener, 0, len(r.listeners))
	for _, fn := range r.listeners {
		listeners = append(listeners, fn)
	}
	return listeners
}

func broadcast(listeners []Listener, snap domain.CartSnapshot) {
	for _, fn := range listeners {
		fn(snap.Clone())
	}
}
