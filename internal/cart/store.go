package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/experium/bookingapi/internal/domain"
)

// Listener is notified with a session snapshot after every mutation
type Listener func(domain.CartSession)

// Store holds the single shared cart session. Created once at startup,
// torn down never, reset via Clear. Mutations are serialized; every
// change to the item list is written through to the snapshot store.
type Store struct {
	mu        sync.Mutex
	session   domain.CartSession
	snapshots Snapshots
	logger    *zap.Logger
	listeners []Listener
}

// NewStore creates the store and restores the persisted item list,
// falling back to an empty cart on absence or parse failure
func NewStore(ctx context.Context, snapshots Snapshots, logger *zap.Logger) *Store {
	s := &Store{
		session:   domain.NewCartSession(),
		snapshots: snapshots,
		logger:    logger,
	}

	items, err := snapshots.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoSnapshot) {
			logger.Warn("Failed to restore cart snapshot, starting empty", zap.Error(err))
		}
		return s
	}
	if items != nil {
		s.session.Items = items
	}
	return s
}

// Subscribe registers a listener for session changes
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Session returns a copy of the current session
func (s *Store) Session() domain.CartSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySession(s.session)
}

// AddItem appends a new entry with quantity 1 and the given services.
// Each add creates a distinct entry; entries are never merged, even
// for the same experience. Returns the generated entry ID.
func (s *Store) AddItem(ctx context.Context, item domain.CartItem, services []domain.ServiceLine) string {
	s.mu.Lock()
	entry := item
	entry.ID = uuid.NewString()
	entry.Quantity = 1
	entry.IsGift = false
	entry.Services = append([]domain.ServiceLine(nil), services...)
	s.session.Items = append(s.session.Items, entry)
	snap := copySession(s.session)
	s.mu.Unlock()

	s.persist(ctx, snap.Items)
	s.notify(snap)
	return entry.ID
}

// RemoveItem deletes the entry with the given ID; a miss is a no-op
func (s *Store) RemoveItem(ctx context.Context, id string) {
	s.mu.Lock()
	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.session.Items = append(s.session.Items[:idx], s.session.Items[idx+1:]...)
	snap := copySession(s.session)
	s.mu.Unlock()

	s.persist(ctx, snap.Items)
	s.notify(snap)
}

// UpdateQuantity replaces the quantity of the matching entry.
// Quantities below 1 and unknown IDs are no-ops.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) {
	if quantity < 1 {
		return
	}
	s.mu.Lock()
	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.session.Items[idx].Quantity = quantity
	snap := copySession(s.session)
	s.mu.Unlock()

	s.persist(ctx, snap.Items)
	s.notify(snap)
}

// ToggleGift sets the gift flag on the matching entry
func (s *Store) ToggleGift(ctx context.Context, id string, isGift bool) {
	s.mu.Lock()
	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.session.Items[idx].IsGift = isGift
	snap := copySession(s.session)
	s.mu.Unlock()

	s.persist(ctx, snap.Items)
	s.notify(snap)
}

// SetDeliveryType selects physical or digital delivery; other values
// are ignored. Not persisted, session-transient.
func (s *Store) SetDeliveryType(dt domain.DeliveryType) {
	if !dt.IsValid() {
		return
	}
	s.mu.Lock()
	s.session.DeliveryType = dt
	snap := copySession(s.session)
	s.mu.Unlock()
	s.notify(snap)
}

// SetPersonalDetails replaces the buyer contact details
func (s *Store) SetPersonalDetails(details domain.PersonalDetails) {
	s.mu.Lock()
	s.session.PersonalDetails = details
	snap := copySession(s.session)
	s.mu.Unlock()
	s.notify(snap)
}

// SetDeliveryAddress replaces the delivery address
func (s *Store) SetDeliveryAddress(addr domain.DeliveryAddress) {
	s.mu.Lock()
	s.session.DeliveryAddress = addr
	snap := copySession(s.session)
	s.mu.Unlock()
	s.notify(snap)
}

// SetCheckoutStep moves the checkout wizard; negative steps are ignored
func (s *Store) SetCheckoutStep(step int) {
	if step < 0 {
		return
	}
	s.mu.Lock()
	s.session.CheckoutStep = step
	snap := copySession(s.session)
	s.mu.Unlock()
	s.notify(snap)
}

// Clear resets every session field to its initial default atomically
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.session = domain.NewCartSession()
	snap := copySession(s.session)
	s.mu.Unlock()

	s.persist(ctx, snap.Items)
	s.notify(snap)
}

// TotalItems is the sum of quantities across entries
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.session.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal sums item prices times quantities plus service lines
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return subtotal(s.session.Items)
}

// TotalWithVAT equals the subtotal; prices are already tax-inclusive
func (s *Store) TotalWithVAT() float64 {
	return s.Subtotal()
}

func subtotal(items []domain.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
		for _, svc := range item.Services {
			total += svc.Price * float64(svc.Quantity)
		}
	}
	return total
}

func (s *Store) indexOfLocked(id string) int {
	for i, item := range s.session.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// persist writes the item list through to durable storage. Failures
// are logged and never surfaced to the caller.
func (s *Store) persist(ctx context.Context, items []domain.CartItem) {
	if err := s.snapshots.Save(ctx, items); err != nil {
		s.logger.Warn("Failed to persist cart snapshot", zap.Error(err))
	}
}

func (s *Store) notify(snap domain.CartSession) {
	s.mu.Lock()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(snap)
	}
}

func copySession(in domain.CartSession) domain.CartSession {
	out := in
	out.Items = make([]domain.CartItem, len(in.Items))
	copy(out.Items, in.Items)
	for i := range out.Items {
		out.Items[i].Services = append([]domain.ServiceLine(nil), in.Items[i].Services...)
	}
	return out
}
