package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/example/storefront/pkg/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory store fakes backing the service tests. The transaction fake
// snapshots state and restores it on failure, mirroring an aborted
// multi-document transaction.

type fakeProductStore struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]models.Product
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: make(map[primitive.ObjectID]models.Product)}
}

func (s *fakeProductStore) add(p models.Product) primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.products[p.ID] = p
	return p.ID
}

func (s *fakeProductStore) List(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Product{}
	for _, p := range s.products {
		if filter.Category != "" && filter.Category != "All" && p.Category != filter.Category {
			continue
		}
		if filter.MinPrice != nil && p.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) &&
			!strings.Contains(strings.ToLower(p.Description), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, p)
	}

	switch filter.Sort {
	case "price-asc":
		sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case "price-desc":
		sort.Slice(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case "name":
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}
	return out, nil
}

func (s *fakeProductStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product", ErrNotFound)
	}
	clone := p
	clone.Reviews = append([]models.Review(nil), p.Reviews...)
	return &clone, nil
}

func (s *fakeProductStore) Categories(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, p := range s.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *fakeProductStore) SetReviews(ctx context.Context, id primitive.ObjectID, reviews []models.Review, rating float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return fmt.Errorf("%w: product", ErrNotFound)
	}
	p.Reviews = reviews
	p.Rating = rating
	s.products[id] = p
	return nil
}

func (s *fakeProductStore) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return fmt.Errorf("%w: product", ErrNotFound)
	}
	if p.Stock < qty {
		return ErrInsufficientStock
	}
	p.Stock -= qty
	s.products[id] = p
	return nil
}

func (s *fakeProductStore) snapshot() map[primitive.ObjectID]models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make(map[primitive.ObjectID]models.Product, len(s.products))
	for k, v := range s.products {
		copied[k] = v
	}
	return copied
}

func (s *fakeProductStore) restore(snap map[primitive.ObjectID]models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap
}

type fakeCartStore struct {
	mu       sync.Mutex
	items    []models.CartItem
	products *fakeProductStore
}

func newFakeCartStore(products *fakeProductStore) *fakeCartStore {
	return &fakeCartStore{products: products}
}

func (s *fakeCartStore) ListResolved(ctx context.Context, userID primitive.ObjectID) ([]models.ResolvedCartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.ResolvedCartItem{}
	for _, item := range s.items {
		if item.UserID != userID {
			continue
		}
		product, err := s.products.Get(ctx, item.ProductID)
		if err != nil {
			continue
		}
		out = append(out, models.ResolvedCartItem{CartItem: item, Product: *product})
	}
	return out, nil
}

func (s *fakeCartStore) Upsert(ctx context.Context, userID, productID primitive.ObjectID, qty int32) (*models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].UserID == userID && s.items[i].ProductID == productID {
			s.items[i].Quantity += qty
			item := s.items[i]
			return &item, nil
		}
	}

	item := models.CartItem{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  qty,
	}
	s.items = append(s.items, item)
	return &item, nil
}

func (s *fakeCartStore) UpdateQuantity(ctx context.Context, userID, itemID primitive.ObjectID, qty int32) (*models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == itemID && s.items[i].UserID == userID {
			s.items[i].Quantity = qty
			item := s.items[i]
			return &item, nil
		}
	}
	return nil, fmt.Errorf("%w: cart item", ErrNotFound)
}

func (s *fakeCartStore) Delete(ctx context.Context, userID, itemID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == itemID && s.items[i].UserID == userID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: cart item", ErrNotFound)
}

func (s *fakeCartStore) Clear(ctx context.Context, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, item := range s.items {
		if item.UserID != userID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	return nil
}

func (s *fakeCartStore) count(userID primitive.ObjectID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, item := range s.items {
		if item.UserID == userID {
			n++
		}
	}
	return n
}

func (s *fakeCartStore) snapshot() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CartItem(nil), s.items...)
}

func (s *fakeCartStore) restore(snap []models.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = snap
}

type fakeOrderStore struct {
	mu        sync.Mutex
	orders    []models.Order
	insertErr error
}

func (s *fakeOrderStore) Insert(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.insertErr != nil {
		return s.insertErr
	}
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	s.orders = append(s.orders, *order)
	return nil
}

func (s *fakeOrderStore) Get(ctx context.Context, userID, orderID primitive.ObjectID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.orders {
		if o.ID == orderID && o.UserID == userID {
			clone := o
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("%w: order", ErrNotFound)
}

func (s *fakeOrderStore) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Order{}
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return out, nil
}

func (s *fakeOrderStore) snapshot() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Order(nil), s.orders...)
}

func (s *fakeOrderStore) restore(snap []models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = snap
}

// fakeTx restores all stores to their pre-transaction state when fn fails.
type fakeTx struct {
	products *fakeProductStore
	carts    *fakeCartStore
	orders   *fakeOrderStore
}

func (t *fakeTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	productSnap := t.products.snapshot()
	cartSnap := t.carts.snapshot()
	orderSnap := t.orders.snapshot()

	if err := fn(ctx); err != nil {
		t.products.restore(productSnap)
		t.carts.restore(cartSnap)
		t.orders.restore(orderSnap)
		return err
	}
	return nil
}

type fakeLocker struct {
	mu   sync.Mutex
	held map[string]string
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: make(map[string]string)}
}

func (l *fakeLocker) Lock(ctx context.Context, userID string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[userID]; ok {
		return "", fmt.Errorf("%w: order submission already in progress", ErrConflict)
	}
	token := fmt.Sprintf("token-%s", userID)
	l.held[userID] = token
	return token, nil
}

func (l *fakeLocker) Unlock(ctx context.Context, userID, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[userID] == token {
		delete(l.held, userID)
	}
	return nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	placed []*models.Order
}

func (n *fakeNotifier) OrderPlaced(order *models.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.placed = append(n.placed, order)
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]models.User)}
}

func (s *fakeUserStore) Insert(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return fmt.Errorf("%w: email already registered", ErrConflict)
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.ID] = *user
	return nil
}

func (s *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			clone := u
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("%w: user", ErrNotFound)
}

func (s *fakeUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}
	clone := u
	return &clone, nil
}

func (s *fakeUserStore) Update(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return fmt.Errorf("%w: user", ErrNotFound)
	}
	s.users[user.ID] = *user
	return nil
}
