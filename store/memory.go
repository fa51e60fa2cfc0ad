package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"shopper-backend/models"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewMemory builds a Store that keeps everything in process memory.
// It backs STORE_DRIVER=memory and the tests.
func NewMemory() *Store {
	m := &memory{
		users:  map[primitive.ObjectID]*models.User{},
		admins: map[string]*models.Admin{},
	}
	return &Store{
		Products: (*memProducts)(m),
		Users:    (*memUsers)(m),
		Admins:   (*memAdmins)(m),
		Orders:   (*memOrders)(m),
	}
}

// SeedAdmin inserts a legacy admin record into a memory store.
func SeedAdmin(s *Store, a models.Admin) {
	admins := s.Admins.(*memAdmins)
	admins.mu.Lock()
	defer admins.mu.Unlock()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	admins.admins[a.Email] = &a
}

type memory struct {
	mu       sync.Mutex
	seq      int
	products []models.Product
	users    map[primitive.ObjectID]*models.User
	admins   map[string]*models.Admin
	orders   []models.Order
}

func copyUser(u *models.User) *models.User {
	c := *u
	c.Roles = append([]string(nil), u.Roles...)
	if u.CartData != nil {
		c.CartData = make(models.CartData, len(u.CartData))
		for k, v := range u.CartData {
			c.CartData[k] = v
		}
	}
	return &c
}

func copyOrder(o *models.Order) models.Order {
	c := *o
	c.Items = append([]models.OrderItem(nil), o.Items...)
	return c
}

type memProducts memory

func (m *memProducts) NextID(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.ID > m.seq {
			m.seq = p.ID
		}
	}
	m.seq++
	return m.seq, nil
}

func (m *memProducts) Insert(ctx context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.products {
		if existing.ID == p.ID {
			return ErrDuplicate
		}
	}
	if p.Key.IsZero() {
		p.Key = primitive.NewObjectID()
	}
	m.products = append(m.products, *p)
	return nil
}

func (m *memProducts) List(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Product{}
	for _, p := range m.products {
		if f.Gender != "" && p.Gender != f.Gender {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		out = append(out, p)
	}
	if f.Newest {
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	}
	if f.Limit > 0 && int64(len(out)) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memProducts) FindByID(ctx context.Context, id int) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memProducts) FindByKey(ctx context.Context, key primitive.ObjectID) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.Key == key {
			found := p
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memProducts) FindByIDs(ctx context.Context, ids []int) ([]models.Product, error) {
	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Product{}
	for _, p := range m.products {
		if want[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProducts) DeleteByID(ctx context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.products {
		if p.ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memProducts) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.products)), nil
}

func (m *memProducts) InventoryValue(ctx context.Context) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := decimal.Zero
	for _, p := range m.products {
		total = total.Add(decimal.NewFromFloat(p.NewPrice).Mul(decimal.NewFromInt(int64(p.Stock))))
	}
	return total.InexactFloat64(), nil
}

type memUsers memory

func (m *memUsers) Insert(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return ErrDuplicate
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	m.users[u.ID] = copyUser(u)
	return nil
}

func (m *memUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

func (m *memUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (m *memUsers) List(ctx context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		c := copyUser(u)
		c.Password = ""
		c.CartData = nil
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *memUsers) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

// mutate runs fn on the stored user under the lock.
func (m *memUsers) mutate(id primitive.ObjectID, fn func(u *models.User)) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if u.CartData == nil {
		u.CartData = models.CartData{}
	}
	fn(u)
	return copyUser(u), nil
}

func (m *memUsers) AddToCart(ctx context.Context, id primitive.ObjectID, productID, delta int) error {
	_, err := m.mutate(id, func(u *models.User) { u.CartData[productID] += delta })
	return err
}

func (m *memUsers) DecrementCart(ctx context.Context, id primitive.ObjectID, productID int) error {
	_, err := m.mutate(id, func(u *models.User) {
		if u.CartData[productID] > 0 {
			u.CartData[productID]--
		}
	})
	if err == ErrNotFound {
		return nil
	}
	return err
}

func (m *memUsers) SetCartQuantity(ctx context.Context, id primitive.ObjectID, productID, qty int) error {
	_, err := m.mutate(id, func(u *models.User) { u.CartData[productID] = qty })
	return err
}

func (m *memUsers) ResetCart(ctx context.Context, id primitive.ObjectID) error {
	_, err := m.mutate(id, func(u *models.User) { u.CartData = models.NewCartData() })
	return err
}

func (m *memUsers) SetDiscount(ctx context.Context, id primitive.ObjectID, percent float64) error {
	_, err := m.mutate(id, func(u *models.User) { u.Discount = percent })
	return err
}

func (m *memUsers) SetRoles(ctx context.Context, id primitive.ObjectID, roles []string) (*models.User, error) {
	return m.mutate(id, func(u *models.User) { u.Roles = append([]string(nil), roles...) })
}

func (m *memUsers) ToggleActive(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return m.mutate(id, func(u *models.User) { u.IsActive = !u.IsActive })
}

type memAdmins memory

func (m *memAdmins) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.admins[email]
	if !ok {
		return nil, ErrNotFound
	}
	found := *a
	return &found, nil
}

func (m *memAdmins) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.admins)), nil
}

type memOrders memory

func (m *memOrders) Insert(ctx context.Context, o *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	m.orders = append(m.orders, copyOrder(o))
	return nil
}

func (m *memOrders) FindForUser(ctx context.Context, id, userID primitive.ObjectID) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == id && m.orders[i].UserID == userID {
			found := copyOrder(&m.orders[i])
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

// newestFirst copies the orders keep accepts, newest orderDate first.
func (m *memOrders) newestFirst(keep func(o *models.Order) bool) []models.Order {
	out := []models.Order{}
	for i := range m.orders {
		if keep(&m.orders[i]) {
			out = append(out, copyOrder(&m.orders[i]))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return out
}

func (m *memOrders) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.newestFirst(func(o *models.Order) bool { return o.UserID == userID }), nil
}

func (m *memOrders) ListWithUsers(ctx context.Context) ([]models.OrderWithUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	orders := m.newestFirst(func(*models.Order) bool { return true })
	out := make([]models.OrderWithUser, 0, len(orders))
	for _, o := range orders {
		joined := models.OrderWithUser{Order: o}
		if u, ok := m.users[o.UserID]; ok {
			joined.User = &models.OrderOwner{ID: u.ID, Name: u.Name, Email: u.Email}
		}
		out = append(out, joined)
	}
	return out, nil
}

func (m *memOrders) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders[i].Status = status
			m.orders[i].UpdatedAt = time.Now()
			updated := copyOrder(&m.orders[i])
			return &updated, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memOrders) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.orders)), nil
}
