package usecase

import (
	"context"
	"sort"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

// =====================
// インメモリのrepo実装。
// WithinTxは開始時にスナップショットを取り、失敗したら丸ごと戻す
// =====================

type memStore struct {
	products   map[int64]model.Product
	cartItems  map[int64]model.CartItem
	wishlist   map[int64]model.WishlistItem
	orders     map[int64]model.Order
	orderItems map[int64]model.OrderItem
	users      map[int64]model.User
	tokens     map[string]model.RefreshToken
	seq        int64
}

func newMemStore() *memStore {
	return &memStore{
		products:   map[int64]model.Product{},
		cartItems:  map[int64]model.CartItem{},
		wishlist:   map[int64]model.WishlistItem{},
		orders:     map[int64]model.Order{},
		orderItems: map[int64]model.OrderItem{},
		users:      map[int64]model.User{},
		tokens:     map[string]model.RefreshToken{},
	}
}

func (s *memStore) nextID() int64 {
	s.seq++
	return s.seq
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	c.seq = s.seq
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.cartItems {
		c.cartItems[k] = v
	}
	for k, v := range s.wishlist {
		c.wishlist[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.orderItems {
		c.orderItems[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.tokens {
		c.tokens[k] = v
	}
	return c
}

func (s *memStore) restore(from *memStore) {
	s.seq = from.seq
	s.products = from.products
	s.cartItems = from.cartItems
	s.wishlist = from.wishlist
	s.orders = from.orders
	s.orderItems = from.orderItems
	s.users = from.users
	s.tokens = from.tokens
}

// ---- seedヘルパー ----

func (s *memStore) seedProduct(name string, price int64, stock int64) model.Product {
	p := model.Product{
		ID:       s.nextID(),
		Name:     name,
		Price:    price,
		Stock:    stock,
		ImageURL: model.DefaultProductImageURL,
	}
	s.products[p.ID] = p
	return p
}

func (s *memStore) seedCartItem(userID int64, productID int64, qty int64) model.CartItem {
	it := model.CartItem{
		ID:        s.nextID(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  qty,
	}
	s.cartItems[it.ID] = it
	return it
}

func (s *memStore) seedWishlistItem(userID int64, productID int64) model.WishlistItem {
	it := model.WishlistItem{
		ID:        s.nextID(),
		UserID:    userID,
		ProductID: productID,
	}
	s.wishlist[it.ID] = it
	return it
}

func (s *memStore) seedUser(name string, email string, role model.Role) model.User {
	u := model.User{
		ID:    s.nextID(),
		Name:  name,
		Email: email,
		Role:  role,
	}
	s.users[u.ID] = u
	return u
}

// ---- ProductRepository ----

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) List(ctx context.Context, page int, limit int) ([]model.Product, int64, error) {
	all := make([]model.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return []model.Product{}, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *memProductRepo) FindByID(ctx context.Context, id int64) (model.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (r *memProductRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	p.ID = r.s.nextID()
	r.s.products[p.ID] = p
	return p, nil
}

func (r *memProductRepo) Update(ctx context.Context, p model.Product) error {
	if _, ok := r.s.products[p.ID]; !ok {
		return repo.ErrNotFound
	}
	r.s.products[p.ID] = p
	return nil
}

// ---- CartItemRepository ----

type memCartRepo struct{ s *memStore }

func (r *memCartRepo) ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error) {
	items := []model.CartItem{}
	for _, it := range r.s.cartItems {
		if it.UserID == userID {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *memCartRepo) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	it, ok := r.s.cartItems[cartItemID]
	if !ok {
		return model.CartItem{}, repo.ErrNotFound
	}
	return it, nil
}

func (r *memCartRepo) UpsertByUserAndProduct(ctx context.Context, userID int64, productID int64, addQty int64) error {
	for id, it := range r.s.cartItems {
		if it.UserID == userID && it.ProductID == productID {
			it.Quantity += addQty
			r.s.cartItems[id] = it
			return nil
		}
	}
	it := model.CartItem{
		ID:        r.s.nextID(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  addQty,
	}
	r.s.cartItems[it.ID] = it
	return nil
}

func (r *memCartRepo) DeleteByID(ctx context.Context, cartItemID int64) error {
	if _, ok := r.s.cartItems[cartItemID]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.cartItems, cartItemID)
	return nil
}

func (r *memCartRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	for id, it := range r.s.cartItems {
		if it.UserID == userID {
			delete(r.s.cartItems, id)
		}
	}
	return nil
}

// ---- WishlistRepository ----

type memWishlistRepo struct{ s *memStore }

func (r *memWishlistRepo) ListByUserID(ctx context.Context, userID int64) ([]model.WishlistItem, error) {
	items := []model.WishlistItem{}
	for _, it := range r.s.wishlist {
		if it.UserID == userID {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *memWishlistRepo) FindByID(ctx context.Context, wishlistItemID int64) (model.WishlistItem, error) {
	it, ok := r.s.wishlist[wishlistItemID]
	if !ok {
		return model.WishlistItem{}, repo.ErrNotFound
	}
	return it, nil
}

func (r *memWishlistRepo) FindByUserAndProduct(ctx context.Context, userID int64, productID int64) (model.WishlistItem, error) {
	for _, it := range r.s.wishlist {
		if it.UserID == userID && it.ProductID == productID {
			return it, nil
		}
	}
	return model.WishlistItem{}, repo.ErrNotFound
}

func (r *memWishlistRepo) Create(ctx context.Context, item model.WishlistItem) (model.WishlistItem, error) {
	item.ID = r.s.nextID()
	r.s.wishlist[item.ID] = item
	return item, nil
}

func (r *memWishlistRepo) DeleteByID(ctx context.Context, wishlistItemID int64) error {
	if _, ok := r.s.wishlist[wishlistItemID]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.wishlist, wishlistItemID)
	return nil
}

// ---- OrderRepository ----

type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	o, ok := r.s.orders[orderID]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (r *memOrderRepo) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	uid := userID
	return r.List(ctx, repo.OrderListFilter{Page: page, Limit: limit, UserID: &uid})
}

func (r *memOrderRepo) Create(ctx context.Context, order model.Order) (int64, error) {
	order.ID = r.s.nextID()
	r.s.orders[order.ID] = order
	return order.ID, nil
}

func (r *memOrderRepo) UpdateStatusIf(ctx context.Context, orderID int64, from model.OrderStatus, to model.OrderStatus) (bool, error) {
	o, ok := r.s.orders[orderID]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	o.UpdatedAt = time.Now()
	r.s.orders[orderID] = o
	return true, nil
}

func (r *memOrderRepo) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, int64, error) {
	all := []model.Order{}
	for _, o := range r.s.orders {
		if f.Status != "" && string(o.Status) != f.Status {
			continue
		}
		if f.UserID != nil && o.UserID != *f.UserID {
			continue
		}
		if f.From != nil && o.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && o.CreatedAt.After(*f.To) {
			continue
		}
		all = append(all, o)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	start := (f.Page - 1) * f.Limit
	if start >= len(all) {
		return []model.Order{}, total, nil
	}
	end := start + f.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

// ---- OrderItemRepository ----

type memOrderItemRepo struct{ s *memStore }

func (r *memOrderItemRepo) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	for _, it := range items {
		it.ID = r.s.nextID()
		it.OrderID = orderID
		r.s.orderItems[it.ID] = it
	}
	return nil
}

func (r *memOrderItemRepo) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	items := []model.OrderItem{}
	for _, it := range r.s.orderItems {
		if it.OrderID == orderID {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// ---- InventoryRepository ----

type memInventoryRepo struct{ s *memStore }

func (r *memInventoryRepo) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	p, ok := r.s.products[productID]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	r.s.products[productID] = p
	return true, nil
}

// ---- UserRepository ----

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(ctx context.Context, u model.User) (model.User, error) {
	for _, cur := range r.s.users {
		if cur.Email == u.Email {
			return model.User{}, repo.ErrDuplicate
		}
	}
	u.ID = r.s.nextID()
	r.s.users[u.ID] = u
	return u, nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (model.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repo.ErrNotFound
}

func (r *memUserRepo) FindByID(ctx context.Context, userID int64) (model.User, error) {
	u, ok := r.s.users[userID]
	if !ok {
		return model.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.s.users)), nil
}

func (r *memUserRepo) UpdateRole(ctx context.Context, userID int64, role model.Role) error {
	u, ok := r.s.users[userID]
	if !ok {
		return repo.ErrNotFound
	}
	u.Role = role
	r.s.users[userID] = u
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, userID int64) error {
	if _, ok := r.s.users[userID]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.users, userID)
	//カートと欲しいものリストも一緒に消す
	for id, it := range r.s.cartItems {
		if it.UserID == userID {
			delete(r.s.cartItems, id)
		}
	}
	for id, it := range r.s.wishlist {
		if it.UserID == userID {
			delete(r.s.wishlist, id)
		}
	}
	return nil
}

// ---- RefreshTokenRepository ----

type memTokenRepo struct{ s *memStore }

func (r *memTokenRepo) Create(ctx context.Context, t model.RefreshToken) error {
	r.s.tokens[t.ID] = t
	return nil
}

func (r *memTokenRepo) FindByTokenHash(ctx context.Context, hash string) (model.RefreshToken, error) {
	for _, t := range r.s.tokens {
		if t.TokenHash == hash {
			return t, nil
		}
	}
	return model.RefreshToken{}, repo.ErrNotFound
}

func (r *memTokenRepo) Revoke(ctx context.Context, id string) error {
	t, ok := r.s.tokens[id]
	if !ok {
		return repo.ErrNotFound
	}
	now := time.Now()
	t.RevokedAt = &now
	r.s.tokens[id] = t
	return nil
}

// ---- TransactionManager ----

type memTxRepos struct{ s *memStore }

func (r memTxRepos) Orders() repo.OrderRepository         { return &memOrderRepo{s: r.s} }
func (r memTxRepos) OrderItems() repo.OrderItemRepository { return &memOrderItemRepo{s: r.s} }
func (r memTxRepos) CartItems() repo.CartItemRepository   { return &memCartRepo{s: r.s} }
func (r memTxRepos) Products() repo.ProductRepository     { return &memProductRepo{s: r.s} }
func (r memTxRepos) Inventory() repo.InventoryRepository  { return &memInventoryRepo{s: r.s} }

type memTxManager struct{ s *memStore }

func (m *memTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	snap := m.s.clone()
	if err := fn(memTxRepos{s: m.s}); err != nil {
		m.s.restore(snap)
		return err
	}
	return nil
}
