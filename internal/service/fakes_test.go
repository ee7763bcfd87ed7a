package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/SecretJA/Badminton-eweb/internal/domain/model"
	"github.com/SecretJA/Badminton-eweb/internal/infra/repository/db"
	"github.com/SecretJA/Badminton-eweb/internal/infra/repository/redis_repo"
)

// 記憶體版的repo與producer，語意對齊真實實作

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*model.Product
}

func newFakeProductRepo(products ...*model.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[string]*model.Product)}
	for _, p := range products {
		repo.products[p.ProductID] = p
	}
	return repo
}

func (r *fakeProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ProductID] = product
	return nil
}

func (r *fakeProductRepo) GetProductByID(ctx context.Context, productID string) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[productID]
	if !ok {
		return nil, db.ErrProductNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *fakeProductRepo) GetProductsByIDs(ctx context.Context, productIDs []string) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found []model.Product
	for _, id := range productIDs {
		if product, ok := r.products[id]; ok {
			found = append(found, *product)
		}
	}
	return found, nil
}

func (r *fakeProductRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ProductID] = product
	return nil
}

func (r *fakeProductRepo) GetProductsPaginated(ctx context.Context, page, pageSize int) ([]model.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []model.Product
	for _, product := range r.products {
		all = append(all, *product)
	}
	return all, int64(len(all)), nil
}

// DeductStockBatch 與真實實作一樣整批原子，任何一項不滿足條件整批不動
func (r *fakeProductRepo) DeductStockBatch(ctx context.Context, changes []db.StockChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, change := range changes {
		product, ok := r.products[change.ProductID]
		if !ok {
			return fmt.Errorf("%w: %s", db.ErrProductNotFound, change.ProductID)
		}
		if !product.IsActive {
			return fmt.Errorf("%w: %s", db.ErrProductInactive, product.Name)
		}
		if product.Stock < uint(change.Quantity) {
			return fmt.Errorf("%w: %s remaining %d", db.ErrProductStockNotEnough, product.Name, product.Stock)
		}
	}
	for _, change := range changes {
		r.products[change.ProductID].Stock -= uint(change.Quantity)
	}
	return nil
}

func (r *fakeProductRepo) RestoreStockBatch(ctx context.Context, changes []db.StockChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, change := range changes {
		product, ok := r.products[change.ProductID]
		if !ok {
			return fmt.Errorf("%w: %s", db.ErrProductNotFound, change.ProductID)
		}
		product.Stock += uint(change.Quantity)
	}
	return nil
}

func (r *fakeProductRepo) stock(productID string) uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[productID].Stock
}

type fakeOrderRepo struct {
	mu         sync.Mutex
	orders     map[string]*model.Order
	failDelete error
}

func newFakeOrderRepo(orders ...*model.Order) *fakeOrderRepo {
	repo := &fakeOrderRepo{orders: make(map[string]*model.Order)}
	for _, o := range orders {
		repo.orders[o.OrderID] = o
	}
	return repo
}

func (r *fakeOrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *order
	r.orders[order.OrderID] = &clone
	return nil
}

func (r *fakeOrderRepo) GetOrderByID(ctx context.Context, orderID string) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return nil, db.ErrOrderNotFound
	}
	clone := *order
	return &clone, nil
}

func (r *fakeOrderRepo) GetOrdersByUserIDPaginated(ctx context.Context, userID string, page, pageSize int) ([]model.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found []model.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			found = append(found, *order)
		}
	}
	return found, int64(len(found)), nil
}

func (r *fakeOrderRepo) GetOrdersPaginated(ctx context.Context, filter db.OrderFilter, page, pageSize int) ([]model.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found []model.Order
	for _, order := range r.orders {
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		found = append(found, *order)
	}
	return found, int64(len(found)), nil
}

func (r *fakeOrderRepo) UpdateOrder(ctx context.Context, order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.OrderID]; !ok {
		return db.ErrOrderNotFound
	}
	clone := *order
	r.orders[order.OrderID] = &clone
	return nil
}

func (r *fakeOrderRepo) HardDeleteOrder(ctx context.Context, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failDelete != nil {
		return r.failDelete
	}
	delete(r.orders, orderID)
	return nil
}

func (r *fakeOrderRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[string]*model.Cart
}

func newFakeCartRepo(carts ...*model.Cart) *fakeCartRepo {
	repo := &fakeCartRepo{carts: make(map[string]*model.Cart)}
	for _, c := range carts {
		repo.carts[c.UserID] = c
	}
	return repo
}

func (r *fakeCartRepo) Get(ctx context.Context, userID string) (*model.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart, ok := r.carts[userID]
	if !ok {
		return nil, redis_repo.ErrCartNotFound
	}
	clone := *cart
	clone.Items = append([]model.CartItem{}, cart.Items...)
	return &clone, nil
}

func (r *fakeCartRepo) Save(ctx context.Context, cart *model.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *cart
	clone.Items = append([]model.CartItem{}, cart.Items...)
	r.carts[cart.UserID] = &clone
	return nil
}

func (r *fakeCartRepo) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}

func (r *fakeCartRepo) exists(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.carts[userID]
	return ok
}

type publishedEvent struct {
	eventType string
	orderID   string
	reason    string
}

type fakeProducer struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakeProducer) record(eventType, orderID, reason string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{eventType: eventType, orderID: orderID, reason: reason})
}

func (p *fakeProducer) PublishOrderCreated(ctx context.Context, order *model.Order) error {
	p.record("order_created", order.OrderID, "")
	return nil
}

func (p *fakeProducer) PublishOrderCancelled(ctx context.Context, order *model.Order) error {
	p.record("order_cancelled", order.OrderID, "")
	return nil
}

func (p *fakeProducer) PublishOrderStatusUpdated(ctx context.Context, order *model.Order) error {
	p.record("order_status_updated", order.OrderID, "")
	return nil
}

func (p *fakeProducer) PublishOrderPaid(ctx context.Context, order *model.Order) error {
	p.record("order_paid", order.OrderID, "")
	return nil
}

func (p *fakeProducer) PublishStockInconsistency(ctx context.Context, orderID string, productIDs []string, reason string) error {
	p.record("stock_inconsistency", orderID, reason)
	return nil
}

func (p *fakeProducer) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var types []string
	for _, e := range p.events {
		types = append(types, e.eventType)
	}
	return types
}
