package db

import (
	"context"
	"errors"

	"github.com/SecretJA/Badminton-eweb/internal/domain/model"
	"gorm.io/gorm"
)

// ErrOrderNotFound 訂單不存在
var ErrOrderNotFound = errors.New("order not found")

// OrderFilter 後台訂單查詢條件
type OrderFilter struct {
	Status  model.OrderStatus
	Keyword string // 比對收件人姓名或電話
}

type IOrderRepo interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	GetOrderByID(ctx context.Context, orderID string) (*model.Order, error)
	GetOrdersByUserIDPaginated(ctx context.Context, userID string, page, pageSize int) ([]model.Order, int64, error)
	GetOrdersPaginated(ctx context.Context, filter OrderFilter, page, pageSize int) ([]model.Order, int64, error)
	UpdateOrder(ctx context.Context, order *model.Order) error
	HardDeleteOrder(ctx context.Context, orderID string) error
}

// 購物車階段只寫redis，訂單成立後才進db
type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

// CreateOrder 連同訂單項目一起寫入
func (s *OrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

func (s *OrderRepo) GetOrderByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).Preload("OrderItems").First(&order, "order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// 用戶自己的訂單，新的在前
func (s *OrderRepo) GetOrdersByUserIDPaginated(ctx context.Context, userID string, page, pageSize int) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	offset := (page - 1) * pageSize

	s.db.WithContext(ctx).Model(&model.Order{}).Where("user_id = ?", userID).Count(&total)
	err := s.db.WithContext(ctx).Preload("OrderItems").
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Offset(offset).Limit(pageSize).
		Find(&orders).Error

	return orders, total, err
}

// 後台分頁查詢，可依狀態與關鍵字過濾
func (s *OrderRepo) GetOrdersPaginated(ctx context.Context, filter OrderFilter, page, pageSize int) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	offset := (page - 1) * pageSize
	query := s.db.WithContext(ctx).Model(&model.Order{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where("shipping_name ILIKE ? OR shipping_phone ILIKE ?", like, like)
	}

	query.Count(&total)
	err := query.Preload("OrderItems").
		Order("order_date DESC").
		Offset(offset).Limit(pageSize).
		Find(&orders).Error

	return orders, total, err
}

// UpdateOrder 只有狀態與付款欄位會變動，訂單項目建立後不再修改
func (s *OrderRepo) UpdateOrder(ctx context.Context, order *model.Order) error {
	return s.db.WithContext(ctx).Omit("OrderItems").Save(order).Error
}

// HardDeleteOrder 硬刪除，訂單項目級聯刪除
func (s *OrderRepo) HardDeleteOrder(ctx context.Context, orderID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Unscoped().Where("order_id = ?", orderID).Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.WithContext(ctx).Unscoped().Where("order_id = ?", orderID).Delete(&model.Order{}).Error
	})
}
