package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/SecretJA/Badminton-eweb/internal/domain/model"
	"gorm.io/gorm"
)

var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("product not found")
	// ErrProductInactive 商品已下架
	ErrProductInactive = errors.New("product is not active")
	// ErrProductStockNotEnough 商品庫存不足
	ErrProductStockNotEnough = errors.New("product stock not enough")
)

// StockChange 單一商品的庫存異動量
type StockChange struct {
	ProductID string
	Quantity  int
}

type IProductRepo interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, productID string) (*model.Product, error)
	GetProductsByIDs(ctx context.Context, productIDs []string) ([]model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
	GetProductsPaginated(ctx context.Context, page, pageSize int) ([]model.Product, int64, error)
	DeductStockBatch(ctx context.Context, changes []StockChange) error
	RestoreStockBatch(ctx context.Context, changes []StockChange) error
}

type ProductRepo struct {
	db *DbDao
}

func NewProductRepo(db *DbDao) *ProductRepo {
	return &ProductRepo{db: db}
}

func (s *ProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

func (s *ProductRepo) GetProductByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).First(&product, "product_id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductRepo) GetProductsByIDs(ctx context.Context, productIDs []string) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Where("product_id IN ?", productIDs).Find(&products).Error
	return products, err
}

func (s *ProductRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Save(product).Error
}

// 分頁查詢商品
func (s *ProductRepo) GetProductsPaginated(ctx context.Context, page, pageSize int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	offset := (page - 1) * pageSize

	s.db.WithContext(ctx).Model(&model.Product{}).Count(&total)
	err := s.db.WithContext(ctx).Offset(offset).Limit(pageSize).Find(&products).Error

	return products, total, err
}

// DeductStockBatch 扣庫存，全部成功或全部不動
// 使用條件更新 stock >= quantity 才扣，避免先查後扣的race condition，
// 兩個併發訂單搶最後一件時只有一個會成功
func (s *ProductRepo) DeductStockBatch(ctx context.Context, changes []StockChange) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, change := range changes {
			result := tx.WithContext(ctx).Model(&model.Product{}).
				Where("product_id = ? AND is_active = true AND stock >= ?", change.ProductID, change.Quantity).
				Update("stock", gorm.Expr("stock - ?", change.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				// 沒更新到任何列，回查原因讓錯誤可讀
				return s.explainDeductFailure(ctx, tx, change)
			}
		}
		return nil
	})
}

func (s *ProductRepo) explainDeductFailure(ctx context.Context, tx *gorm.DB, change StockChange) error {
	var product model.Product
	err := tx.WithContext(ctx).First(&product, "product_id = ?", change.ProductID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrProductNotFound, change.ProductID)
	}
	if err != nil {
		return err
	}
	if !product.IsActive {
		return fmt.Errorf("%w: %s", ErrProductInactive, product.Name)
	}
	return fmt.Errorf("%w: %s remaining %d", ErrProductStockNotEnough, product.Name, product.Stock)
}

// RestoreStockBatch 回補庫存，取消或刪除訂單時使用
func (s *ProductRepo) RestoreStockBatch(ctx context.Context, changes []StockChange) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, change := range changes {
			result := tx.WithContext(ctx).Model(&model.Product{}).
				Where("product_id = ?", change.ProductID).
				Update("stock", gorm.Expr("stock + ?", change.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", ErrProductNotFound, change.ProductID)
			}
		}
		return nil
	})
}
