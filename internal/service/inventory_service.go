package service

import (
	"context"
	"errors"
	"sync"

	"github.com/SecretJA/Badminton-eweb/internal/domain/model"
	"github.com/SecretJA/Badminton-eweb/internal/infra/repository/db"
	"golang.org/x/sync/errgroup"
)

// IInventoryService 商品庫存的驗證與異動邊界，庫存是系統內唯一會被跨請求競爭的資源
type IInventoryService interface {
	Validate(ctx context.Context, items []model.CartItem) (map[string]*model.Product, error)
	Decrement(ctx context.Context, items []model.CartItem) error
	Restore(ctx context.Context, items []model.OrderItem) error
}

type InventoryService struct {
	productRepo db.IProductRepo
}

func NewInventoryService(productRepo db.IProductRepo) *InventoryService {
	return &InventoryService{productRepo: productRepo}
}

// Validate 逐項檢查商品存在、上架中且庫存足夠
// 每次都讀取當下庫存，不用快照，避免對過期庫存下單
// 回傳商品map供後續建立訂單快照使用
func (s *InventoryService) Validate(ctx context.Context, items []model.CartItem) (map[string]*model.Product, error) {
	var mu sync.Mutex
	products := make(map[string]*model.Product, len(items))

	g, gctx := errgroup.WithContext(ctx)
	for _, item := range items {
		item := item
		g.Go(func() error {
			product, err := s.productRepo.GetProductByID(gctx, item.ProductID)
			if errors.Is(err, db.ErrProductNotFound) {
				return &ProductUnavailableError{}
			}
			if err != nil {
				return err
			}
			if !product.IsActive {
				return &ProductUnavailableError{ProductName: product.Name}
			}
			if product.Stock < uint(item.Quantity) {
				return &OutOfStockError{ProductName: product.Name, Remaining: product.Stock}
			}

			mu.Lock()
			products[product.ProductID] = product
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return products, nil
}

// Decrement 扣庫存，任何一項失敗整批回滾
// 扣減本身是條件更新，與Validate之間的race由db層的 stock >= quantity 條件守住
func (s *InventoryService) Decrement(ctx context.Context, items []model.CartItem) error {
	changes := make([]db.StockChange, 0, len(items))
	for _, item := range items {
		changes = append(changes, db.StockChange{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return s.productRepo.DeductStockBatch(ctx, changes)
}

// Restore 回補庫存，訂單取消或刪除時使用
// 訂單建立當下就扣了庫存，所以任何可取消狀態的訂單都要回補
func (s *InventoryService) Restore(ctx context.Context, items []model.OrderItem) error {
	changes := make([]db.StockChange, 0, len(items))
	for _, item := range items {
		changes = append(changes, db.StockChange{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return s.productRepo.RestoreStockBatch(ctx, changes)
}
