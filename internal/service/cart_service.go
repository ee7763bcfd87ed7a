package service

import (
	"context"
	"errors"

	"github.com/SecretJA/Badminton-eweb/internal/domain/model"
	"github.com/SecretJA/Badminton-eweb/internal/infra/repository/db"
	"github.com/SecretJA/Badminton-eweb/internal/infra/repository/redis_repo"
	"github.com/SecretJA/Badminton-eweb/internal/pricing"
)

const (
	minCartQuantity = 1
	maxCartQuantity = 100
)

// CartDetail 購物車內容加上即時商品資訊與預覽金額
type CartDetail struct {
	Cart     *model.Cart
	Products map[string]*model.Product
	Totals   pricing.Totals
}

type ICartService interface {
	GetCart(ctx context.Context, userID string) (*CartDetail, error)
	AddItem(ctx context.Context, userID, productID string, quantity int, options model.SelectedOptions) (*CartDetail, error)
	UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int) (*CartDetail, error)
	RemoveItem(ctx context.Context, userID, itemID string) (*CartDetail, error)
	ClearCart(ctx context.Context, userID string) error
}

type CartService struct {
	cartRepo    redis_repo.ICartRepo
	productRepo db.IProductRepo
}

func NewCartService(cartRepo redis_repo.ICartRepo, productRepo db.IProductRepo) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

// GetCart 購物車不存在時回傳空購物車，第一次加入商品才真正建立
func (s *CartService) GetCart(ctx context.Context, userID string) (*CartDetail, error) {
	cart, err := s.cartRepo.Get(ctx, userID)
	if errors.Is(err, redis_repo.ErrCartNotFound) {
		cart = model.NewCart(userID)
	} else if err != nil {
		return nil, err
	}

	return s.buildDetail(ctx, cart)
}

// AddItem 相同商品相同選項累加數量，否則新增一筆，單價取加入當下的商品價格
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int, options model.SelectedOptions) (*CartDetail, error) {
	if quantity < minCartQuantity || quantity > maxCartQuantity {
		return nil, ErrQuantityOutOfRange
	}

	product, err := s.productRepo.GetProductByID(ctx, productID)
	if errors.Is(err, db.ErrProductNotFound) {
		return nil, ErrProductUnavailable
	}
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, ErrProductUnavailable
	}

	cart, err := s.cartRepo.Get(ctx, userID)
	if errors.Is(err, redis_repo.ErrCartNotFound) {
		cart = model.NewCart(userID)
	} else if err != nil {
		return nil, err
	}

	// 合併後的數量也要守住上限與當下庫存
	item := cart.AddItem(productID, quantity, product.Price, options)
	if item.Quantity > maxCartQuantity {
		return nil, ErrQuantityOutOfRange
	}
	if product.Stock < uint(item.Quantity) {
		return nil, ErrStockExceeded
	}

	if err := s.saveCart(ctx, cart); err != nil {
		return nil, err
	}
	return s.buildDetail(ctx, cart)
}

// UpdateItemQuantity 數量全量替換，寫入前重新檢查當下庫存，加入後庫存可能已經變了
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int) (*CartDetail, error) {
	if quantity < minCartQuantity || quantity > maxCartQuantity {
		return nil, ErrQuantityOutOfRange
	}

	cart, err := s.getCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := cart.FindItem(itemID)
	if item == nil {
		return nil, ErrCartItemNotFound
	}

	product, err := s.productRepo.GetProductByID(ctx, item.ProductID)
	if errors.Is(err, db.ErrProductNotFound) {
		return nil, ErrProductUnavailable
	}
	if err != nil {
		return nil, err
	}
	if product.Stock < uint(quantity) {
		return nil, ErrStockExceeded
	}

	cart.UpdateItemQuantity(itemID, quantity)

	if err := s.saveCart(ctx, cart); err != nil {
		return nil, err
	}
	return s.buildDetail(ctx, cart)
}

// RemoveItem 冪等刪除，項目不存在不算錯
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) (*CartDetail, error) {
	cart, err := s.getCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(itemID)

	if err := s.saveCart(ctx, cart); err != nil {
		return nil, err
	}
	return s.buildDetail(ctx, cart)
}

func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	cart, err := s.getCart(ctx, userID)
	if err != nil {
		return err
	}

	cart.Clear()
	return s.saveCart(ctx, cart)
}

func (s *CartService) getCart(ctx context.Context, userID string) (*model.Cart, error) {
	cart, err := s.cartRepo.Get(ctx, userID)
	if errors.Is(err, redis_repo.ErrCartNotFound) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// saveCart 寫入前一定先重算totalItems/totalAmount
func (s *CartService) saveCart(ctx context.Context, cart *model.Cart) error {
	cart.RecalculateTotals()
	return s.cartRepo.Save(ctx, cart)
}

func (s *CartService) buildDetail(ctx context.Context, cart *model.Cart) (*CartDetail, error) {
	products := make(map[string]*model.Product)
	if len(cart.Items) > 0 {
		productIDs := make([]string, 0, len(cart.Items))
		for _, item := range cart.Items {
			productIDs = append(productIDs, item.ProductID)
		}
		found, err := s.productRepo.GetProductsByIDs(ctx, productIDs)
		if err != nil {
			return nil, err
		}
		for i := range found {
			products[found[i].ProductID] = &found[i]
		}
	}

	lines := make([]pricing.Line, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, pricing.Line{UnitPrice: item.Price, Quantity: item.Quantity})
	}
	totals, err := pricing.CartTotals(lines)
	if err != nil {
		return nil, err
	}

	return &CartDetail{
		Cart:     cart,
		Products: products,
		Totals:   totals,
	}, nil
}
