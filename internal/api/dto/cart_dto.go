package dto

import (
	"github.com/SecretJA/Badminton-eweb/internal/domain/model"
	"github.com/SecretJA/Badminton-eweb/internal/service"
	"github.com/shopspring/decimal"
)

type AddCartItemRequest struct {
	ProductID       string                `json:"productId"`
	Quantity        int                   `json:"quantity"`
	SelectedOptions model.SelectedOptions `json:"selectedOptions"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// ProductBrief 購物車回應附帶的即時商品資訊
type ProductBrief struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	MainImage string          `json:"main_image"`
	Stock     uint            `json:"stock"`
	IsActive  bool            `json:"is_active"`
}

type CartItemResponse struct {
	ItemID          string                `json:"item_id"`
	Product         *ProductBrief         `json:"product,omitempty"`
	ProductID       string                `json:"product_id"`
	Quantity        int                   `json:"quantity"`
	Price           decimal.Decimal       `json:"price"`
	SelectedOptions model.SelectedOptions `json:"selected_options"`
}

type CartResponse struct {
	UserID      string             `json:"user_id"`
	Items       []CartItemResponse `json:"items"`
	TotalItems  int                `json:"total_items"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Subtotal    decimal.Decimal    `json:"subtotal"`
	Shipping    decimal.Decimal    `json:"shipping"`
	Tax         decimal.Decimal    `json:"tax"`
	Total       decimal.Decimal    `json:"total"`
}

func NewCartResponse(detail *service.CartDetail) *CartResponse {
	items := make([]CartItemResponse, 0, len(detail.Cart.Items))
	for _, item := range detail.Cart.Items {
		resp := CartItemResponse{
			ItemID:          item.ItemID,
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			Price:           item.Price,
			SelectedOptions: item.SelectedOptions,
		}
		if product, ok := detail.Products[item.ProductID]; ok {
			resp.Product = &ProductBrief{
				ProductID: product.ProductID,
				Name:      product.Name,
				Price:     product.Price,
				MainImage: product.MainImage,
				Stock:     product.Stock,
				IsActive:  product.IsActive,
			}
		}
		items = append(items, resp)
	}

	return &CartResponse{
		UserID:      detail.Cart.UserID,
		Items:       items,
		TotalItems:  detail.Cart.TotalItems,
		TotalAmount: detail.Cart.TotalAmount,
		Subtotal:    detail.Totals.Subtotal,
		Shipping:    detail.Totals.Shipping,
		Tax:         detail.Totals.Tax,
		Total:       detail.Totals.Total,
	}
}
