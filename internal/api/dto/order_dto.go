package dto

import (
	"time"

	"github.com/SecretJA/Badminton-eweb/internal/domain/model"
	"github.com/shopspring/decimal"
)

type ShippingAddressRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Street   string `json:"street"`
	City     string `json:"city"`
	District string `json:"district"`
	ZipCode  string `json:"zipCode,omitempty"`
}

func (r ShippingAddressRequest) ToModel() model.ShippingAddress {
	return model.ShippingAddress{
		Name:     r.Name,
		Phone:    r.Phone,
		Street:   r.Street,
		City:     r.City,
		District: r.District,
		ZipCode:  r.ZipCode,
	}
}

type PlaceOrderRequest struct {
	ShippingAddress ShippingAddressRequest `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	Note            string                 `json:"note,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

type PayOrderRequest struct {
	PaymentResult model.PaymentResult `json:"paymentResult"`
}

// OrderItemSummary 訂單列表用的精簡項目
type OrderItemSummary struct {
	Name     string          `json:"name"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type OrderSummary struct {
	OrderID     string             `json:"order_id"`
	OrderNumber string             `json:"order_number"`
	Status      model.OrderStatus  `json:"status"`
	IsPaid      bool               `json:"is_paid"`
	Total       decimal.Decimal    `json:"total"`
	Items       []OrderItemSummary `json:"items"`
	CreatedAt   time.Time          `json:"created_at"`
}

// OrderListResponse 分頁訂單列表
type OrderListResponse struct {
	Orders []OrderSummary `json:"orders"`
	Page   int            `json:"page"`
	Pages  int64          `json:"pages"`
	Total  int64          `json:"total"`
}

func NewOrderListResponse(orders []model.Order, page, pageSize int, total int64) *OrderListResponse {
	summaries := make([]OrderSummary, 0, len(orders))
	for i := range orders {
		summaries = append(summaries, newOrderSummary(&orders[i]))
	}

	pages := total / int64(pageSize)
	if total%int64(pageSize) > 0 {
		pages++
	}

	return &OrderListResponse{
		Orders: summaries,
		Page:   page,
		Pages:  pages,
		Total:  total,
	}
}

func newOrderSummary(order *model.Order) OrderSummary {
	items := make([]OrderItemSummary, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		items = append(items, OrderItemSummary{
			Name:     item.Name,
			Image:    item.Image,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	return OrderSummary{
		OrderID:     order.OrderID,
		OrderNumber: order.OrderNumber(),
		Status:      order.Status,
		IsPaid:      order.IsPaid,
		Total:       order.TotalPrice,
		Items:       items,
		CreatedAt:   order.CreatedAt,
	}
}
