package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // 待處理
	OrderStatusConfirmed  OrderStatus = "confirmed"  // 已確認
	OrderStatusProcessing OrderStatus = "processing" // 處理中
	OrderStatusShipped    OrderStatus = "shipped"    // 已出貨
	OrderStatusDelivered  OrderStatus = "delivered"  // 已送達
	OrderStatusCancelled  OrderStatus = "cancelled"  // 已取消
)

type PaymentMethod string

const (
	PaymentMethodCOD          PaymentMethod = "cod"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodMomo         PaymentMethod = "momo"
	PaymentMethodVNPay        PaymentMethod = "vnpay"
)

var (
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrAlreadyPaid       = errors.New("order already paid")
)

// 狀態轉移表，不在表內的轉移一律拒絕
var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

func (s OrderStatus) IsValid() bool {
	_, ok := orderStatusTransitions[s]
	return ok
}

func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range orderStatusTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsCancellable 出貨後不可取消
func (s OrderStatus) IsCancellable() bool {
	return s.CanTransitionTo(OrderStatusCancelled)
}

func (s OrderStatus) IsTerminal() bool {
	return len(orderStatusTransitions[s]) == 0
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCOD, PaymentMethodBankTransfer, PaymentMethodMomo, PaymentMethodVNPay:
		return true
	}
	return false
}

// OrderItem 下單當下的商品快照，建立後不再變動，商品後續修改不影響歷史訂單
type OrderItem struct {
	OrderID         string          `gorm:"primaryKey;type:varchar(255)" json:"order_id"`
	ItemID          string          `gorm:"primaryKey;type:varchar(255)" json:"item_id"`
	ProductID       string          `gorm:"not null;type:varchar(255);index" json:"product_id"`
	Name            string          `gorm:"not null;type:varchar(100)" json:"name"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	Price           decimal.Decimal `gorm:"not null;type:decimal(14,2)" json:"price"`
	Image           string          `gorm:"type:varchar(500)" json:"image"`
	SelectedOptions SelectedOptions `gorm:"serializer:json" json:"selected_options"`
	BaseModel
}

type ShippingAddress struct {
	Name     string `gorm:"type:varchar(100)" json:"name"`
	Phone    string `gorm:"type:varchar(20)" json:"phone"`
	Street   string `gorm:"type:varchar(255)" json:"street"`
	City     string `gorm:"type:varchar(100)" json:"city"`
	District string `gorm:"type:varchar(100)" json:"district"`
	ZipCode  string `gorm:"type:varchar(20)" json:"zip_code,omitempty"`
	Note     string `gorm:"type:varchar(500)" json:"note,omitempty"`
}

type PaymentResult struct {
	TransactionID string `gorm:"type:varchar(255)" json:"id,omitempty"`
	Status        string `gorm:"type:varchar(50)" json:"status,omitempty"`
	UpdateTime    string `gorm:"type:varchar(50)" json:"update_time,omitempty"`
	EmailAddress  string `gorm:"type:varchar(255)" json:"email_address,omitempty"`
}

type Order struct {
	OrderID         string          `gorm:"primaryKey;type:varchar(255)" json:"order_id"`
	UserID          string          `gorm:"not null;type:varchar(255);index" json:"user_id"`
	OrderItems      []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	PaymentMethod   PaymentMethod   `gorm:"not null;type:varchar(50)" json:"payment_method"`
	PaymentResult   PaymentResult   `gorm:"embedded;embeddedPrefix:payment_" json:"payment_result"`
	ItemsPrice      decimal.Decimal `gorm:"not null;type:decimal(14,2)" json:"items_price"`
	TaxPrice        decimal.Decimal `gorm:"not null;type:decimal(14,2)" json:"tax_price"`
	ShippingPrice   decimal.Decimal `gorm:"not null;type:decimal(14,2)" json:"shipping_price"`
	TotalPrice      decimal.Decimal `gorm:"not null;type:decimal(14,2)" json:"total_price"`
	Status          OrderStatus     `gorm:"not null;type:varchar(50);default:'pending';index" json:"status"`
	IsPaid          bool            `gorm:"not null;default:false" json:"is_paid"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	IsDelivered     bool            `gorm:"not null;default:false" json:"is_delivered"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
	CancelReason    string          `gorm:"type:varchar(500)" json:"cancel_reason,omitempty"`
	AdminNote       string          `gorm:"type:varchar(500)" json:"admin_note,omitempty"`
	TrackingNumber  string          `gorm:"type:varchar(100)" json:"tracking_number,omitempty"`
	OrderDate       time.Time       `gorm:"not null" json:"order_date"`
	BaseModel
}

// OrderNumber 給前端顯示用的短單號
func (o *Order) OrderNumber() string {
	id := strings.ReplaceAll(o.OrderID, "-", "")
	if len(id) > 8 {
		id = id[len(id)-8:]
	}
	return strings.ToUpper(id)
}

// TransitionTo 檢查狀態轉移表後套用狀態與副作用，庫存回補由呼叫端處理
func (o *Order) TransitionTo(target OrderStatus, note string) error {
	if !o.Status.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, target)
	}

	o.Status = target
	switch target {
	case OrderStatusDelivered:
		now := time.Now().UTC()
		o.IsDelivered = true
		o.DeliveredAt = &now
	case OrderStatusCancelled:
		o.CancelReason = note
	default:
		if note != "" {
			o.AdminNote = note
		}
	}
	return nil
}

func (o *Order) MarkAsPaid(result PaymentResult) error {
	if o.IsPaid {
		return ErrAlreadyPaid
	}
	now := time.Now().UTC()
	o.IsPaid = true
	o.PaidAt = &now
	o.PaymentResult = result
	return nil
}
