package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SelectedOptions 加入購物車時選擇的商品選項
type SelectedOptions struct {
	Size   string `json:"size,omitempty"`
	Color  string `json:"color,omitempty"`
	Weight string `json:"weight,omitempty"`
}

type CartItem struct {
	ItemID          string          `json:"item_id"`
	ProductID       string          `json:"product_id"`
	Quantity        int             `json:"quantity"`
	Price           decimal.Decimal `json:"price"` // 加入購物車當下的單價快照
	SelectedOptions SelectedOptions `json:"selected_options"`
	AddedAt         time.Time       `json:"added_at"`
}

// Cart 一個用戶只有一個購物車，只存在於redis，下單成功後清空
type Cart struct {
	UserID      string          `json:"user_id"`
	Items       []CartItem      `json:"items"`
	TotalItems  int             `json:"total_items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func NewCart(userID string) *Cart {
	return &Cart{
		UserID:      userID,
		Items:       []CartItem{},
		TotalAmount: decimal.Zero,
	}
}

// AddItem 相同商品且選項相同則累加數量，單價維持第一次加入時的快照，否則新增一筆
func (c *Cart) AddItem(productID string, quantity int, price decimal.Decimal, options SelectedOptions) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].SelectedOptions == options {
			c.Items[i].Quantity += quantity
			return &c.Items[i]
		}
	}

	c.Items = append(c.Items, CartItem{
		ItemID:          uuid.New().String(),
		ProductID:       productID,
		Quantity:        quantity,
		Price:           price,
		SelectedOptions: options,
		AddedAt:         time.Now().UTC(),
	})
	return &c.Items[len(c.Items)-1]
}

// FindItem 回傳nil表示購物車內沒有這個項目
func (c *Cart) FindItem(itemID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].ItemID == itemID {
			return &c.Items[i]
		}
	}
	return nil
}

func (c *Cart) UpdateItemQuantity(itemID string, quantity int) bool {
	item := c.FindItem(itemID)
	if item == nil {
		return false
	}
	item.Quantity = quantity
	return true
}

// RemoveItem 刪除不存在的項目不視為錯誤
func (c *Cart) RemoveItem(itemID string) {
	items := c.Items[:0]
	for _, item := range c.Items {
		if item.ItemID != itemID {
			items = append(items, item)
		}
	}
	c.Items = items
}

func (c *Cart) Clear() {
	c.Items = []CartItem{}
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// RecalculateTotals 每次異動後、寫入前都要重算
func (c *Cart) RecalculateTotals() {
	totalItems := 0
	totalAmount := decimal.Zero
	for _, item := range c.Items {
		totalItems += item.Quantity
		totalAmount = totalAmount.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	c.TotalItems = totalItems
	c.TotalAmount = totalAmount
	c.UpdatedAt = time.Now().UTC()
}
