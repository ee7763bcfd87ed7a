package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCartAddItemMerge(t *testing.T) {
	cart := NewCart("user-1")
	opts := SelectedOptions{Weight: "4U"}

	first := cart.AddItem("prod-1", 2, decimal.NewFromInt(600000), opts)
	require.Len(t, cart.Items, 1)

	// 同商品同選項 數量累加 單價維持首次快照
	merged := cart.AddItem("prod-1", 3, decimal.NewFromInt(650000), opts)
	require.Len(t, cart.Items, 1)
	require.Equal(t, first.ItemID, merged.ItemID)
	require.Equal(t, 5, merged.Quantity)
	require.True(t, merged.Price.Equal(decimal.NewFromInt(600000)))
}

func TestCartAddItemDifferentOptions(t *testing.T) {
	cart := NewCart("user-1")

	cart.AddItem("prod-1", 1, decimal.NewFromInt(600000), SelectedOptions{Weight: "4U"})
	cart.AddItem("prod-1", 1, decimal.NewFromInt(600000), SelectedOptions{Weight: "5U"})

	require.Len(t, cart.Items, 2)
	require.NotEqual(t, cart.Items[0].ItemID, cart.Items[1].ItemID)
}

func TestCartRemoveItemIdempotent(t *testing.T) {
	cart := NewCart("user-1")
	item := cart.AddItem("prod-1", 1, decimal.NewFromInt(100000), SelectedOptions{})

	cart.RemoveItem(item.ItemID)
	require.Empty(t, cart.Items)

	// 重複刪除不報錯
	cart.RemoveItem(item.ItemID)
	cart.RemoveItem("not-exist")
	require.Empty(t, cart.Items)
}

func TestCartUpdateItemQuantity(t *testing.T) {
	cart := NewCart("user-1")
	item := cart.AddItem("prod-1", 1, decimal.NewFromInt(100000), SelectedOptions{})

	require.True(t, cart.UpdateItemQuantity(item.ItemID, 7))
	require.Equal(t, 7, cart.FindItem(item.ItemID).Quantity)

	require.False(t, cart.UpdateItemQuantity("not-exist", 3))
}

func TestCartRecalculateTotals(t *testing.T) {
	cart := NewCart("user-1")
	cart.AddItem("prod-1", 2, decimal.NewFromInt(600000), SelectedOptions{})
	cart.AddItem("prod-2", 1, decimal.NewFromInt(250000), SelectedOptions{})

	cart.RecalculateTotals()

	require.Equal(t, 3, cart.TotalItems)
	require.True(t, cart.TotalAmount.Equal(decimal.NewFromInt(1450000)))
	require.False(t, cart.UpdatedAt.IsZero())
}

func TestCartClear(t *testing.T) {
	cart := NewCart("user-1")
	cart.AddItem("prod-1", 2, decimal.NewFromInt(600000), SelectedOptions{})
	require.False(t, cart.IsEmpty())

	cart.Clear()
	cart.RecalculateTotals()

	require.True(t, cart.IsEmpty())
	require.Equal(t, 0, cart.TotalItems)
	require.True(t, cart.TotalAmount.IsZero())
}
