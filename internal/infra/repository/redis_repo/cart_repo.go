package redis_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/SecretJA/Badminton-eweb/internal/domain/model"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// ErrCartNotFound 購物車不存在
var ErrCartNotFound = errors.New("cart not found")

type ICartRepo interface {
	Get(ctx context.Context, userID string) (*model.Cart, error)
	Save(ctx context.Context, cart *model.Cart) error
	Delete(ctx context.Context, userID string) error
}

// CartRepo 購物車只存redis，採全量替換方式寫入
type CartRepo struct {
	CartCache *redis.Client
}

func NewCartRepo(cartCache *redis.Client) *CartRepo {
	return &CartRepo{CartCache: cartCache}
}

func generateCartItemKey(userID string) string {
	return fmt.Sprintf("cart:%s:items", userID)
}

func generateCartMetaKey(userID string) string {
	return fmt.Sprintf("cart:%s:meta", userID)
}

// Save 以 Lua 腳本原子性地整份替換購物車內容
func (r *CartRepo) Save(ctx context.Context, cart *model.Cart) error {
	metaKey := generateCartMetaKey(cart.UserID)
	itemsKey := generateCartItemKey(cart.UserID)

	luaScript := `
		redis.call('DEL', KEYS[2])
		redis.call('HSET', KEYS[1], 'user_id', ARGV[1], 'total_items', ARGV[2], 'total_amount', ARGV[3], 'updated_at', ARGV[4])
		for i = 5, #ARGV, 2 do
			redis.call('HSET', KEYS[2], ARGV[i], ARGV[i+1])
		end
		return 1
	`
	args := []interface{}{
		cart.UserID,
		cart.TotalItems,
		cart.TotalAmount.String(),
		cart.UpdatedAt.UnixNano(),
	}
	for _, item := range cart.Items {
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to marshal cart item %s: %w", item.ItemID, err)
		}
		args = append(args, item.ItemID, string(data))
	}

	_, err := r.CartCache.Eval(ctx, luaScript, []string{metaKey, itemsKey}, args...).Result()
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (r *CartRepo) Get(ctx context.Context, userID string) (*model.Cart, error) {
	metaKey := generateCartMetaKey(userID)
	itemsKey := generateCartItemKey(userID)

	meta, err := r.CartCache.HGetAll(ctx, metaKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get cart meta: %w", err)
	}
	if len(meta) == 0 {
		return nil, ErrCartNotFound
	}

	cart := &model.Cart{
		UserID: userID,
		Items:  []model.CartItem{},
	}
	if v, ok := meta["total_items"]; ok {
		cart.TotalItems, _ = strconv.Atoi(v)
	}
	if v, ok := meta["total_amount"]; ok {
		amount, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid cart total amount %q: %w", v, err)
		}
		cart.TotalAmount = amount
	}

	items, err := r.CartCache.HGetAll(ctx, itemsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}

	for itemID, data := range items {
		var item model.CartItem
		if err := json.Unmarshal([]byte(data), &item); err != nil {
			return nil, fmt.Errorf("invalid cart item %s: %w", itemID, err)
		}
		cart.Items = append(cart.Items, item)
	}

	// redis hash無序，依加入時間還原順序
	sort.Slice(cart.Items, func(i, j int) bool {
		if cart.Items[i].AddedAt.Equal(cart.Items[j].AddedAt) {
			return cart.Items[i].ItemID < cart.Items[j].ItemID
		}
		return cart.Items[i].AddedAt.Before(cart.Items[j].AddedAt)
	})

	return cart, nil
}

// Delete 移除整個購物車，不存在也不報錯
func (r *CartRepo) Delete(ctx context.Context, userID string) error {
	metaKey := generateCartMetaKey(userID)
	itemsKey := generateCartItemKey(userID)

	if err := r.CartCache.Del(ctx, metaKey, itemsKey).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
