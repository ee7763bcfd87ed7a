package service

import (
	"context"
	"errors"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/SecretJA/Badminton-eweb/internal/domain/model"
	"github.com/SecretJA/Badminton-eweb/internal/infra/repository/db"
	"github.com/SecretJA/Badminton-eweb/internal/infra/repository/redis_repo"
	"github.com/SecretJA/Badminton-eweb/internal/pricing"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// IOrderEventProducer 訂單生命週期事件發佈
type IOrderEventProducer interface {
	PublishOrderCreated(ctx context.Context, order *model.Order) error
	PublishOrderCancelled(ctx context.Context, order *model.Order) error
	PublishOrderStatusUpdated(ctx context.Context, order *model.Order) error
	PublishOrderPaid(ctx context.Context, order *model.Order) error
	PublishStockInconsistency(ctx context.Context, orderID string, productIDs []string, reason string) error
}

type PlaceOrderInput struct {
	ShippingAddress model.ShippingAddress
	PaymentMethod   model.PaymentMethod
	Note            string
}

type IOrderService interface {
	PlaceOrder(ctx context.Context, userID string, input PlaceOrderInput) (*model.Order, error)
	GetOrder(ctx context.Context, orderID, userID string, isAdmin bool) (*model.Order, error)
	GetUserOrders(ctx context.Context, userID string, page, pageSize int) ([]model.Order, int64, error)
	GetAllOrders(ctx context.Context, filter db.OrderFilter, page, pageSize int) ([]model.Order, int64, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus, note string) (*model.Order, error)
	CancelOrder(ctx context.Context, orderID, userID, reason string) (*model.Order, error)
	MarkOrderPaid(ctx context.Context, orderID string, result model.PaymentResult) (*model.Order, error)
	DeleteOrder(ctx context.Context, orderID string) error
}

type OrderService struct {
	orderRepo db.IOrderRepo
	cartRepo  redis_repo.ICartRepo
	inventory IInventoryService
	producer  IOrderEventProducer
	logger    zerolog.Logger
}

func NewOrderService(
	orderRepo db.IOrderRepo,
	cartRepo redis_repo.ICartRepo,
	inventory IInventoryService,
	producer IOrderEventProducer,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		inventory: inventory,
		producer:  producer,
		logger:    logger,
	}
}

var phonePattern = regexp.MustCompile(`^[0-9]{10,11}$`)

func validateShippingAddress(addr model.ShippingAddress) ValidationErrors {
	var errs ValidationErrors

	nameLen := utf8.RuneCountInString(addr.Name)
	if nameLen < 2 || nameLen > 50 {
		errs = append(errs, ValidationError{Field: "shippingAddress.name", Message: "Tên người nhận phải từ 2-50 ký tự"})
	}
	if !phonePattern.MatchString(addr.Phone) {
		errs = append(errs, ValidationError{Field: "shippingAddress.phone", Message: "Số điện thoại không hợp lệ"})
	}
	if addr.Street == "" {
		errs = append(errs, ValidationError{Field: "shippingAddress.street", Message: "Địa chỉ là bắt buộc"})
	}
	if addr.City == "" {
		errs = append(errs, ValidationError{Field: "shippingAddress.city", Message: "Thành phố là bắt buộc"})
	}
	if addr.District == "" {
		errs = append(errs, ValidationError{Field: "shippingAddress.district", Message: "Quận/huyện là bắt buộc"})
	}
	return errs
}

// PlaceOrder 下單流程:
// 讀購物車 -> 驗證庫存 -> 建立商品快照 -> 寫入訂單(pending) -> 扣庫存 -> 清空購物車
// 驗證失敗時什麼都不寫，扣庫存失敗時補償刪除剛建立的訂單，
// 連補償都失敗就發出庫存不一致警報，絕不無聲吞掉
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, input PlaceOrderInput) (*model.Order, error) {
	if errs := validateShippingAddress(input.ShippingAddress); len(errs) > 0 {
		return nil, errs
	}
	if !input.PaymentMethod.IsValid() {
		return nil, ErrInvalidPayMethod
	}

	cart, err := s.cartRepo.Get(ctx, userID)
	if errors.Is(err, redis_repo.ErrCartNotFound) {
		return nil, ErrCartEmpty
	}
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, ErrCartEmpty
	}

	// 驗證失敗直接中止，零副作用
	products, err := s.inventory.Validate(ctx, cart.Items)
	if err != nil {
		return nil, err
	}

	// 商品快照: 名稱與圖片取當下商品資料，單價取加入購物車時的快照，
	// 之後商品再怎麼改都不影響這張訂單
	orderID := uuid.New().String()
	orderItems := make([]model.OrderItem, 0, len(cart.Items))
	lines := make([]pricing.Line, 0, len(cart.Items))
	for _, item := range cart.Items {
		product := products[item.ProductID]
		orderItems = append(orderItems, model.OrderItem{
			OrderID:         orderID,
			ItemID:          item.ItemID,
			ProductID:       item.ProductID,
			Name:            product.Name,
			Quantity:        item.Quantity,
			Price:           item.Price,
			Image:           product.MainImage,
			SelectedOptions: item.SelectedOptions,
		})
		lines = append(lines, pricing.Line{UnitPrice: item.Price, Quantity: item.Quantity})
	}

	totals, err := pricing.CheckoutTotals(lines)
	if err != nil {
		return nil, err
	}

	addr := input.ShippingAddress
	if input.Note != "" {
		addr.Note = input.Note
	}

	order := &model.Order{
		OrderID:         orderID,
		UserID:          userID,
		OrderItems:      orderItems,
		ShippingAddress: addr,
		PaymentMethod:   input.PaymentMethod,
		ItemsPrice:      totals.Subtotal,
		TaxPrice:        totals.Tax,
		ShippingPrice:   totals.Shipping,
		TotalPrice:      totals.Total,
		Status:          model.OrderStatusPending,
		OrderDate:       time.Now().UTC(),
	}

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	// pending訂單也先扣庫存，取消時才回補
	if err := s.inventory.Decrement(ctx, cart.Items); err != nil {
		return nil, s.compensateCreate(ctx, order, err)
	}

	if err := s.cartRepo.Delete(ctx, userID); err != nil {
		// 訂單已成立、庫存已扣，購物車沒清成功只記錄不回滾
		s.logger.Error().Err(err).
			Str("order_id", order.OrderID).
			Str("user_id", userID).
			Msg("failed to clear cart after order placement")
	}

	if err := s.producer.PublishOrderCreated(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.OrderID).Msg("failed to publish order created event")
	}

	return order, nil
}

// compensateCreate 扣庫存失敗，刪掉剛建立的訂單讓整個下單操作歸零
func (s *OrderService) compensateCreate(ctx context.Context, order *model.Order, cause error) error {
	if err := s.orderRepo.HardDeleteOrder(ctx, order.OrderID); err != nil {
		productIDs := make([]string, 0, len(order.OrderItems))
		for _, item := range order.OrderItems {
			productIDs = append(productIDs, item.ProductID)
		}
		s.logger.Error().Err(err).
			Str("order_id", order.OrderID).
			Strs("product_ids", productIDs).
			AnErr("cause", cause).
			Msg("order persisted but stock not committed, compensation failed")
		if pubErr := s.producer.PublishStockInconsistency(ctx, order.OrderID, productIDs, cause.Error()); pubErr != nil {
			s.logger.Error().Err(pubErr).Str("order_id", order.OrderID).Msg("failed to publish stock inconsistency event")
		}
		return ErrInconsistentState
	}
	return cause
}

func (s *OrderService) GetOrder(ctx context.Context, orderID, userID string, isAdmin bool) (*model.Order, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID && !isAdmin {
		return nil, ErrForbidden
	}
	return order, nil
}

func (s *OrderService) GetUserOrders(ctx context.Context, userID string, page, pageSize int) ([]model.Order, int64, error) {
	return s.orderRepo.GetOrdersByUserIDPaginated(ctx, userID, page, pageSize)
}

func (s *OrderService) GetAllOrders(ctx context.Context, filter db.OrderFilter, page, pageSize int) ([]model.Order, int64, error) {
	return s.orderRepo.GetOrdersPaginated(ctx, filter, page, pageSize)
}

// UpdateOrderStatus 後台更新訂單狀態，不在轉移表內的轉移一律拒絕
// 轉到cancelled時note作為取消原因並回補庫存
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus, note string) (*model.Order, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	if utf8.RuneCountInString(note) > 500 {
		return nil, ValidationErrors{{Field: "note", Message: "Ghi chú không được vượt quá 500 ký tự"}}
	}

	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if status == model.OrderStatusCancelled {
		return s.cancel(ctx, order, note)
	}

	if err := order.TransitionTo(status, note); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	if err := s.producer.PublishOrderStatusUpdated(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.OrderID).Msg("failed to publish order status event")
	}
	return order, nil
}

// CancelOrder 用戶取消自己的訂單
func (s *OrderService) CancelOrder(ctx context.Context, orderID, userID, reason string) (*model.Order, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrForbidden
	}
	return s.cancel(ctx, order, reason)
}

// cancel 狀態改為cancelled並回補庫存
// 庫存在建單時就已提交，所以任何可取消狀態都要回補
func (s *OrderService) cancel(ctx context.Context, order *model.Order, reason string) (*model.Order, error) {
	reasonLen := utf8.RuneCountInString(reason)
	if reasonLen < 10 || reasonLen > 500 {
		return nil, ErrInvalidReason
	}
	if !order.Status.IsCancellable() {
		return nil, ErrNotCancellable
	}

	if err := order.TransitionTo(model.OrderStatusCancelled, reason); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	if err := s.inventory.Restore(ctx, order.OrderItems); err != nil {
		return nil, s.reportInconsistency(ctx, order, "restore after cancel failed", err)
	}

	if err := s.producer.PublishOrderCancelled(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.OrderID).Msg("failed to publish order cancelled event")
	}
	return order, nil
}

func (s *OrderService) MarkOrderPaid(ctx context.Context, orderID string, result model.PaymentResult) (*model.Order, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.MarkAsPaid(result); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	if err := s.producer.PublishOrderPaid(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.OrderID).Msg("failed to publish order paid event")
	}
	return order, nil
}

// DeleteOrder 後台刪除訂單，已取消的訂單庫存早已回補，其餘都要先回補再刪
func (s *OrderService) DeleteOrder(ctx context.Context, orderID string) error {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return err
	}

	if order.Status != model.OrderStatusCancelled {
		if err := s.inventory.Restore(ctx, order.OrderItems); err != nil {
			return s.reportInconsistency(ctx, order, "restore before delete failed", err)
		}
	}

	if err := s.orderRepo.HardDeleteOrder(ctx, orderID); err != nil {
		return s.reportInconsistency(ctx, order, "delete after restore failed", err)
	}
	return nil
}

func (s *OrderService) getOrder(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if errors.Is(err, db.ErrOrderNotFound) {
		return nil, ErrOrderNotExist
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

// reportInconsistency 訂單與庫存不同步，記錄足夠的上下文供人工對帳並發警報
func (s *OrderService) reportInconsistency(ctx context.Context, order *model.Order, reason string, cause error) error {
	productIDs := make([]string, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		productIDs = append(productIDs, item.ProductID)
	}
	s.logger.Error().Err(cause).
		Str("order_id", order.OrderID).
		Strs("product_ids", productIDs).
		Str("reason", reason).
		Msg("order and stock state are inconsistent, manual reconciliation required")
	if pubErr := s.producer.PublishStockInconsistency(ctx, order.OrderID, productIDs, reason); pubErr != nil {
		s.logger.Error().Err(pubErr).Str("order_id", order.OrderID).Msg("failed to publish stock inconsistency event")
	}
	return ErrInconsistentState
}
