package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCartNotFound       = errors.New("cart is not exist")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrCartItemNotFound   = errors.New("cart item not found")
	ErrQuantityOutOfRange = errors.New("quantity must be between 1 and 100")
	ErrProductUnavailable = errors.New("product is not available")
	ErrStockExceeded      = errors.New("quantity exceeds available stock")
	ErrOrderNotExist      = errors.New("order is not exist")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidPayMethod   = errors.New("invalid payment method")
	ErrInvalidReason      = errors.New("cancel reason must be 10 to 500 characters")
	ErrNotCancellable     = errors.New("order can not be cancelled in current status")
	ErrForbidden          = errors.New("not allowed to access this resource")
	// ErrInconsistentState 訂單與庫存狀態不一致，需要人工對帳，不能當一般錯誤吞掉
	ErrInconsistentState = errors.New("order and stock state are inconsistent")
)

// OutOfStockError 具名商品的庫存不足，訊息直接回給前端
type OutOfStockError struct {
	ProductName string
	Remaining   uint
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("Sản phẩm %s chỉ còn %d sản phẩm", e.ProductName, e.Remaining)
}

// ProductUnavailableError 商品不存在或已下架
type ProductUnavailableError struct {
	ProductName string
}

func (e *ProductUnavailableError) Error() string {
	name := e.ProductName
	if name == "" {
		name = "không xác định"
	}
	return fmt.Sprintf("Sản phẩm %s không còn bán", name)
}

// ValidationError 單一欄位驗證失敗
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Error())
	}
	return strings.Join(msgs, "; ")
}
