package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/SecretJA/Badminton-eweb/internal/api/dto"
	"github.com/SecretJA/Badminton-eweb/internal/api/middleware"
	"github.com/SecretJA/Badminton-eweb/internal/api/response"
	"github.com/SecretJA/Badminton-eweb/internal/domain/model"
	"github.com/SecretJA/Badminton-eweb/internal/infra/repository/db"
	"github.com/SecretJA/Badminton-eweb/internal/service"
	"github.com/go-chi/chi/v5"
)

const defaultPageSize = 10

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &OrderHandler{orderService: orderService}
}

// PlaceOrder POST /orders 下單
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}

	principal := middleware.GetPrincipal(r.Context())

	order, err := h.orderService.PlaceOrder(r.Context(), principal.UserID, service.PlaceOrderInput{
		ShippingAddress: req.ShippingAddress.ToModel(),
		PaymentMethod:   model.PaymentMethod(req.PaymentMethod),
		Note:            req.Note,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, order)
}

// ListMyOrders GET /orders 自己的訂單，分頁
func (h *OrderHandler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	page := parsePage(r)

	orders, total, err := h.orderService.GetUserOrders(r.Context(), principal.UserID, page, defaultPageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, dto.NewOrderListResponse(orders, page, defaultPageSize, total))
}

// GetOrder GET /orders/{id} 只有本人或管理員可以看
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	orderID := chi.URLParam(r, "id")

	order, err := h.orderService.GetOrder(r.Context(), orderID, principal.UserID, principal.IsAdmin())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, order)
}

// ListAllOrders GET /orders/admin/all 後台訂單列表
func (h *OrderHandler) ListAllOrders(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r)
	filter := db.OrderFilter{
		Status:  model.OrderStatus(r.URL.Query().Get("status")),
		Keyword: r.URL.Query().Get("keyword"),
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		response.Error(w, http.StatusBadRequest, "Trạng thái không hợp lệ")
		return
	}

	orders, total, err := h.orderService.GetAllOrders(r.Context(), filter, page, defaultPageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, dto.NewOrderListResponse(orders, page, defaultPageSize, total))
}

// UpdateStatus PUT /orders/{id}/status 後台更新訂單狀態
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}

	orderID := chi.URLParam(r, "id")

	order, err := h.orderService.UpdateOrderStatus(r.Context(), orderID, model.OrderStatus(req.Status), req.Note)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, order)
}

// CancelOrder PUT /orders/{id}/cancel 用戶取消訂單，庫存回補
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.CancelOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}

	principal := middleware.GetPrincipal(r.Context())
	orderID := chi.URLParam(r, "id")

	order, err := h.orderService.CancelOrder(r.Context(), orderID, principal.UserID, req.Reason)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, order)
}

// PayOrder PUT /orders/{id}/pay 後台標記付款完成
func (h *OrderHandler) PayOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.PayOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}

	orderID := chi.URLParam(r, "id")

	order, err := h.orderService.MarkOrderPaid(r.Context(), orderID, req.PaymentResult)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, order)
}

// DeleteOrder DELETE /orders/{id} 後台刪除訂單，未取消的訂單會先回補庫存
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	if err := h.orderService.DeleteOrder(r.Context(), orderID); err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Đơn hàng đã được xóa"})
}

func parsePage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("pageNumber"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
