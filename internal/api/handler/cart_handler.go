package handler

import (
	"encoding/json"
	"net/http"

	"github.com/SecretJA/Badminton-eweb/internal/api/dto"
	"github.com/SecretJA/Badminton-eweb/internal/api/middleware"
	"github.com/SecretJA/Badminton-eweb/internal/api/response"
	"github.com/SecretJA/Badminton-eweb/internal/service"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	cartService service.ICartService
}

func NewCartHandler(cartService service.ICartService) *CartHandler {
	if cartService == nil {
		panic("cartService cannot be nil")
	}
	return &CartHandler{cartService: cartService}
}

// GetCart GET /cart 購物車內容加即時商品資訊與預覽金額
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	detail, err := h.cartService.GetCart(r.Context(), principal.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, dto.NewCartResponse(detail))
}

// AddItem POST /cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req dto.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}
	if req.ProductID == "" {
		response.Error(w, http.StatusBadRequest, "ID sản phẩm là bắt buộc")
		return
	}

	principal := middleware.GetPrincipal(r.Context())

	detail, err := h.cartService.AddItem(r.Context(), principal.UserID, req.ProductID, req.Quantity, req.SelectedOptions)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, dto.NewCartResponse(detail))
}

// UpdateItem PUT /cart/{itemId}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}

	principal := middleware.GetPrincipal(r.Context())
	itemID := chi.URLParam(r, "itemId")

	detail, err := h.cartService.UpdateItemQuantity(r.Context(), principal.UserID, itemID, req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, dto.NewCartResponse(detail))
}

// RemoveItem DELETE /cart/{itemId} 冪等
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	itemID := chi.URLParam(r, "itemId")

	detail, err := h.cartService.RemoveItem(r.Context(), principal.UserID, itemID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, dto.NewCartResponse(detail))
}

// ClearCart DELETE /cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	if err := h.cartService.ClearCart(r.Context(), principal.UserID); err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Giỏ hàng đã được làm trống"})
}
