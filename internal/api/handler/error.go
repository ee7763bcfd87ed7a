package handler

import (
	"errors"
	"net/http"

	"github.com/SecretJA/Badminton-eweb/internal/api/response"
	"github.com/SecretJA/Badminton-eweb/internal/domain/model"
	"github.com/SecretJA/Badminton-eweb/internal/infra/repository/db"
	"github.com/SecretJA/Badminton-eweb/internal/service"
)

// writeServiceError 把service層的錯誤翻成HTTP狀態碼與前端訊息
// 不一致錯誤已在service層記錄並發警報，對外一律是一般的伺服器錯誤
func writeServiceError(w http.ResponseWriter, err error) {
	var validationErrs service.ValidationErrors
	var outOfStock *service.OutOfStockError
	var unavailable *service.ProductUnavailableError

	switch {
	case errors.As(err, &validationErrs):
		fields := make([]string, 0, len(validationErrs))
		for _, v := range validationErrs {
			fields = append(fields, v.Message)
		}
		response.ValidationFailed(w, "Dữ liệu không hợp lệ", fields)
	case errors.As(err, &outOfStock), errors.As(err, &unavailable):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrQuantityOutOfRange):
		response.Error(w, http.StatusBadRequest, "Số lượng phải từ 1-100")
	case errors.Is(err, service.ErrStockExceeded),
		errors.Is(err, db.ErrProductStockNotEnough):
		response.Error(w, http.StatusBadRequest, "Số lượng vượt quá tồn kho")
	case errors.Is(err, service.ErrProductUnavailable):
		response.Error(w, http.StatusNotFound, "Sản phẩm không tồn tại")
	case errors.Is(err, db.ErrProductNotFound), errors.Is(err, db.ErrProductInactive):
		response.Error(w, http.StatusBadRequest, "Sản phẩm không còn bán")
	case errors.Is(err, service.ErrCartNotFound):
		response.Error(w, http.StatusNotFound, "Giỏ hàng không tồn tại")
	case errors.Is(err, service.ErrCartItemNotFound):
		response.Error(w, http.StatusNotFound, "Sản phẩm không có trong giỏ hàng")
	case errors.Is(err, service.ErrCartEmpty):
		response.Error(w, http.StatusBadRequest, "Giỏ hàng trống")
	case errors.Is(err, service.ErrOrderNotExist):
		response.Error(w, http.StatusNotFound, "Không tìm thấy đơn hàng")
	case errors.Is(err, service.ErrForbidden):
		response.Error(w, http.StatusForbidden, "Không có quyền truy cập")
	case errors.Is(err, service.ErrInvalidStatus), errors.Is(err, model.ErrInvalidTransition):
		response.Error(w, http.StatusBadRequest, "Trạng thái không hợp lệ")
	case errors.Is(err, service.ErrInvalidPayMethod):
		response.Error(w, http.StatusBadRequest, "Phương thức thanh toán không hợp lệ")
	case errors.Is(err, service.ErrInvalidReason):
		response.Error(w, http.StatusBadRequest, "Lý do hủy phải từ 10-500 ký tự")
	case errors.Is(err, service.ErrNotCancellable):
		response.Error(w, http.StatusBadRequest, "Không thể hủy đơn hàng ở trạng thái này")
	case errors.Is(err, model.ErrAlreadyPaid):
		response.Error(w, http.StatusBadRequest, "Đơn hàng đã được thanh toán")
	default:
		response.Error(w, http.StatusInternalServerError, "Lỗi server")
	}
}
