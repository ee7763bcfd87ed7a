package response

import (
	"encoding/json"
	"net/http"
)

// ErrorBody 所有錯誤回應都只有人類可讀的message，不洩漏內部錯誤碼或stack
type ErrorBody struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{Message: message})
}

func ValidationFailed(w http.ResponseWriter, message string, fieldErrors []string) {
	JSON(w, http.StatusBadRequest, ErrorBody{Message: message, Errors: fieldErrors})
}
