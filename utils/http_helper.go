package utils

import (
	"encoding/json"
	"net/http"

	"github.com/MaximilianIsing/PathPal/models"
)

// WriteJSON 格式化JSON输出，使其更易读
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "    ") // 使用4个空格缩进
	encoder.Encode(data)
}

// WriteError 写入错误响应
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, models.ErrorResponse{Error: message})
}

// RequireParam 校验必填参数，缺失时写入400响应并返回false
func RequireParam(w http.ResponseWriter, name, value string) bool {
	if value == "" {
		WriteError(w, http.StatusBadRequest, name+" is required")
		return false
	}
	return true
}
