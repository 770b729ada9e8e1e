package models

import "time"

// ErrorResponse 错误响应，message为面向调用方的错误描述
type ErrorResponse struct {
	Error string `json:"error" example:"user_id is required"`
}

// SuccessResponse 写操作成功响应
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// UserIDResponse GET /api/user-id 响应
type UserIDResponse struct {
	UserID string `json:"user_id" example:"m1x2y3z4-a1b2c3d4"`
}

// HealthResponse GET /health 响应
type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	Timestamp string `json:"timestamp" example:"2025-01-01T00:00:00Z"`
}

// NewHealthResponse 创建健康检查响应
func NewHealthResponse(now time.Time) HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: now.UTC().Format(time.RFC3339),
	}
}
