package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/MaximilianIsing/PathPal/docs" // 导入 swagger 文档
	"github.com/MaximilianIsing/PathPal/models"
	"github.com/MaximilianIsing/PathPal/services"
	"github.com/MaximilianIsing/PathPal/utils"
)

// API 聚合各服务的HTTP处理器
type API struct {
	catalog  *services.CatalogService
	chat     *services.ChatService
	profiles *services.ProfileService
}

// NewAPI 创建HTTP处理器
func NewAPI(catalog *services.CatalogService, chat *services.ChatService, profiles *services.ProfileService) *API {
	return &API{
		catalog:  catalog,
		chat:     chat,
		profiles: profiles,
	}
}

// ChatHandler godoc
// @Summary 发送聊天消息
// @Description 把用户消息和对话上下文转发给上游补全接口并返回回复
// @Tags 聊天
// @Accept json
// @Produce json
// @Param request body models.ChatRequest true "聊天请求"
// @Success 200 {object} models.ChatResponse "成功"
// @Failure 400 {object} models.ErrorResponse "参数错误"
// @Failure 503 {object} models.ErrorResponse "未配置API密钥"
// @Router /api/chat [post]
func (a *API) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !utils.RequireParam(w, "message", req.Message) {
		return
	}

	resp, err := a.chat.Chat(r.Context(), req.Message, req.Context)
	if err != nil {
		var chatErr *services.ChatError
		if errors.As(err, &chatErr) {
			utils.WriteError(w, chatErr.Status, chatErr.Message)
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// CollegesHandler godoc
// @Summary 查询大学目录
// @Description 按搜索词对名称/城市/州做不区分大小写的子串过滤，分页返回
// @Tags 大学目录
// @Produce json
// @Param search query string false "搜索词"
// @Param page query int false "页码，默认1"
// @Param per_page query int false "每页条数，默认20"
// @Success 200 {object} models.CollegeQueryResult "成功"
// @Router /api/colleges [get]
func (a *API) CollegesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := parsePositiveInt(q.Get("page"))
	perPage := parsePositiveInt(q.Get("per_page"))

	result := a.catalog.Query(q.Get("search"), page, perPage, time.Now())
	utils.WriteJSON(w, http.StatusOK, result)
}

// GetProfileHandler godoc
// @Summary 获取学生档案
// @Description 获取指定用户的档案，不存在时返回默认空档案
// @Tags 学生档案
// @Produce json
// @Param user_id query string true "用户ID"
// @Success 200 {object} models.StudentProfile "成功"
// @Failure 400 {object} models.ErrorResponse "缺少user_id"
// @Router /api/profile [get]
func (a *API) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if !utils.RequireParam(w, "user_id", userID) {
		return
	}
	utils.WriteJSON(w, http.StatusOK, a.profiles.GetProfile(userID))
}

// SaveProfileHandler godoc
// @Summary 保存学生档案
// @Description 合并保存档案：仅覆盖本次提供的字段，未提供的字段保持原值
// @Tags 学生档案
// @Accept json
// @Produce json
// @Param request body models.ProfileUpdate true "档案内容，必须包含user_id"
// @Success 200 {object} models.SuccessResponse "成功"
// @Failure 400 {object} models.ErrorResponse "参数错误"
// @Failure 500 {object} models.ErrorResponse "写入失败"
// @Router /api/profile [post]
func (a *API) SaveProfileHandler(w http.ResponseWriter, r *http.Request) {
	var update models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := a.profiles.SaveProfile(update); err != nil {
		if errors.Is(err, services.ErrMissingUserID) {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// UserIDHandler godoc
// @Summary 生成新的用户ID
// @Description 生成一个不透明的唯一用户标识
// @Tags 学生档案
// @Produce json
// @Success 200 {object} models.UserIDResponse "成功"
// @Router /api/user-id [get]
func (a *API) UserIDHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, models.UserIDResponse{UserID: a.profiles.NewUserID()})
}

// HealthHandler godoc
// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} models.HealthResponse "成功"
// @Router /health [get]
func (a *API) HealthHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, models.NewHealthResponse(time.Now()))
}

// RegisterRoutes 注册全部路由
func (a *API) RegisterRoutes(r *chi.Mux) {
	// Swagger 文档
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // Swagger JSON 的 URL
	))

	r.Post("/api/chat", a.ChatHandler)
	r.Get("/api/colleges", a.CollegesHandler)
	r.Get("/api/profile", a.GetProfileHandler)
	r.Post("/api/profile", a.SaveProfileHandler)
	r.Get("/api/user-id", a.UserIDHandler)
	r.Get("/health", a.HealthHandler)
}

// parsePositiveInt 解析分页参数，非数字或非正数时返回0由服务层取默认值
func parsePositiveInt(text string) int {
	v, err := strconv.Atoi(text)
	if err != nil || v <= 0 {
		return 0
	}
	return v
}
