package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MaximilianIsing/PathPal/models"
	"github.com/MaximilianIsing/PathPal/store"
	"github.com/MaximilianIsing/PathPal/utils"
)

// ErrMissingUserID 保存档案时缺少user_id
var ErrMissingUserID = errors.New("user_id is required")

// ErrSaveFailed 档案写入存储失败
var ErrSaveFailed = errors.New("failed to save profile")

// ProfileService 学生档案服务，封装flat-file存储的读写
type ProfileService struct {
	store *store.ProfileStore
}

// NewProfileService 创建档案服务
func NewProfileService(s *store.ProfileStore) *ProfileService {
	return &ProfileService{store: s}
}

// GetProfile 获取指定用户的档案，不存在时返回默认空档案而不是错误
func (s *ProfileService) GetProfile(userID string) *models.StudentProfile {
	if p, ok := s.store.FindByKey(userID); ok {
		return p
	}
	return models.EmptyProfile(userID)
}

// SaveProfile 合并保存档案，user_id为空时返回校验错误。
// majors和interests是集合语义，保存前去重。
func (s *ProfileService) SaveProfile(update models.ProfileUpdate) error {
	update.UserID = strings.TrimSpace(update.UserID)
	if update.UserID == "" {
		return ErrMissingUserID
	}

	if update.Majors != nil {
		deduped := utils.DeduplicateSlice(*update.Majors)
		update.Majors = &deduped
	}
	if update.Interests != nil {
		deduped := utils.DeduplicateSlice(*update.Interests)
		update.Interests = &deduped
	}

	if !s.store.Upsert(update) {
		return ErrSaveFailed
	}
	return nil
}

// NewUserID 生成新的用户标识：毫秒时间戳的36进制加随机片段。
// 唯一性是概率意义上的，不查存储做碰撞检查。
func (s *ProfileService) NewUserID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	entropy := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return ts + "-" + entropy
}
