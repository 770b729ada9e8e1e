package store

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/MaximilianIsing/PathPal/logger"
	"github.com/MaximilianIsing/PathPal/models"
)

// ProfileHeader 档案文件的列定义，列顺序即文件内的字段顺序
var ProfileHeader = []string{
	"user_id", "name", "grade", "gpa", "weighted",
	"sat", "act", "psat", "majors", "activities",
	"interests", "career_goals", "created_at", "updated_at",
}

// 时间戳格式，与ISO-8601毫秒精度一致
const timeLayout = "2006-01-02T15:04:05.000Z"

// ProfileStore 基于分隔文本文件的档案存储。
// 每次写入都重新加载全部记录并整体重写文件，写操作用互斥锁串行化。
type ProfileStore struct {
	path string
	mu   sync.Mutex

	// Now 可在测试中替换以获得确定的时间戳
	Now func() time.Time
}

// NewProfileStore 创建档案存储，文件不存在时写入仅含表头的新文件
func NewProfileStore(path string) *ProfileStore {
	s := &ProfileStore{
		path: path,
		Now:  time.Now,
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if writeErr := os.WriteFile(path, []byte(EncodeRow(ProfileHeader)+"\n"), 0644); writeErr != nil {
			logger.Error("初始化档案文件失败", "path", path, "error", writeErr)
		}
	}
	return s
}

// loadRecords 读取全部记录为 字段名->文本 的映射列表。
// 读取失败返回空列表；字段数少于表头的行视为损坏直接丢弃，多余字段忽略。
func (s *ProfileStore) loadRecords() []map[string]string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		logger.Warn("读取档案文件失败，按空数据处理", "path", s.path, "error", err)
		return nil
	}

	rows := DecodeRows(string(data))
	if len(rows) < 2 {
		// 仅有表头或文件为空
		return nil
	}

	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < len(header) {
			logger.Warn("丢弃损坏的档案记录", "fields", len(row), "expected", len(header))
			continue
		}
		rec := make(map[string]string, len(header))
		for i, name := range header {
			rec[name] = row[i]
		}
		records = append(records, rec)
	}
	return records
}

// writeRecords 按表头顺序重新编码全部记录并整体覆盖文件
func (s *ProfileStore) writeRecords(records []map[string]string) bool {
	lines := make([]byte, 0, 256)
	lines = append(lines, EncodeRow(ProfileHeader)...)
	lines = append(lines, '\n')
	for _, rec := range records {
		row := make([]string, len(ProfileHeader))
		for i, name := range ProfileHeader {
			row[i] = rec[name]
		}
		lines = append(lines, EncodeRow(row)...)
		lines = append(lines, '\n')
	}

	if err := os.WriteFile(s.path, lines, 0644); err != nil {
		logger.Error("写入档案文件失败", "path", s.path, "error", err)
		return false
	}
	return true
}

// LoadAll 加载全部档案
func (s *ProfileStore) LoadAll() []models.StudentProfile {
	records := s.loadRecords()
	profiles := make([]models.StudentProfile, 0, len(records))
	for _, rec := range records {
		profiles = append(profiles, recordToProfile(rec))
	}
	return profiles
}

// FindByKey 按user_id查找档案
func (s *ProfileStore) FindByKey(userID string) (*models.StudentProfile, bool) {
	for _, rec := range s.loadRecords() {
		if rec["user_id"] == userID {
			p := recordToProfile(rec)
			return &p, true
		}
	}
	return nil, false
}

// Upsert 合并保存一条档案：已存在时仅覆盖本次提供的字段并刷新updated_at，
// 不存在时追加新记录且created_at等于updated_at。返回写入是否成功。
func (s *ProfileStore) Upsert(update models.ProfileUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.loadRecords()
	now := s.Now().UTC().Format(timeLayout)

	found := false
	for _, rec := range records {
		if rec["user_id"] == update.UserID {
			applyUpdate(rec, update)
			rec["updated_at"] = now
			found = true
			break
		}
	}

	if !found {
		rec := map[string]string{
			"user_id":    update.UserID,
			"majors":     "[]",
			"interests":  "[]",
			"weighted":   "false",
			"created_at": now,
			"updated_at": now,
		}
		applyUpdate(rec, update)
		records = append(records, rec)
	}

	return s.writeRecords(records)
}

// applyUpdate 将本次提供的字段覆盖到记录上，nil字段保持原值
func applyUpdate(rec map[string]string, update models.ProfileUpdate) {
	setString := func(name string, v *string) {
		if v != nil {
			rec[name] = *v
		}
	}
	setString("name", update.Name)
	setString("grade", update.Grade)
	setString("gpa", update.GPA)
	setString("sat", update.SAT)
	setString("act", update.ACT)
	setString("psat", update.PSAT)
	setString("activities", update.Activities)
	setString("career_goals", update.CareerGoals)

	if update.Weighted != nil {
		if *update.Weighted {
			rec["weighted"] = "true"
		} else {
			rec["weighted"] = "false"
		}
	}
	if update.Majors != nil {
		rec["majors"] = encodeList(*update.Majors)
	}
	if update.Interests != nil {
		rec["interests"] = encodeList(*update.Interests)
	}
}

// recordToProfile 将原始记录转换为类型化档案，列表字段解析失败时回退为空列表
func recordToProfile(rec map[string]string) models.StudentProfile {
	return models.StudentProfile{
		UserID:      rec["user_id"],
		Name:        rec["name"],
		Grade:       rec["grade"],
		GPA:         rec["gpa"],
		Weighted:    rec["weighted"] == "true",
		SAT:         rec["sat"],
		ACT:         rec["act"],
		PSAT:        rec["psat"],
		Majors:      decodeList(rec["majors"]),
		Activities:  rec["activities"],
		Interests:   decodeList(rec["interests"]),
		CareerGoals: rec["career_goals"],
		CreatedAt:   rec["created_at"],
		UpdatedAt:   rec["updated_at"],
	}
}

// encodeList 将字符串列表序列化为内嵌JSON文本
func encodeList(values []string) string {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// decodeList 解析内嵌JSON列表，失败时返回空列表
func decodeList(text string) []string {
	var values []string
	if err := json.Unmarshal([]byte(text), &values); err != nil || values == nil {
		return []string{}
	}
	return values
}
