package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/MaximilianIsing/PathPal/models"
	"github.com/MaximilianIsing/PathPal/store"
)

// 分页默认值
const (
	DefaultPage    = 1
	DefaultPerPage = 20
)

// CatalogService 大学目录查询服务，数据来自数据集缓存的当前快照
type CatalogService struct {
	cache *store.DatasetCache
}

// NewCatalogService 创建目录查询服务
func NewCatalogService(cache *store.DatasetCache) *CatalogService {
	return &CatalogService{cache: cache}
}

// Query 按搜索词过滤并分页返回目录条目。
// 搜索词对name/city/state做不区分大小写的子串匹配（三者任一命中即保留）；
// total为过滤后、分页前的总数；起始偏移越界时返回空列表而不是错误。
func (s *CatalogService) Query(search string, page, perPage int, now time.Time) models.CollegeQueryResult {
	if page <= 0 {
		page = DefaultPage
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	rows := s.cache.Get(now)
	needle := strings.ToLower(strings.TrimSpace(search))

	entries := make([]models.CollegeEntry, 0, len(rows))
	for i, row := range rows {
		if needle != "" && !matchesSearch(row, needle) {
			continue
		}
		// id取行在完整快照中的位置，同一快照内保持稳定
		entries = append(entries, mapEntry(i+1, row))
	}

	total := len(entries)
	start := (page - 1) * perPage
	end := start + perPage
	if start >= total {
		entries = []models.CollegeEntry{}
	} else {
		if end > total {
			end = total
		}
		entries = entries[start:end]
	}

	return models.CollegeQueryResult{
		Results: entries,
		Page:    page,
		PerPage: perPage,
		Total:   total,
	}
}

// matchesSearch 判断原始行的name/city/state是否包含搜索词
func matchesSearch(row map[string]string, needle string) bool {
	return strings.Contains(strings.ToLower(row["name"]), needle) ||
		strings.Contains(strings.ToLower(row["city"]), needle) ||
		strings.Contains(strings.ToLower(row["state"]), needle)
}

// mapEntry 将原始数据行归一化为目录条目，数值字段解析失败时置空
func mapEntry(id int, row map[string]string) models.CollegeEntry {
	city := strings.TrimSpace(row["city"])
	state := strings.TrimSpace(row["state"])

	location := city
	if city != "" && state != "" {
		location = city + ", " + state
	} else if location == "" {
		location = state
	}

	return models.CollegeEntry{
		ID:                  id,
		Name:                strings.TrimSpace(row["name"]),
		City:                city,
		State:               state,
		Location:            location,
		Type:                strings.TrimSpace(row["type"]),
		SizeCategory:        strings.TrimSpace(row["size_category"]),
		AcceptanceRate:      parseFloat(row["acceptance_rate"]),
		SATAvg:              parseInt(row["sat_50th_percentile"]),
		ACTAvg:              parseInt(row["act_50th_percentile"]),
		TuitionInState:      parseInt(row["tuition_in_state"]),
		TuitionOutState:     parseInt(row["tuition_out_state"]),
		RoomBoard:           parseInt(row["room_board"]),
		GraduationRate:      parseFloat(row["graduation_rate"]),
		RetentionRate:       parseFloat(row["retention_rate"]),
		Enrollment:          parseInt(row["enrollment"]),
		StudentFacultyRatio: parseInt(row["student_faculty_ratio"]),
		Region:              strings.TrimSpace(row["region"]),
		PopularMajors:       strings.TrimSpace(row["popular_majors"]),
		MedianEarnings:      parseInt(row["median_earnings_10_years"]),
		CampusSetting:       strings.TrimSpace(row["campus_setting"]),
		TestOptional:        parseBool(row["test_optional"]),
		ApplicationDeadline: strings.TrimSpace(row["application_deadline_fall"]),
		ApplicationFee:      parseInt(row["application_fee"]),
		HousingAvailable:    parseBool(row["housing_available"]),
		Latitude:            parseFloat(row["latitude"]),
		Longitude:           parseFloat(row["longitude"]),
		URL:                 strings.TrimSpace(row["url"]),
	}
}

// parseFloat 防御性解析浮点字段，无法解析时返回nil
func parseFloat(text string) *float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseInt 防御性解析整数字段，兼容"1200.0"这类浮点写法
func parseInt(text string) *int {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if v, err := strconv.Atoi(text); err == nil {
		return &v
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		v := int(f)
		return &v
	}
	return nil
}

// parseBool 防御性解析布尔字段
func parseBool(text string) *bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "true", "1", "yes":
		v := true
		return &v
	case "false", "0", "no":
		v := false
		return &v
	}
	return nil
}
