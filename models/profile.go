package models

// StudentProfile 学生档案，持久化在accounts文件中，user_id全局唯一
type StudentProfile struct {
	UserID      string   `json:"user_id"`
	Name        string   `json:"name"`
	Grade       string   `json:"grade"`
	GPA         string   `json:"gpa"`
	Weighted    bool     `json:"weighted"` // GPA是否加权
	SAT         string   `json:"sat"`
	ACT         string   `json:"act"`
	PSAT        string   `json:"psat"`
	Majors      []string `json:"majors"`
	Activities  string   `json:"activities"`
	Interests   []string `json:"interests"`
	CareerGoals string   `json:"career_goals"`
	CreatedAt   string   `json:"created_at"` // RFC3339
	UpdatedAt   string   `json:"updated_at"` // RFC3339
}

// ProfileUpdate 一次保存请求中提供的字段，nil表示未提供、保留原值
type ProfileUpdate struct {
	UserID      string    `json:"user_id"`
	Name        *string   `json:"name"`
	Grade       *string   `json:"grade"`
	GPA         *string   `json:"gpa"`
	Weighted    *bool     `json:"weighted"`
	SAT         *string   `json:"sat"`
	ACT         *string   `json:"act"`
	PSAT        *string   `json:"psat"`
	Majors      *[]string `json:"majors"`
	Activities  *string   `json:"activities"`
	Interests   *[]string `json:"interests"`
	CareerGoals *string   `json:"career_goals"`
}

// EmptyProfile 返回指定用户的默认空档案
func EmptyProfile(userID string) *StudentProfile {
	return &StudentProfile{
		UserID:    userID,
		Majors:    []string{},
		Interests: []string{},
	}
}
