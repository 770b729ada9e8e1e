package models

// CollegeEntry 大学目录条目，由数据集原始行归一化而来。
// 所有数值字段均为可选：原始文本缺失或无法解析时为nil，绝不填零值。
type CollegeEntry struct {
	ID                  int      `json:"id"`
	Name                string   `json:"name"`
	City                string   `json:"city"`
	State               string   `json:"state"`
	Location            string   `json:"location"` // "City, ST"，由city和state拼接
	Type                string   `json:"type"`     // Public / Private / Private For-Profit
	SizeCategory        string   `json:"size"`     // Small / Medium / Large
	AcceptanceRate      *float64 `json:"acceptance_rate,omitempty"`
	SATAvg              *int     `json:"sat_avg,omitempty"` // SAT中位数
	ACTAvg              *int     `json:"act_avg,omitempty"` // ACT中位数
	TuitionInState      *int     `json:"tuition_in_state,omitempty"`
	TuitionOutState     *int     `json:"tuition_out_state,omitempty"`
	RoomBoard           *int     `json:"room_board,omitempty"`
	GraduationRate      *float64 `json:"graduation_rate,omitempty"`
	RetentionRate       *float64 `json:"retention_rate,omitempty"`
	Enrollment          *int     `json:"enrollment,omitempty"`
	StudentFacultyRatio *int     `json:"student_faculty_ratio,omitempty"`
	Region              string   `json:"region"`
	PopularMajors       string   `json:"popular_majors"`
	MedianEarnings      *int     `json:"median_earnings,omitempty"` // 毕业10年后收入中位数
	CampusSetting       string   `json:"campus_setting"`
	TestOptional        *bool    `json:"test_optional,omitempty"`
	ApplicationDeadline string   `json:"application_deadline"`
	ApplicationFee      *int     `json:"application_fee,omitempty"`
	HousingAvailable    *bool    `json:"housing_available,omitempty"`
	Latitude            *float64 `json:"latitude,omitempty"`
	Longitude           *float64 `json:"longitude,omitempty"`
	URL                 string   `json:"url"`
}

// CollegeQueryResult 目录查询结果，total为过滤后、分页前的条目总数
type CollegeQueryResult struct {
	Results []CollegeEntry `json:"results"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
	Total   int            `json:"total"`
}
