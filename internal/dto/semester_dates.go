package dto

// ── 学期日期模块 DTO ──

// UpdateSemesterDatesRequest 更新学期日期请求（整体替换）
// 日期为 YYYY-MM-DD，空串表示清除该项
type UpdateSemesterDatesRequest struct {
	FirstSemesterStart  string `json:"first_semester_start"  binding:"omitempty,datetime=2006-01-02"`
	FirstSemesterEnd    string `json:"first_semester_end"    binding:"omitempty,datetime=2006-01-02"`
	SecondSemesterStart string `json:"second_semester_start" binding:"omitempty,datetime=2006-01-02"`
	SecondSemesterEnd   string `json:"second_semester_end"   binding:"omitempty,datetime=2006-01-02"`
}

// SemesterDatesResponse 学期日期响应
type SemesterDatesResponse struct {
	FirstSemesterStart  string `json:"first_semester_start"`
	FirstSemesterEnd    string `json:"first_semester_end"`
	SecondSemesterStart string `json:"second_semester_start"`
	SecondSemesterEnd   string `json:"second_semester_end"`
	UpdatedAt           string `json:"updated_at"`
}
