package dto

// ── 成绩模块 DTO ──

// SetGradeRequest 登记成绩请求
// Value 为空串表示清除该成绩；否则须为 "1".."10" 或 "A"（免修）
type SetGradeRequest struct {
	StudentID            string `json:"student_id"             binding:"required,uuid"`
	EvaluationInstanceID string `json:"evaluation_instance_id" binding:"required,uuid"`
	Value                string `json:"value"                  binding:"max=10"`
}

// GradeRow 成绩表的一行（一名学生）
// Values 键为评估项 ID，仅包含已登记的成绩
type GradeRow struct {
	StudentID string            `json:"student_id"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Values    map[string]string `json:"values"`
}

// GradesGridResponse 某课程的完整成绩表
type GradesGridResponse struct {
	Evaluations []EvaluationResponse `json:"evaluations"`
	Rows        []GradeRow           `json:"rows"`
}
