package dto

// ── 评估模块 DTO ──

// CreateEvaluationRequest 创建评估项请求
type CreateEvaluationRequest struct {
	CourseID string `json:"course_id" binding:"required,uuid"`
	Name     string `json:"name"      binding:"required,min=1,max=200"`
}

// RenameEvaluationRequest 重命名评估项请求
type RenameEvaluationRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// ReorderEvaluationsRequest 重排评估项请求
// OrderedIDs 必须恰好覆盖该课程的全部评估项，按新顺序排列
type ReorderEvaluationsRequest struct {
	CourseID   string   `json:"course_id"   binding:"required,uuid"`
	OrderedIDs []string `json:"ordered_ids" binding:"required,dive,uuid"`
}

// EvaluationResponse 评估项响应
type EvaluationResponse struct {
	ID       string `json:"id"`
	CourseID string `json:"course_id"`
	Name     string `json:"name"`
	Order    int    `json:"order"`
}
