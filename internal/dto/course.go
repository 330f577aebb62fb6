package dto

// ── 课程模块 DTO ──

// CreateCourseRequest 创建课程请求
type CreateCourseRequest struct {
	Name     string `json:"name"     binding:"required,min=1,max=200"`
	Schedule string `json:"schedule" binding:"max=500"` // 如 "Lunes 10-12, Miércoles 14-16"
}

// UpdateCourseRequest 更新课程请求
type UpdateCourseRequest struct {
	Name     *string `json:"name"     binding:"omitempty,min=1,max=200"`
	Schedule *string `json:"schedule" binding:"omitempty,max=500"`
	Status   *string `json:"status"   binding:"omitempty,oneof=activo archivado"`
}

// CourseResponse 课程信息响应
type CourseResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Schedule  string `json:"schedule"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
