package model

// ClassSession 上课记录表 — 对应 class_sessions（稀疏：无记录即未上课）
type ClassSession struct {
	CourseID string `gorm:"type:uuid;primaryKey"       json:"course_id"`
	Date     string `gorm:"type:varchar(10);primaryKey" json:"date"` // YYYY-MM-DD
	Taught   bool   `gorm:"not null;default:false"      json:"taught"`
	BaseModel
}

// TableName 指定表名
func (ClassSession) TableName() string { return "class_sessions" }
