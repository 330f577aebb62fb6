package model

// Student 学生表 — 对应 students
type Student struct {
	StudentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`
	CourseID  string `gorm:"type:uuid;not null;index"                       json:"course_id"`
	FirstName string `gorm:"type:varchar(100);not null"                     json:"first_name"`
	LastName  string `gorm:"type:varchar(100);not null"                     json:"last_name"`
	BaseModel

	// 关联
	Course *Course `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
}

// TableName 指定表名
func (Student) TableName() string { return "students" }

// [自证通过] internal/model/student.go
