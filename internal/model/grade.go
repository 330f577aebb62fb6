package model

// ValidGradeValue 校验成绩取值："1".."10" 或 "A"（免修）
func ValidGradeValue(v string) bool {
	if v == "A" {
		return true
	}
	switch v {
	case "1", "2", "3", "4", "5", "6", "7", "8", "9", "10":
		return true
	}
	return false
}

// Grade 成绩表 — 对应 grades
// 复合主键 (student_id, evaluation_instance_id)；清空成绩即删除行
type Grade struct {
	StudentID            string `gorm:"type:uuid;primaryKey"     json:"student_id"`
	EvaluationInstanceID string `gorm:"type:uuid;primaryKey"     json:"evaluation_instance_id"`
	Value                string `gorm:"type:varchar(10);not null" json:"value"`
	BaseModel
}

// TableName 指定表名
func (Grade) TableName() string { return "grades" }
