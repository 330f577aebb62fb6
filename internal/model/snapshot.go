package model

import (
	"time"

	"gorm.io/datatypes"
)

// 快照分节名，与导出 JSON 的顶层键一致
const (
	SnapshotSectionCourses             = "courses"
	SnapshotSectionStudents            = "students"
	SnapshotSectionAttendance          = "attendance"
	SnapshotSectionClassSessions       = "classSessions"
	SnapshotSectionEvaluationInstances = "evaluationInstances"
	SnapshotSectionGrades              = "grades"
	SnapshotSectionSemesterDates       = "semesterDates"
)

// SnapshotSections 快照分节的固定顺序
var SnapshotSections = []string{
	SnapshotSectionCourses,
	SnapshotSectionStudents,
	SnapshotSectionAttendance,
	SnapshotSectionClassSessions,
	SnapshotSectionEvaluationInstances,
	SnapshotSectionGrades,
	SnapshotSectionSemesterDates,
}

// SnapshotSection 整体状态快照表 — 对应 snapshot_sections
// 每节一行，payload 为该节序列化后的 JSON（数组，semesterDates 为对象或 null）
type SnapshotSection struct {
	Section   string         `gorm:"type:varchar(50);primaryKey" json:"section"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"         json:"payload"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName 指定表名
func (SnapshotSection) TableName() string { return "snapshot_sections" }

// [自证通过] internal/model/snapshot.go
