package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"control-docente/backend/internal/dto"
	"control-docente/backend/internal/model"
)

// ── 测试辅助 ──

func setupTestAttendanceService(today time.Time) (AttendanceService, *testRepos, *mockAutosaver) {
	repo, mocks := newTestRepository()
	saver := &mockAutosaver{}
	svc := NewAttendanceService(repo, saver, zap.NewNop())
	svc.(*attendanceService).now = func() time.Time { return today }
	return svc, mocks, saver
}

func seedAttendanceCourse(mocks *testRepos) {
	mocks.course.courses["course-1"] = &model.Course{
		CourseID: "course-1",
		Name:     "Matemática I",
		Schedule: "Lunes 10-12, Miércoles 10-12",
		Status:   model.CourseStatusActive,
	}
	mocks.semesterDates.dates = &model.SemesterDates{
		Singleton:          true,
		FirstSemesterStart: "2024-03-11",
		FirstSemesterEnd:   "2024-03-20",
	}
	mocks.student.students["student-1"] = &model.Student{
		StudentID: "student-1",
		CourseID:  "course-1",
		FirstName: "Ana",
		LastName:  "García",
	}
	mocks.student.students["student-2"] = &model.Student{
		StudentID: "student-2",
		CourseID:  "course-1",
		FirstName: "Bruno",
		LastName:  "Pérez",
	}
}

// ── Grid 测试 ──

func TestAttendanceService_Grid_Success(t *testing.T) {
	today := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	svc, mocks, _ := setupTestAttendanceService(today)
	seedAttendanceCourse(mocks)

	// 已上课：11 和 13；Ana 出勤 11、缺勤 13
	mocks.classSession.sessions[[2]string{"course-1", "2024-03-11"}] = &model.ClassSession{
		CourseID: "course-1", Date: "2024-03-11", Taught: true,
	}
	mocks.classSession.sessions[[2]string{"course-1", "2024-03-13"}] = &model.ClassSession{
		CourseID: "course-1", Date: "2024-03-13", Taught: true,
	}
	mocks.attendance.records[[2]string{"student-1", "2024-03-11"}] = &model.AttendanceRecord{
		StudentID: "student-1", Date: "2024-03-11", Status: model.AttendancePresent,
	}
	mocks.attendance.records[[2]string{"student-1", "2024-03-13"}] = &model.AttendanceRecord{
		StudentID: "student-1", Date: "2024-03-13", Status: model.AttendanceAbsent,
	}

	grid, err := svc.Grid(context.Background(), "course-1")
	if err != nil {
		t.Fatalf("Grid 应成功: %v", err)
	}
	if !grid.Configured {
		t.Fatal("学期日期已配置，Configured 应为 true")
	}

	// 候选日：11、13、18、20
	if len(grid.Dates) != 4 {
		t.Fatalf("期望 4 个候选日，实际 %d", len(grid.Dates))
	}
	if !grid.Dates[0].Taught || !grid.Dates[1].Taught {
		t.Error("11 和 13 应标记为已上课")
	}
	if grid.Dates[2].Taught || grid.Dates[3].Taught {
		t.Error("18 和 20 不应标记为已上课")
	}

	// 行按姓排序：García 在 Pérez 之前
	if len(grid.Rows) != 2 {
		t.Fatalf("期望 2 行，实际 %d", len(grid.Rows))
	}
	if grid.Rows[0].LastName != "García" {
		t.Errorf("首行应为 García，实际 %s", grid.Rows[0].LastName)
	}

	// Ana：2 个已上课日中出勤 1 次 = 50%
	if grid.Rows[0].Percentage != 50 {
		t.Errorf("期望出勤率 50，实际 %d", grid.Rows[0].Percentage)
	}
	if grid.Rows[0].Statuses["2024-03-13"] != model.AttendanceAbsent {
		t.Errorf("期望 13 日状态为 A，实际 %s", grid.Rows[0].Statuses["2024-03-13"])
	}

	// Bruno 无任何记录：已上课 2 次、出勤 0 次 = 0%
	if grid.Rows[1].Percentage != 0 {
		t.Errorf("期望出勤率 0，实际 %d", grid.Rows[1].Percentage)
	}
	if len(grid.Rows[1].Statuses) != 0 {
		t.Errorf("未登记的日期不应出现在 Statuses 中，实际 %v", grid.Rows[1].Statuses)
	}
}

func TestAttendanceService_Grid_NoTaughtSessions(t *testing.T) {
	today := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	svc, mocks, _ := setupTestAttendanceService(today)
	seedAttendanceCourse(mocks)

	grid, err := svc.Grid(context.Background(), "course-1")
	if err != nil {
		t.Fatalf("Grid 应成功: %v", err)
	}
	// 尚无已上课日期时出勤率按 100 处理
	for _, row := range grid.Rows {
		if row.Percentage != 100 {
			t.Errorf("无已上课日期时期望出勤率 100，实际 %d", row.Percentage)
		}
	}
}

func TestAttendanceService_Grid_Unconfigured(t *testing.T) {
	today := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	svc, mocks, _ := setupTestAttendanceService(today)
	seedAttendanceCourse(mocks)
	mocks.semesterDates.dates = &model.SemesterDates{Singleton: true}

	grid, err := svc.Grid(context.Background(), "course-1")
	if err != nil {
		t.Fatalf("Grid 应成功: %v", err)
	}
	if grid.Configured {
		t.Error("学期日期未配置时 Configured 应为 false")
	}
	if len(grid.Dates) != 0 || len(grid.Rows) != 0 {
		t.Error("未配置时不应返回任何列或行")
	}
}

func TestAttendanceService_Grid_CourseNotFound(t *testing.T) {
	svc, _, _ := setupTestAttendanceService(time.Now())

	_, err := svc.Grid(context.Background(), "nonexistent")
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}

// ── SetStatus 测试 ──

func TestAttendanceService_SetStatus_Success(t *testing.T) {
	svc, mocks, saver := setupTestAttendanceService(time.Now())
	seedAttendanceCourse(mocks)

	req := &dto.SetAttendanceRequest{
		StudentID: "student-1",
		Date:      "2024-03-11",
		Status:    model.AttendanceJustified,
	}
	if err := svc.SetStatus(context.Background(), req, "user-1"); err != nil {
		t.Fatalf("SetStatus 应成功: %v", err)
	}

	record := mocks.attendance.records[[2]string{"student-1", "2024-03-11"}]
	if record == nil || record.Status != model.AttendanceJustified {
		t.Errorf("期望状态 J，实际 %+v", record)
	}
	if saver.triggers != 1 {
		t.Errorf("变更后应触发一次自动保存，实际 %d", saver.triggers)
	}
}

func TestAttendanceService_SetStatus_Overwrite(t *testing.T) {
	svc, mocks, _ := setupTestAttendanceService(time.Now())
	seedAttendanceCourse(mocks)
	mocks.attendance.records[[2]string{"student-1", "2024-03-11"}] = &model.AttendanceRecord{
		StudentID: "student-1", Date: "2024-03-11", Status: model.AttendanceAbsent,
	}

	req := &dto.SetAttendanceRequest{
		StudentID: "student-1",
		Date:      "2024-03-11",
		Status:    model.AttendancePresent,
	}
	if err := svc.SetStatus(context.Background(), req, "user-1"); err != nil {
		t.Fatalf("SetStatus 应成功: %v", err)
	}

	record := mocks.attendance.records[[2]string{"student-1", "2024-03-11"}]
	if record.Status != model.AttendancePresent {
		t.Errorf("同一 (学生, 日期) 应覆盖而非新增，实际状态 %s", record.Status)
	}
}

func TestAttendanceService_SetStatus_InvalidStatus(t *testing.T) {
	svc, mocks, _ := setupTestAttendanceService(time.Now())
	seedAttendanceCourse(mocks)

	req := &dto.SetAttendanceRequest{StudentID: "student-1", Date: "2024-03-11", Status: "X"}
	err := svc.SetStatus(context.Background(), req, "user-1")
	if !errors.Is(err, ErrAttendanceStatusInvalid) {
		t.Errorf("期望 ErrAttendanceStatusInvalid，实际: %v", err)
	}
}

func TestAttendanceService_SetStatus_StudentNotFound(t *testing.T) {
	svc, _, _ := setupTestAttendanceService(time.Now())

	req := &dto.SetAttendanceRequest{StudentID: "nonexistent", Date: "2024-03-11", Status: "P"}
	err := svc.SetStatus(context.Background(), req, "user-1")
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
}

// ── ToggleSession 测试 ──

func TestAttendanceService_ToggleSession_CreatesTaught(t *testing.T) {
	svc, mocks, saver := setupTestAttendanceService(time.Now())
	seedAttendanceCourse(mocks)

	result, err := svc.ToggleSession(context.Background(), "course-1", "2024-03-11", "user-1")
	if err != nil {
		t.Fatalf("ToggleSession 应成功: %v", err)
	}
	if !result.Taught {
		t.Error("无记录时首次切换应标记为已上课")
	}
	if saver.triggers != 1 {
		t.Errorf("变更后应触发一次自动保存，实际 %d", saver.triggers)
	}
}

func TestAttendanceService_ToggleSession_FlipsExisting(t *testing.T) {
	svc, mocks, _ := setupTestAttendanceService(time.Now())
	seedAttendanceCourse(mocks)
	mocks.classSession.sessions[[2]string{"course-1", "2024-03-11"}] = &model.ClassSession{
		CourseID: "course-1", Date: "2024-03-11", Taught: true,
	}

	result, err := svc.ToggleSession(context.Background(), "course-1", "2024-03-11", "user-1")
	if err != nil {
		t.Fatalf("ToggleSession 应成功: %v", err)
	}
	if result.Taught {
		t.Error("已上课的日期切换后应变为未上课")
	}

	// 再切一次回到已上课
	result, err = svc.ToggleSession(context.Background(), "course-1", "2024-03-11", "user-1")
	if err != nil {
		t.Fatalf("ToggleSession 应成功: %v", err)
	}
	if !result.Taught {
		t.Error("再次切换应恢复为已上课")
	}
}

func TestAttendanceService_ToggleSession_CourseNotFound(t *testing.T) {
	svc, _, _ := setupTestAttendanceService(time.Now())

	_, err := svc.ToggleSession(context.Background(), "nonexistent", "2024-03-11", "user-1")
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}
