package service

import (
	"reflect"
	"testing"
	"time"

	"control-docente/backend/internal/model"
)

// ── scheduleWeekdays 测试 ──

func TestScheduleWeekdays_Basic(t *testing.T) {
	got := scheduleWeekdays("Lunes 10-12, Miércoles 10-12")
	want := []time.Weekday{time.Monday, time.Wednesday}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("期望 %v，实际 %v", want, got)
	}
}

func TestScheduleWeekdays_CaseInsensitive(t *testing.T) {
	got := scheduleWeekdays("LUNES y VIERNES por la mañana")
	want := []time.Weekday{time.Monday, time.Friday}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("期望 %v，实际 %v", want, got)
	}
}

func TestScheduleWeekdays_SubstringMatch(t *testing.T) {
	// 只要文本中出现周几名称即匹配，无需固定格式
	got := scheduleWeekdays("clase los martes (aula 3)")
	want := []time.Weekday{time.Tuesday}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("期望 %v，实际 %v", want, got)
	}
}

func TestScheduleWeekdays_Empty(t *testing.T) {
	if got := scheduleWeekdays(""); got != nil {
		t.Errorf("空时间表应返回空集合，实际 %v", got)
	}
	if got := scheduleWeekdays("horario a confirmar"); got != nil {
		t.Errorf("无周几名称应返回空集合，实际 %v", got)
	}
}

// ── generateClassDates 测试 ──

func TestGenerateClassDates_BoundedByToday(t *testing.T) {
	// 2024-03-11 是周一；区间内的周一/周三：11、13、18、20
	sd := &model.SemesterDates{
		FirstSemesterStart: "2024-03-11",
		FirstSemesterEnd:   "2024-03-20",
	}
	today := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

	got := generateClassDates("Lunes 10-12, Miércoles 10-12", sd, today)
	want := []string{"2024-03-11", "2024-03-13", "2024-03-18", "2024-03-20"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("期望 %v，实际 %v", want, got)
	}
}

func TestGenerateClassDates_TodayBeforeSemesterEnd(t *testing.T) {
	sd := &model.SemesterDates{
		FirstSemesterStart: "2024-03-11",
		FirstSemesterEnd:   "2024-07-05",
	}
	// 今天在学期中段，之后的候选日不生成
	today := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)

	got := generateClassDates("Lunes y Miércoles", sd, today)
	want := []string{"2024-03-11", "2024-03-13"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("期望 %v，实际 %v", want, got)
	}
}

func TestGenerateClassDates_BothSemesters(t *testing.T) {
	sd := &model.SemesterDates{
		FirstSemesterStart:  "2024-03-11",
		FirstSemesterEnd:    "2024-03-12",
		SecondSemesterStart: "2024-08-05",
		SecondSemesterEnd:   "2024-08-06",
	}
	today := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	// 两个区间各含一个周一（2024-03-11、2024-08-05），第一学期在前
	got := generateClassDates("lunes", sd, today)
	want := []string{"2024-03-11", "2024-08-05"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("期望 %v，实际 %v", want, got)
	}
}

func TestGenerateClassDates_PartialSemesterIgnored(t *testing.T) {
	// 只设置了起始没有结束的学期不参与生成
	sd := &model.SemesterDates{
		FirstSemesterStart: "2024-03-11",
	}
	today := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	if got := generateClassDates("lunes", sd, today); len(got) != 0 {
		t.Errorf("学期配置不完整时不应生成日期，实际 %v", got)
	}
}

func TestGenerateClassDates_NilDates(t *testing.T) {
	today := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	if got := generateClassDates("lunes", nil, today); got != nil {
		t.Errorf("无学期配置应返回空，实际 %v", got)
	}
}

// ── attendancePercentage 测试 ──

func TestAttendancePercentage(t *testing.T) {
	cases := []struct {
		present, taught, want int
	}{
		{0, 0, 100}, // 尚未上课按 100 处理
		{2, 3, 67},  // 66.67 四舍五入
		{1, 3, 33},
		{3, 3, 100},
		{0, 4, 0},
		{1, 2, 50},
	}
	for _, c := range cases {
		if got := attendancePercentage(c.present, c.taught); got != c.want {
			t.Errorf("attendancePercentage(%d, %d) 期望 %d，实际 %d", c.present, c.taught, c.want, got)
		}
	}
}
