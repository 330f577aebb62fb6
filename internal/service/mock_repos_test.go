package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"control-docente/backend/internal/model"
	"control-docente/backend/internal/repository"
)

// ── 测试辅助 ──

// mockAutosaver 记录 Trigger 调用次数
type mockAutosaver struct {
	triggers int
}

func (m *mockAutosaver) Trigger() { m.triggers++ }

// newTestRepository 返回全部由内存桩组成的 Repository 聚合
func newTestRepository() (*repository.Repository, *testRepos) {
	mocks := &testRepos{
		user:          newMockUserRepo(),
		course:        newMockCourseRepo(),
		student:       newMockStudentRepo(),
		semesterDates: newMockSemesterDatesRepo(),
		classSession:  newMockClassSessionRepo(),
		attendance:    newMockAttendanceRepo(),
		evaluation:    newMockEvaluationRepo(),
		grade:         newMockGradeRepo(),
		snapshot:      newMockSnapshotRepo(),
	}
	repo := &repository.Repository{
		User:          mocks.user,
		Course:        mocks.course,
		Student:       mocks.student,
		SemesterDates: mocks.semesterDates,
		ClassSession:  mocks.classSession,
		Attendance:    mocks.attendance,
		Evaluation:    mocks.evaluation,
		Grade:         mocks.grade,
		Snapshot:      mocks.snapshot,
	}
	return repo, mocks
}

type testRepos struct {
	user          *mockUserRepo
	course        *mockCourseRepo
	student       *mockStudentRepo
	semesterDates *mockSemesterDatesRepo
	classSession  *mockClassSessionRepo
	attendance    *mockAttendanceRepo
	evaluation    *mockEvaluationRepo
	grade         *mockGradeRepo
	snapshot      *mockSnapshotRepo
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users     map[string]*model.User
	idCounter int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.idCounter++
		user.UserID = fmt.Sprintf("user-%d", m.idCounter)
	}
	user.CreatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses   map[string]*model.Course
	order     []string
	idCounter int
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course)}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.CourseID == "" {
		m.idCounter++
		course.CourseID = fmt.Sprintf("course-%d", m.idCounter)
	}
	course.CreatedAt = time.Now()
	m.courses[course.CourseID] = course
	m.order = append(m.order, course.CourseID)
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.Course) error {
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) List(_ context.Context) ([]model.Course, error) {
	result := make([]model.Course, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, *m.courses[id])
	}
	return result, nil
}

func (m *mockCourseRepo) ReplaceAll(_ context.Context, courses []model.Course) error {
	m.courses = make(map[string]*model.Course, len(courses))
	m.order = nil
	for i := range courses {
		cp := courses[i]
		m.courses[cp.CourseID] = &cp
		m.order = append(m.order, cp.CourseID)
	}
	return nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students  map[string]*model.Student
	idCounter int
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if student.StudentID == "" {
		m.idCounter++
		student.StudentID = fmt.Sprintf("student-%d", m.idCounter)
	}
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) CreateBatch(ctx context.Context, students []model.Student) error {
	for i := range students {
		if err := m.Create(ctx, &students[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id string) error {
	delete(m.students, id)
	return nil
}

func (m *mockStudentRepo) ListByCourse(_ context.Context, courseID string) ([]model.Student, error) {
	var result []model.Student
	for _, s := range m.students {
		if s.CourseID == courseID {
			result = append(result, *s)
		}
	}
	// 与真实仓库一致：按姓、名排序
	sort.Slice(result, func(i, j int) bool {
		if result[i].LastName != result[j].LastName {
			return result[i].LastName < result[j].LastName
		}
		return result[i].FirstName < result[j].FirstName
	})
	return result, nil
}

func (m *mockStudentRepo) ListAll(_ context.Context) ([]model.Student, error) {
	var result []model.Student
	for _, s := range m.students {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StudentID < result[j].StudentID })
	return result, nil
}

func (m *mockStudentRepo) ReplaceAll(_ context.Context, students []model.Student) error {
	m.students = make(map[string]*model.Student, len(students))
	for i := range students {
		cp := students[i]
		m.students[cp.StudentID] = &cp
	}
	return nil
}

// ── Mock SemesterDatesRepository ──

type mockSemesterDatesRepo struct {
	dates *model.SemesterDates
}

func newMockSemesterDatesRepo() *mockSemesterDatesRepo {
	// 迁移会写入种子行，桩同样从已存在的空行出发
	return &mockSemesterDatesRepo{dates: &model.SemesterDates{Singleton: true}}
}

func (m *mockSemesterDatesRepo) Get(_ context.Context) (*model.SemesterDates, error) {
	if m.dates == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.dates, nil
}

func (m *mockSemesterDatesRepo) Update(_ context.Context, dates *model.SemesterDates) error {
	dates.Singleton = true
	m.dates = dates
	return nil
}

// ── Mock ClassSessionRepository ──

type mockClassSessionRepo struct {
	sessions map[[2]string]*model.ClassSession
}

func newMockClassSessionRepo() *mockClassSessionRepo {
	return &mockClassSessionRepo{sessions: make(map[[2]string]*model.ClassSession)}
}

func (m *mockClassSessionRepo) Get(_ context.Context, courseID, date string) (*model.ClassSession, error) {
	if s, ok := m.sessions[[2]string{courseID, date}]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassSessionRepo) Upsert(_ context.Context, session *model.ClassSession) error {
	m.sessions[[2]string{session.CourseID, session.Date}] = session
	return nil
}

func (m *mockClassSessionRepo) ListByCourse(_ context.Context, courseID string) ([]model.ClassSession, error) {
	var result []model.ClassSession
	for _, s := range m.sessions {
		if s.CourseID == courseID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}

func (m *mockClassSessionRepo) ListAll(_ context.Context) ([]model.ClassSession, error) {
	var result []model.ClassSession
	for _, s := range m.sessions {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CourseID != result[j].CourseID {
			return result[i].CourseID < result[j].CourseID
		}
		return result[i].Date < result[j].Date
	})
	return result, nil
}

func (m *mockClassSessionRepo) ReplaceAll(_ context.Context, sessions []model.ClassSession) error {
	m.sessions = make(map[[2]string]*model.ClassSession, len(sessions))
	for i := range sessions {
		cp := sessions[i]
		m.sessions[[2]string{cp.CourseID, cp.Date}] = &cp
	}
	return nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	records map[[2]string]*model.AttendanceRecord
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{records: make(map[[2]string]*model.AttendanceRecord)}
}

func (m *mockAttendanceRepo) Upsert(_ context.Context, record *model.AttendanceRecord) error {
	m.records[[2]string{record.StudentID, record.Date}] = record
	return nil
}

func (m *mockAttendanceRepo) ListByStudentIDs(_ context.Context, studentIDs []string) ([]model.AttendanceRecord, error) {
	wanted := make(map[string]bool, len(studentIDs))
	for _, id := range studentIDs {
		wanted[id] = true
	}
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if wanted[r.StudentID] {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListAll(_ context.Context) ([]model.AttendanceRecord, error) {
	var result []model.AttendanceRecord
	for _, r := range m.records {
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].StudentID != result[j].StudentID {
			return result[i].StudentID < result[j].StudentID
		}
		return result[i].Date < result[j].Date
	})
	return result, nil
}

func (m *mockAttendanceRepo) ReplaceAll(_ context.Context, records []model.AttendanceRecord) error {
	m.records = make(map[[2]string]*model.AttendanceRecord, len(records))
	for i := range records {
		cp := records[i]
		m.records[[2]string{cp.StudentID, cp.Date}] = &cp
	}
	return nil
}

// ── Mock EvaluationRepository ──

type mockEvaluationRepo struct {
	instances map[string]*model.EvaluationInstance
	idCounter int
}

func newMockEvaluationRepo() *mockEvaluationRepo {
	return &mockEvaluationRepo{instances: make(map[string]*model.EvaluationInstance)}
}

func (m *mockEvaluationRepo) Create(_ context.Context, instance *model.EvaluationInstance) error {
	if instance.EvaluationInstanceID == "" {
		m.idCounter++
		instance.EvaluationInstanceID = fmt.Sprintf("eval-%d", m.idCounter)
	}
	instance.CreatedAt = time.Now()
	m.instances[instance.EvaluationInstanceID] = instance
	return nil
}

func (m *mockEvaluationRepo) GetByID(_ context.Context, id string) (*model.EvaluationInstance, error) {
	if e, ok := m.instances[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEvaluationRepo) Update(_ context.Context, instance *model.EvaluationInstance) error {
	m.instances[instance.EvaluationInstanceID] = instance
	return nil
}

func (m *mockEvaluationRepo) Delete(_ context.Context, id string) error {
	delete(m.instances, id)
	return nil
}

func (m *mockEvaluationRepo) ListByCourse(_ context.Context, courseID string) ([]model.EvaluationInstance, error) {
	var result []model.EvaluationInstance
	for _, e := range m.instances {
		if e.CourseID == courseID {
			result = append(result, *e)
		}
	}
	// 与真实仓库一致：按 sort_order、created_at 排序
	sort.Slice(result, func(i, j int) bool {
		if result[i].SortOrder != result[j].SortOrder {
			return result[i].SortOrder < result[j].SortOrder
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockEvaluationRepo) CountByCourse(_ context.Context, courseID string) (int64, error) {
	var count int64
	for _, e := range m.instances {
		if e.CourseID == courseID {
			count++
		}
	}
	return count, nil
}

func (m *mockEvaluationRepo) UpdateSortOrder(_ context.Context, id string, sortOrder int) error {
	e, ok := m.instances[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.SortOrder = sortOrder
	return nil
}

func (m *mockEvaluationRepo) ListAll(_ context.Context) ([]model.EvaluationInstance, error) {
	var result []model.EvaluationInstance
	for _, e := range m.instances {
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].EvaluationInstanceID < result[j].EvaluationInstanceID
	})
	return result, nil
}

func (m *mockEvaluationRepo) ReplaceAll(_ context.Context, instances []model.EvaluationInstance) error {
	m.instances = make(map[string]*model.EvaluationInstance, len(instances))
	for i := range instances {
		cp := instances[i]
		m.instances[cp.EvaluationInstanceID] = &cp
	}
	return nil
}

// ── Mock GradeRepository ──

type mockGradeRepo struct {
	grades map[[2]string]*model.Grade
}

func newMockGradeRepo() *mockGradeRepo {
	return &mockGradeRepo{grades: make(map[[2]string]*model.Grade)}
}

func (m *mockGradeRepo) Upsert(_ context.Context, grade *model.Grade) error {
	m.grades[[2]string{grade.StudentID, grade.EvaluationInstanceID}] = grade
	return nil
}

func (m *mockGradeRepo) Delete(_ context.Context, studentID, evaluationInstanceID string) error {
	delete(m.grades, [2]string{studentID, evaluationInstanceID})
	return nil
}

func (m *mockGradeRepo) ListByStudentIDs(_ context.Context, studentIDs []string) ([]model.Grade, error) {
	wanted := make(map[string]bool, len(studentIDs))
	for _, id := range studentIDs {
		wanted[id] = true
	}
	var result []model.Grade
	for _, g := range m.grades {
		if wanted[g.StudentID] {
			result = append(result, *g)
		}
	}
	return result, nil
}

func (m *mockGradeRepo) ListAll(_ context.Context) ([]model.Grade, error) {
	var result []model.Grade
	for _, g := range m.grades {
		result = append(result, *g)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].StudentID != result[j].StudentID {
			return result[i].StudentID < result[j].StudentID
		}
		return result[i].EvaluationInstanceID < result[j].EvaluationInstanceID
	})
	return result, nil
}

func (m *mockGradeRepo) ReplaceAll(_ context.Context, grades []model.Grade) error {
	m.grades = make(map[[2]string]*model.Grade, len(grades))
	for i := range grades {
		cp := grades[i]
		m.grades[[2]string{cp.StudentID, cp.EvaluationInstanceID}] = &cp
	}
	return nil
}

// ── Mock SnapshotRepository ──

type mockSnapshotRepo struct {
	sections map[string]*model.SnapshotSection
}

func newMockSnapshotRepo() *mockSnapshotRepo {
	return &mockSnapshotRepo{sections: make(map[string]*model.SnapshotSection)}
}

func (m *mockSnapshotRepo) UpsertSection(_ context.Context, section string, payload datatypes.JSON) error {
	m.sections[section] = &model.SnapshotSection{
		Section:   section,
		Payload:   payload,
		UpdatedAt: time.Now(),
	}
	return nil
}

func (m *mockSnapshotRepo) GetSection(_ context.Context, section string) (*model.SnapshotSection, error) {
	if s, ok := m.sections[section]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSnapshotRepo) ListAll(_ context.Context) ([]model.SnapshotSection, error) {
	var result []model.SnapshotSection
	for _, s := range m.sections {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Section < result[j].Section })
	return result, nil
}
