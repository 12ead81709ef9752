package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/edu-market/course-service/internal/models"
	"github.com/edu-market/course-service/internal/repositories"
)

// mockRepository is an in-memory Repository used across the service tests.
// Not safe for concurrent use; tests are sequential.
type mockRepository struct {
	users       map[uint]*models.User
	categories  map[uint]*models.Category
	courses     map[uint]*models.Course
	enrollments map[uint]*models.Enrollment
	comments    map[uint]*models.Comment
	tokens      map[uint]*models.AuthToken

	nextID uint
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:       make(map[uint]*models.User),
		categories:  make(map[uint]*models.Category),
		courses:     make(map[uint]*models.Course),
		enrollments: make(map[uint]*models.Enrollment),
		comments:    make(map[uint]*models.Comment),
		tokens:      make(map[uint]*models.AuthToken),
	}
}

func (m *mockRepository) id() uint {
	m.nextID++
	return m.nextID
}

func (m *mockRepository) User() repositories.UserRepository             { return &mockUserRepo{m} }
func (m *mockRepository) Category() repositories.CategoryRepository     { return &mockCategoryRepo{m} }
func (m *mockRepository) Course() repositories.CourseRepository         { return &mockCourseRepo{m} }
func (m *mockRepository) Enrollment() repositories.EnrollmentRepository { return &mockEnrollmentRepo{m} }
func (m *mockRepository) Comment() repositories.CommentRepository       { return &mockCommentRepo{m} }
func (m *mockRepository) AuthToken() repositories.AuthTokenRepository   { return &mockAuthTokenRepo{m} }

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

// Fixture helpers

func (m *mockRepository) addUser(role models.UserRole, active bool) *models.User {
	id := m.id()
	user := &models.User{
		ID:        id,
		Username:  fmt.Sprintf("user%d", id),
		Email:     fmt.Sprintf("user%d@example.com", id),
		FirstName: "Test",
		LastName:  fmt.Sprintf("User%d", id),
		Role:      role,
		IsActive:  active,
	}
	m.users[id] = user
	return user
}

func (m *mockRepository) addCategory(name string) *models.Category {
	id := m.id()
	category := &models.Category{ID: id, Name: name}
	m.categories[id] = category
	return category
}

func (m *mockRepository) addCourse(teacherID, categoryID uint, title string) *models.Course {
	id := m.id()
	course := &models.Course{
		ID:         id,
		Title:      title,
		TeacherID:  &teacherID,
		CategoryID: categoryID,
	}
	m.courses[id] = course
	return course
}

func (m *mockRepository) addEnrollment(studentID, courseID uint) *models.Enrollment {
	id := m.id()
	enrollment := &models.Enrollment{ID: id, StudentID: studentID, CourseID: courseID}
	m.enrollments[id] = enrollment
	return enrollment
}

// ===== USERS =====

type mockUserRepo struct{ m *mockRepository }

func (r *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, existing := range r.m.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.m.id()
	r.m.users[user.ID] = user
	return nil
}

func (r *mockUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, ok := r.m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *mockUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range r.m.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockUserRepo) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	var out []*models.User
	for _, user := range r.m.users {
		if filters.Role != nil && user.Role != *filters.Role {
			continue
		}
		if filters.Query != "" && !strings.Contains(user.Username, filters.Query) {
			continue
		}
		copied := *user
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (r *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := r.m.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *user
	r.m.users[user.ID] = &copied
	return nil
}

func (r *mockUserRepo) Delete(ctx context.Context, id uint) error {
	delete(r.m.users, id)
	return nil
}

func (r *mockUserRepo) ExistsByID(ctx context.Context, id uint) (bool, error) {
	_, ok := r.m.users[id]
	return ok, nil
}

func (r *mockUserRepo) HasRole(ctx context.Context, id uint, role models.UserRole) (bool, error) {
	user, ok := r.m.users[id]
	return ok && user.Role == role, nil
}

// ===== CATEGORIES =====

type mockCategoryRepo struct{ m *mockRepository }

func (r *mockCategoryRepo) Create(ctx context.Context, category *models.Category) error {
	category.ID = r.m.id()
	r.m.categories[category.ID] = category
	return nil
}

func (r *mockCategoryRepo) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	category, ok := r.m.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *category
	return &copied, nil
}

func (r *mockCategoryRepo) List(ctx context.Context) ([]*models.Category, error) {
	var out []*models.Category
	for _, category := range r.m.categories {
		copied := *category
		out = append(out, &copied)
	}
	return out, nil
}

func (r *mockCategoryRepo) Update(ctx context.Context, category *models.Category) error {
	copied := *category
	r.m.categories[category.ID] = &copied
	return nil
}

func (r *mockCategoryRepo) Delete(ctx context.Context, id uint) error {
	delete(r.m.categories, id)
	for courseID, course := range r.m.courses {
		if course.CategoryID == id {
			delete(r.m.courses, courseID)
		}
	}
	return nil
}

func (r *mockCategoryRepo) ExistsByID(ctx context.Context, id uint) (bool, error) {
	_, ok := r.m.categories[id]
	return ok, nil
}

func (r *mockCategoryRepo) CountCourses(ctx context.Context, id uint) (int64, error) {
	var count int64
	for _, course := range r.m.courses {
		if course.CategoryID == id {
			count++
		}
	}
	return count, nil
}

// ===== COURSES =====

type mockCourseRepo struct{ m *mockRepository }

func (r *mockCourseRepo) Create(ctx context.Context, course *models.Course) error {
	course.ID = r.m.id()
	r.m.courses[course.ID] = course
	return nil
}

func (r *mockCourseRepo) get(id uint) (*models.Course, error) {
	course, ok := r.m.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *course
	if course.TeacherID != nil {
		if teacher, ok := r.m.users[*course.TeacherID]; ok {
			name := teacher.Username
			copied.TeacherName = &name
		}
	}
	if category, ok := r.m.categories[course.CategoryID]; ok {
		copied.CategoryName = category.Name
		copied.Category = *category
	}
	return &copied, nil
}

func (r *mockCourseRepo) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	return r.get(id)
}

func (r *mockCourseRepo) GetByIDWithDetails(ctx context.Context, id uint) (*models.Course, error) {
	course, err := r.get(id)
	if err != nil {
		return nil, err
	}
	for _, enrollment := range r.m.enrollments {
		if enrollment.CourseID == id {
			if student, ok := r.m.users[enrollment.StudentID]; ok {
				copied := *student
				course.Students = append(course.Students, &copied)
			}
		}
	}
	for _, comment := range r.m.comments {
		if comment.CourseID == id {
			course.Comments = append(course.Comments, *comment)
		}
	}
	return course, nil
}

func (r *mockCourseRepo) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	var out []*models.Course
	for id, course := range r.m.courses {
		if filters.TeacherID != nil && (course.TeacherID == nil || *course.TeacherID != *filters.TeacherID) {
			continue
		}
		if filters.CategoryID != nil && course.CategoryID != *filters.CategoryID {
			continue
		}
		copied, _ := r.get(id)
		out = append(out, copied)
	}
	// Same ordering contract as the real repository: only allow-listed
	// sort fields are honored, everything else falls back to ID order.
	sort.Slice(out, func(i, j int) bool {
		if filters.SortBy == "title" {
			return out[i].Title < out[j].Title
		}
		return out[i].ID < out[j].ID
	})
	return out, int64(len(out)), nil
}

func (r *mockCourseRepo) Update(ctx context.Context, course *models.Course) error {
	if _, ok := r.m.courses[course.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *course
	r.m.courses[course.ID] = &copied
	return nil
}

func (r *mockCourseRepo) Delete(ctx context.Context, id uint) error {
	delete(r.m.courses, id)
	return nil
}

func (r *mockCourseRepo) ExistsByID(ctx context.Context, id uint) (bool, error) {
	_, ok := r.m.courses[id]
	return ok, nil
}

func (r *mockCourseRepo) CountByTeacher(ctx context.Context, teacherID uint) (int64, error) {
	var count int64
	for _, course := range r.m.courses {
		if course.TeacherID != nil && *course.TeacherID == teacherID {
			count++
		}
	}
	return count, nil
}

// ===== ENROLLMENTS =====

type mockEnrollmentRepo struct{ m *mockRepository }

func (r *mockEnrollmentRepo) Create(ctx context.Context, enrollment *models.Enrollment) error {
	for _, existing := range r.m.enrollments {
		if existing.StudentID == enrollment.StudentID && existing.CourseID == enrollment.CourseID {
			return gorm.ErrDuplicatedKey
		}
	}
	enrollment.ID = r.m.id()
	r.m.enrollments[enrollment.ID] = enrollment
	return nil
}

func (r *mockEnrollmentRepo) GetByID(ctx context.Context, id uint) (*models.Enrollment, error) {
	enrollment, ok := r.m.enrollments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *enrollment
	if student, ok := r.m.users[enrollment.StudentID]; ok {
		copied.Student = *student
	}
	if course, ok := r.m.courses[enrollment.CourseID]; ok {
		copied.Course = *course
		if category, ok := r.m.categories[course.CategoryID]; ok {
			copied.Course.Category = *category
		}
		if course.TeacherID != nil {
			if teacher, ok := r.m.users[*course.TeacherID]; ok {
				teacherCopy := *teacher
				copied.Course.Teacher = &teacherCopy
			}
		}
	}
	return &copied, nil
}

func (r *mockEnrollmentRepo) List(ctx context.Context, filters repositories.EnrollmentFilters) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for id, enrollment := range r.m.enrollments {
		if filters.StudentID != nil && enrollment.StudentID != *filters.StudentID {
			continue
		}
		if filters.CourseID != nil && enrollment.CourseID != *filters.CourseID {
			continue
		}
		copied, _ := r.GetByID(ctx, id)
		out = append(out, copied)
	}
	return out, nil
}

func (r *mockEnrollmentRepo) Delete(ctx context.Context, id uint) error {
	delete(r.m.enrollments, id)
	return nil
}

func (r *mockEnrollmentRepo) Exists(ctx context.Context, studentID, courseID uint) (bool, error) {
	for _, enrollment := range r.m.enrollments {
		if enrollment.StudentID == studentID && enrollment.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

// ===== COMMENTS =====

type mockCommentRepo struct{ m *mockRepository }

func (r *mockCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	for _, existing := range r.m.comments {
		if existing.StudentID == comment.StudentID && existing.CourseID == comment.CourseID {
			return gorm.ErrDuplicatedKey
		}
	}
	comment.ID = r.m.id()
	r.m.comments[comment.ID] = comment
	return nil
}

func (r *mockCommentRepo) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	comment, ok := r.m.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *comment
	if student, ok := r.m.users[comment.StudentID]; ok {
		copied.StudentName = student.Username
	}
	return &copied, nil
}

func (r *mockCommentRepo) List(ctx context.Context, filters repositories.CommentFilters) ([]*models.Comment, error) {
	var out []*models.Comment
	for id, comment := range r.m.comments {
		if filters.StudentID != nil && comment.StudentID != *filters.StudentID {
			continue
		}
		if filters.CourseID != nil && comment.CourseID != *filters.CourseID {
			continue
		}
		copied, _ := r.GetByID(ctx, id)
		out = append(out, copied)
	}
	return out, nil
}

func (r *mockCommentRepo) Update(ctx context.Context, comment *models.Comment) error {
	if _, ok := r.m.comments[comment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *comment
	r.m.comments[comment.ID] = &copied
	return nil
}

func (r *mockCommentRepo) Delete(ctx context.Context, id uint) error {
	delete(r.m.comments, id)
	return nil
}

func (r *mockCommentRepo) Exists(ctx context.Context, studentID, courseID uint) (bool, error) {
	for _, comment := range r.m.comments {
		if comment.StudentID == studentID && comment.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

// ===== AUTH TOKENS =====

type mockAuthTokenRepo struct{ m *mockRepository }

func (r *mockAuthTokenRepo) GetOrCreate(ctx context.Context, userID uint) (*models.AuthToken, error) {
	if token, ok := r.m.tokens[userID]; ok {
		return token, nil
	}
	token := &models.AuthToken{
		Key:    fmt.Sprintf("testkey-%d", userID),
		UserID: userID,
	}
	r.m.tokens[userID] = token
	return token, nil
}

func (r *mockAuthTokenRepo) GetByKey(ctx context.Context, key string) (*models.AuthToken, error) {
	for _, token := range r.m.tokens {
		if token.Key == key {
			return token, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockAuthTokenRepo) DeleteByUser(ctx context.Context, userID uint) error {
	delete(r.m.tokens, userID)
	return nil
}
