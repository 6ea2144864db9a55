package service

import (
	"context"
	"database/sql"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/studentpro/studentpro-api/internal/models"
	appErrors "github.com/studentpro/studentpro-api/pkg/errors"
	"github.com/studentpro/studentpro-api/pkg/storage"
)

// CacheKeyAll is the cache entry holding the full collection snapshot; writes
// invalidate every students:* key instead of patching it.
const (
	CacheKeyAll      = "students:all"
	cacheKeyPattern  = "students:*"
	defaultMaxAvatar = 2 * 1024 * 1024
)

type studentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) error
}

type avatarStorage interface {
	SaveStream(filename string, r io.Reader) (string, error)
	Delete(filename string) error
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context, pattern string) error
}

// StudentForm carries the multipart form fields shared by create and update.
// Numeric fields arrive as strings and are parsed explicitly; blank means
// absent, never zero.
type StudentForm struct {
	Name         string `form:"name" validate:"required"`
	Email        string `form:"email" validate:"required"`
	Course       string `form:"course"`
	Age          string `form:"age"`
	RollNumber   string `form:"rollNumber"`
	Phone        string `form:"phone"`
	Department   string `form:"department"`
	GPA          string `form:"gpa"`
	Skills       string `form:"skills"`
	Achievements string `form:"achievements"`
	Portfolio    string `form:"portfolio"`
}

func (f *StudentForm) trim() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Course = strings.TrimSpace(f.Course)
	f.Age = strings.TrimSpace(f.Age)
	f.RollNumber = strings.TrimSpace(f.RollNumber)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Department = strings.TrimSpace(f.Department)
	f.GPA = strings.TrimSpace(f.GPA)
	f.Skills = strings.TrimSpace(f.Skills)
	f.Achievements = strings.TrimSpace(f.Achievements)
	f.Portfolio = strings.TrimSpace(f.Portfolio)
}

// AvatarUpload carries upload metadata and the content reader.
type AvatarUpload struct {
	Filename string
	Size     int64
	MimeType string
	Content  io.Reader
}

// StudentServiceConfig holds upload validation parameters.
type StudentServiceConfig struct {
	MaxFileSize  int64
	AllowedMIMEs []string
	URLPrefix    string
}

// StudentService handles student record use-cases.
type StudentService struct {
	repo      studentRepository
	storage   avatarStorage
	cache     cacheInvalidator
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	cfg       StudentServiceConfig
	mimeSet   map[string]struct{}
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, store avatarStorage, cache cacheInvalidator, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger, cfg StudentServiceConfig) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = defaultMaxAvatar
	}
	if len(cfg.AllowedMIMEs) == 0 {
		cfg.AllowedMIMEs = []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}
	}
	if cfg.URLPrefix == "" {
		cfg.URLPrefix = "/uploads"
	}
	mimeSet := make(map[string]struct{}, len(cfg.AllowedMIMEs))
	for _, mt := range cfg.AllowedMIMEs {
		mimeSet[strings.ToLower(mt)] = struct{}{}
	}
	return &StudentService{
		repo:      repo,
		storage:   store,
		cache:     cache,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
		mimeSet:   mimeSet,
	}
}

// List returns the full collection, newest first.
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	return students, nil
}

// Get returns a single student.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// Create registers a new student, storing the avatar file when provided.
func (s *StudentService) Create(ctx context.Context, form StudentForm, upload *AvatarUpload) (*models.Student, error) {
	student, err := s.fromForm(form)
	if err != nil {
		return nil, err
	}
	if upload != nil {
		avatar, err := s.saveAvatar(upload)
		if err != nil {
			return nil, err
		}
		student.Avatar = avatar
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	s.invalidate(ctx)
	return student, nil
}

// Update modifies an existing student. Without a new upload the stored
// avatar is preserved.
func (s *StudentService) Update(ctx context.Context, id string, form StudentForm, upload *AvatarUpload) (*models.Student, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	student, err := s.fromForm(form)
	if err != nil {
		return nil, err
	}
	student.ID = existing.ID
	student.CreatedAt = existing.CreatedAt
	student.Avatar = existing.Avatar
	if upload != nil {
		avatar, err := s.saveAvatar(upload)
		if err != nil {
			return nil, err
		}
		student.Avatar = avatar
	}
	if err := s.repo.Update(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	s.invalidate(ctx)
	return student, nil
}

// Delete removes a student record.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	s.invalidate(ctx)
	return nil
}

func (s *StudentService) fromForm(form StudentForm) (*models.Student, error) {
	form.trim()
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "name and email are required")
	}
	student := &models.Student{
		Name:         form.Name,
		Email:        form.Email,
		Course:       form.Course,
		RollNumber:   form.RollNumber,
		Phone:        form.Phone,
		Department:   form.Department,
		Skills:       form.Skills,
		Achievements: form.Achievements,
		Portfolio:    form.Portfolio,
	}
	if form.Age != "" {
		age, err := strconv.Atoi(form.Age)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "age must be a number")
		}
		student.Age = &age
	}
	if form.GPA != "" {
		gpa, err := strconv.ParseFloat(form.GPA, 64)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "gpa must be a number")
		}
		student.GPA = &gpa
	}
	return student, nil
}

func (s *StudentService) saveAvatar(upload *AvatarUpload) (string, error) {
	if upload.Size > s.cfg.MaxFileSize {
		return "", appErrors.Clone(appErrors.ErrFileTooLarge, "image must be under 2MB")
	}
	mime := strings.ToLower(strings.TrimSpace(upload.MimeType))
	if _, ok := s.mimeSet[mime]; !ok {
		return "", appErrors.Clone(appErrors.ErrUnsupportedMedia, "only image files are allowed")
	}
	name := storage.UploadName(upload.Filename, time.Now())
	if _, err := s.storage.SaveStream(name, upload.Content); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store avatar")
	}
	if s.metrics != nil {
		s.metrics.ObserveUpload(upload.Size)
	}
	return strings.TrimRight(s.cfg.URLPrefix, "/") + "/" + name, nil
}

func (s *StudentService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, cacheKeyPattern); err != nil {
		s.logger.Warn("student cache invalidation failed", zap.Error(err))
	}
}
