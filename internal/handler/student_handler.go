package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studentpro/studentpro-api/internal/models"
	"github.com/studentpro/studentpro-api/internal/service"
	appErrors "github.com/studentpro/studentpro-api/pkg/errors"
	"github.com/studentpro/studentpro-api/pkg/response"
)

type studentService interface {
	List(ctx context.Context) ([]models.Student, error)
	Get(ctx context.Context, id string) (*models.Student, error)
	Create(ctx context.Context, form service.StudentForm, upload *service.AvatarUpload) (*models.Student, error)
	Update(ctx context.Context, id string, form service.StudentForm, upload *service.AvatarUpload) (*models.Student, error)
	Delete(ctx context.Context, id string) error
}

// StudentHandler exposes student CRUD endpoints.
type StudentHandler struct {
	students studentService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students studentService) *StudentHandler {
	return &StudentHandler{students: students}
}

// List godoc
// @Summary List all students, newest first
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.students.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, nil)
}

// Get godoc
// @Summary Get a single student
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.students.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Create godoc
// @Summary Create student
// @Tags Students
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Name"
// @Param email formData string true "Email"
// @Param course formData string false "Course"
// @Param age formData int false "Age"
// @Param rollNumber formData string false "Roll number"
// @Param phone formData string false "Phone"
// @Param department formData string false "Department"
// @Param gpa formData number false "GPA"
// @Param skills formData string false "Skills"
// @Param achievements formData string false "Achievements"
// @Param portfolio formData string false "Portfolio URL"
// @Param avatar formData file false "Avatar image"
// @Success 201 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var form service.StudentForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid student payload"))
		return
	}
	upload, cleanup, err := avatarFromRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer cleanup()

	student, err := h.students.Create(c.Request.Context(), form, upload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Update godoc
// @Summary Update student
// @Tags Students
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Student ID"
// @Param name formData string true "Name"
// @Param email formData string true "Email"
// @Param avatar formData file false "Avatar image (omit to keep the stored one)"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	var form service.StudentForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid student payload"))
		return
	}
	upload, cleanup, err := avatarFromRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer cleanup()

	student, err := h.students.Update(c.Request.Context(), c.Param("id"), form, upload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Delete godoc
// @Summary Delete student
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.students.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "student deleted"}, nil)
}

// avatarFromRequest extracts the optional avatar file from the multipart
// form. A missing file is not an error; the returned cleanup closes the
// opened file and is safe to call unconditionally.
func avatarFromRequest(c *gin.Context) (*service.AvatarUpload, func(), error) {
	noop := func() {}
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		if err == http.ErrMissingFile || err == http.ErrNotMultipart {
			return nil, noop, nil
		}
		return nil, noop, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid avatar upload")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return nil, noop, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open avatar upload")
	}
	upload := &service.AvatarUpload{
		Filename: fileHeader.Filename,
		Size:     fileHeader.Size,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Content:  src,
	}
	return upload, func() { _ = src.Close() }, nil
}
