package handler

import (
	"net/http"

	"dental-academy-store/internal/repository"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	courseRepo     repository.CourseRepository
	instructorRepo repository.InstructorRepository
}

func NewCatalogHandler(courseRepo repository.CourseRepository, instructorRepo repository.InstructorRepository) *CatalogHandler {
	return &CatalogHandler{
		courseRepo:     courseRepo,
		instructorRepo: instructorRepo,
	}
}

func (h *CatalogHandler) ListCourses(c echo.Context) error {
	courses, err := h.courseRepo.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, courses)
}

func (h *CatalogHandler) ListInstructors(c echo.Context) error {
	instructors, err := h.instructorRepo.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, instructors)
}
