package client

import (
	"context"
	"net/http"

	"github.com/noah-isme/escola-admin-console/internal/models"
)

// CourseClient exposes the /cursos operation set. The upstream offers no
// delete for courses.
type CourseClient struct {
	c *Client
}

// List fetches every course.
func (s *CourseClient) List(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := s.c.do(ctx, http.MethodGet, "/cursos", nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// GetByCode fetches one course by its business code.
func (s *CourseClient) GetByCode(ctx context.Context, codigo string) (*models.Course, error) {
	var course models.Course
	if err := s.c.do(ctx, http.MethodGet, "/cursos/"+escape(codigo), nil, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// Create registers a new course keyed by its code.
func (s *CourseClient) Create(ctx context.Context, payload models.CoursePayload) (*models.Course, error) {
	var course models.Course
	if err := s.c.do(ctx, http.MethodPost, "/cursos", payload, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// Update replaces a course's attributes, addressed by code.
func (s *CourseClient) Update(ctx context.Context, codigo string, payload models.CoursePayload) (*models.Course, error) {
	var course models.Course
	if err := s.c.do(ctx, http.MethodPut, "/cursos/"+escape(codigo), payload, &course); err != nil {
		return nil, err
	}
	return &course, nil
}
