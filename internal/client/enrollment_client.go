package client

import (
	"context"
	"net/http"

	"github.com/noah-isme/escola-admin-console/internal/models"
)

// EnrollmentClient exposes the /matriculas operation set: create plus the
// two aggregate lookups.
type EnrollmentClient struct {
	c *Client
}

// Create enrolls a student in a course.
func (s *EnrollmentClient) Create(ctx context.Context, payload models.EnrollmentPayload) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := s.c.do(ctx, http.MethodPost, "/matriculas", payload, &enrollment); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// ByStudent lists the courses a student is enrolled in, by student name.
func (s *EnrollmentClient) ByStudent(ctx context.Context, nome string) (*models.StudentEnrollments, error) {
	var result models.StudentEnrollments
	if err := s.c.do(ctx, http.MethodGet, "/matriculas/aluno/"+escape(nome), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ByCourse lists the students enrolled in a course, by course code.
func (s *EnrollmentClient) ByCourse(ctx context.Context, codigo string) (*models.CourseEnrollments, error) {
	var result models.CourseEnrollments
	if err := s.c.do(ctx, http.MethodGet, "/matriculas/curso/"+escape(codigo), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
