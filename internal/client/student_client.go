package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/noah-isme/escola-admin-console/internal/models"
)

// StudentClient exposes the /alunos operation set.
type StudentClient struct {
	c *Client
}

// List fetches every student.
func (s *StudentClient) List(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := s.c.do(ctx, http.MethodGet, "/alunos", nil, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// Get fetches one student by identifier.
func (s *StudentClient) Get(ctx context.Context, id int64) (*models.Student, error) {
	var student models.Student
	if err := s.c.do(ctx, http.MethodGet, fmt.Sprintf("/alunos/%d", id), nil, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// GetByName looks a student up by name.
func (s *StudentClient) GetByName(ctx context.Context, nome string) (*models.Student, error) {
	var student models.Student
	if err := s.c.do(ctx, http.MethodGet, "/alunos/nome/"+escape(nome), nil, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// GetByEmail looks a student up by email.
func (s *StudentClient) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	var student models.Student
	if err := s.c.do(ctx, http.MethodGet, "/alunos/email/"+escape(email), nil, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// Create registers a new student; the server assigns the identifier.
func (s *StudentClient) Create(ctx context.Context, payload models.StudentPayload) (*models.Student, error) {
	var student models.Student
	if err := s.c.do(ctx, http.MethodPost, "/alunos", payload, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// Update replaces a student's attributes in place.
func (s *StudentClient) Update(ctx context.Context, id int64, payload models.StudentPayload) (*models.Student, error) {
	var student models.Student
	if err := s.c.do(ctx, http.MethodPut, fmt.Sprintf("/alunos/%d", id), payload, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// Delete removes a student by identifier.
func (s *StudentClient) Delete(ctx context.Context, id int64) error {
	return s.c.do(ctx, http.MethodDelete, fmt.Sprintf("/alunos/%d", id), nil, nil)
}
