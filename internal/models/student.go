package models

import "strconv"

// Student mirrors the upstream /alunos resource. The identifier is
// assigned by the school API on create and immutable afterwards.
type Student struct {
	ID       int64  `json:"id"`
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Telefone string `json:"telefone"`
}

// Key returns the student identifier as used in upstream paths.
func (s Student) Key() int64 {
	return s.ID
}

// KeyString renders the identifier for URLs and exports.
func (s Student) KeyString() string {
	return strconv.FormatInt(s.ID, 10)
}

// StudentPayload is the create/update body sent upstream. Constraints
// follow the school API's published schema.
type StudentPayload struct {
	Nome     string `json:"nome" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Telefone string `json:"telefone" validate:"required,min=10,max=20"`
}
