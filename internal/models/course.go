package models

// Course mirrors the upstream /cursos resource. The business code is the
// lookup and update key; there is no server-assigned identifier.
type Course struct {
	Nome      string `json:"nome"`
	Codigo    string `json:"codigo"`
	Descricao string `json:"descricao"`
}

// Key returns the course code.
func (c Course) Key() string {
	return c.Codigo
}

// CoursePayload is the create/update body sent upstream.
type CoursePayload struct {
	Nome      string `json:"nome" validate:"required,min=3,max=150"`
	Codigo    string `json:"codigo" validate:"required,min=3,max=20"`
	Descricao string `json:"descricao" validate:"required,min=10,max=500"`
}
