package models

// Enrollment links a student to a course. Creation-only through the
// console; the upstream exposes no update or delete for it.
type Enrollment struct {
	AlunoID int64 `json:"aluno_id"`
	CursoID int64 `json:"curso_id"`
}

// EnrollmentPayload is the create body sent upstream.
type EnrollmentPayload struct {
	AlunoID int64 `json:"aluno_id" validate:"required,gt=0"`
	CursoID int64 `json:"curso_id" validate:"required,gt=0"`
}

// StudentEnrollments is the upstream aggregate answering "which courses
// is this student enrolled in", looked up by student name.
type StudentEnrollments struct {
	Aluno  string   `json:"aluno"`
	Cursos []string `json:"cursos"`
}

// CourseEnrollments is the upstream aggregate answering "which students
// are enrolled in this course", looked up by course code.
type CourseEnrollments struct {
	Curso  string   `json:"curso"`
	Alunos []string `json:"alunos"`
}
