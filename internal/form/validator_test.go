package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smart-defence/academy-console/internal/models"
)

func validCourse() models.Course {
	return models.Course{
		Name:     "Krav Maga Fundamentals",
		Level:    "BEGINNER",
		Category: "ADULT",
		Duration: 18,
	}
}

func TestValidateCourseAcceptsValidDraft(t *testing.T) {
	assert.Empty(t, ValidateCourse(NewValidator(), validCourse()))
}

func TestValidateCourseNameRequired(t *testing.T) {
	v := NewValidator()
	for _, name := range []string{"", "   ", "\t"} {
		course := validCourse()
		course.Name = name
		errs := ValidateCourse(v, course)
		require.Len(t, errs, 1, "name %q", name)
		assert.Equal(t, "name", errs[0].Field)
		assert.Equal(t, "Nome do curso é obrigatório", errs[0].Message)
	}
}

func TestValidateCourseDuration(t *testing.T) {
	v := NewValidator()
	for _, duration := range []int{0, -1, -18} {
		course := validCourse()
		course.Duration = duration
		errs := ValidateCourse(v, course)
		require.Len(t, errs, 1, "duration %d", duration)
		assert.Equal(t, "duration", errs[0].Field)
		assert.Equal(t, "Duração (semanas) é obrigatória e deve ser maior que zero", errs[0].Message)
	}
}

func TestValidateCourseReportsAllErrorsAtOnce(t *testing.T) {
	errs := ValidateCourse(NewValidator(), models.Course{})

	require.Len(t, errs, 4)
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"name", "level", "category", "duration"}, fields)
}

func validStudent() models.Student {
	return models.Student{
		User: models.UserProfile{
			FirstName: "Ana",
			LastName:  "Souza",
			Email:     "ana@example.com",
		},
		Category: "REGULAR",
	}
}

func TestValidateStudentAcceptsValidDraft(t *testing.T) {
	assert.Empty(t, ValidateStudent(NewValidator(), validStudent()))
}

func TestValidateStudentOptionalFieldsSkipWhenBlank(t *testing.T) {
	student := validStudent()
	student.User.Phone = ""
	student.User.CPF = ""
	assert.Empty(t, ValidateStudent(NewValidator(), student))
}

func TestValidateStudentCPF(t *testing.T) {
	v := NewValidator()

	student := validStudent()
	student.User.CPF = "529.982.247-25"
	assert.Empty(t, ValidateStudent(v, student))

	for _, cpf := range []string{"111.111.111-11", "123.456.789-00", "5299822472", "abc"} {
		student.User.CPF = cpf
		errs := ValidateStudent(v, student)
		require.Len(t, errs, 1, "cpf %q", cpf)
		assert.Equal(t, "CPF inválido", errs[0].Message)
	}
}

func TestValidateStudentPhoneFormat(t *testing.T) {
	v := NewValidator()

	student := validStudent()
	for _, phone := range []string{"(11) 99999-9999", "(21) 3333-4444", "(11)99999-9999"} {
		student.User.Phone = phone
		assert.Empty(t, ValidateStudent(v, student), "phone %q", phone)
	}

	for _, phone := range []string{"11999999999", "(11) 999-9999", "telefone"} {
		student.User.Phone = phone
		errs := ValidateStudent(v, student)
		require.Len(t, errs, 1, "phone %q", phone)
		assert.Equal(t, "phone", errs[0].Field)
	}
}

func TestValidateStudentCollectsEveryFailure(t *testing.T) {
	student := models.Student{
		User: models.UserProfile{
			FirstName: "A",
			Email:     "not-an-email",
			CPF:       "000.000.000-00",
		},
		Category: "GOLD",
	}

	errs := ValidateStudent(NewValidator(), student)

	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"firstName", "lastName", "email", "cpf", "category"}, fields)
}

func TestCheckStudentField(t *testing.T) {
	v := NewValidator()

	assert.Nil(t, CheckStudentField(v, "email", "ana@example.com"))
	assert.Nil(t, CheckStudentField(v, "cpf", ""))
	assert.Nil(t, CheckStudentField(v, "internalNotes", "qualquer coisa"))

	err := CheckStudentField(v, "email", "")
	require.NotNil(t, err)
	assert.Equal(t, "Email é obrigatório", err.Message)

	err = CheckStudentField(v, "cpf", "123")
	require.NotNil(t, err)
	assert.Equal(t, "CPF inválido", err.Message)

	err = CheckStudentField(v, "whatsapp", "119999")
	require.NotNil(t, err)
	assert.Equal(t, "WhatsApp inválido. Use o formato (11) 99999-9999", err.Message)
}

func TestValidateLessonPlan(t *testing.T) {
	v := NewValidator()

	plan := models.LessonPlan{Name: "Defesa de agarrões", Week: 1, Lesson: 1}
	assert.Empty(t, ValidateLessonPlan(v, plan))

	plan.Name = "  "
	plan.WarmupMinutes = -5
	errs := ValidateLessonPlan(v, plan)
	require.Len(t, errs, 2)
	assert.Equal(t, "Nome da aula é obrigatório", errs[0].Message)
	assert.Equal(t, "Duração não pode ser negativa", errs[1].Message)
}
