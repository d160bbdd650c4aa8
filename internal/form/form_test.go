package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smart-defence/academy-console/internal/models"
)

func TestCollectCourseRoundTrip(t *testing.T) {
	maxAge := 45
	course := models.Course{
		ID:             "c1",
		Name:           "Krav Maga Fundamentals",
		Level:          "BEGINNER",
		Category:       "ADULT",
		MartialArtID:   "ma1",
		Duration:       18,
		ClassesPerWeek: 3,
		TotalClasses:   54,
		MinAge:         16,
		MaxAge:         &maxAge,
		OrderIndex:     2,
		Sequence:       1,
		ImageURL:       "https://cdn.example.com/krav.png",
		IsBaseCourse:   true,
		IsActive:       true,
		Description:    "Defesa pessoal para iniciantes",
		Objectives:     []string{"Postura de combate", "Defesa de socos"},
		Prerequisites:  []string{},
		Resources:      []string{"Tatame"},
	}

	got := CollectCourse(CourseFields(course))
	assert.Equal(t, course, got)
}

func TestCollectCourseDefaults(t *testing.T) {
	got := CollectCourse(FormValues{"name": {"Curso"}})

	assert.Equal(t, 0, got.Duration)
	assert.Equal(t, 2, got.ClassesPerWeek)
	assert.Equal(t, 0, got.TotalClasses)
	assert.Equal(t, 16, got.MinAge)
	assert.Nil(t, got.MaxAge)
	assert.Equal(t, 1, got.OrderIndex)
	assert.Equal(t, 1, got.Sequence)
	assert.Equal(t, "ADULT", got.Category)
	assert.True(t, got.IsActive)
	assert.False(t, got.IsBaseCourse)
}

func TestCollectCourseGarbledNumbersFallBack(t *testing.T) {
	v := FormValues{
		"classesPerWeek": {"muitas"},
		"minAge":         {"dezesseis"},
	}
	got := CollectCourse(v)
	assert.Equal(t, 2, got.ClassesPerWeek)
	assert.Equal(t, 16, got.MinAge)
}

func TestCollectCourseParsesUnitSuffix(t *testing.T) {
	v := FormValues{"duration": {"18 semanas"}}
	assert.Equal(t, 18, CollectCourse(v).Duration)
}

func TestCollectCourseFiltersBlankListEntries(t *testing.T) {
	v := FormValues{
		"objectives": {"Postura", "   ", "", "Quedas"},
	}
	got := CollectCourse(v)
	require.Equal(t, []string{"Postura", "Quedas"}, got.Objectives)
	assert.Equal(t, []string{}, got.Prerequisites)
}

func TestCollectCourseTrimsText(t *testing.T) {
	v := FormValues{"name": {"  Muay Thai  "}}
	assert.Equal(t, "Muay Thai", CollectCourse(v).Name)
}

func TestCollectCourseUncheckedBoxStaysFalse(t *testing.T) {
	v := FormValues{"isActive": {"false"}}
	assert.False(t, CollectCourse(v).IsActive)
}

func TestCollectStudentRoundTrip(t *testing.T) {
	student := models.Student{
		ID: "s1",
		User: models.UserProfile{
			FirstName: "Ana",
			LastName:  "Souza",
			Email:     "ana@example.com",
			Phone:     "(11) 99999-9999",
			CPF:       "529.982.247-25",
			WhatsApp:  "(11) 98888-7777",
			BirthDate: "1995-03-12",
		},
		Category:            "REGULAR",
		IsActive:            true,
		EmergencyContact:    "(11) 97777-6666",
		MedicalObservations: "Asma leve",
	}

	got := CollectStudent(StudentFields(student))
	assert.Equal(t, student, got)
}

func TestCollectLessonPlanRoundTrip(t *testing.T) {
	plan := models.LessonPlan{
		ID:               "lp1",
		CourseID:         "c1",
		Week:             3,
		Lesson:           2,
		Name:             "Defesa de agarrões",
		Objectives:       []string{"Pegada", "Saída lateral"},
		WarmupMinutes:    10,
		TechniqueMinutes: 25,
		DrillMinutes:     15,
		CooldownMinutes:  5,
		Notes:            "Revisar aula anterior",
	}

	got := CollectLessonPlan(LessonPlanFields(plan))
	assert.Equal(t, plan, got)
}
