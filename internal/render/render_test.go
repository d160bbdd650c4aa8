package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smart-defence/academy-console/internal/models"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	return r
}

func TestCourseFormTitles(t *testing.T) {
	r := newRenderer(t)

	html, err := r.CourseForm(models.Course{}, nil)
	require.NoError(t, err)
	assert.Contains(t, html, "Novo Curso")

	html, err = r.CourseForm(models.Course{ID: "c1", Name: "Boxe"}, nil)
	require.NoError(t, err)
	assert.Contains(t, html, "Editar Curso")
	assert.Contains(t, html, `value="Boxe"`)
}

func TestCourseFormEscapesUserText(t *testing.T) {
	r := newRenderer(t)

	course := models.Course{
		Name:        `<script>alert("x")</script>`,
		Description: `"><img src=x onerror=alert(1)>`,
	}
	html, err := r.CourseForm(course, nil)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert")
	assert.NotContains(t, html, "<img src=x")
}

func TestScheduleGridEmptyState(t *testing.T) {
	r := newRenderer(t)

	html, err := r.ScheduleGrid(nil)
	require.NoError(t, err)
	assert.Contains(t, html, "Nenhum cronograma carregado")
	assert.NotContains(t, html, "schedule-week")
}

func TestScheduleGridGroupsByWeek(t *testing.T) {
	r := newRenderer(t)

	lessons := []models.ScheduledLesson{
		{LessonSummary: models.LessonSummary{ID: "l3", Week: 2, Lesson: 1, Name: "Quedas"}},
		{LessonSummary: models.LessonSummary{ID: "l2", Week: 1, Lesson: 2}},
		{
			LessonSummary: models.LessonSummary{ID: "l1", Week: 1, Lesson: 1},
			Techniques:    []models.Technique{{ID: "t1", Name: "Jab direto"}},
		},
	}
	html, err := r.ScheduleGrid(lessons)
	require.NoError(t, err)
	assert.Contains(t, html, "Semana 1")
	assert.Contains(t, html, "Semana 2")
	assert.Contains(t, html, "Jab direto")
	assert.Contains(t, html, "Sem técnicas atribuídas")
	assert.Less(t, 0, len(html))

	groups := GroupByWeek(lessons)
	require.Len(t, groups, 2)
	assert.Equal(t, 1, groups[0].Week)
	assert.Equal(t, "l1", groups[0].Lessons[0].ID)
	assert.Equal(t, "l2", groups[0].Lessons[1].ID)
}

func TestTechniquesListEmptyState(t *testing.T) {
	r := newRenderer(t)

	html, err := r.TechniquesList(nil)
	require.NoError(t, err)
	assert.Contains(t, html, "Nenhuma técnica vinculada")
}

func TestFinancialPanelEmptyStates(t *testing.T) {
	r := newRenderer(t)

	html, err := r.FinancialPanel(models.StudentBundle{})
	require.NoError(t, err)
	assert.Contains(t, html, "Nenhuma assinatura ativa")
	assert.Contains(t, html, "Nenhum plano disponível")
	assert.Contains(t, html, "Nenhum lançamento financeiro")
}

func TestFinancialPanelFormatsMoney(t *testing.T) {
	r := newRenderer(t)

	bundle := models.StudentBundle{
		Subscription: &models.Subscription{PlanName: "Plano Ouro", Price: 199.9, Status: "ACTIVE"},
		BillingPlans: []models.BillingPlan{{ID: "p1", Name: "Plano Prata", Price: 149, Features: []string{"2x por semana"}}},
	}
	html, err := r.FinancialPanel(bundle)
	require.NoError(t, err)
	assert.Contains(t, html, "R$ 199,90")
	assert.Contains(t, html, "R$ 149,00")
	assert.Contains(t, html, "2x por semana")
}

func TestDashboardEmptyStates(t *testing.T) {
	r := newRenderer(t)

	html, err := r.Dashboard(models.PortalDashboard{})
	require.NoError(t, err)
	assert.Contains(t, html, "Nenhum curso em andamento")
	assert.Contains(t, html, "Nenhuma aula agendada")
}

func TestPaymentsTableEscapesDescription(t *testing.T) {
	r := newRenderer(t)

	payments := []models.Payment{{ID: "pay1", Description: "<b>Mensalidade</b>", Amount: 150, Status: "PAID"}}
	html, err := r.PaymentsTable(payments)
	require.NoError(t, err)
	assert.NotContains(t, html, "<b>Mensalidade</b>")
	assert.Contains(t, html, "&lt;b&gt;Mensalidade&lt;/b&gt;")
}

func TestLessonNotesMarkdown(t *testing.T) {
	r := newRenderer(t)

	html, err := r.LessonNotes("## Aquecimento\n\n- corrida leve\n")
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h2>Aquecimento</h2>")
	assert.Contains(t, string(html), "<li>corrida leve</li>")
}

func TestLessonNotesDropRawHTML(t *testing.T) {
	r := newRenderer(t)

	html, err := r.LessonNotes("texto <script>alert(1)</script> fim")
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<script>")
}
