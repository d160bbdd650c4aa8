package render

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"github.com/yuin/goldmark"

	appErrors "github.com/smart-defence/academy-console/pkg/errors"

	"github.com/smart-defence/academy-console/internal/models"
)

// Renderer produces HTML fragments from records. Every method is a pure
// function of its inputs; templates are parsed once at construction.
type Renderer struct {
	tpl *template.Template
	md  goldmark.Markdown
}

var courseCategories = []string{"ADULT", "KIDS", "TEEN", "WOMEN"}

// New parses the fragment templates and builds the markdown converter.
func New() (*Renderer, error) {
	tpl := template.New("console").Funcs(template.FuncMap{
		"money": func(amount float64) string {
			return "R$ " + strings.ReplaceAll(fmt.Sprintf("%.2f", amount), ".", ",")
		},
	})
	for name, text := range map[string]string{
		"course-form":     courseFormTemplate,
		"schedule-grid":   scheduleGridTemplate,
		"techniques-list": techniquesListTemplate,
		"financial-panel": financialPanelTemplate,
		"dashboard":       dashboardTemplate,
		"payments-table":  paymentsTableTemplate,
		"ranking-table":   rankingTableTemplate,
	} {
		if _, err := tpl.New(name).Parse(text); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "parse template "+name)
		}
	}
	// goldmark skips raw HTML blocks unless explicitly allowed, so notes
	// stay inert too.
	return &Renderer{tpl: tpl, md: goldmark.New()}, nil
}

func (r *Renderer) exec(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render "+name)
	}
	return buf.String(), nil
}

type courseFormData struct {
	Title       string
	Course      models.Course
	Categories  []string
	MartialArts []models.MartialArt
}

// CourseForm renders the course editor form. A course without an ID is a
// new draft and gets the creation title.
func (r *Renderer) CourseForm(course models.Course, martialArts []models.MartialArt) (string, error) {
	title := "Editar Curso"
	if course.ID == "" {
		title = "Novo Curso"
	}
	return r.exec("course-form", courseFormData{
		Title:       title,
		Course:      course,
		Categories:  courseCategories,
		MartialArts: martialArts,
	})
}

// WeekGroup is the schedule of a single week, ordered by lesson number.
type WeekGroup struct {
	Week    int
	Lessons []models.ScheduledLesson
}

// GroupByWeek orders a flat lesson list into per-week groups.
func GroupByWeek(lessons []models.ScheduledLesson) []WeekGroup {
	byWeek := map[int][]models.ScheduledLesson{}
	for _, l := range lessons {
		byWeek[l.Week] = append(byWeek[l.Week], l)
	}
	weeks := make([]int, 0, len(byWeek))
	for w := range byWeek {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)
	out := make([]WeekGroup, 0, len(weeks))
	for _, w := range weeks {
		group := byWeek[w]
		sort.Slice(group, func(i, j int) bool { return group[i].Lesson < group[j].Lesson })
		out = append(out, WeekGroup{Week: w, Lessons: group})
	}
	return out
}

// ScheduleGrid renders the course schedule grouped by week. An empty
// schedule renders the empty state instead of a bare grid.
func (r *Renderer) ScheduleGrid(lessons []models.ScheduledLesson) (string, error) {
	return r.exec("schedule-grid", struct{ Weeks []WeekGroup }{GroupByWeek(lessons)})
}

// TechniquesList renders the techniques linked to a course.
func (r *Renderer) TechniquesList(techniques []models.CourseTechnique) (string, error) {
	return r.exec("techniques-list", techniques)
}

// FinancialPanel renders the financial tab from a student bundle. The
// bundle is normalized first so missing sections become empty states.
func (r *Renderer) FinancialPanel(bundle models.StudentBundle) (string, error) {
	bundle.Normalize()
	return r.exec("financial-panel", bundle)
}

// Dashboard renders the portal landing page sections.
func (r *Renderer) Dashboard(d models.PortalDashboard) (string, error) {
	return r.exec("dashboard", d)
}

// PaymentsTable renders the portal payments page.
func (r *Renderer) PaymentsTable(payments []models.Payment) (string, error) {
	return r.exec("payments-table", payments)
}

// RankingTable renders the academy ranking board.
func (r *Renderer) RankingTable(entries []models.RankingEntry) (string, error) {
	return r.exec("ranking-table", entries)
}

// LessonNotes converts markdown lesson notes to HTML. Raw HTML inside the
// notes is dropped by the converter rather than emitted.
func (r *Renderer) LessonNotes(notes string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(notes), &buf); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "convert lesson notes")
	}
	return template.HTML(buf.String()), nil
}
