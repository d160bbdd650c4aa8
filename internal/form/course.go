package form

import (
	"strconv"

	"github.com/smart-defence/academy-console/internal/models"
)

// Course field defaults applied when a numeric field is blank or garbled.
const (
	defaultClassesPerWeek = 2
	defaultMinAge         = 16
	defaultOrderIndex     = 1
	defaultSequence       = 1
	defaultCourseCategory = "ADULT"
)

// CollectCourse reads a submitted course form into a draft. Blank or
// non-numeric fields fall back to their defaults instead of poisoning the
// draft, and list entries arrive trimmed with blanks removed.
func CollectCourse(v Values) models.Course {
	category := text(v, "category")
	if category == "" {
		category = defaultCourseCategory
	}
	return models.Course{
		ID:             text(v, "id"),
		Name:           text(v, "name"),
		Level:          text(v, "level"),
		Category:       category,
		MartialArtID:   text(v, "martialArtId"),
		Duration:       intOr(v, "duration", 0),
		ClassesPerWeek: intOr(v, "classesPerWeek", defaultClassesPerWeek),
		TotalClasses:   intOr(v, "totalClasses", 0),
		MinAge:         intOr(v, "minAge", defaultMinAge),
		MaxAge:         intPtr(v, "maxAge"),
		OrderIndex:     intOr(v, "orderIndex", defaultOrderIndex),
		Sequence:       intOr(v, "sequence", defaultSequence),
		ImageURL:       text(v, "imageUrl"),
		IsBaseCourse:   boolField(v, "isBaseCourse"),
		IsActive:       boolFieldOr(v, "isActive", true),
		Description:    text(v, "description"),
		Objectives:     textList(v, "objectives"),
		Prerequisites:  textList(v, "prerequisites"),
		Resources:      textList(v, "resources"),
	}
}

// CourseFields maps a course record back onto form fields, the inverse of
// CollectCourse for well-formed records.
func CourseFields(c models.Course) FormValues {
	v := FormValues{}
	v.Set("id", c.ID)
	v.Set("name", c.Name)
	v.Set("level", c.Level)
	v.Set("category", c.Category)
	v.Set("martialArtId", c.MartialArtID)
	v.Set("duration", strconv.Itoa(c.Duration))
	v.Set("classesPerWeek", strconv.Itoa(c.ClassesPerWeek))
	v.Set("totalClasses", strconv.Itoa(c.TotalClasses))
	v.Set("minAge", strconv.Itoa(c.MinAge))
	if c.MaxAge != nil {
		v.Set("maxAge", strconv.Itoa(*c.MaxAge))
	}
	v.Set("orderIndex", strconv.Itoa(c.OrderIndex))
	v.Set("sequence", strconv.Itoa(c.Sequence))
	v.Set("imageUrl", c.ImageURL)
	v.Set("isBaseCourse", strconv.FormatBool(c.IsBaseCourse))
	v.Set("isActive", strconv.FormatBool(c.IsActive))
	v.Set("description", c.Description)
	for _, o := range c.Objectives {
		v.Add("objectives", o)
	}
	for _, p := range c.Prerequisites {
		v.Add("prerequisites", p)
	}
	for _, r := range c.Resources {
		v.Add("resources", r)
	}
	return v
}

// CollectLessonPlan reads a submitted lesson-plan form into a draft.
func CollectLessonPlan(v Values) models.LessonPlan {
	return models.LessonPlan{
		ID:               text(v, "id"),
		CourseID:         text(v, "courseId"),
		Week:             intOr(v, "week", 1),
		Lesson:           intOr(v, "lesson", 1),
		Name:             text(v, "name"),
		Objectives:       textList(v, "objectives"),
		WarmupMinutes:    intOr(v, "warmupMinutes", 0),
		TechniqueMinutes: intOr(v, "techniqueMinutes", 0),
		DrillMinutes:     intOr(v, "drillMinutes", 0),
		CooldownMinutes:  intOr(v, "cooldownMinutes", 0),
		Notes:            text(v, "notes"),
	}
}

// LessonPlanFields maps a lesson plan back onto form fields.
func LessonPlanFields(p models.LessonPlan) FormValues {
	v := FormValues{}
	v.Set("id", p.ID)
	v.Set("courseId", p.CourseID)
	v.Set("week", strconv.Itoa(p.Week))
	v.Set("lesson", strconv.Itoa(p.Lesson))
	v.Set("name", p.Name)
	for _, o := range p.Objectives {
		v.Add("objectives", o)
	}
	v.Set("warmupMinutes", strconv.Itoa(p.WarmupMinutes))
	v.Set("techniqueMinutes", strconv.Itoa(p.TechniqueMinutes))
	v.Set("drillMinutes", strconv.Itoa(p.DrillMinutes))
	v.Set("cooldownMinutes", strconv.Itoa(p.CooldownMinutes))
	v.Set("notes", p.Notes)
	return v
}
