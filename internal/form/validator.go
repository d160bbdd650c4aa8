package form

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/smart-defence/academy-console/internal/models"
)

// FieldError points one validation message at the form field that caused
// it. Validation always reports every failing field at once.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var brPhonePattern = regexp.MustCompile(`^\(\d{2}\)\s?\d{4,5}-\d{4}$`)

// NewValidator builds the validator instance with the academy-specific
// rules registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return ValidCPF(fl.Field().String())
	})
	v.RegisterValidation("brphone", func(fl validator.FieldLevel) bool {
		return brPhonePattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("pastdate", func(fl validator.FieldLevel) bool {
		d, err := time.Parse("2006-01-02", fl.Field().String())
		if err != nil {
			return false
		}
		return d.Before(time.Now())
	})
	return v
}

// ValidCPF runs the official CPF checksum. Formatting characters are
// ignored; sequences of a single repeated digit are rejected.
func ValidCPF(raw string) bool {
	var digits []int
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits = append(digits, int(r-'0'))
		}
	}
	if len(digits) != 11 {
		return false
	}
	same := true
	for _, d := range digits[1:] {
		if d != digits[0] {
			same = false
			break
		}
	}
	if same {
		return false
	}
	for _, pos := range []int{9, 10} {
		sum := 0
		for i := 0; i < pos; i++ {
			sum += digits[i] * (pos + 1 - i)
		}
		check := (sum * 10) % 11
		if check == 10 {
			check = 0
		}
		if check != digits[pos] {
			return false
		}
	}
	return true
}

type courseRules struct {
	Name     string `validate:"required"`
	Level    string `validate:"required"`
	Category string `validate:"required"`
	Duration int    `validate:"gt=0"`
}

var courseFieldNames = map[string]string{
	"Name":     "name",
	"Level":    "level",
	"Category": "category",
	"Duration": "duration",
}

var courseMessages = map[string]string{
	"name":     "Nome do curso é obrigatório",
	"level":    "Nível do curso é obrigatório",
	"category": "Categoria do curso é obrigatória",
	"duration": "Duração (semanas) é obrigatória e deve ser maior que zero",
}

// ValidateCourse checks a course draft and returns every failing field.
// Whitespace-only text counts as empty.
func ValidateCourse(v *validator.Validate, c models.Course) []FieldError {
	rules := courseRules{
		Name:     strings.TrimSpace(c.Name),
		Level:    strings.TrimSpace(c.Level),
		Category: strings.TrimSpace(c.Category),
		Duration: c.Duration,
	}
	return collectErrors(v.Struct(rules), courseFieldNames, func(field, _ string) string {
		return courseMessages[field]
	})
}

type studentRules struct {
	FirstName string `validate:"required,min=2,max=50"`
	LastName  string `validate:"required,min=2,max=50"`
	Email     string `validate:"required,email"`
	Phone     string `validate:"omitempty,brphone"`
	CPF       string `validate:"omitempty,cpf"`
	WhatsApp  string `validate:"omitempty,brphone"`
	BirthDate string `validate:"omitempty,pastdate"`
	Category  string `validate:"required,oneof=REGULAR VIP STUDENT SENIOR"`
}

var studentFieldNames = map[string]string{
	"FirstName": "firstName",
	"LastName":  "lastName",
	"Email":     "email",
	"Phone":     "phone",
	"CPF":       "cpf",
	"WhatsApp":  "whatsapp",
	"BirthDate": "birthDate",
	"Category":  "category",
}

func studentMessage(field, tag string) string {
	switch field {
	case "firstName":
		if tag == "required" {
			return "Nome é obrigatório"
		}
		return "Nome deve ter entre 2 e 50 caracteres"
	case "lastName":
		if tag == "required" {
			return "Sobrenome é obrigatório"
		}
		return "Sobrenome deve ter entre 2 e 50 caracteres"
	case "email":
		if tag == "required" {
			return "Email é obrigatório"
		}
		return "Email inválido"
	case "phone":
		return "Telefone inválido. Use o formato (11) 99999-9999"
	case "cpf":
		return "CPF inválido"
	case "whatsapp":
		return "WhatsApp inválido. Use o formato (11) 99999-9999"
	case "birthDate":
		return "Data de nascimento deve ser anterior à data atual"
	case "category":
		return "Categoria inválida"
	}
	return "Campo inválido"
}

// ValidateStudent checks a student draft and returns every failing field.
func ValidateStudent(v *validator.Validate, s models.Student) []FieldError {
	rules := studentRules{
		FirstName: strings.TrimSpace(s.User.FirstName),
		LastName:  strings.TrimSpace(s.User.LastName),
		Email:     strings.TrimSpace(s.User.Email),
		Phone:     strings.TrimSpace(s.User.Phone),
		CPF:       strings.TrimSpace(s.User.CPF),
		WhatsApp:  strings.TrimSpace(s.User.WhatsApp),
		BirthDate: strings.TrimSpace(s.User.BirthDate),
		Category:  strings.TrimSpace(s.Category),
	}
	return collectErrors(v.Struct(rules), studentFieldNames, studentMessage)
}

// CheckStudentField validates a single profile field, used for per-field
// feedback while the rest of the form is still being filled.
func CheckStudentField(v *validator.Validate, field, value string) *FieldError {
	value = strings.TrimSpace(value)
	var tag string
	switch field {
	case "email":
		if value == "" {
			return &FieldError{Field: field, Message: studentMessage(field, "required")}
		}
		tag = "email"
	case "cpf":
		if value == "" {
			return nil
		}
		tag = "cpf"
	case "phone", "whatsapp":
		if value == "" {
			return nil
		}
		tag = "brphone"
	case "birthDate":
		if value == "" {
			return nil
		}
		tag = "pastdate"
	default:
		return nil
	}
	if err := v.Var(value, tag); err != nil {
		return &FieldError{Field: field, Message: studentMessage(field, tag)}
	}
	return nil
}

type lessonPlanRules struct {
	Name             string `validate:"required"`
	Week             int    `validate:"gt=0"`
	Lesson           int    `validate:"gt=0"`
	WarmupMinutes    int    `validate:"gte=0"`
	TechniqueMinutes int    `validate:"gte=0"`
	DrillMinutes     int    `validate:"gte=0"`
	CooldownMinutes  int    `validate:"gte=0"`
}

var lessonPlanFieldNames = map[string]string{
	"Name":             "name",
	"Week":             "week",
	"Lesson":           "lesson",
	"WarmupMinutes":    "warmupMinutes",
	"TechniqueMinutes": "techniqueMinutes",
	"DrillMinutes":     "drillMinutes",
	"CooldownMinutes":  "cooldownMinutes",
}

func lessonPlanMessage(field, _ string) string {
	switch field {
	case "name":
		return "Nome da aula é obrigatório"
	case "week":
		return "Semana deve ser maior que zero"
	case "lesson":
		return "Aula deve ser maior que zero"
	}
	return "Duração não pode ser negativa"
}

// ValidateLessonPlan checks a lesson-plan draft and returns every failing
// field.
func ValidateLessonPlan(v *validator.Validate, p models.LessonPlan) []FieldError {
	rules := lessonPlanRules{
		Name:             strings.TrimSpace(p.Name),
		Week:             p.Week,
		Lesson:           p.Lesson,
		WarmupMinutes:    p.WarmupMinutes,
		TechniqueMinutes: p.TechniqueMinutes,
		DrillMinutes:     p.DrillMinutes,
		CooldownMinutes:  p.CooldownMinutes,
	}
	return collectErrors(v.Struct(rules), lessonPlanFieldNames, lessonPlanMessage)
}

func collectErrors(err error, names map[string]string, message func(field, tag string) string) []FieldError {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, ve := range verrs {
		field := names[ve.StructField()]
		if field == "" {
			field = ve.StructField()
		}
		out = append(out, FieldError{Field: field, Message: message(field, ve.Tag())})
	}
	return out
}
