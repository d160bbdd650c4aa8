package models

// UserProfile holds the personal data section of a student record.
type UserProfile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	CPF       string `json:"cpf,omitempty"`
	WhatsApp  string `json:"whatsapp,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
}

// Student is the primary record edited by the student editor.
type Student struct {
	ID                  string      `json:"id,omitempty"`
	User                UserProfile `json:"user"`
	Category            string      `json:"category"`
	IsActive            bool        `json:"isActive"`
	EmergencyContact    string      `json:"emergencyContact,omitempty"`
	MedicalObservations string      `json:"medicalObservations,omitempty"`
	InternalNotes       string      `json:"internalNotes,omitempty"`
}

// Subscription is the student's active billing agreement.
type Subscription struct {
	ID            string  `json:"id"`
	PlanID        string  `json:"planId"`
	PlanName      string  `json:"planName"`
	Status        string  `json:"status"`
	Price         float64 `json:"price"`
	StartedAt     string  `json:"startedAt,omitempty"`
	NextBillingAt string  `json:"nextBillingAt,omitempty"`
}

// BillingPlan is one plan offered to students.
type BillingPlan struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Interval string   `json:"interval,omitempty"`
	Features []string `json:"features"`
}

// FinancialEntry is one row of the student's financial history.
type FinancialEntry struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
	DueDate     string  `json:"dueDate,omitempty"`
	PaidAt      string  `json:"paidAt,omitempty"`
}

// Document is an uploaded file attached to a student.
type Document struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	UploadedAt string `json:"uploadedAt,omitempty"`
}

// HistoryEvent is one entry of the student's activity history.
type HistoryEvent struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
	OccurredAt  string `json:"occurredAt,omitempty"`
}

// CourseProgress summarises a student's advance through one course.
type CourseProgress struct {
	CourseID         string  `json:"courseId"`
	CourseName       string  `json:"courseName"`
	Progress         float64 `json:"progress"`
	CompletedLessons int     `json:"completedLessons"`
	TotalLessons     int     `json:"totalLessons"`
}

// StudentBundle aggregates a student with the related collections the
// editor tabs need, composed server-side and fetched in one call.
type StudentBundle struct {
	Student      *Student         `json:"student,omitempty"`
	Subscription *Subscription    `json:"subscription,omitempty"`
	BillingPlans []BillingPlan    `json:"billingPlans"`
	Financial    []FinancialEntry `json:"financial"`
}

// Normalize replaces absent sub-collections with empty slices so
// renderers never see nil. Any section of the aggregate may be missing.
func (b *StudentBundle) Normalize() {
	if b.BillingPlans == nil {
		b.BillingPlans = []BillingPlan{}
	}
	for i := range b.BillingPlans {
		if b.BillingPlans[i].Features == nil {
			b.BillingPlans[i].Features = []string{}
		}
	}
	if b.Financial == nil {
		b.Financial = []FinancialEntry{}
	}
}
