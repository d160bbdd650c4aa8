package models

// ScheduleEntry is one class slot shown on the portal schedule.
type ScheduleEntry struct {
	ID         string `json:"id"`
	CourseName string `json:"courseName"`
	Weekday    string `json:"weekday"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Instructor string `json:"instructor,omitempty"`
	Location   string `json:"location,omitempty"`
}

// Payment is one charge listed on the portal payments page.
type Payment struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
	DueDate     string  `json:"dueDate,omitempty"`
	PaymentURL  string  `json:"paymentUrl,omitempty"`
}

// RankingEntry is one row of the academy ranking board.
type RankingEntry struct {
	Position    int    `json:"position"`
	StudentName string `json:"studentName"`
	Belt        string `json:"belt,omitempty"`
	Points      int    `json:"points"`
}

// CheckoutRequest starts a plan purchase from the portal.
type CheckoutRequest struct {
	PlanID        string `json:"planId"`
	PaymentMethod string `json:"paymentMethod"`
}

// CheckoutResult is the platform's answer to a checkout request.
type CheckoutResult struct {
	OrderID    string `json:"orderId"`
	Status     string `json:"status"`
	PaymentURL string `json:"paymentUrl,omitempty"`
}

// ChatMessage is one message exchanged over the chat gateway.
type ChatMessage struct {
	ID     string `json:"id,omitempty"`
	From   string `json:"from"`
	Body   string `json:"body"`
	SentAt string `json:"sentAt,omitempty"`
}

// PortalDashboard aggregates the sections of the portal landing page.
// Each section degrades independently when its fetch fails.
type PortalDashboard struct {
	Student     *Student         `json:"student,omitempty"`
	Progress    []CourseProgress `json:"progress"`
	NextClasses []ScheduleEntry  `json:"nextClasses"`
}
