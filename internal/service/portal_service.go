package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	appErrors "github.com/smart-defence/academy-console/pkg/errors"

	"github.com/smart-defence/academy-console/internal/models"
)

// PortalService backs the student portal pages.
type PortalService struct {
	api    platformAPI
	logger *zap.Logger
}

// NewPortalService creates the portal service.
func NewPortalService(apiClient platformAPI, logger *zap.Logger) *PortalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PortalService{api: apiClient, logger: logger}
}

func (s *PortalService) fetch(ctx context.Context, path string, dest interface{}) error {
	envelope, err := s.api.Get(ctx, path)
	if err != nil {
		return err
	}
	if !envelope.Success {
		return appErrors.Clone(appErrors.ErrUpstreamRejected, envelope.Message)
	}
	return envelope.Decode(dest)
}

// Dashboard assembles the portal landing page. Sections load
// concurrently and degrade independently; only a missing student record
// fails the page.
func (s *PortalService) Dashboard(ctx context.Context, studentID string) (models.PortalDashboard, error) {
	var (
		dashboard  models.PortalDashboard
		studentErr error
		wg         sync.WaitGroup
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		var student models.Student
		if err := s.fetch(ctx, "/api/students/"+studentID, &student); err != nil {
			studentErr = err
			return
		}
		dashboard.Student = &student
	}()
	go func() {
		defer wg.Done()
		if err := s.fetch(ctx, "/api/students/"+studentID+"/progress", &dashboard.Progress); err != nil {
			s.logger.Warn("progress section unavailable", zap.String("student_id", studentID), zap.Error(err))
		}
	}()
	go func() {
		defer wg.Done()
		if err := s.fetch(ctx, "/api/students/"+studentID+"/schedule/next", &dashboard.NextClasses); err != nil {
			s.logger.Warn("next classes section unavailable", zap.String("student_id", studentID), zap.Error(err))
		}
	}()
	wg.Wait()

	if studentErr != nil {
		return models.PortalDashboard{}, studentErr
	}
	if dashboard.Progress == nil {
		dashboard.Progress = []models.CourseProgress{}
	}
	if dashboard.NextClasses == nil {
		dashboard.NextClasses = []models.ScheduleEntry{}
	}
	return dashboard, nil
}

// Schedule lists the student's weekly class slots.
func (s *PortalService) Schedule(ctx context.Context, studentID string) ([]models.ScheduleEntry, error) {
	var entries []models.ScheduleEntry
	if err := s.fetch(ctx, "/api/students/"+studentID+"/schedule", &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.ScheduleEntry{}
	}
	return entries, nil
}

// Payments lists the student's charges.
func (s *PortalService) Payments(ctx context.Context, studentID string) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.fetch(ctx, "/api/students/"+studentID+"/payments", &payments); err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	return payments, nil
}

// Ranking returns the academy ranking board.
func (s *PortalService) Ranking(ctx context.Context) ([]models.RankingEntry, error) {
	var entries []models.RankingEntry
	if err := s.fetch(ctx, "/api/ranking", &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.RankingEntry{}
	}
	return entries, nil
}

// Checkout starts a plan purchase and returns the payment redirect.
func (s *PortalService) Checkout(ctx context.Context, studentID string, req models.CheckoutRequest) (models.CheckoutResult, error) {
	if req.PlanID == "" {
		return models.CheckoutResult{}, appErrors.Clone(appErrors.ErrValidation, "selecione um plano")
	}
	body := struct {
		models.CheckoutRequest
		StudentID string `json:"studentId"`
	}{CheckoutRequest: req, StudentID: studentID}

	envelope, err := s.api.Post(ctx, "/api/checkout", body)
	if err != nil {
		return models.CheckoutResult{}, err
	}
	if !envelope.Success {
		return models.CheckoutResult{}, appErrors.Clone(appErrors.ErrUpstreamRejected, envelope.Message)
	}
	var result models.CheckoutResult
	if err := envelope.Decode(&result); err != nil {
		return models.CheckoutResult{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "decode checkout result")
	}
	return result, nil
}
