package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/smart-defence/academy-console/pkg/errors"

	"github.com/smart-defence/academy-console/internal/api"
	"github.com/smart-defence/academy-console/internal/models"
)

// mockAPI answers canned envelopes per path and records the calls made.
type mockAPI struct {
	mu        sync.Mutex
	envelopes map[string]*api.Envelope
	errs      map[string]error
	calls     []string
}

func newMockAPI() *mockAPI {
	return &mockAPI{
		envelopes: map[string]*api.Envelope{},
		errs:      map[string]error{},
	}
}

func (m *mockAPI) respond(path string, success bool, data interface{}) {
	raw, _ := json.Marshal(data)
	m.envelopes[path] = &api.Envelope{Success: success, Data: raw}
}

func (m *mockAPI) fail(path string, err error) {
	m.errs[path] = err
}

func (m *mockAPI) answer(path string) (*api.Envelope, error) {
	m.mu.Lock()
	m.calls = append(m.calls, path)
	m.mu.Unlock()
	if err, ok := m.errs[path]; ok {
		return nil, err
	}
	if env, ok := m.envelopes[path]; ok {
		return env, nil
	}
	return &api.Envelope{Success: false, Message: "not found"}, nil
}

func (m *mockAPI) Get(ctx context.Context, path string) (*api.Envelope, error) {
	return m.answer(path)
}

func (m *mockAPI) Post(ctx context.Context, path string, body interface{}) (*api.Envelope, error) {
	return m.answer(path)
}

func (m *mockAPI) callCount(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == path {
			n++
		}
	}
	return n
}

func TestBundleServicePrefersAggregate(t *testing.T) {
	mock := newMockAPI()
	mock.respond("/api/students/s1/bundle", true, models.StudentBundle{
		Student: &models.Student{ID: "s1", Category: "REGULAR"},
		Financial: []models.FinancialEntry{
			{ID: "f1", Description: "Mensalidade", Amount: 150, Status: "PAID"},
		},
	})
	svc := NewBundleService(mock, nil, time.Minute, nil)

	bundle, err := svc.Load(context.Background(), "s1")

	require.NoError(t, err)
	require.NotNil(t, bundle.Student)
	assert.Equal(t, "s1", bundle.Student.ID)
	assert.Len(t, bundle.Financial, 1)
	assert.NotNil(t, bundle.BillingPlans, "normalization fills missing sections")
	assert.Equal(t, 0, mock.callCount("/api/students/s1"), "no individual fetches when aggregate works")
}

func TestBundleServiceFallsBackToSections(t *testing.T) {
	mock := newMockAPI()
	mock.fail("/api/students/s1/bundle", appErrors.ErrUpstreamUnavailable)
	mock.respond("/api/students/s1", true, models.Student{ID: "s1", Category: "REGULAR"})
	mock.respond("/api/students/s1/subscription", true, models.Subscription{ID: "sub1", PlanName: "Plano Ouro"})
	mock.respond("/api/billing-plans", true, []models.BillingPlan{{ID: "p1", Name: "Plano Prata"}})
	mock.respond("/api/students/s1/financial", true, []models.FinancialEntry{{ID: "f1"}})
	svc := NewBundleService(mock, nil, time.Minute, nil)

	bundle, err := svc.Load(context.Background(), "s1")

	require.NoError(t, err)
	require.NotNil(t, bundle.Student)
	require.NotNil(t, bundle.Subscription)
	assert.Equal(t, "Plano Ouro", bundle.Subscription.PlanName)
	assert.Len(t, bundle.BillingPlans, 1)
	assert.Len(t, bundle.Financial, 1)
}

func TestBundleServiceSectionsDegradeIndependently(t *testing.T) {
	mock := newMockAPI()
	mock.fail("/api/students/s1/bundle", appErrors.ErrUpstreamUnavailable)
	mock.respond("/api/students/s1", true, models.Student{ID: "s1"})
	mock.fail("/api/students/s1/subscription", appErrors.ErrUpstreamUnavailable)
	mock.fail("/api/billing-plans", appErrors.ErrUpstreamUnavailable)
	mock.fail("/api/students/s1/financial", appErrors.ErrUpstreamUnavailable)
	svc := NewBundleService(mock, nil, time.Minute, nil)

	bundle, err := svc.Load(context.Background(), "s1")

	require.NoError(t, err, "section failures must not fail the load")
	require.NotNil(t, bundle.Student)
	assert.Nil(t, bundle.Subscription)
	assert.Empty(t, bundle.BillingPlans)
	assert.Empty(t, bundle.Financial)
}

func TestBundleServiceStudentFailureFailsLoad(t *testing.T) {
	mock := newMockAPI()
	mock.fail("/api/students/s1/bundle", appErrors.ErrUpstreamUnavailable)
	mock.fail("/api/students/s1", appErrors.ErrUpstreamUnavailable)
	svc := NewBundleService(mock, nil, time.Minute, nil)

	_, err := svc.Load(context.Background(), "s1")
	require.Error(t, err)
}

func TestBundleServiceDisabledCacheReportsMiss(t *testing.T) {
	svc := NewBundleService(newMockAPI(), nil, time.Minute, nil)

	_, err := svc.readCache(context.Background(), "s1")
	require.ErrorIs(t, err, appErrors.ErrCacheMiss)
}

func TestBundleServiceRejectedAggregateFallsBack(t *testing.T) {
	mock := newMockAPI()
	mock.respond("/api/students/s1/bundle", false, nil)
	mock.respond("/api/students/s1", true, models.Student{ID: "s1"})
	svc := NewBundleService(mock, nil, time.Minute, nil)

	bundle, err := svc.Load(context.Background(), "s1")
	require.NoError(t, err)
	require.NotNil(t, bundle.Student)
}
