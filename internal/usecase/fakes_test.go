package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"goal-tracker/internal/domain/entity"
)

// Key columns are UUIDs, so fixtures use well-formed ids
const (
	userA = "8a1f6a3e-2f1d-4c41-9d8e-0f5b7c2a9e11"
	userB = "c4e2b9d0-5a7f-4e3b-8c61-3d9f0a1b2c22"
)

// testID returns the n-th fixture id
func testID(n int) string {
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", n)
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) SaveCredential(_ context.Context, userID string, cred *entity.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return fmt.Errorf("user %w", entity.ErrNotFound)
	}
	u.GoogleAccessToken = &cred.AccessToken
	u.GoogleRefreshToken = &cred.RefreshToken
	u.GoogleTokenExpiry = cred.ExpiresAt
	return nil
}

func (r *fakeUserRepo) UpdateAccessToken(_ context.Context, userID, accessToken, refreshToken string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.users[userID]
	u.GoogleAccessToken = &accessToken
	if refreshToken != "" {
		u.GoogleRefreshToken = &refreshToken
	}
	u.GoogleTokenExpiry = &expiresAt
	return nil
}

func (r *fakeUserRepo) ClearCredential(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return fmt.Errorf("user %w", entity.ErrNotFound)
	}
	u.GoogleAccessToken = nil
	u.GoogleRefreshToken = nil
	u.GoogleTokenExpiry = nil
	return nil
}

type fakeAppointmentRepo struct {
	appointments []entity.Appointment
	updated      *entity.Appointment
}

func (r *fakeAppointmentRepo) List(_ context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range r.appointments {
		if a.UserID == filter.UserID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) FindByIDsForUser(_ context.Context, userID string, ids []string) ([]entity.Appointment, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []entity.Appointment
	for _, a := range r.appointments {
		if a.UserID == userID && wanted[a.ID] {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) FindByID(_ context.Context, id string) (*entity.Appointment, error) {
	for _, a := range r.appointments {
		if a.ID == id {
			cp := a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAppointmentRepo) Create(_ context.Context, a *entity.Appointment) error {
	r.appointments = append(r.appointments, *a)
	return nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, a *entity.Appointment) error {
	r.updated = a
	return nil
}

func (r *fakeAppointmentRepo) Delete(_ context.Context, id string) error {
	for i, a := range r.appointments {
		if a.ID == id {
			r.appointments = append(r.appointments[:i], r.appointments[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("appointment %w", entity.ErrNotFound)
}

type fakeSettingsRepo struct {
	mu        sync.Mutex
	settings  map[string]*entity.CalendarIntegration
	synced    map[string]time.Time
	createErr error
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{
		settings: make(map[string]*entity.CalendarIntegration),
		synced:   make(map[string]time.Time),
	}
}

func (r *fakeSettingsRepo) FindByUser(_ context.Context, userID string) (*entity.CalendarIntegration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings[userID], nil
}

func (r *fakeSettingsRepo) CreateIfMissing(_ context.Context, s *entity.CalendarIntegration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.settings[s.UserID]; !ok {
		r.settings[s.UserID] = s
	}
	return nil
}

func (r *fakeSettingsRepo) Upsert(_ context.Context, s *entity.CalendarIntegration) (*entity.CalendarIntegration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings[s.UserID] = s
	return s, nil
}

func (r *fakeSettingsRepo) TouchLastSynced(_ context.Context, userID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.synced[userID] = at
	return nil
}

type notification struct {
	userID, title, message string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (n *fakeNotifier) Notify(_ context.Context, userID, title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{userID, title, message})
}

type fakeTokenService struct {
	mu          sync.Mutex
	users       *fakeUserRepo
	refreshErr  error
	exchangeErr error
	exchanged   *entity.Credential
	ensureCalls int
}

func (s *fakeTokenService) AuthCodeURL(state string) string {
	return "https://accounts.example.com/auth?state=" + state
}

func (s *fakeTokenService) ExchangeCode(_ context.Context, _ string) (*entity.Credential, error) {
	if s.exchangeErr != nil {
		return nil, s.exchangeErr
	}
	return s.exchanged, nil
}

func (s *fakeTokenService) EnsureValidAccessToken(ctx context.Context, userID string) (string, error) {
	s.mu.Lock()
	s.ensureCalls++
	s.mu.Unlock()

	user, _ := s.users.FindByID(ctx, userID)
	cred := user.Credential()
	if cred == nil {
		return "", entity.ErrNotConnected
	}
	if s.refreshErr != nil {
		return "", s.refreshErr
	}
	return cred.AccessToken, nil
}

type fakeStateStore struct {
	states map[string]string
}

func (s *fakeStateStore) Issue(_ context.Context, userID string) (string, error) {
	nonce := fmt.Sprintf("nonce-%d", len(s.states)+1)
	s.states[nonce] = userID
	return nonce, nil
}

func (s *fakeStateStore) Consume(_ context.Context, nonce string) (string, error) {
	userID, ok := s.states[nonce]
	if !ok {
		return "", entity.ErrInvalidState
	}
	delete(s.states, nonce)
	return userID, nil
}

type fakeCalendarClient struct {
	mu     sync.Mutex
	failOn map[string]bool // keyed by summary/title
	events []*entity.CalendarEvent
	tasks  []*entity.TaskItem
	calls  int
}

func (c *fakeCalendarClient) CreateEvent(_ context.Context, _ string, e *entity.CalendarEvent) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.failOn[e.Summary] {
		return "", fmt.Errorf("%w: create event: status 500", entity.ErrProviderRequestFailed)
	}
	c.events = append(c.events, e)
	return fmt.Sprintf("evt-%d", len(c.events)), nil
}

func (c *fakeCalendarClient) CreateTask(_ context.Context, _ string, t *entity.TaskItem) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.failOn[t.Title] {
		return "", fmt.Errorf("%w: create task: status 500", entity.ErrProviderRequestFailed)
	}
	c.tasks = append(c.tasks, t)
	return fmt.Sprintf("task-%d", len(c.tasks)), nil
}

type fakePlanner struct {
	entries []entity.PlanEntry
	err     error
	calls   int
}

func (p *fakePlanner) GeneratePlan(_ context.Context, _ *entity.PlanInput) ([]entity.PlanEntry, error) {
	p.calls++
	return p.entries, p.err
}

type fakePlanRepo struct {
	created      *entity.Plan
	appointments []entity.Appointment
}

func (r *fakePlanRepo) CreateWithAppointments(_ context.Context, plan *entity.Plan, appointments []entity.Appointment) error {
	r.created = plan
	r.appointments = appointments
	return nil
}

func (r *fakePlanRepo) ListByUser(_ context.Context, _ string) ([]entity.Plan, error) {
	if r.created == nil {
		return nil, nil
	}
	return []entity.Plan{*r.created}, nil
}

func (r *fakePlanRepo) FindByID(_ context.Context, userID, planID string) (*entity.Plan, error) {
	if r.created != nil && r.created.ID == planID && r.created.UserID == userID {
		return r.created, nil
	}
	return nil, nil
}

func (r *fakePlanRepo) Delete(_ context.Context, _, _ string) error {
	return nil
}

func connectedUser(id string, expiresAt time.Time) *entity.User {
	access, refresh := "access-"+id, "refresh-"+id
	return &entity.User{
		ID:                 id,
		Email:              id + "@example.com",
		GoogleAccessToken:  &access,
		GoogleRefreshToken: &refresh,
		GoogleTokenExpiry:  &expiresAt,
	}
}
