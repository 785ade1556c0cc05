package account

// Manager is the transport-facing handle on a Service.
type Manager struct {
	service Service
}

// NewManager wraps svc.
func NewManager(svc Service) *Manager {
	return &Manager{service: svc}
}

// Service returns the wrapped Service.
func (m *Manager) Service() Service {
	return m.service
}
