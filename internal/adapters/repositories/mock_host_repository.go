package repositories

import (
	"context"

	"route-optimizer-service/internal/domain"
)

// In-memory HostRepository used by tests and local development.
type MockHostRepository struct {
	Hosts []domain.Waypoint
	Err   error
}

func NewMockHostRepository(hosts []domain.Waypoint) *MockHostRepository {
	return &MockHostRepository{Hosts: hosts}
}

func (m *MockHostRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Waypoint, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	want := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	out := make([]domain.Waypoint, 0, len(ids))
	for _, h := range m.Hosts {
		if _, ok := want[h.ID]; ok {
			out = append(out, h)
		}
	}

	return out, nil
}

func (m *MockHostRepository) ListHosts(ctx context.Context) ([]domain.Waypoint, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	out := make([]domain.Waypoint, len(m.Hosts))
	copy(out, m.Hosts)
	return out, nil
}
