package notify

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// ScheduleRequest describes one reminder handed to the platform scheduler.
type ScheduleRequest struct {
	ID     string
	Title  string
	Body   string
	FireAt time.Time
}

// Port is the abstract boundary to the platform's reminder-scheduling
// capability. Implementations are platform-specific collaborators; the
// engine only ever talks to this interface.
type Port interface {
	RequestPermission(ctx context.Context) (bool, error)
	// Schedule registers a reminder and returns the platform handle for it.
	Schedule(ctx context.Context, req ScheduleRequest) (string, error)
	Cancel(ctx context.Context, id string) error
	CancelAll(ctx context.Context) error
	ScheduledIDs(ctx context.Context) ([]string, error)
}

// ErrPermissionDenied is returned by ports that refuse to schedule without
// a granted permission.
var ErrPermissionDenied = errors.New("notification permission denied")

// MemoryPort is an in-process Port. It backs tests and headless shells;
// handles are the request ids, matching the platform ports this engine
// targets.
type MemoryPort struct {
	mu        sync.Mutex
	scheduled map[string]ScheduleRequest

	// ScheduleErr, when non-nil, is returned by every Schedule call.
	ScheduleErr error
	// CancelErr, when non-nil, is returned by every Cancel call.
	CancelErr error

	permission bool
}

func NewMemoryPort() *MemoryPort {
	return &MemoryPort{scheduled: make(map[string]ScheduleRequest), permission: true}
}

func (p *MemoryPort) RequestPermission(ctx context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.permission, nil
}

func (p *MemoryPort) Schedule(ctx context.Context, req ScheduleRequest) (string, error) {
	if p.ScheduleErr != nil {
		return "", p.ScheduleErr
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scheduled[req.ID] = req
	return req.ID, nil
}

func (p *MemoryPort) Cancel(ctx context.Context, id string) error {
	if p.CancelErr != nil {
		return p.CancelErr
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.scheduled, id)
	return nil
}

func (p *MemoryPort) CancelAll(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scheduled = make(map[string]ScheduleRequest)
	return nil
}

func (p *MemoryPort) ScheduledIDs(ctx context.Context) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make([]string, 0, len(p.scheduled))
	for id := range p.scheduled {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Get returns the scheduled request for id, if any.
func (p *MemoryPort) Get(id string) (ScheduleRequest, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	req, ok := p.scheduled[id]
	return req, ok
}
