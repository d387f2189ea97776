package repository

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/alexanderramin/focusdo/internal/domain"
	"github.com/alexanderramin/focusdo/internal/storage"
	"github.com/google/uuid"
)

// systemCategories are seeded on first use so the task join and the shell
// always have something to point at.
var systemCategories = []domain.Category{
	{ID: "cat-inbox", Name: "Inbox", Icon: "inbox", Color: "#83a598", IsSystem: true},
	{ID: "cat-work", Name: "Work", Icon: "briefcase", Color: "#fabd2f", IsSystem: true},
	{ID: "cat-personal", Name: "Personal", Icon: "home", Color: "#8ec07c", IsSystem: true},
}

// CategoryRepository holds category records under a single storage key.
// The todo repository consumes it read-only for its view join.
type CategoryRepository struct {
	mu     sync.Mutex
	store  *storage.Service
	logger *slog.Logger
	now    func() time.Time
}

type CategoryRepositoryOption func(*CategoryRepository)

// WithCategoryClock overrides the time source, for tests.
func WithCategoryClock(now func() time.Time) CategoryRepositoryOption {
	return func(r *CategoryRepository) { r.now = now }
}

func NewCategoryRepository(store *storage.Service, logger *slog.Logger, opts ...CategoryRepositoryOption) *CategoryRepository {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r := &CategoryRepository{store: store, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// loadMap reads the category map, seeding the system set when the key has
// never been written.
func (r *CategoryRepository) loadMap(ctx context.Context) (map[string]domain.Category, error) {
	categories := make(map[string]domain.Category)
	ok, err := r.store.GetItem(ctx, storage.KeyCategories, &categories)
	if err != nil {
		return nil, err
	}
	if !ok {
		now := r.now()
		for _, c := range systemCategories {
			c.CreatedAt = now
			c.UpdatedAt = now
			categories[c.ID] = c
		}
		if err := r.store.SetItem(ctx, storage.KeyCategories, categories); err != nil {
			return nil, err
		}
	}
	return categories, nil
}

// GetAll returns live categories, system entries first, then by name.
func (r *CategoryRepository) GetAll(ctx context.Context) ([]domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	categories, err := r.loadMap(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Category, 0, len(categories))
	for _, c := range categories {
		if c.Deleted() {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsSystem != out[j].IsSystem {
			return out[i].IsSystem
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// GetByID returns one live category, or nil when missing or deleted.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	categories, err := r.loadMap(ctx)
	if err != nil {
		return nil, err
	}
	c, ok := categories[id]
	if !ok || c.Deleted() {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c domain.Category) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	categories, err := r.loadMap(ctx)
	if err != nil {
		return nil, err
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := r.now()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.DeletedAt = nil
	categories[c.ID] = c
	if err := r.store.SetItem(ctx, storage.KeyCategories, categories); err != nil {
		return nil, err
	}
	return &c, nil
}

// Update overwrites the stored record's mutable fields. Returns nil when the
// id does not exist.
func (r *CategoryRepository) Update(ctx context.Context, c domain.Category) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	categories, err := r.loadMap(ctx)
	if err != nil {
		return nil, err
	}
	existing, ok := categories[c.ID]
	if !ok {
		return nil, nil
	}
	existing.Name = c.Name
	existing.Icon = c.Icon
	existing.Color = c.Color
	existing.UpdatedAt = r.now()
	categories[c.ID] = existing
	if err := r.store.SetItem(ctx, storage.KeyCategories, categories); err != nil {
		return nil, err
	}
	return &existing, nil
}

// SoftDelete marks the record deleted. System categories and missing ids are
// no-ops.
func (r *CategoryRepository) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	categories, err := r.loadMap(ctx)
	if err != nil {
		return err
	}
	c, ok := categories[id]
	if !ok || c.IsSystem {
		return nil
	}
	now := r.now()
	c.DeletedAt = &now
	c.UpdatedAt = now
	categories[id] = c
	return r.store.SetItem(ctx, storage.KeyCategories, categories)
}
