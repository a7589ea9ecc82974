package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Raymond9734/customer-dashboard-backend/internal/models"
)

// maxIDAttempts bounds the retries when a generated id is already taken
const maxIDAttempts = 5

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	List(ctx context.Context) ([]models.Customer, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id string) error
	Replace(ctx context.Context, customers []models.Customer) error
}

// customerRepository implements CustomerRepository in memory.
// The slice order is the display order before sorting: newest additions first.
type customerRepository struct {
	mu        sync.RWMutex
	customers []models.Customer
	index     map[string]int
	ids       IDGenerator
	now       func() time.Time
}

// NewCustomerRepository creates a new in-memory customer repository
func NewCustomerRepository(ids IDGenerator, now func() time.Time) CustomerRepository {
	if now == nil {
		now = time.Now
	}
	return &customerRepository{
		index: make(map[string]int),
		ids:   ids,
		now:   now,
	}
}

// Create assigns a fresh id and today's date, then inserts the customer at the front
func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.nextID()
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	customer.ID = id
	customer.CreatedAt = models.FormatDate(r.now())

	r.customers = slices.Insert(r.customers, 0, *customer)
	r.reindex()

	return nil
}

// GetByID retrieves a customer by ID
func (r *customerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, ok := r.index[id]
	if !ok {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("customer with ID %s not found", id))
	}

	customer := r.customers[pos]
	return &customer, nil
}

// List returns a snapshot of every customer in store order
func (r *customerRepository) List(ctx context.Context) ([]models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.customers), nil
}

// Count returns the number of stored customers
func (r *customerRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.customers), nil
}

// Update replaces the editable fields of an existing customer.
// ID, CreatedAt and position are kept.
func (r *customerRepository) Update(ctx context.Context, customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[customer.ID]
	if !ok {
		return models.ErrNotFoundWithMsg(fmt.Sprintf("customer with ID %s not found", customer.ID))
	}

	existing := &r.customers[pos]
	existing.Name = customer.Name
	existing.Level = customer.Level
	existing.FavoriteMenu = customer.FavoriteMenu
	existing.TotalTransaction = customer.TotalTransaction

	*customer = *existing
	return nil
}

// Delete removes a customer
func (r *customerRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[id]
	if !ok {
		return models.ErrNotFoundWithMsg(fmt.Sprintf("customer with ID %s not found", id))
	}

	r.customers = slices.Delete(r.customers, pos, pos+1)
	r.reindex()

	return nil
}

// Replace swaps the whole collection, keeping the given order
func (r *customerRepository) Replace(ctx context.Context, customers []models.Customer) error {
	seen := make(map[string]struct{}, len(customers))
	for _, c := range customers {
		if _, dup := seen[c.ID]; dup {
			return models.ErrConflictWithMsg(fmt.Sprintf("duplicate customer ID %s", c.ID))
		}
		seen[c.ID] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.customers = slices.Clone(customers)
	r.reindex()

	return nil
}

func (r *customerRepository) nextID() (string, error) {
	for range maxIDAttempts {
		id := r.ids.NextID()
		if _, taken := r.index[id]; !taken && id != "" {
			return id, nil
		}
	}
	return "", models.ErrConflictWithMsg("could not allocate a unique customer ID")
}

func (r *customerRepository) reindex() {
	clear(r.index)
	for i, c := range r.customers {
		r.index[c.ID] = i
	}
}
