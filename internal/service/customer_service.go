package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Raymond9734/customer-dashboard-backend/internal/metrics"
	"github.com/Raymond9734/customer-dashboard-backend/internal/models"
	"github.com/Raymond9734/customer-dashboard-backend/internal/repository"
	"github.com/Raymond9734/customer-dashboard-backend/internal/seed"
)

// CustomerService owns every mutation of the customer collection
type CustomerService interface {
	AddCustomer(ctx context.Context, fields models.CustomerFields) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id string, fields models.CustomerFields) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	Reseed(ctx context.Context) (int, error)
}

// Seeder produces a fresh collection
type Seeder interface {
	Generate(src seed.Source) []models.Customer
}

type customerService struct {
	customerRepo repository.CustomerRepository
	seeder       Seeder
	newSource    func() seed.Source
	logger       *slog.Logger
}

// NewCustomerService creates a new customer service.
// newSource is called on every reseed, so each refresh draws new random customers
// unless it returns a fixed source.
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	seeder Seeder,
	newSource func() seed.Source,
	logger *slog.Logger,
) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		seeder:       seeder,
		newSource:    newSource,
		logger:       logger,
	}
}

// AddCustomer creates a customer at the front of the collection
func (s *customerService) AddCustomer(ctx context.Context, fields models.CustomerFields) (*models.Customer, error) {
	fields.ApplyDefaults()
	customer := newCustomer(fields)

	if err := customer.ValidateFields(); err != nil {
		metrics.ObserveMutation("add", metrics.OutcomeRejected)
		return nil, err
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		metrics.ObserveMutation("add", metrics.OutcomeError)
		s.logger.Error("failed to create customer",
			slog.String("name", customer.Name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	metrics.ObserveMutation("add", metrics.OutcomeOK)
	s.recordSize(ctx)

	s.logger.Info("customer created",
		slog.String("customer_id", customer.ID),
		slog.String("level", string(customer.Level)),
	)

	return customer, nil
}

// UpdateCustomer edits an existing customer in place
func (s *customerService) UpdateCustomer(ctx context.Context, id string, fields models.CustomerFields) (*models.Customer, error) {
	fields.ApplyDefaults()
	customer := newCustomer(fields)
	customer.ID = id

	if err := customer.ValidateFields(); err != nil {
		metrics.ObserveMutation("update", metrics.OutcomeRejected)
		return nil, err
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			metrics.ObserveMutation("update", metrics.OutcomeRejected)
			return nil, err
		}
		metrics.ObserveMutation("update", metrics.OutcomeError)
		s.logger.Error("failed to update customer",
			slog.String("customer_id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	metrics.ObserveMutation("update", metrics.OutcomeOK)
	s.logger.Info("customer updated",
		slog.String("customer_id", id),
	)

	return customer, nil
}

// DeleteCustomer removes a customer. Unknown IDs are ignored.
func (s *customerService) DeleteCustomer(ctx context.Context, id string) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			metrics.ObserveMutation("delete", metrics.OutcomeNoop)
			s.logger.Debug("delete of unknown customer ignored",
				slog.String("customer_id", id),
			)
			return nil
		}
		metrics.ObserveMutation("delete", metrics.OutcomeError)
		s.logger.Error("failed to delete customer",
			slog.String("customer_id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	metrics.ObserveMutation("delete", metrics.OutcomeOK)
	s.recordSize(ctx)

	s.logger.Info("customer deleted",
		slog.String("customer_id", id),
	)

	return nil
}

// GetCustomer retrieves a customer by ID
func (s *customerService) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return customer, nil
}

// ListCustomers returns the whole collection in store order
func (s *customerService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	return customers, nil
}

// Reseed discards the collection and regenerates it
func (s *customerService) Reseed(ctx context.Context) (int, error) {
	customers := s.seeder.Generate(s.newSource())

	if err := s.customerRepo.Replace(ctx, customers); err != nil {
		metrics.ObserveMutation("reseed", metrics.OutcomeError)
		s.logger.Error("failed to reseed customers",
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("failed to reseed customers: %w", err)
	}

	metrics.ObserveMutation("reseed", metrics.OutcomeOK)
	metrics.SetCustomers(len(customers))

	s.logger.Info("customers reseeded",
		slog.Int("count", len(customers)),
	)

	return len(customers), nil
}

func (s *customerService) recordSize(ctx context.Context) {
	if n, err := s.customerRepo.Count(ctx); err == nil {
		metrics.SetCustomers(n)
	}
}

func newCustomer(fields models.CustomerFields) *models.Customer {
	return &models.Customer{
		Name:             strings.TrimSpace(fields.Name),
		Level:            fields.Level,
		FavoriteMenu:     strings.TrimSpace(fields.FavoriteMenu),
		TotalTransaction: fields.TotalTransaction,
	}
}
