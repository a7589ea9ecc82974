package form

import (
	"context"
	"strings"

	"github.com/Raymond9734/customer-dashboard-backend/internal/models"
)

// CustomerDispatcher receives the mutation of a submitted customer form
type CustomerDispatcher interface {
	AddCustomer(ctx context.Context, fields models.CustomerFields) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id string, fields models.CustomerFields) (*models.Customer, error)
}

// CustomerDraft is the staged content of the add/edit dialog
type CustomerDraft struct {
	Name             string `json:"name" validate:"required"`
	Level            string `json:"level" validate:"required,oneof=Warga Juragan Sultan Konglomerat"`
	FavoriteMenu     string `json:"favorite_menu" validate:"required"`
	TotalTransaction int64  `json:"total_transaction" validate:"gte=0"`
}

// CustomerForm is the transient state of one add or edit dialog
type CustomerForm struct {
	editingID string
	draft     CustomerDraft
	closed    bool
}

// NewAddForm opens an empty add dialog
func NewAddForm() *CustomerForm {
	return &CustomerForm{
		draft: CustomerDraft{Level: string(models.LevelWarga)},
	}
}

// NewEditForm opens an edit dialog pre-filled from customer
func NewEditForm(customer models.Customer) *CustomerForm {
	return &CustomerForm{
		editingID: customer.ID,
		draft: CustomerDraft{
			Name:             customer.Name,
			Level:            string(customer.Level),
			FavoriteMenu:     customer.FavoriteMenu,
			TotalTransaction: customer.TotalTransaction,
		},
	}
}

// IsEdit reports whether the form edits an existing customer
func (f *CustomerForm) IsEdit() bool {
	return f.editingID != ""
}

// Draft returns the staged values
func (f *CustomerForm) Draft() CustomerDraft {
	return f.draft
}

// SetName stages the name
func (f *CustomerForm) SetName(name string) { f.draft.Name = name }

// SetLevel stages the level
func (f *CustomerForm) SetLevel(level string) { f.draft.Level = level }

// SetFavoriteMenu stages the favorite menu
func (f *CustomerForm) SetFavoriteMenu(menu string) { f.draft.FavoriteMenu = menu }

// SetTotalTransaction stages the transaction total
func (f *CustomerForm) SetTotalTransaction(total int64) { f.draft.TotalTransaction = total }

// Load replaces the staged draft. To change only some fields, start from
// Draft() so the rest keep their pre-filled values.
func (f *CustomerForm) Load(draft CustomerDraft) {
	f.draft = draft
}

// Submit validates the draft and dispatches one mutation: add for a new
// customer, update for an edited one. On validation failure nothing is
// dispatched and the form stays open.
func (f *CustomerForm) Submit(ctx context.Context, d CustomerDispatcher) (*models.Customer, error) {
	if f.closed {
		return nil, models.ErrConflictWithMsg("form already submitted")
	}

	draft := CustomerDraft{
		Name:             strings.TrimSpace(f.draft.Name),
		Level:            strings.TrimSpace(f.draft.Level),
		FavoriteMenu:     strings.TrimSpace(f.draft.FavoriteMenu),
		TotalTransaction: f.draft.TotalTransaction,
	}
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	fields := models.CustomerFields{
		Name:             draft.Name,
		Level:            models.Level(draft.Level),
		FavoriteMenu:     draft.FavoriteMenu,
		TotalTransaction: draft.TotalTransaction,
	}

	var (
		customer *models.Customer
		err      error
	)
	if f.IsEdit() {
		customer, err = d.UpdateCustomer(ctx, f.editingID, fields)
	} else {
		customer, err = d.AddCustomer(ctx, fields)
	}
	if err != nil {
		return nil, err
	}

	f.closed = true
	f.draft = CustomerDraft{Level: string(models.LevelWarga)}
	return customer, nil
}
