package form

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/Raymond9734/customer-dashboard-backend/internal/models"
)

// FilterDispatcher receives the mutations of the filter dialog
type FilterDispatcher interface {
	SetFilterOptions(ctx context.Context, sessionID string, opts models.FilterOptions) (models.QueryState, error)
	ClearFilters(ctx context.Context, sessionID string) (models.QueryState, error)
}

// FilterDraft mirrors the filter dialog inputs. Bounds are text, as typed.
type FilterDraft struct {
	Level          []string `json:"level" validate:"dive,oneof=Warga Juragan Sultan Konglomerat"`
	MinTransaction string   `json:"min_transaction" validate:"omitempty,number"`
	MaxTransaction string   `json:"max_transaction" validate:"omitempty,number"`
	StartDate      string   `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate        string   `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	FavoriteMenu   string   `json:"favorite_menu"`
}

// FilterForm is the transient state of one filter dialog
type FilterForm struct {
	sessionID string
	draft     FilterDraft
}

// OpenFilterForm stages a draft copied from the session's active filter
func OpenFilterForm(sessionID string, current *models.FilterOptions) *FilterForm {
	return &FilterForm{sessionID: sessionID, draft: DraftFromOptions(current)}
}

// Draft returns a copy of the staged values
func (f *FilterForm) Draft() FilterDraft {
	d := f.draft
	d.Level = slices.Clone(f.draft.Level)
	return d
}

// Load replaces the whole draft. To change only some fields, start from
// Draft() so the rest keep the active filter.
func (f *FilterForm) Load(draft FilterDraft) {
	f.draft = draft
	f.draft.Level = append([]string(nil), draft.Level...)
}

// ToggleLevel adds level to the draft, or removes it when already selected
func (f *FilterForm) ToggleLevel(level string) {
	for i, l := range f.draft.Level {
		if l == level {
			f.draft.Level = append(f.draft.Level[:i:i], f.draft.Level[i+1:]...)
			return
		}
	}
	f.draft.Level = append(f.draft.Level, level)
}

// SetTransactionRange stages the bounds; empty strings are unbounded
func (f *FilterForm) SetTransactionRange(lo, hi string) {
	f.draft.MinTransaction = lo
	f.draft.MaxTransaction = hi
}

// SetDateRange stages the inclusive date bounds; empty strings are unbounded
func (f *FilterForm) SetDateRange(start, end string) {
	f.draft.StartDate = start
	f.draft.EndDate = end
}

// SetFavoriteMenu stages the menu substring
func (f *FilterForm) SetFavoriteMenu(menu string) {
	f.draft.FavoriteMenu = menu
}

// Apply parses the draft and commits it as the session's filter
func (f *FilterForm) Apply(ctx context.Context, d FilterDispatcher) (models.QueryState, error) {
	opts, err := f.draft.Options()
	if err != nil {
		return models.QueryState{}, err
	}
	return d.SetFilterOptions(ctx, f.sessionID, opts)
}

// Clear resets the draft and drops the session's filter
func (f *FilterForm) Clear(ctx context.Context, d FilterDispatcher) (models.QueryState, error) {
	f.draft = FilterDraft{}
	return d.ClearFilters(ctx, f.sessionID)
}

// Cancel discards the draft without dispatching anything
func (f *FilterForm) Cancel() {
	f.draft = FilterDraft{}
}

// Options validates the draft and converts it into filter options
func (d FilterDraft) Options() (models.FilterOptions, error) {
	trimmed := FilterDraft{
		Level:          d.Level,
		MinTransaction: strings.TrimSpace(d.MinTransaction),
		MaxTransaction: strings.TrimSpace(d.MaxTransaction),
		StartDate:      strings.TrimSpace(d.StartDate),
		EndDate:        strings.TrimSpace(d.EndDate),
		FavoriteMenu:   strings.TrimSpace(d.FavoriteMenu),
	}
	if err := validateDraft(trimmed); err != nil {
		return models.FilterOptions{}, err
	}

	opts := models.FilterOptions{
		StartDate:    trimmed.StartDate,
		EndDate:      trimmed.EndDate,
		FavoriteMenu: trimmed.FavoriteMenu,
	}
	for _, l := range trimmed.Level {
		opts.Level = append(opts.Level, models.Level(l))
	}

	var err error
	if opts.MinTransaction, err = parseBound("min_transaction", trimmed.MinTransaction); err != nil {
		return models.FilterOptions{}, err
	}
	if opts.MaxTransaction, err = parseBound("max_transaction", trimmed.MaxTransaction); err != nil {
		return models.FilterOptions{}, err
	}

	if err := opts.Validate(); err != nil {
		return models.FilterOptions{}, err
	}
	return opts, nil
}

// DraftFromOptions renders filter options back into dialog inputs
func DraftFromOptions(opts *models.FilterOptions) FilterDraft {
	if opts == nil {
		return FilterDraft{}
	}
	d := FilterDraft{
		StartDate:    opts.StartDate,
		EndDate:      opts.EndDate,
		FavoriteMenu: opts.FavoriteMenu,
	}
	for _, l := range opts.Level {
		d.Level = append(d.Level, string(l))
	}
	if opts.MinTransaction != nil {
		d.MinTransaction = strconv.FormatInt(*opts.MinTransaction, 10)
	}
	if opts.MaxTransaction != nil {
		d.MaxTransaction = strconv.FormatInt(*opts.MaxTransaction, 10)
	}
	return d
}

func parseBound(field, s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, models.ErrInvalidInput(field + " is out of range")
	}
	return &v, nil
}
