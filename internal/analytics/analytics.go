// Package analytics computes the summary shown in the dashboard's analytics panel.
package analytics

import (
	"cmp"
	"slices"

	"github.com/Raymond9734/customer-dashboard-backend/internal/models"
)

// TopMenuLimit is the number of favorite menus listed in a summary
const TopMenuLimit = 5

// LevelCount is the number of customers in one tier
type LevelCount struct {
	Level models.Level `json:"level"`
	Count int          `json:"count"`
}

// MenuCount is the number of customers sharing a favorite menu
type MenuCount struct {
	Menu  string `json:"menu"`
	Count int    `json:"count"`
}

// Summary represents the analytics panel
type Summary struct {
	TotalCustomers     int          `json:"total_customers"`
	TotalTransaction   int64        `json:"total_transaction"`
	AverageTransaction int64        `json:"average_transaction"`
	Levels             []LevelCount `json:"levels"`
	TopMenus           []MenuCount  `json:"top_menus"`
	NewestCustomerDate string       `json:"newest_customer_date,omitempty"`
}

// Summarize aggregates the whole collection. Every tier is listed, even when empty.
func Summarize(customers []models.Customer) Summary {
	s := Summary{
		TotalCustomers: len(customers),
		Levels:         make([]LevelCount, len(models.Levels)),
		TopMenus:       []MenuCount{},
	}

	levelIndex := make(map[models.Level]int, len(models.Levels))
	for i, l := range models.Levels {
		s.Levels[i] = LevelCount{Level: l}
		levelIndex[l] = i
	}

	menus := make(map[string]int)
	for _, c := range customers {
		s.TotalTransaction += c.TotalTransaction
		if i, ok := levelIndex[c.Level]; ok {
			s.Levels[i].Count++
		}
		menus[c.FavoriteMenu]++
		// ISO dates order lexically
		if c.CreatedAt > s.NewestCustomerDate {
			s.NewestCustomerDate = c.CreatedAt
		}
	}

	if len(customers) > 0 {
		s.AverageTransaction = s.TotalTransaction / int64(len(customers))
	}

	for menu, n := range menus {
		s.TopMenus = append(s.TopMenus, MenuCount{Menu: menu, Count: n})
	}
	slices.SortFunc(s.TopMenus, func(a, b MenuCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Menu, b.Menu)
	})
	if len(s.TopMenus) > TopMenuLimit {
		s.TopMenus = s.TopMenus[:TopMenuLimit]
	}

	return s
}
