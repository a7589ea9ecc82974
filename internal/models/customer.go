package models

import (
	"fmt"
	"strings"
	"time"
)

// Level is the loyalty tier of a customer
type Level string

// Loyalty tiers, lowest to highest
const (
	LevelWarga       Level = "Warga"
	LevelJuragan     Level = "Juragan"
	LevelSultan      Level = "Sultan"
	LevelKonglomerat Level = "Konglomerat"
)

// Levels lists every tier in ascending order
var Levels = []Level{LevelWarga, LevelJuragan, LevelSultan, LevelKonglomerat}

// DateLayout is the layout of every date string exchanged by the dashboard
const DateLayout = "2006-01-02"

// pointsDivisor converts transaction volume into loyalty points
const pointsDivisor = 10000

// Customer represents a customer in the dashboard
type Customer struct {
	ID               string `json:"id" yaml:"id"`
	Name             string `json:"name" yaml:"name"`
	Level            Level  `json:"level" yaml:"level"`
	FavoriteMenu     string `json:"favorite_menu" yaml:"favorite_menu"`
	TotalTransaction int64  `json:"total_transaction" yaml:"total_transaction"`
	CreatedAt        string `json:"created_at" yaml:"created_at"`
}

// CustomerFields holds the caller-supplied fields of a customer.
// ID and CreatedAt are always assigned by the store.
type CustomerFields struct {
	Name             string
	Level            Level
	FavoriteMenu     string
	TotalTransaction int64
}

// CustomerDetail is a customer plus values derived for the detail view
type CustomerDetail struct {
	Customer
	LoyaltyPoints int64 `json:"loyalty_points"`
}

// IsValidLevel checks if the level is one of the known tiers
func IsValidLevel(level Level) bool {
	switch level {
	case LevelWarga, LevelJuragan, LevelSultan, LevelKonglomerat:
		return true
	default:
		return false
	}
}

// Validate performs basic validation on customer data
func (c *Customer) Validate() error {
	if err := c.ValidateFields(); err != nil {
		return err
	}
	if _, err := ParseDate(c.CreatedAt); err != nil {
		return ErrInvalidInput(fmt.Sprintf("invalid created_at: %s", c.CreatedAt))
	}
	return nil
}

// ValidateFields checks the caller-editable fields only
func (c *Customer) ValidateFields() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrInvalidInput("name is required")
	}
	if strings.TrimSpace(c.FavoriteMenu) == "" {
		return ErrInvalidInput("favorite_menu is required")
	}
	if !IsValidLevel(c.Level) {
		return ErrInvalidInput(fmt.Sprintf("invalid level: %s", c.Level))
	}
	if c.TotalTransaction < 0 {
		return ErrInvalidInput("total_transaction cannot be negative")
	}
	return nil
}

// LoyaltyPoints returns the points shown on the customer detail view
func (c Customer) LoyaltyPoints() int64 {
	return c.TotalTransaction / pointsDivisor
}

// Detail wraps the customer with its derived values
func (c Customer) Detail() CustomerDetail {
	return CustomerDetail{Customer: c, LoyaltyPoints: c.LoyaltyPoints()}
}

// ApplyDefaults fills the optional fields of an add request
func (f *CustomerFields) ApplyDefaults() {
	if f.Level == "" {
		f.Level = LevelWarga
	}
}

// ParseDate parses a dashboard date string
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate formats t as a dashboard date string in UTC
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
