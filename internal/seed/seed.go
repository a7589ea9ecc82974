// Package seed builds the initial customer collection: a fixed set of
// fixtures followed by a batch of randomly generated customers.
package seed

import (
	_ "embed"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Raymond9734/customer-dashboard-backend/internal/models"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

const (
	minRandomTransaction  = 50000
	randomTransactionSpan = 1000000
	randomYear            = 2023
)

// Source is the randomness used for generated customers.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// Fixtures is the decoded fixtures file
type Fixtures struct {
	Customers     []models.Customer `yaml:"customers"`
	FirstNames    []string          `yaml:"first_names"`
	LastNames     []string          `yaml:"last_names"`
	FavoriteMenus []string          `yaml:"favorite_menus"`
}

// LoadFixtures decodes the embedded fixtures and validates every fixed customer
func LoadFixtures() (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(fixturesYAML, &f); err != nil {
		return nil, fmt.Errorf("failed to decode seed fixtures: %w", err)
	}
	for i := range f.Customers {
		if err := f.Customers[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid fixture customer %s: %w", f.Customers[i].ID, err)
		}
	}
	if len(f.FirstNames) == 0 || len(f.LastNames) == 0 || len(f.FavoriteMenus) == 0 {
		return nil, fmt.Errorf("seed fixtures are missing name or menu pools")
	}
	return &f, nil
}

// Generator produces seed collections
type Generator struct {
	fixtures    *Fixtures
	randomCount int
}

// NewGenerator creates a generator appending randomCount random customers to the fixtures
func NewGenerator(fixtures *Fixtures, randomCount int) *Generator {
	if randomCount < 0 {
		randomCount = 0
	}
	return &Generator{fixtures: fixtures, randomCount: randomCount}
}

// NewSource returns a deterministic source for seed, or a time-based one when seed is 0
func NewSource(seed uint64) Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate returns the fixtures followed by the random batch.
// Random customers are numbered after the fixtures.
func (g *Generator) Generate(src Source) []models.Customer {
	fixed := g.fixtures.Customers
	out := make([]models.Customer, 0, len(fixed)+g.randomCount)
	out = append(out, fixed...)

	for i := 0; i < g.randomCount; i++ {
		out = append(out, g.randomCustomer(src, len(fixed)+i+1))
	}
	return out
}

func (g *Generator) randomCustomer(src Source, n int) models.Customer {
	f := g.fixtures
	first := f.FirstNames[src.IntN(len(f.FirstNames))]
	last := f.LastNames[src.IntN(len(f.LastNames))]
	level := models.Levels[src.IntN(len(models.Levels))]
	menu := f.FavoriteMenus[src.IntN(len(f.FavoriteMenus))]
	total := int64(src.IntN(randomTransactionSpan)) + minRandomTransaction

	month := src.IntN(12) + 1
	day := src.IntN(28) + 1

	return models.Customer{
		ID:               strconv.Itoa(n),
		Name:             first + " " + last,
		Level:            level,
		FavoriteMenu:     menu,
		TotalTransaction: total,
		CreatedAt:        fmt.Sprintf("%04d-%02d-%02d", randomYear, month, day),
	}
}
