// Package budget loads the per-category spending limits.
package budget

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gastobot/internal/model"
)

var header = []string{"categoria", "semanal", "mensual", "anual"}

// Catalog is the budget table loaded once at startup and read-only for the
// process lifetime. Iteration follows file order.
type Catalog struct {
	order []string
	rules map[string]model.BudgetRule
}

// Load reads the budget configuration from a CSV file with the columns
// categoria,semanal,mensual,anual. An empty cell means the category has no
// limit for that period.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open budget config: %w", err)
	}
	defer f.Close()

	catalog, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("budget config %s: %w", path, err)
	}
	return catalog, nil
}

func Parse(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(header)

	first, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, name := range header {
		if !strings.EqualFold(strings.TrimSpace(first[i]), name) {
			return nil, fmt.Errorf("unexpected header column %q, want %q", first[i], name)
		}
	}

	c := &Catalog{rules: make(map[string]model.BudgetRule)}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		category := strings.ToLower(strings.TrimSpace(record[0]))
		if category == "" {
			return nil, fmt.Errorf("row without category")
		}
		if category == model.SavingsCategory {
			return nil, fmt.Errorf("category %q is reserved and cannot carry limits", category)
		}
		if _, ok := c.rules[category]; ok {
			return nil, fmt.Errorf("duplicate category %q", category)
		}

		rule := model.BudgetRule{}
		if rule.Weekly, err = parseLimit(record[1]); err != nil {
			return nil, fmt.Errorf("category %s, weekly limit: %w", category, err)
		}
		if rule.Monthly, err = parseLimit(record[2]); err != nil {
			return nil, fmt.Errorf("category %s, monthly limit: %w", category, err)
		}
		if rule.Annual, err = parseLimit(record[3]); err != nil {
			return nil, fmt.Errorf("category %s, annual limit: %w", category, err)
		}

		c.order = append(c.order, category)
		c.rules[category] = rule
	}
	return c, nil
}

func parseLimit(cell string) (*float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil, fmt.Errorf("not a number: %q", cell)
	}
	if v <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %v", v)
	}
	return &v, nil
}

// Categories returns the category names in file order.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Catalog) Rule(category string) (model.BudgetRule, bool) {
	rule, ok := c.rules[strings.ToLower(category)]
	return rule, ok
}

func (c *Catalog) Has(category string) bool {
	_, ok := c.rules[strings.ToLower(category)]
	return ok
}

func (c *Catalog) Len() int {
	return len(c.order)
}
