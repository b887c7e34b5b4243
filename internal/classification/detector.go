// Package classification assigns categories to imported transactions by
// matching their descriptions against keyword rules.
package classification

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/Veraticus/payday/internal/model"
)

// Rule maps descriptions matching Regex to Category.
type Rule struct {
	Name     string `mapstructure:"name"`
	Category string `mapstructure:"category"`
	Regex    string `mapstructure:"regex"`
	// Higher priority rules are checked first.
	Priority int `mapstructure:"priority"`
}

type compiledRule struct {
	regex    *regexp.Regexp
	category model.Category
	Rule
}

// Detector implements rule-based categorization. It is safe for concurrent use.
type Detector struct {
	rules []compiledRule
	mu    sync.RWMutex
}

// NewDetector compiles rules. Matching is case-insensitive.
func NewDetector(rules []Rule) (*Detector, error) {
	d := &Detector{}
	if err := d.UpdateRules(rules); err != nil {
		return nil, err
	}
	return d, nil
}

// NewDefaultDetector creates a detector with DefaultRules followed by extra.
func NewDefaultDetector(extra ...Rule) (*Detector, error) {
	return NewDetector(append(DefaultRules(), extra...))
}

// UpdateRules replaces the rule set.
func (d *Detector) UpdateRules(rules []Rule) error {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		category, err := model.ParseCategory(r.Category)
		if err != nil {
			return fmt.Errorf("rule %s: %w", r.Name, err)
		}

		expr := r.Regex
		if !strings.HasPrefix(expr, "(?i)") {
			expr = "(?i)" + expr
		}
		regex, err := regexp.Compile(expr)
		if err != nil {
			return fmt.Errorf("failed to compile rule %s: %w", r.Name, err)
		}
		compiled = append(compiled, compiledRule{Rule: r, regex: regex, category: category})
	}

	slices.SortStableFunc(compiled, func(a, b compiledRule) int {
		return b.Priority - a.Priority
	})

	d.mu.Lock()
	d.rules = compiled
	d.mu.Unlock()
	return nil
}

// Classify returns the category of the first rule matching description whose
// category fits txType. Income transactions only take income categories and
// expenses only expense categories.
func (d *Detector) Classify(description string, txType model.TransactionType) (model.Category, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, r := range d.rules {
		if !fits(r.category, txType) {
			continue
		}
		if r.regex.MatchString(description) {
			return r.category, true
		}
	}
	return "", false
}

// RuleCount returns the number of loaded rules.
func (d *Detector) RuleCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.rules)
}

func fits(c model.Category, txType model.TransactionType) bool {
	switch txType {
	case model.TypeIncome:
		return c.Kind() == model.CategoryTypeIncome
	case model.TypeExpense:
		return c.Kind() == model.CategoryTypeExpense
	default:
		return true
	}
}
