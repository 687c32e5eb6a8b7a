package memory

import (
	"fmt"

	"github.com/fabshop/quoting/pkg/domain/entities"
	"github.com/fabshop/quoting/pkg/domain/repositories"
)

// RuleRepository provides in-memory rule table storage. The loaded rule
// set is replaced wholesale, matching how the admin settings screens save
// whole documents.
type RuleRepository struct {
	rules *entities.RuleSet
}

// NewRuleRepository creates a new in-memory rule repository
func NewRuleRepository() *RuleRepository {
	return &RuleRepository{}
}

// Verify interface compliance
var _ repositories.RuleRepository = (*RuleRepository)(nil)

// LoadRuleSet replaces the stored rule set
func (r *RuleRepository) LoadRuleSet(rules *entities.RuleSet) error {
	if rules == nil {
		return fmt.Errorf("rule set cannot be nil")
	}
	r.rules = rules
	return nil
}

// GetRuleSet returns the current rule set snapshot
func (r *RuleRepository) GetRuleSet() (*entities.RuleSet, error) {
	if r.rules == nil {
		return nil, fmt.Errorf("no rule set loaded")
	}
	return r.rules, nil
}
