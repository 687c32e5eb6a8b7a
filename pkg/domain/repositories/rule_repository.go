package repositories

import "github.com/fabshop/quoting/pkg/domain/entities"

// RuleRepository provides access to the shop's pricing rule tables
type RuleRepository interface {
	GetRuleSet() (*entities.RuleSet, error)
	LoadRuleSet(rules *entities.RuleSet) error
}
