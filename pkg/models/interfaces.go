package models

// Model is implemented by all persisted resources.
type Model interface {
	Self() string // Human readable name of the resource
}

// The "Registry" is a slice of all models available
//
// It is maintained so that operations that affect all models do not need to explicitly iterate over every single model,
// increasing the risk of forgetting something when adding a new model
var Registry = []Model{
	Income{},
	Expense{},
	Asset{},
	CategoryEntry{},
	SavingsGoal{},
	SavingsAllocation{},
	BudgetTarget{},
	MatchRule{},
}
