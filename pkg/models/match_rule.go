package models

import (
	"strings"

	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

// MatchRule assigns a category and subcategory to imported expenses whose
// description matches a glob pattern.
//
// Rules are evaluated in ascending priority order, the first match wins.
type MatchRule struct {
	DefaultModel
	Priority    uint   `json:"priority"`
	Match       string `json:"match"` // Case insensitive glob, e.g. "*NETFLIX*"
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
}

func (r MatchRule) Self() string {
	return "Match Rule"
}

// Matches reports whether the description matches the rule's pattern.
func (r MatchRule) Matches(description string) bool {
	return glob.Glob(strings.ToUpper(r.Match), strings.ToUpper(description))
}

func (r *MatchRule) BeforeSave(_ *gorm.DB) error {
	r.Match = strings.TrimSpace(r.Match)
	r.Category = strings.TrimSpace(r.Category)
	r.Subcategory = strings.TrimSpace(r.Subcategory)

	if r.Match == "" {
		return NewValidationError("match rule", "match must not be empty")
	}

	if r.Category == "" || r.Subcategory == "" {
		return NewValidationError("match rule", "category and subcategory are required")
	}

	return nil
}
