package importer

import (
	"strings"

	"github.com/homeledger/backend/pkg/catalog"
	"github.com/homeledger/backend/pkg/models"
)

const (
	fallbackCategory    = "Other"
	fallbackSubcategory = "Other"
)

// Catalog is the part of the category catalog the guesser needs.
type Catalog interface {
	IsValid(category, subcategory string) bool
	First() (catalog.Pair, bool)
}

// Guesser assigns categories to statement descriptions.
//
// Every candidate must exist in the catalog. The layers are tried in order:
// match rules, merchants, keyword groups, the category label of the statement
// and finally ("Other", "Other").
type Guesser struct {
	catalog Catalog
	rules   []models.MatchRule
}

// NewGuesser creates a guesser. The rules must be sorted by priority.
func NewGuesser(c Catalog, rules []models.MatchRule) *Guesser {
	return &Guesser{catalog: c, rules: rules}
}

type merchant struct {
	match string
	pair  catalog.Pair
}

// merchants are matched as substrings of the upper-cased description, first match wins.
var merchants = []merchant{
	{"WALGREENS", catalog.Pair{Category: "Healthcare", Subcategory: "Prescriptions"}},
	{"CVS", catalog.Pair{Category: "Healthcare", Subcategory: "Prescriptions"}},
	{"APPLE.COM", catalog.Pair{Category: "Other", Subcategory: "Entertainment"}},
	{"AMAZON PRIME", catalog.Pair{Category: "Other", Subcategory: "Amazon Prime"}},
	{"AMAZON", catalog.Pair{Category: "Other", Subcategory: "Other"}},
	{"EBAY", catalog.Pair{Category: "Other", Subcategory: "Other"}},
	{"WHOLEFDS", catalog.Pair{Category: "Food", Subcategory: "Food (Groceries)"}},
	{"WHOLE FOODS", catalog.Pair{Category: "Food", Subcategory: "Food (Groceries)"}},
	{"ACME", catalog.Pair{Category: "Food", Subcategory: "Food (Groceries)"}},
	{"ALDI", catalog.Pair{Category: "Food", Subcategory: "Food (Groceries)"}},
	{"TRADER JOE", catalog.Pair{Category: "Food", Subcategory: "Food (Groceries)"}},
	{"TARGET", catalog.Pair{Category: "Other", Subcategory: "Other"}},
	{"MCDONALDS", catalog.Pair{Category: "Food", Subcategory: "Food (Take Out)"}},
	{"UBER EATS", catalog.Pair{Category: "Food", Subcategory: "Food (Take Out)"}},
	{"UBER", catalog.Pair{Category: "Utilities", Subcategory: "Taxi / Transit"}},
	{"LYFT", catalog.Pair{Category: "Utilities", Subcategory: "Taxi / Transit"}},
	{"7-ELEVEN", catalog.Pair{Category: "Vehicles", Subcategory: "Gas"}},
	{"GOOGLE", catalog.Pair{Category: "Other", Subcategory: "Entertainment"}},
	{"NETFLIX", catalog.Pair{Category: "Other", Subcategory: "Entertainment"}},
	{"HULU", catalog.Pair{Category: "Other", Subcategory: "Entertainment"}},
	{"HBO", catalog.Pair{Category: "Other", Subcategory: "Entertainment"}},
	{"PRIME VIDEO", catalog.Pair{Category: "Other", Subcategory: "Entertainment"}},
	{"GITHUB", catalog.Pair{Category: "Other", Subcategory: "Other"}},
}

type keywordGroup struct {
	keywords   []string
	candidates []catalog.Pair
}

// keywordGroups are tried in order. The first candidate of the first
// matching group that exists in the catalog wins.
var keywordGroups = []keywordGroup{
	{ // groceries
		[]string{"GROCERY", "SUPERMARKET", "MARKET"},
		[]catalog.Pair{{Category: "Food", Subcategory: "Food (Groceries)"}},
	},
	{ // dining
		[]string{"RESTAURANT", "CAFE", "PIZZA", "DELI", "DINER", "GRILL"},
		[]catalog.Pair{{Category: "Food", Subcategory: "Food (Dining Out)"}},
	},
	{ // gas
		[]string{"GAS", "FUEL", "EXXON", "SHELL", "BP"},
		[]catalog.Pair{{Category: "Vehicles", Subcategory: "Gas"}},
	},
	{ // pharmacy
		[]string{"PHARMACY", "DRUG", "MEDICAL", "DOCTOR"},
		[]catalog.Pair{{Category: "Healthcare", Subcategory: "Other Doctor Visits"}, {Category: "Healthcare", Subcategory: "Prescriptions"}},
	},
	{ // parking
		[]string{"PARKING", "TOLL"},
		[]catalog.Pair{{Category: "Vehicles", Subcategory: "Parking"}, {Category: "Vehicles", Subcategory: "Tolls"}},
	},
	{ // insurance
		[]string{"INSURANCE", "GEICO", "PROGRESSIVE", "STATE FARM"},
		[]catalog.Pair{{Category: "Utilities", Subcategory: "Insurance"}, {Category: "Vehicles", Subcategory: "Insurance"}},
	},
	{ // rideshare
		[]string{"UBER", "LYFT", "TAXI", "TRANSIT", "METRO"},
		[]catalog.Pair{{Category: "Utilities", Subcategory: "Taxi / Transit"}, {Category: "Childcare", Subcategory: "Uber / Lyft"}, {Category: "Vacation", Subcategory: "Taxi"}},
	},
	{ // streaming
		[]string{"NETFLIX", "HULU", "SPOTIFY", "DISNEY", "YOUTUBE"},
		[]catalog.Pair{{Category: "Utilities", Subcategory: "Streaming"}, {Category: "Other", Subcategory: "Entertainment"}},
	},
	{ // coffee
		[]string{"COFFEE", "STARBUCKS", "DUNKIN", "ESPRESSO"},
		[]catalog.Pair{{Category: "Food", Subcategory: "Food (Take Out)"}, {Category: "Food", Subcategory: "Food (Dining Out)"}},
	},
}

// sourceCategories maps the category labels of credit card statements.
var sourceCategories = map[string]catalog.Pair{
	"Shopping":              {Category: "Other", Subcategory: "Other"},
	"Health & Wellness":     {Category: "Healthcare", Subcategory: "Other Doctor Visits"},
	"Groceries":             {Category: "Food", Subcategory: "Food (Groceries)"},
	"Food & Drink":          {Category: "Food", Subcategory: "Food (Dining Out)"},
	"Gas":                   {Category: "Vehicles", Subcategory: "Gas"},
	"Entertainment":         {Category: "Other", Subcategory: "Entertainment"},
	"Professional Services": {Category: "Other", Subcategory: "Other"},
	"Personal":              {Category: "Other", Subcategory: "Other"},
	"Automotive":            {Category: "Vehicles", Subcategory: "Vehicle Other"},
	"Bills & Utilities":     {Category: "Utilities", Subcategory: "Misc Utility"},
	"Travel":                {Category: "Vacation", Subcategory: "Flights/Travel"},
	"Home":                  {Category: "Home", Subcategory: "Home Necessities"},
	"Gifts & Donations":     {Category: "Other", Subcategory: "Gifts"},
	"Fees & Adjustments":    {Category: "Other", Subcategory: "Fees"},
}

// Guess returns the category and subcategory for a description. sourceCategory
// is the category label of the statement and may be empty.
func (g *Guesser) Guess(description, sourceCategory string) (string, string) {
	for _, rule := range g.rules {
		if rule.Matches(description) && g.valid(catalog.Pair{Category: rule.Category, Subcategory: rule.Subcategory}) {
			return rule.Category, rule.Subcategory
		}
	}

	upper := strings.ToUpper(description)
	for _, m := range merchants {
		if strings.Contains(upper, m.match) && g.valid(m.pair) {
			return m.pair.Category, m.pair.Subcategory
		}
	}

	for _, group := range keywordGroups {
		if !containsAny(upper, group.keywords) {
			continue
		}

		for _, candidate := range group.candidates {
			if g.valid(candidate) {
				return candidate.Category, candidate.Subcategory
			}
		}
	}

	if p, ok := sourceCategories[strings.TrimSpace(sourceCategory)]; ok && g.valid(p) {
		return p.Category, p.Subcategory
	}

	return g.fallback()
}

func (g *Guesser) valid(p catalog.Pair) bool {
	return g.catalog != nil && g.catalog.IsValid(p.Category, p.Subcategory)
}

func (g *Guesser) fallback() (string, string) {
	if g.valid(catalog.Pair{Category: fallbackCategory, Subcategory: fallbackSubcategory}) {
		return fallbackCategory, fallbackSubcategory
	}

	if g.catalog != nil {
		if first, ok := g.catalog.First(); ok {
			return first.Category, first.Subcategory
		}
	}

	return fallbackCategory, fallbackSubcategory
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
