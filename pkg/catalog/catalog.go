// Package catalog holds the category → subcategories mapping used to
// validate and classify expenses.
//
// The catalog merges a seed file with the pairs persisted in the database.
// It is constructed once and shared by reference, writers must be serialized
// by the caller.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/homeledger/backend/pkg/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCategoryExists    = models.NewConflictError("category", "the category already exists")
	ErrSubcategoryExists = models.NewConflictError("subcategory", "the subcategory already exists in this category")
	ErrSubcategoryInUse  = models.NewConflictError("subcategory", "the subcategory is still used by expenses")
)

// DefaultSeedPaths are probed in order when no seed paths are configured.
var DefaultSeedPaths = []string{"./categories.csv", "./data/categories.csv"}

// Pair is a category with one of its subcategories.
type Pair struct {
	Category    string
	Subcategory string
}

// Category is a category with its subcategories in insertion order.
type Category struct {
	Name          string
	Subcategories []string
}

type Catalog struct {
	db        *gorm.DB
	seedPaths []string
	logger    *zerolog.Logger

	order   []string            // category names in insertion order
	entries map[string][]string // subcategories in insertion order
}

type Option func(*Catalog)

// WithSeedPaths sets the candidate seed file paths. The first existing file is used.
func WithSeedPaths(paths ...string) Option {
	return func(c *Catalog) {
		c.seedPaths = paths
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Catalog) {
		c.logger = &logger
	}
}

// New creates an empty catalog. Call Load to populate it.
func New(db *gorm.DB, opts ...Option) *Catalog {
	c := &Catalog{
		db:        db,
		seedPaths: DefaultSeedPaths,
		logger:    &log.Logger,
		entries:   make(map[string][]string),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Load reads the seed file and reconciles it with the database.
//
// Problems with the seed file are logged and the built-in defaults are used
// instead. Only database errors are returned.
func (c *Catalog) Load(ctx context.Context) error {
	seed := c.readSeed()

	c.reset()
	for _, p := range seed {
		c.insert(p.Category, p.Subcategory)
	}

	if len(seed) > 0 {
		rows := make([]models.CategoryEntry, 0, len(seed))
		for _, p := range seed {
			rows = append(rows, models.CategoryEntry{Category: p.Category, Subcategory: p.Subcategory})
		}

		err := c.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&rows, 100).Error
		if err != nil {
			return fmt.Errorf("could not store seed categories: %w", err)
		}
	}

	return c.fold(ctx)
}

// Refresh discards the in-memory catalog and reloads it from the database.
func (c *Catalog) Refresh(ctx context.Context) error {
	c.reset()
	return c.fold(ctx)
}

// fold merges all persisted pairs into memory.
func (c *Catalog) fold(ctx context.Context) error {
	var stored []models.CategoryEntry
	err := c.db.WithContext(ctx).Order("category, subcategory").Find(&stored).Error
	if err != nil {
		return fmt.Errorf("could not read categories: %w", err)
	}

	for _, e := range stored {
		c.insert(e.Category, e.Subcategory)
	}

	c.logger.Debug().Int("categories", len(c.order)).Int("stored", len(stored)).Msg("category catalog loaded")
	return nil
}

func (c *Catalog) reset() {
	c.order = nil
	c.entries = make(map[string][]string)
}

// insert adds the pair to memory if it is not yet present.
func (c *Catalog) insert(category, subcategory string) {
	subs, ok := c.entries[category]
	if !ok {
		c.order = append(c.order, category)
	}

	if !slices.Contains(subs, subcategory) {
		c.entries[category] = append(subs, subcategory)
	}
}

// AddCategory creates a category with the placeholder subcategory "<name> (General)".
func (c *Catalog) AddCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.NewValidationError("category", "name must not be empty")
	}

	if c.CategoryExists(name) {
		return ErrCategoryExists
	}

	placeholder := fmt.Sprintf("%s (General)", name)
	err := c.db.WithContext(ctx).Create(&models.CategoryEntry{Category: name, Subcategory: placeholder}).Error
	if err != nil && !errors.Is(err, models.ErrCategoryEntryExists) {
		return err
	}

	c.insert(name, placeholder)
	return nil
}

// AddSubcategory adds a subcategory, creating the category if it does not exist yet.
func (c *Catalog) AddSubcategory(ctx context.Context, category, name string) error {
	category = strings.TrimSpace(category)
	name = strings.TrimSpace(name)
	if category == "" || name == "" {
		return models.NewValidationError("subcategory", "category and name must not be empty")
	}

	if c.SubcategoryExists(category, name) {
		return ErrSubcategoryExists
	}

	err := c.db.WithContext(ctx).Create(&models.CategoryEntry{Category: category, Subcategory: name}).Error
	if errors.Is(err, models.ErrCategoryEntryExists) {
		// Added by someone else since the last refresh
		c.insert(category, name)
		return ErrSubcategoryExists
	} else if err != nil {
		return err
	}

	c.insert(category, name)
	return nil
}

// RemoveSubcategory removes a subcategory that no expense references.
// A category without subcategories is removed as well.
func (c *Catalog) RemoveSubcategory(ctx context.Context, category, name string) error {
	if !c.SubcategoryExists(category, name) {
		return models.NewNotFoundError("subcategory")
	}

	var usage int64
	err := c.db.WithContext(ctx).Model(&models.Expense{}).Where(&models.Expense{Category: category, Subcategory: name}).Count(&usage).Error
	if err != nil {
		return err
	}

	if usage > 0 {
		return ErrSubcategoryInUse
	}

	err = c.db.WithContext(ctx).Where("category = ? AND subcategory = ?", category, name).Delete(&models.CategoryEntry{}).Error
	if err != nil {
		return err
	}

	subs := c.entries[category]
	subs = slices.Delete(subs, slices.Index(subs, name), slices.Index(subs, name)+1)
	if len(subs) == 0 {
		delete(c.entries, category)
		c.order = slices.Delete(c.order, slices.Index(c.order, category), slices.Index(c.order, category)+1)
		return nil
	}

	c.entries[category] = subs
	return nil
}

// IsValid reports whether the subcategory exists in the category.
func (c *Catalog) IsValid(category, subcategory string) bool {
	return c.SubcategoryExists(category, subcategory)
}

func (c *Catalog) CategoryExists(category string) bool {
	_, ok := c.entries[category]
	return ok
}

func (c *Catalog) SubcategoryExists(category, subcategory string) bool {
	return slices.Contains(c.entries[category], subcategory)
}

// Categories returns a copy of the catalog in insertion order.
func (c *Catalog) Categories() []Category {
	categories := make([]Category, 0, len(c.order))
	for _, name := range c.order {
		categories = append(categories, Category{
			Name:          name,
			Subcategories: slices.Clone(c.entries[name]),
		})
	}
	return categories
}

// CategoryNames returns all category names, sorted.
func (c *Catalog) CategoryNames() []string {
	names := slices.Clone(c.order)
	slices.Sort(names)
	return names
}

// Subcategories returns a copy of the subcategories of a category.
func (c *Catalog) Subcategories(category string) []string {
	return slices.Clone(c.entries[category])
}

// Pairs returns every category/subcategory pair in catalog order.
func (c *Catalog) Pairs() []Pair {
	var pairs []Pair
	for _, name := range c.order {
		for _, sub := range c.entries[name] {
			pairs = append(pairs, Pair{Category: name, Subcategory: sub})
		}
	}
	return pairs
}

// First returns the first pair of the catalog. ok is false if the catalog is empty.
func (c *Catalog) First() (p Pair, ok bool) {
	for _, name := range c.order {
		if subs := c.entries[name]; len(subs) > 0 {
			return Pair{Category: name, Subcategory: subs[0]}, true
		}
	}
	return Pair{}, false
}
