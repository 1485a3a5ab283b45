package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	seedCategoryColumn    = "Category"
	seedSubcategoryColumn = "Sub Category"
)

var errSeedHeader = fmt.Errorf("seed header needs the columns %q and %q", seedCategoryColumn, seedSubcategoryColumn)

type seedEncoding struct {
	name    string
	decoder func() transform.Transformer
}

// seedEncodings are tried in order until one decodes the seed cleanly.
var seedEncodings = []seedEncoding{
	{"utf-8", func() transform.Transformer { return encoding.UTF8Validator }},
	{"utf-8-sig", func() transform.Transformer {
		return transform.Chain(encoding.UTF8Validator, unicode.UTF8BOM.NewDecoder())
	}},
	{"latin1", func() transform.Transformer { return charmap.ISO8859_1.NewDecoder() }},
	{"cp1252", func() transform.Transformer { return charmap.Windows1252.NewDecoder() }},
}

// defaultPairs are used when no seed file can be read.
var defaultPairs = []Pair{
	{"Housing", "Mortgage"}, {"Housing", "HOA"}, {"Housing", "Property Taxes"}, {"Housing", "Reserves"},
	{"Utilities", "Electric"}, {"Utilities", "Gas"}, {"Utilities", "Internet"}, {"Utilities", "Phone"}, {"Utilities", "Insurance"},
	{"Food", "Food (Groceries)"}, {"Food", "Food (Take Out)"}, {"Food", "Food (Dining Out)"},
	{"Healthcare", "Prescriptions"}, {"Healthcare", "Doctor Visits"}, {"Healthcare", "Co-Pay"},
	{"Vehicles", "Gas"}, {"Vehicles", "Insurance"}, {"Vehicles", "Repairs"}, {"Vehicles", "Parking"},
	{"Other", "Entertainment"}, {"Other", "Clothes"}, {"Other", "Other"},
	{"Income", "Salary"}, {"Income", "Bonus"}, {"Income", "Other Income"},
}

// readSeed returns the pairs of the first existing seed file or the defaults.
func (c *Catalog) readSeed() []Pair {
	path := c.findSeed()
	if path == "" {
		c.logger.Info().Strs("paths", c.seedPaths).Msg("no category seed file found, using default categories")
		return defaultPairs
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("could not read category seed, using default categories")
		return defaultPairs
	}

	for _, enc := range seedEncodings {
		pairs, err := decodeSeed(raw, enc.decoder())
		if err != nil {
			c.logger.Debug().Err(err).Str("path", path).Str("encoding", enc.name).Msg("seed does not decode")
			continue
		}

		c.logger.Info().Str("path", path).Str("encoding", enc.name).Int("pairs", len(pairs)).Msg("loaded category seed")
		return pairs
	}

	c.logger.Warn().Str("path", path).Msg("could not decode category seed with any supported encoding, using default categories")
	return defaultPairs
}

func (c *Catalog) findSeed() string {
	for _, path := range c.seedPaths {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// decodeSeed parses the seed with the given decoder. The seed decodes cleanly
// when all bytes are valid and the header has the category columns.
func decodeSeed(raw []byte, decoder transform.Transformer) ([]Pair, error) {
	decoded, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errSeedHeader
	} else if err != nil {
		return nil, err
	}

	categoryIndex, subcategoryIndex := -1, -1
	for i, column := range header {
		switch strings.TrimSpace(column) {
		case seedCategoryColumn:
			categoryIndex = i
		case seedSubcategoryColumn:
			subcategoryIndex = i
		}
	}

	if categoryIndex < 0 || subcategoryIndex < 0 {
		return nil, errSeedHeader
	}

	var pairs []Pair
	seen := make(map[Pair]bool)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("error in line %d of the seed: %w", line, err)
		}

		if categoryIndex >= len(record) || subcategoryIndex >= len(record) {
			continue
		}

		p := Pair{
			Category:    strings.TrimSpace(record[categoryIndex]),
			Subcategory: strings.TrimSpace(record[subcategoryIndex]),
		}
		if p.Category == "" || p.Subcategory == "" || seen[p] {
			continue
		}

		seen[p] = true
		pairs = append(pairs, p)
	}

	return pairs, nil
}
