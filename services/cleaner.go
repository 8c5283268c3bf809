package services

import (
	"sort"

	"playstore-analytics/models"
	"playstore-analytics/utils"
)

// Cleaner transforms raw catalog rows into clean, validated Apps.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// CleanResult is the cleaned catalog plus what the cleaning passes did.
type CleanResult struct {
	Apps     []*models.App
	Rejected []*FieldCoercionError

	InputRows int
	// MissingByColumn counts missing cells per column over the raw input,
	// most missing first. Columns without gaps are left out.
	MissingByColumn []MissingCount
	RatingMean      float64
	ImputedRatings  int
	DroppedMissing  int
	// SharedNames is the number of rows whose App name occurs more than
	// once; Duplicates is how many of them deduplication removed.
	SharedNames int
	Duplicates  int
}

// MissingCount is the number of missing cells in one column.
type MissingCount struct {
	Column string
	Count  int
}

// stagedRow is a raw row that survived the rating and missing-value passes.
type stagedRow struct {
	raw     *models.RawApp
	rating  float64
	reviews int64
}

// Clean runs the cleaning passes in order and returns a new catalog; raw is
// not modified. The rating mean is taken over the whole input before rows
// with missing cells are dropped.
func (c *Cleaner) Clean(raw []*models.RawApp) *CleanResult {
	res := &CleanResult{InputRows: len(raw)}

	res.MissingByColumn = countMissing(raw)
	staged := c.repairRatings(raw, res)
	staged = c.dropMissing(staged, res)
	staged = c.parseReviewCounts(staged, res)
	staged = c.dedupe(staged, res)

	res.Apps = make([]*models.App, 0, len(staged))
	for _, s := range staged {
		app, err := c.finish(s)
		if err != nil {
			c.reject(res, err)
			continue
		}
		res.Apps = append(res.Apps, app)
	}

	for _, m := range res.MissingByColumn {
		c.logger.Info("[cleaner] Column %q: %d missing", m.Column, m.Count)
	}
	c.logger.Info("[cleaner] Cleaned %d → %d apps (imputed ratings %d, missing %d, shared names %d, duplicates %d, rejected %d)",
		res.InputRows, len(res.Apps), res.ImputedRatings, res.DroppedMissing, res.SharedNames, res.Duplicates, len(res.Rejected))
	return res
}

// countMissing tallies missing cells per column before any repair. Equal
// counts keep header order.
func countMissing(raw []*models.RawApp) []MissingCount {
	counts := make([]MissingCount, len(models.Columns))
	for i, col := range models.Columns {
		counts[i].Column = col
	}
	for _, r := range raw {
		cells := r.Cells()
		for i, col := range models.Columns {
			if isMissing(cells[col]) {
				counts[i].Count++
			}
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	n := 0
	for n < len(counts) && counts[n].Count > 0 {
		n++
	}
	return counts[:n]
}

// repairRatings fills missing and out-of-range ratings with the mean of the
// valid ones. Without any valid rating the cells stay missing.
func (c *Cleaner) repairRatings(raw []*models.RawApp, res *CleanResult) []*stagedRow {
	var sum float64
	var valid int
	for _, r := range raw {
		if v, ok := parseRating(r.Rating); ok {
			sum += v
			valid++
		}
	}
	if valid > 0 {
		res.RatingMean = sum / float64(valid)
	}

	staged := make([]*stagedRow, 0, len(raw))
	for _, r := range raw {
		row := *r
		if v, ok := parseRating(row.Rating); ok {
			staged = append(staged, &stagedRow{raw: &row, rating: v})
			continue
		}
		if valid > 0 {
			c.logger.Debug("[cleaner] line %d (%s): rating %q imputed to %.4f", row.Line, row.App, row.Rating, res.RatingMean)
			row.Rating = ""
			res.ImputedRatings++
			staged = append(staged, &stagedRow{raw: &row, rating: res.RatingMean})
			continue
		}
		row.Rating = ""
		staged = append(staged, &stagedRow{raw: &row, rating: -1})
	}
	return staged
}

// dropMissing removes rows with any missing cell. A negative rating marks a
// rating that could not be imputed.
func (c *Cleaner) dropMissing(staged []*stagedRow, res *CleanResult) []*stagedRow {
	kept := staged[:0]
	for _, s := range staged {
		if col, missing := firstMissing(s); missing {
			c.logger.Debug("[cleaner] line %d (%s): dropping row, %s is missing", s.raw.Line, s.raw.App, col)
			res.DroppedMissing++
			continue
		}
		kept = append(kept, s)
	}
	return kept
}

func firstMissing(s *stagedRow) (string, bool) {
	if s.rating < 0 {
		return models.ColRating, true
	}
	cells := s.raw.Cells()
	for _, col := range models.Columns {
		if col == models.ColRating {
			continue
		}
		if isMissing(cells[col]) {
			return col, true
		}
	}
	return "", false
}

func (c *Cleaner) parseReviewCounts(staged []*stagedRow, res *CleanResult) []*stagedRow {
	kept := staged[:0]
	for _, s := range staged {
		n, err := parseReviews(s.raw.Reviews)
		if err != nil {
			c.reject(res, coercionErr(s.raw, models.ColReviews, s.raw.Reviews, err))
			continue
		}
		s.reviews = n
		kept = append(kept, s)
	}
	return kept
}

// dedupe keeps one row per App: the one with the most reviews, and of equal
// counts the one read last. The result is ordered by App name.
func (c *Cleaner) dedupe(staged []*stagedRow, res *CleanResult) []*stagedRow {
	occurrences := make(map[string]int, len(staged))
	for _, s := range staged {
		occurrences[s.raw.App]++
	}
	for _, n := range occurrences {
		if n > 1 {
			res.SharedNames += n
		}
	}

	best := make(map[string]*stagedRow, len(staged))
	for _, s := range staged {
		cur, dup := best[s.raw.App]
		if !dup {
			best[s.raw.App] = s
			continue
		}
		res.Duplicates++
		if s.reviews >= cur.reviews {
			c.logger.Debug("[cleaner] duplicate %q: line %d (%d reviews) replaces line %d (%d reviews)",
				s.raw.App, s.raw.Line, s.reviews, cur.raw.Line, cur.reviews)
			best[s.raw.App] = s
		}
	}

	unique := make([]*stagedRow, 0, len(best))
	for _, s := range best {
		unique = append(unique, s)
	}
	sort.Slice(unique, func(i, j int) bool {
		return unique[i].raw.App < unique[j].raw.App
	})
	return unique
}

// finish normalizes the category, parses installs, size and price, and
// derives the distribution label.
func (c *Cleaner) finish(s *stagedRow) (*models.App, *FieldCoercionError) {
	r := s.raw

	category := normalizeCategory(r.Category)
	if !validCategory(category) {
		return nil, coercionErr(r, models.ColCategory, r.Category, errNoLetter)
	}
	installs, err := parseInstalls(r.Installs)
	if err != nil {
		return nil, coercionErr(r, models.ColInstalls, r.Installs, err)
	}
	size, err := parseSize(r.Size)
	if err != nil {
		return nil, coercionErr(r, models.ColSize, r.Size, err)
	}
	price, err := parsePrice(r.Price)
	if err != nil {
		return nil, coercionErr(r, models.ColPrice, r.Price, err)
	}

	return &models.App{
		Line:          r.Line,
		App:           r.App,
		Category:      category,
		Rating:        s.rating,
		Reviews:       s.reviews,
		Size:          size,
		Installs:      installs,
		Type:          r.Type,
		Price:         price,
		Distribution:  distribution(price),
		ContentRating: r.ContentRating,
		Genres:        r.Genres,
		LastUpdated:   r.LastUpdated,
		CurrentVer:    r.CurrentVer,
		AndroidVer:    r.AndroidVer,
	}, nil
}

func (c *Cleaner) reject(res *CleanResult, err *FieldCoercionError) {
	c.logger.Warn("[cleaner] Dropping row: %v", err)
	res.Rejected = append(res.Rejected, err)
}

func coercionErr(r *models.RawApp, field, value string, err error) *FieldCoercionError {
	return &FieldCoercionError{Line: r.Line, App: r.App, Field: field, Value: value, Err: err}
}
