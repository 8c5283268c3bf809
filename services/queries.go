package services

import (
	"sort"

	"playstore-analytics/models"
	"playstore-analytics/utils"
)

const (
	categoryGame      = "Game"
	categoryFinance   = "Finance"
	categoryLifestyle = "Lifestyle"
	contentTeen       = "Teen"

	bytesPerTiB = 1 << 40
)

// DefaultTopN is the row count of the top-N questions.
const DefaultTopN = 5

// QueryService answers the catalog questions over a cleaned catalog.
// Queries never modify the slice they are given.
type QueryService struct {
	logger *utils.Logger
}

func NewQueryService(logger *utils.Logger) *QueryService {
	return &QueryService{logger: logger}
}

type predicate func(*models.App) bool

func inCategory(category string) predicate {
	return func(a *models.App) bool { return a.Category == category }
}

func withContentRating(rating string) predicate {
	return func(a *models.App) bool { return a.ContentRating == rating }
}

func isFree(a *models.App) bool { return a.Price == 0 }

func byReviews(a *models.App) float64  { return float64(a.Reviews) }
func byPrice(a *models.App) float64    { return a.Price }
func byInstalls(a *models.App) float64 { return float64(a.Installs) }

// topBy filters apps, sorts them by key descending and keeps the first n.
// The sort is stable, so equal keys keep catalog order. n < 0 keeps all.
func topBy(apps []*models.App, key func(*models.App) float64, n int, filters ...predicate) []*models.App {
	matched := make([]*models.App, 0, len(apps))
next:
	for _, a := range apps {
		for _, keep := range filters {
			if !keep(a) {
				continue next
			}
		}
		matched = append(matched, a)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return key(matched[i]) > key(matched[j])
	})
	if n >= 0 && len(matched) > n {
		matched = matched[:n]
	}
	return matched
}

// leader returns the top app for key among those matching filters.
// ok is false when nothing matches.
func (s *QueryService) leader(name string, apps []*models.App, key func(*models.App) float64, filters ...predicate) (*models.App, bool) {
	top := topBy(apps, key, 1, filters...)
	if len(top) == 0 {
		s.logger.Debug("[query] %s: no matching apps", name)
		return nil, false
	}
	return top[0], true
}

// TopByReviews returns the n most reviewed apps.
func (s *QueryService) TopByReviews(apps []*models.App, n int) []*models.App {
	return topBy(apps, byReviews, n)
}

// CategoryCounts counts apps per category, largest first. Equal counts keep
// the order in which the categories first appear.
func (s *QueryService) CategoryCounts(apps []*models.App) []models.CategoryCount {
	pos := make(map[string]int)
	var counts []models.CategoryCount
	for _, a := range apps {
		i, ok := pos[a.Category]
		if !ok {
			i = len(counts)
			pos[a.Category] = i
			counts = append(counts, models.CategoryCount{Category: a.Category})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// TopByPrice returns the n most expensive apps.
func (s *QueryService) TopByPrice(apps []*models.App, n int) []*models.App {
	return topBy(apps, byPrice, n)
}

func (s *QueryService) MostExpensiveGame(apps []*models.App) (*models.App, bool) {
	return s.leader("most expensive game", apps, byPrice, inCategory(categoryGame))
}

func (s *QueryService) MostPopularFinance(apps []*models.App) (*models.App, bool) {
	return s.leader("most popular finance app", apps, byInstalls, inCategory(categoryFinance))
}

func (s *QueryService) TopTeenGame(apps []*models.App) (*models.App, bool) {
	return s.leader("most reviewed teen game", apps, byReviews,
		inCategory(categoryGame), withContentRating(contentTeen))
}

func (s *QueryService) TopFreeGame(apps []*models.App) (*models.App, bool) {
	return s.leader("most reviewed free game", apps, byReviews, inCategory(categoryGame), isFree)
}

// LifestyleTransfer estimates the bytes moved to install the most installed
// Lifestyle app everywhere it is installed, in TiB.
func (s *QueryService) LifestyleTransfer(apps []*models.App) (*models.TransferEstimate, bool) {
	app, ok := s.leader("most installed lifestyle app", apps, byInstalls, inCategory(categoryLifestyle))
	if !ok {
		return nil, false
	}
	return &models.TransferEstimate{
		App: app,
		TiB: float64(app.Installs) * app.Size / bytesPerTiB,
	}, true
}

// Generate answers every question. n is the length of the top-N lists.
func (s *QueryService) Generate(apps []*models.App, n int) *models.Report {
	if n <= 0 {
		n = DefaultTopN
	}
	report := &models.Report{
		TotalApps:     len(apps),
		TopReviewed:   s.TopByReviews(apps, n),
		Categories:    s.CategoryCounts(apps),
		MostExpensive: s.TopByPrice(apps, n),
	}
	report.MostExpensiveGame, _ = s.MostExpensiveGame(apps)
	report.MostPopularFinance, _ = s.MostPopularFinance(apps)
	report.TopTeenGame, _ = s.TopTeenGame(apps)
	report.TopFreeGame, _ = s.TopFreeGame(apps)
	report.LifestyleTransfer, _ = s.LifestyleTransfer(apps)
	return report
}
