package models

import "strconv"

// Source column names, exactly as they appear in the catalog header.
const (
	ColApp           = "App"
	ColCategory      = "Category"
	ColRating        = "Rating"
	ColReviews       = "Reviews"
	ColSize          = "Size"
	ColInstalls      = "Installs"
	ColType          = "Type"
	ColPrice         = "Price"
	ColContentRating = "Content Rating"
	ColGenres        = "Genres"
	ColLastUpdated   = "Last Updated"
	ColCurrentVer    = "Current Ver"
	ColAndroidVer    = "Android Ver"
)

// Columns lists every column the catalog header must carry.
var Columns = []string{
	ColApp, ColCategory, ColRating, ColReviews, ColSize, ColInstalls, ColType,
	ColPrice, ColContentRating, ColGenres, ColLastUpdated, ColCurrentVer, ColAndroidVer,
}

const (
	DistributionFree = "Free"
	DistributionPaid = "Paid"
)

// RawApp holds one catalog row exactly as read from the source.
// Every cell is text; nothing has been validated yet.
type RawApp struct {
	Line          int
	App           string
	Category      string
	Rating        string
	Reviews       string
	Size          string
	Installs      string
	Type          string
	Price         string
	ContentRating string
	Genres        string
	LastUpdated   string
	CurrentVer    string
	AndroidVer    string
}

// Cells returns the row's cells keyed by column name.
func (r *RawApp) Cells() map[string]string {
	return map[string]string{
		ColApp:           r.App,
		ColCategory:      r.Category,
		ColRating:        r.Rating,
		ColReviews:       r.Reviews,
		ColSize:          r.Size,
		ColInstalls:      r.Installs,
		ColType:          r.Type,
		ColPrice:         r.Price,
		ColContentRating: r.ContentRating,
		ColGenres:        r.Genres,
		ColLastUpdated:   r.LastUpdated,
		ColCurrentVer:    r.CurrentVer,
		ColAndroidVer:    r.AndroidVer,
	}
}

// App is a cleaned catalog listing. Size is in bytes.
type App struct {
	Line          int
	App           string
	Category      string
	Rating        float64
	Reviews       int64
	Size          float64
	Installs      int64
	Type          string
	Price         float64
	Distribution  string
	ContentRating string
	Genres        string
	LastUpdated   string
	CurrentVer    string
	AndroidVer    string
}

// Raw renders the listing back into source text. Cleaning the result
// yields the same App.
func (a *App) Raw() *RawApp {
	price := DistributionFree
	if a.Price > 0 {
		price = "$" + formatFloat(a.Price)
	}
	return &RawApp{
		Line:          a.Line,
		App:           a.App,
		Category:      a.Category,
		Rating:        formatFloat(a.Rating),
		Reviews:       strconv.FormatInt(a.Reviews, 10),
		Size:          formatFloat(a.Size),
		Installs:      strconv.FormatInt(a.Installs, 10),
		Type:          a.Type,
		Price:         price,
		ContentRating: a.ContentRating,
		Genres:        a.Genres,
		LastUpdated:   a.LastUpdated,
		CurrentVer:    a.CurrentVer,
		AndroidVer:    a.AndroidVer,
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
