package models

// CategoryCount is the number of listings in one category.
type CategoryCount struct {
	Category string
	Count    int
}

// TransferEstimate is the data volume moved by every install of one app.
type TransferEstimate struct {
	App *App
	// TiB is Installs × Size expressed in tebibytes (2^40 bytes).
	TiB float64
}

// Report holds the answers to every catalog question. A nil pointer means
// the question's filter matched no listing.
type Report struct {
	TotalApps          int
	TopReviewed        []*App
	Categories         []CategoryCount
	MostExpensive      []*App
	MostExpensiveGame  *App
	MostPopularFinance *App
	TopTeenGame        *App
	TopFreeGame        *App
	LifestyleTransfer  *TransferEstimate
}
