package storage

import "playstore-analytics/models"

// CatalogReader is the interface any catalog source must satisfy.
type CatalogReader interface {
	ReadRaw() ([]*models.RawApp, error)
	Close() error
}
