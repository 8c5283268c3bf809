package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"playstore-analytics/models"
)

const utf8BOM = "\ufeff"

// CSVReader loads the raw catalog from a comma-delimited file with a header row.
type CSVReader struct {
	path string
	file *os.File
}

// NewCSVReader opens the catalog at path. The caller must Close it.
func NewCSVReader(path string) (*CSVReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	return &CSVReader{path: path, file: f}, nil
}

// LoadCSV opens, reads and closes the catalog at path.
func LoadCSV(path string) ([]*models.RawApp, error) {
	r, err := NewCSVReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.ReadRaw()
}

// ReadRaw reads every row. Rows must all have the header's column count.
func (c *CSVReader) ReadRaw() ([]*models.RawApp, error) {
	return readCatalog(c.file, c.path)
}

// Close releases the underlying file.
func (c *CSVReader) Close() error {
	return c.file.Close()
}

func readCatalog(src io.Reader, path string) ([]*models.RawApp, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = 0

	header, err := r.Read()
	if err == io.EOF {
		return nil, &ParseError{Path: path, Err: errors.New("missing header row")}
	}
	if err != nil {
		return nil, wrapReadErr(path, err)
	}

	index, err := headerIndex(header)
	if err != nil {
		return nil, &ParseError{Path: path, Line: 1, Err: err}
	}

	var apps []*models.RawApp
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapReadErr(path, err)
		}
		line, _ := r.FieldPos(0)
		apps = append(apps, rowToRaw(record, index, line))
	}
	return apps, nil
}

// headerIndex maps every required column to its position in the header.
func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range models.Columns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("header missing columns: %s", strings.Join(missing, ", "))
	}
	return index, nil
}

func rowToRaw(record []string, index map[string]int, line int) *models.RawApp {
	cell := func(col string) string { return record[index[col]] }
	return &models.RawApp{
		Line:          line,
		App:           cell(models.ColApp),
		Category:      cell(models.ColCategory),
		Rating:        cell(models.ColRating),
		Reviews:       cell(models.ColReviews),
		Size:          cell(models.ColSize),
		Installs:      cell(models.ColInstalls),
		Type:          cell(models.ColType),
		Price:         cell(models.ColPrice),
		ContentRating: cell(models.ColContentRating),
		Genres:        cell(models.ColGenres),
		LastUpdated:   cell(models.ColLastUpdated),
		CurrentVer:    cell(models.ColCurrentVer),
		AndroidVer:    cell(models.ColAndroidVer),
	}
}

func wrapReadErr(path string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Path: path, Line: pe.Line, Err: pe.Err}
	}
	return &IOError{Path: path, Err: err}
}
