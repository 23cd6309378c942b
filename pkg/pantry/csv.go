package pantry

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// CSVFormat describes the layout of a pantry seed file.
type CSVFormat struct {
	Delimiter string // default ","
	Encoding  string // IANA name; empty or utf-8 means no transcoding
	HasHeader bool
}

// SeedRow is one raw row of a pantry seed file. Category and unit are
// kept as free-form words so the caller can resolve them through the
// voice lexicon.
type SeedRow struct {
	Name        string
	Category    string
	Quantity    float64
	MinQuantity float64
	Unit        string
}

// ReadSeedCSV reads a seed file with columns
// name,category,quantity,min_quantity,unit. Rows with an empty name are
// skipped. Non-UTF-8 encodings declared in the format are transcoded.
func ReadSeedCSV(path string, format CSVFormat) ([]SeedRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if enc := format.Encoding; enc != "" && !isUTF8(enc) {
		e, err := htmlindex.Get(enc)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", enc, err)
		}
		reader = transform.NewReader(f, e.NewDecoder())
	}

	r := csv.NewReader(reader)
	if format.Delimiter != "" {
		r.Comma = []rune(format.Delimiter)[0]
	}
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	if format.HasHeader {
		if _, err := r.Read(); err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
	}

	var rows []SeedRow
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line++

		row := SeedRow{Name: strings.TrimSpace(field(record, 0))}
		if row.Name == "" {
			continue
		}
		row.Category = strings.TrimSpace(field(record, 1))
		row.Unit = strings.TrimSpace(field(record, 4))

		if row.Quantity, err = parseQuantity(field(record, 2)); err != nil {
			return nil, fmt.Errorf("row %d (%s): quantity: %w", line, row.Name, err)
		}
		if row.MinQuantity, err = parseQuantity(field(record, 3)); err != nil {
			return nil, fmt.Errorf("row %d (%s): min_quantity: %w", line, row.Name, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func field(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}

// parseQuantity accepts "1", "1.5" and "1,5"; empty means zero.
func parseQuantity(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negative quantity %v", v)
	}
	return v, nil
}

func isUTF8(enc string) bool {
	e := strings.ToLower(strings.ReplaceAll(enc, "-", ""))
	return e == "utf8" || e == ""
}
