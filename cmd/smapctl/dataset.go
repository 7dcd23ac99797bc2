package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/slicemap/smap/table"
)

var ErrMalformedRow = errors.New("malformed dataset row")

// readDataset loads keyA,keyB,value rows. A first row whose value column
// does not parse as a number is treated as a header.
func readDataset(file string) ([]table.Entry[string, string, float64], error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()
	return parseDataset(f)
}

func parseDataset(r io.Reader) ([]table.Entry[string, string, float64], error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var entries []table.Entry[string, string, float64]
	for record := 1; ; record++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRow, err)
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if err != nil {
			if record == 1 {
				continue
			}
			return nil, fmt.Errorf("%w: record %d: value %q is not a number", ErrMalformedRow, record, rec[2])
		}
		entries = append(entries, table.Entry[string, string, float64]{
			KeyA:  strings.TrimSpace(rec[0]),
			KeyB:  strings.TrimSpace(rec[1]),
			Value: v,
		})
	}
	return entries, nil
}
