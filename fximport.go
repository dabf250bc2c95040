package rappen

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/sfehr/rappen/date"
)

// RateImportSpec describes how to pull exchange rates out of an arbitrary
// JSON document. Rows selects the list of observations, and the remaining
// paths are evaluated relative to each row.
type RateImportSpec struct {
	Rows     string // jsonpath to the list of observations
	Date     string // jsonpath to the observation date, within a row
	Currency string // jsonpath to the quoted currency, within a row
	Rate     string // jsonpath to the home-per-unit rate, within a row
}

// ImportRates reads a JSON document and records every observation it
// describes into the rate table. It returns the number of rates recorded.
func ImportRates(rt *RateTable, r io.Reader, spec RateImportSpec) (int, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return 0, fmt.Errorf("invalid rate document: %w", err)
	}

	jrows, err := jsonpath.Get(spec.Rows, jobj)
	if err != nil {
		return 0, fmt.Errorf("error evaluating rows path %q: %w", spec.Rows, err)
	}
	rows, ok := jrows.([]any)
	if !ok {
		return 0, fmt.Errorf("rows path %q did not select a list: %v", spec.Rows, jrows)
	}

	count := 0
	for i, row := range rows {
		on, err := pathDate(row, spec.Date)
		if err != nil {
			return count, fmt.Errorf("row %d: %w", i, err)
		}
		currency, err := pathString(row, spec.Currency)
		if err != nil {
			return count, fmt.Errorf("row %d: %w", i, err)
		}
		rate, err := pathFloat(row, spec.Rate)
		if err != nil {
			return count, fmt.Errorf("row %d: %w", i, err)
		}
		if err := ValidateCurrency(currency); err != nil {
			return count, fmt.Errorf("row %d: %w", i, err)
		}
		if rate <= 0 {
			return count, fmt.Errorf("row %d: non-positive rate %v for %s", i, rate, currency)
		}
		rt.Add(on, currency, rate)
		count++
	}
	return count, nil
}

// pathValue evaluates a jsonpath relative to a row. Some jsonpath
// expressions return a one-element list instead of a scalar, so unwrap it.
func pathValue(row any, path string) (any, error) {
	jval, err := jsonpath.Get(path, row)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	return jval, nil
}

func pathString(row any, path string) (string, error) {
	jval, err := pathValue(row, path)
	if err != nil {
		return "", err
	}
	s, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("path %q: not a string: %v", path, jval)
	}
	return s, nil
}

func pathFloat(row any, path string) (float64, error) {
	jval, err := pathValue(row, path)
	if err != nil {
		return 0, err
	}
	if f, ok := jval.(float64); ok {
		return f, nil
	}
	// some feeds quote numbers as strings, with a comma decimal separator
	s, ok := jval.(string)
	if !ok {
		return 0, fmt.Errorf("path %q: neither a float nor a string: %v", path, jval)
	}
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.ReplaceAll(s, " ", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("path %q: invalid number %q: %w", path, s, err)
	}
	return f, nil
}

func pathDate(row any, path string) (date.Date, error) {
	s, err := pathString(row, path)
	if err != nil {
		return date.Date{}, err
	}
	on, err := date.Parse(s)
	if err != nil {
		return date.Date{}, fmt.Errorf("path %q: %w", path, err)
	}
	return on, nil
}
