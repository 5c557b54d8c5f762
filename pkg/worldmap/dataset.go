package worldmap

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	// ErrEmptyDataset is returned when a dataset has no items. The value
	// range over an empty set is unbounded, so binding fails fast instead
	// of producing infinite min/max silently.
	ErrEmptyDataset = errors.New("dataset is empty")

	// ErrNonFiniteValue is returned when a numeric value is NaN or infinite.
	ErrNonFiniteValue = errors.New("dataset value is not finite")
)

// Value is one country's datum, either numeric or free-form text. Text
// values render verbatim in tooltips but count as zero when computing the
// dataset's value range.
type Value struct {
	num     float64
	text    string
	numeric bool
}

// Number makes a numeric Value.
func Number(v float64) Value { return Value{num: v, numeric: true} }

// Text makes a textual Value.
func Text(s string) Value { return Value{text: s} }

// Numeric returns the numeric value and whether the Value is numeric.
func (v Value) Numeric() (float64, bool) { return v.num, v.numeric }

// rangeValue is the value used for min/max computation only.
func (v Value) rangeValue() float64 {
	if v.numeric {
		return v.num
	}
	return 0
}

func (v Value) String() string {
	if v.numeric {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.text
}

// MarshalJSON encodes the value as a bare number or string.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.numeric {
		return json.Marshal(v.num)
	}
	return json.Marshal(v.text)
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case float64:
		*v = Number(t)
	case string:
		*v = Text(t)
	default:
		return fmt.Errorf("value must be a number or string, got %T", raw)
	}
	return nil
}

// DataItem is one caller-supplied dataset entry. Country is an ISO 3166-1
// alpha-2 code in any casing.
type DataItem struct {
	Country string `json:"country"`
	Value   Value  `json:"value"`
}

// binding is the per-render lookup derived from a dataset: uppercase code to
// value, plus the numeric range used for color scaling.
type binding struct {
	values map[string]Value
	min    float64
	max    float64
}

func bindData(items []DataItem) (*binding, error) {
	if len(items) == 0 {
		return nil, ErrEmptyDataset
	}
	b := &binding{
		values: make(map[string]Value, len(items)),
		min:    math.Inf(1),
		max:    math.Inf(-1),
	}
	for _, it := range items {
		rv := it.Value.rangeValue()
		if math.IsNaN(rv) || math.IsInf(rv, 0) {
			return nil, fmt.Errorf("%w: country %q", ErrNonFiniteValue, it.Country)
		}
		b.values[strings.ToUpper(it.Country)] = it.Value
		if rv < b.min {
			b.min = rv
		}
		if rv > b.max {
			b.max = rv
		}
	}
	return b, nil
}

func (b *binding) lookup(code string) (Value, bool) {
	v, ok := b.values[code]
	return v, ok
}

// LoadDataFile reads a dataset from a .json file (array of {country, value}
// objects) or a .csv file (country,value rows, optional header).
func LoadDataFile(path string) ([]DataItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSVData(f)
	default:
		var items []DataItem
		if err := json.NewDecoder(f).Decode(&items); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return items, nil
	}
}

func readCSVData(r io.Reader) ([]DataItem, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	var items []DataItem
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) < 2 {
			continue
		}
		country := strings.TrimSpace(rec[0])
		raw := strings.TrimSpace(rec[1])
		if strings.EqualFold(country, "country") {
			continue // header row
		}
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			items = append(items, DataItem{Country: country, Value: Number(n)})
		} else {
			items = append(items, DataItem{Country: country, Value: Text(raw)})
		}
	}
	return items, nil
}
