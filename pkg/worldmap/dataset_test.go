package worldmap

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBindDataRange(t *testing.T) {
	b, err := bindData([]DataItem{
		{Country: "cn", Value: Number(1389618778)},
		{Country: "in", Value: Number(1311559204)},
		{Country: "sm", Value: Number(33785)},
	})
	if err != nil {
		t.Fatalf("bindData: %v", err)
	}
	if b.min != 33785 {
		t.Errorf("min = %v, want 33785", b.min)
	}
	if b.max != 1389618778 {
		t.Errorf("max = %v, want 1389618778", b.max)
	}
}

func TestBindDataUppercasesCodes(t *testing.T) {
	b, err := bindData([]DataItem{{Country: "us", Value: Number(5)}})
	if err != nil {
		t.Fatalf("bindData: %v", err)
	}
	if _, ok := b.lookup("US"); !ok {
		t.Error(`lookup("US") missed a dataset keyed "us"`)
	}
	if _, ok := b.lookup("us"); ok {
		t.Error("lookup works on normalized codes only; lowercase should miss")
	}
}

func TestBindDataTextCountsAsZero(t *testing.T) {
	b, err := bindData([]DataItem{
		{Country: "DE", Value: Number(7)},
		{Country: "FR", Value: Text("n/a")},
	})
	if err != nil {
		t.Fatalf("bindData: %v", err)
	}
	if b.min != 0 || b.max != 7 {
		t.Errorf("range = [%v, %v], want [0, 7]: text values count as zero for ranging", b.min, b.max)
	}
	v, ok := b.lookup("FR")
	if !ok || v.String() != "n/a" {
		t.Errorf(`lookup("FR") = %q, %v; the text itself must survive for display`, v, ok)
	}
}

func TestBindDataEmpty(t *testing.T) {
	if _, err := bindData(nil); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("bindData(nil) error = %v, want ErrEmptyDataset", err)
	}
}

func TestBindDataRejectsNonFinite(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := bindData([]DataItem{{Country: "US", Value: Number(bad)}})
		if !errors.Is(err, ErrNonFiniteValue) {
			t.Errorf("bindData(%v) error = %v, want ErrNonFiniteValue", bad, err)
		}
	}
}

func TestValueJSON(t *testing.T) {
	var items []DataItem
	raw := `[{"country":"cn","value":1389618778},{"country":"fr","value":"no data"}]`
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if n, ok := items[0].Value.Numeric(); !ok || n != 1389618778 {
		t.Errorf("items[0].Value = %v, %v; want 1389618778 numeric", n, ok)
	}
	if _, ok := items[1].Value.Numeric(); ok {
		t.Error("items[1].Value parsed as numeric, want text")
	}
	if items[1].Value.String() != "no data" {
		t.Errorf("items[1].Value = %q, want %q", items[1].Value.String(), "no data")
	}

	out, err := json.Marshal(items)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != raw {
		t.Errorf("re-marshal = %s, want %s", out, raw)
	}

	var v Value
	if err := json.Unmarshal([]byte(`true`), &v); err == nil {
		t.Error("unmarshal of a bool value should fail")
	}
}

func TestLoadDataFileCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pop.csv")
	csv := "country,value\ncn,1389618778\nfr,classified\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}
	items, err := LoadDataFile(path)
	if err != nil {
		t.Fatalf("LoadDataFile: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2 (header skipped)", len(items))
	}
	if n, ok := items[0].Value.Numeric(); !ok || n != 1389618778 {
		t.Errorf("items[0] = %v, %v; want numeric 1389618778", n, ok)
	}
	if items[1].Value.String() != "classified" {
		t.Errorf("items[1] = %q, want text fallback", items[1].Value.String())
	}
}

func TestLoadDataFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pop.json")
	if err := os.WriteFile(path, []byte(`[{"country":"us","value":3}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	items, err := LoadDataFile(path)
	if err != nil {
		t.Fatalf("LoadDataFile: %v", err)
	}
	if len(items) != 1 || !strings.EqualFold(items[0].Country, "us") {
		t.Errorf("items = %+v, want one entry for us", items)
	}
}
