// Package dataset loads name records from JSON or YAML files.
package dataset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/namepick/internal/model"
)

//go:embed sample.json
var sampleJSON []byte

// entry mirrors the on-disk record layout.
type entry struct {
	Count           int      `json:"nombre" yaml:"nombre"`
	Sex             string   `json:"sexe" yaml:"sexe"`
	Year            yearText `json:"annee" yaml:"annee"`
	Name            string   `json:"prenoms" yaml:"prenoms"`
	CumulativeTotal int      `json:"nombre_total_cumule" yaml:"nombre_total_cumule"`
}

// yearText accepts a year written either as a string or as a number.
type yearText string

func (y *yearText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = yearText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("year must be a string or number: %w", err)
	}
	*y = yearText(n.String())
	return nil
}

func (y *yearText) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: year must be a scalar", node.Line)
	}
	*y = yearText(node.Value)
	return nil
}

// Load reads the dataset at path. The format follows the file extension:
// .json, .yaml or .yml.
func Load(path string) ([]model.NameRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return decodeJSON(data)
	case ".yaml", ".yml":
		return decodeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q (use .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// Sample returns the bundled sample dataset.
func Sample() []model.NameRecord {
	records, err := decodeJSON(sampleJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded sample dataset is invalid: %v", err))
	}
	return records
}

func decodeJSON(data []byte) ([]model.NameRecord, error) {
	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	return toRecords(entries)
}

func decodeYAML(data []byte) ([]model.NameRecord, error) {
	var entries []entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	return toRecords(entries)
}

func toRecords(entries []entry) ([]model.NameRecord, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}
	records := make([]model.NameRecord, 0, len(entries))
	for i, e := range entries {
		rec, err := e.record()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (e entry) record() (model.NameRecord, error) {
	if strings.TrimSpace(e.Name) == "" {
		return model.NameRecord{}, fmt.Errorf("name is empty")
	}
	sex, err := model.ParseSex(e.Sex)
	if err != nil || sex == model.SexAny {
		return model.NameRecord{}, fmt.Errorf("invalid sex %q for %q", e.Sex, e.Name)
	}
	year := string(e.Year)
	if !validYear(year) {
		return model.NameRecord{}, fmt.Errorf("invalid year %q for %q", year, e.Name)
	}
	return model.NameRecord{
		Count:           e.Count,
		Sex:             sex,
		Year:            year,
		Name:            e.Name,
		CumulativeTotal: e.CumulativeTotal,
	}, nil
}

func validYear(year string) bool {
	if len(year) != 4 {
		return false
	}
	for i := 0; i < len(year); i++ {
		if year[i] < '0' || year[i] > '9' {
			return false
		}
	}
	return true
}
