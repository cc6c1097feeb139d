// Package seed provides the static dataset the portal starts from.
package seed

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/noah-isme/scholarhub-api/internal/models"
)

//go:embed data/portal.json
var embedded []byte

// Dataset is the full set of seed records.
type Dataset struct {
	Students      []models.Student      `json:"students"`
	Courses       []models.Course       `json:"courses"`
	Grades        []models.Grade        `json:"grades"`
	Events        []models.Event        `json:"events"`
	Announcements []models.Announcement `json:"announcements"`
}

// Default returns a fresh copy of the embedded dataset.
func Default() (Dataset, error) {
	return decode(embedded)
}

// Load reads the dataset from path, or the embedded one when path is empty.
func Load(path string) (Dataset, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read seed file: %w", err)
	}
	return decode(raw)
}

func decode(raw []byte) (Dataset, error) {
	var ds Dataset
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ds); err != nil {
		return Dataset{}, fmt.Errorf("decode seed data: %w", err)
	}
	return ds, nil
}
