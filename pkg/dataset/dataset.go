package dataset

import (
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/matzehuels/barchart/pkg/chart"
)

// Dataset is a named series of chart points. When Time is set, bins hold
// Unix milliseconds.
type Dataset struct {
	Name      string        `json:"name" bson:"_id"`
	Points    []chart.Point `json:"points" bson:"points"`
	Time      bool          `json:"time,omitempty" bson:"time,omitempty"`
	UpdatedAt time.Time     `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// Sort orders the points by ascending bin.
func (d *Dataset) Sort() {
	sort.SliceStable(d.Points, func(i, j int) bool { return d.Points[i].Bin < d.Points[j].Bin })
}

// Clone returns a deep copy.
func (d *Dataset) Clone() *Dataset {
	c := *d
	c.Points = append([]chart.Point(nil), d.Points...)
	return &c
}

// NameFromPath derives a dataset name from a file path: the base name
// without extension.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
