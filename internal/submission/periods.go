package submission

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"schemereg/pkg/platform/strings"
)

// Period is one reporting window.
type Period struct {
	// DataPeriod is the label sent to the gateway, e.g. "January to June 2026".
	DataPeriod string    `yaml:"dataPeriod" json:"dataPeriod"`
	StartMonth string    `yaml:"startMonth" json:"startMonth"`
	EndMonth   string    `yaml:"endMonth" json:"endMonth"`
	Year       string    `yaml:"year" json:"year"`
	Deadline   time.Time `yaml:"deadline" json:"deadline"`
	ActiveFrom time.Time `yaml:"activeFrom" json:"activeFrom"`
}

// Periods holds the reporting windows of both document families.
type Periods struct {
	Packaging    []Period `yaml:"packaging"`
	Registration []Period `yaml:"registration"`
}

// For returns the periods of t.
func (p Periods) For(t Type) []Period {
	if t == TypeRegistration {
		return p.Registration
	}
	return p.Packaging
}

// Find returns the period of t labelled dataPeriod.
func (p Periods) Find(t Type, dataPeriod string) (Period, bool) {
	for _, period := range p.For(t) {
		if period.DataPeriod == dataPeriod {
			return period, true
		}
	}
	return Period{}, false
}

// Labels returns the distinct data period labels in configured order.
func Labels(periods []Period) []string {
	out := make([]string, 0, len(periods))
	for _, p := range periods {
		out = append(out, p.DataPeriod)
	}
	return strings.DedupeAndTrim(out)
}

// LoadPeriods reads periods from a YAML file, or returns DefaultPeriods when path is empty.
func LoadPeriods(path string) (Periods, error) {
	if path == "" {
		return DefaultPeriods(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Periods{}, fmt.Errorf("read submission periods: %w", err)
	}
	var p Periods
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Periods{}, fmt.Errorf("parse submission periods: %w", err)
	}
	for _, period := range append(append([]Period{}, p.Packaging...), p.Registration...) {
		if period.DataPeriod == "" {
			return Periods{}, fmt.Errorf("submission period without dataPeriod in %s", path)
		}
	}
	return p, nil
}

// DefaultPeriods are the reporting windows used when no file is configured.
func DefaultPeriods() Periods {
	return Periods{
		Packaging: []Period{
			{
				DataPeriod: "January to June 2026",
				StartMonth: "January",
				EndMonth:   "June",
				Year:       "2026",
				Deadline:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
				ActiveFrom: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			},
			{
				DataPeriod: "July to December 2026",
				StartMonth: "July",
				EndMonth:   "December",
				Year:       "2026",
				Deadline:   time.Date(2027, 4, 1, 0, 0, 0, 0, time.UTC),
				ActiveFrom: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		Registration: []Period{
			{
				DataPeriod: "January to December 2026",
				StartMonth: "January",
				EndMonth:   "December",
				Year:       "2026",
				Deadline:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
				ActiveFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}
}
