/*
Package config loads the pay policy file and the process settings.

PURPOSE:
  Two sources, two files:
  - policy.go:   the YAML pay policy (rates, unsocial bands, break tiers)
  - settings.go: process settings from the environment and .env

POLICY FILE:
  rates:
    base: "15.10"
    unsocial: "18.88"
    sunday: "22.65"
    holiday: "30.20"
  sundayLabel: overtime
  bands:
    - {label: early, from: "00:00", to: "08:00"}
    - {label: late,  from: "20:00", to: "24:00"}
  breaks:
    - {min: 0s, break: 15m}
    - {min: 6h, break: 30m}
    - {min: 8h, break: 1h}

  Rates are read as strings so 15.10 stays exactly 15.10. Any section
  left out falls back to the built-in default; a missing file means the
  whole default policy.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/warp/shift-pay/pay"
)

// PolicyFile is the on-disk shape of a pay.Policy.
type PolicyFile struct {
	Rates       *RatesFile  `yaml:"rates,omitempty"`
	SundayLabel string      `yaml:"sundayLabel,omitempty"`
	Bands       []BandFile  `yaml:"bands"`
	Breaks      []BreakFile `yaml:"breaks"`
}

type RatesFile struct {
	Base     string `yaml:"base,omitempty"`
	Unsocial string `yaml:"unsocial,omitempty"`
	Sunday   string `yaml:"sunday,omitempty"`
	Holiday  string `yaml:"holiday,omitempty"`
}

type BandFile struct {
	Label string `yaml:"label"`
	From  string `yaml:"from"`
	To    string `yaml:"to"`
}

type BreakFile struct {
	Min   string `yaml:"min"`
	Break string `yaml:"break"`
}

// ValidationError represents a policy file validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("policy validation error: %s - %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return pay.ErrInvalidPolicy
}

// =============================================================================
// LOADING
// =============================================================================

// LoadPolicy reads a policy file. An empty path or a missing file yields
// the default policy.
func LoadPolicy(path string) (pay.Policy, error) {
	if path == "" {
		return pay.DefaultPolicy(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return pay.DefaultPolicy(), nil
		}
		return pay.Policy{}, err
	}
	p, err := ParsePolicy(data)
	if err != nil {
		return pay.Policy{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ParsePolicy decodes and validates YAML policy bytes.
func ParsePolicy(data []byte) (pay.Policy, error) {
	var f PolicyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return pay.Policy{}, err
	}
	if err := f.Validate(); err != nil {
		return pay.Policy{}, err
	}
	return f.Policy()
}

// SavePolicy writes a policy as YAML.
func SavePolicy(path string, p pay.Policy) error {
	data, err := MarshalPolicy(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// MarshalPolicy renders a policy in the file format.
func MarshalPolicy(p pay.Policy) ([]byte, error) {
	return yaml.Marshal(FromPolicy(p))
}

// =============================================================================
// CONVERSION
// =============================================================================

// Validate checks the file for values that cannot be parsed. Semantic
// checks (overlapping bands, shrinking breaks) happen in pay.NewCalculator.
func (f *PolicyFile) Validate() error {
	if f.Rates != nil {
		for field, v := range map[string]string{
			"rates.base":     f.Rates.Base,
			"rates.unsocial": f.Rates.Unsocial,
			"rates.sunday":   f.Rates.Sunday,
			"rates.holiday":  f.Rates.Holiday,
		} {
			if v == "" {
				continue
			}
			if _, err := decimal.NewFromString(v); err != nil {
				return &ValidationError{Field: field, Message: fmt.Sprintf("%q is not a number", v)}
			}
		}
	}

	for i, b := range f.Bands {
		if b.Label == "" {
			return &ValidationError{Field: fmt.Sprintf("bands[%d].label", i), Message: "label is required"}
		}
	}

	for i, b := range f.Breaks {
		if _, err := time.ParseDuration(b.Min); err != nil {
			return &ValidationError{Field: fmt.Sprintf("breaks[%d].min", i), Message: fmt.Sprintf("%q is not a duration", b.Min)}
		}
		if _, err := time.ParseDuration(b.Break); err != nil {
			return &ValidationError{Field: fmt.Sprintf("breaks[%d].break", i), Message: fmt.Sprintf("%q is not a duration", b.Break)}
		}
	}
	return nil
}

// Policy converts the file to a pay.Policy, filling in defaults, and checks
// it by building a calculator.
func (f *PolicyFile) Policy() (pay.Policy, error) {
	p := pay.DefaultPolicy()

	if f.Rates != nil {
		setRate(&p.Rates.Base, f.Rates.Base)
		setRate(&p.Rates.Unsocial, f.Rates.Unsocial)
		setRate(&p.Rates.Sunday, f.Rates.Sunday)
		setRate(&p.Rates.Holiday, f.Rates.Holiday)
	}
	if f.SundayLabel != "" {
		p.SundayLabel = f.SundayLabel
	}

	if f.Bands != nil {
		p.Bands = make([]pay.TimeBand, 0, len(f.Bands))
		for _, b := range f.Bands {
			band, err := pay.NewTimeBand(b.From, b.To, b.Label)
			if err != nil {
				return pay.Policy{}, err
			}
			p.Bands = append(p.Bands, band)
		}
	}

	if f.Breaks != nil {
		p.Breaks = make([]pay.BreakTier, 0, len(f.Breaks))
		for _, b := range f.Breaks {
			threshold, _ := time.ParseDuration(b.Min)
			brk, _ := time.ParseDuration(b.Break)
			p.Breaks = append(p.Breaks, pay.BreakTier{Min: threshold, Break: brk})
		}
	}

	if _, err := pay.NewCalculator(p); err != nil {
		return pay.Policy{}, err
	}
	return p, nil
}

func setRate(dst *decimal.Decimal, v string) {
	if v == "" {
		return
	}
	if d, err := decimal.NewFromString(v); err == nil {
		*dst = d
	}
}

// FromPolicy renders a pay.Policy in file form.
func FromPolicy(p pay.Policy) PolicyFile {
	f := PolicyFile{
		Rates: &RatesFile{
			Base:     formatRate(p.Rates.Base),
			Unsocial: formatRate(p.Rates.Unsocial),
			Sunday:   formatRate(p.Rates.Sunday),
			Holiday:  formatRate(p.Rates.Holiday),
		},
		SundayLabel: p.SundayLabel,
		Bands:       make([]BandFile, 0, len(p.Bands)),
		Breaks:      make([]BreakFile, 0, len(p.Breaks)),
	}
	for _, b := range p.Bands {
		f.Bands = append(f.Bands, BandFile{Label: b.Label, From: b.From.String(), To: b.To.String()})
	}
	for _, b := range p.Breaks {
		f.Breaks = append(f.Breaks, BreakFile{Min: b.Min.String(), Break: b.Break.String()})
	}
	return f
}

// formatRate keeps cents ("15.10") unless the rate is finer than a cent.
func formatRate(d decimal.Decimal) string {
	if d.Equal(d.Round(2)) {
		return d.StringFixed(2)
	}
	return d.String()
}
