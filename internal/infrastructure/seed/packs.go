// Package seed reads catalog fixtures from YAML files.
package seed

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// PackSeed is one entry of a pack seed file:
//
//	packs:
//	  - name: Basic
//	    sku: basic-monthly
//	    price: "9.99"
//	    validity_months: 1
type PackSeed struct {
	Name           string `yaml:"name"`
	Description    string `yaml:"description"`
	SKU            string `yaml:"sku"`
	Price          string `yaml:"price"`
	ValidityMonths int    `yaml:"validity_months"`
}

type packFile struct {
	Packs []PackSeed `yaml:"packs"`
}

// LoadPacks reads and checks a seed file.
func LoadPacks(path string) ([]PackSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParsePacks(bytes.NewReader(data))
}

// ParsePacks decodes seed entries, rejecting unknown fields and duplicate skus.
func ParsePacks(r io.Reader) ([]PackSeed, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f packFile
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Packs))
	for i, p := range f.Packs {
		if p.SKU == "" {
			return nil, fmt.Errorf("entry %d: sku is required", i+1)
		}
		if _, dup := seen[p.SKU]; dup {
			return nil, fmt.Errorf("entry %d: duplicate sku %q", i+1, p.SKU)
		}
		seen[p.SKU] = struct{}{}
		if _, err := p.DecimalPrice(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
	}
	return f.Packs, nil
}

func (p PackSeed) DecimalPrice() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(p.Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q: %w", p.Price, err)
	}
	return d, nil
}
