// Package reference holds the static tables the simulation reads from:
// vendors, their products and opening hours, daily weather and the two
// normalization tables. A Data value is built once and never mutated, so it
// can be shared by any number of goroutines.
package reference

import (
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/chrisdamba/surplussim/internal/models"
)

// NormalizationTable maps a categorical value onto [0, 1]. Keys are matched
// case-insensitively since viper lower-cases map keys read from config files.
type NormalizationTable struct {
	name   string
	values map[string]float64
}

func NewNormalizationTable(name string, values map[string]float64) NormalizationTable {
	t := NormalizationTable{name: name, values: make(map[string]float64, len(values))}
	for k, v := range values {
		t.values[strings.ToLower(k)] = v
	}
	return t
}

func (t NormalizationTable) Lookup(key string) (float64, error) {
	v, ok := t.values[strings.ToLower(key)]
	if !ok {
		return 0, &MissingKeyError{Table: t.name, Key: key}
	}
	return v, nil
}

func (t NormalizationTable) Len() int {
	return len(t.values)
}

type Data struct {
	vendors   map[string]models.Vendor
	vendorIDs []string

	products   map[string]models.Product
	productIDs []string
	byCategory map[string][]models.Product // vendorID|category, insertion order

	weather map[string]models.WeatherObservation

	categories NormalizationTable
	conditions NormalizationTable
}

// New indexes the given tables. Products must belong to a known vendor and
// carry a positive unit price.
func New(vendors []models.Vendor, products []models.Product, weather []models.WeatherObservation,
	categoryValues, weatherValues map[string]float64) (*Data, error) {
	d := &Data{
		vendors:    make(map[string]models.Vendor, len(vendors)),
		vendorIDs:  make([]string, 0, len(vendors)),
		products:   make(map[string]models.Product, len(products)),
		productIDs: make([]string, 0, len(products)),
		byCategory: make(map[string][]models.Product),
		weather:    make(map[string]models.WeatherObservation, len(weather)),
		categories: NewNormalizationTable(TableCategories, categoryValues),
		conditions: NewNormalizationTable(TableConditions, weatherValues),
	}

	for _, v := range vendors {
		if _, dup := d.vendors[v.ID]; dup {
			return nil, errors.Errorf("duplicate vendor id %s", v.ID)
		}
		d.vendors[v.ID] = v
		d.vendorIDs = append(d.vendorIDs, v.ID)
	}

	for _, p := range products {
		if _, ok := d.vendors[p.VendorID]; !ok {
			return nil, errors.Wrapf(&MissingKeyError{Table: TableVendors, Key: p.VendorID}, "product %s", p.ID)
		}
		if p.RetailPrice <= 0 {
			return nil, errors.Errorf("product %s has non-positive retail price %v", p.ID, p.RetailPrice)
		}
		d.products[p.ID] = p
		d.productIDs = append(d.productIDs, p.ID)
		key := categoryKey(p.VendorID, p.Category)
		d.byCategory[key] = append(d.byCategory[key], p)
	}

	for _, w := range weather {
		d.weather[models.DateKey(w.Date)] = w
	}

	return d, nil
}

func categoryKey(vendorID, category string) string {
	return vendorID + "|" + category
}

func (d *Data) Vendor(id string) (models.Vendor, error) {
	v, ok := d.vendors[id]
	if !ok {
		return models.Vendor{}, &MissingKeyError{Table: TableVendors, Key: id}
	}
	return v, nil
}

// Vendors returns vendors in the order they were supplied.
func (d *Data) Vendors() []models.Vendor {
	out := make([]models.Vendor, 0, len(d.vendorIDs))
	for _, id := range d.vendorIDs {
		out = append(out, d.vendors[id])
	}
	return out
}

func (d *Data) VendorIDs() []string {
	return append([]string(nil), d.vendorIDs...)
}

func (d *Data) Product(id string) (models.Product, error) {
	p, ok := d.products[id]
	if !ok {
		return models.Product{}, &MissingKeyError{Table: TableProducts, Key: id}
	}
	return p, nil
}

func (d *Data) AllProducts() []models.Product {
	out := make([]models.Product, 0, len(d.productIDs))
	for _, id := range d.productIDs {
		out = append(out, d.products[id])
	}
	return out
}

// Products returns a fresh copy of the vendor's products in a category, so
// callers are free to shuffle it.
func (d *Data) Products(vendorID, category string) []models.Product {
	return append([]models.Product(nil), d.byCategory[categoryKey(vendorID, category)]...)
}

// Categories returns the vendor's category set, sorted.
func (d *Data) Categories(vendorID string) ([]string, error) {
	v, err := d.Vendor(vendorID)
	if err != nil {
		return nil, err
	}
	categories := append([]string(nil), v.Categories...)
	sort.Strings(categories)
	return categories, nil
}

func (d *Data) VendorCategories() []models.VendorCategory {
	var out []models.VendorCategory
	for _, id := range d.vendorIDs {
		categories, _ := d.Categories(id)
		for _, c := range categories {
			out = append(out, models.VendorCategory{VendorID: id, Category: c})
		}
	}
	return out
}

func (d *Data) OpeningHours(vendorID string, day time.Weekday) (models.OpeningHours, error) {
	v, err := d.Vendor(vendorID)
	if err != nil {
		return models.OpeningHours{}, err
	}
	h, ok := v.Hours[day]
	if !ok {
		return models.OpeningHours{}, &MissingKeyError{Table: TableOpeningHours, Key: vendorID + "/" + day.String()}
	}
	h.VendorID = vendorID
	h.Day = day
	return h, nil
}

func (d *Data) Weather(date time.Time) (models.WeatherObservation, error) {
	w, ok := d.weather[models.DateKey(date)]
	if !ok {
		return models.WeatherObservation{}, &MissingKeyError{Table: TableWeather, Key: models.DateKey(date)}
	}
	return w, nil
}

func (d *Data) CategoryValue(category string) (float64, error) {
	return d.categories.Lookup(category)
}

func (d *Data) WeatherValue(condition string) (float64, error) {
	return d.conditions.Lookup(condition)
}
