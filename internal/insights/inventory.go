// Package insights loads sales data and asks the model for inventory
// analysis.
package insights

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// ErrMissingColumn is returned when a required CSV column is absent.
var ErrMissingColumn = errors.New("missing required column")

// DefaultCategory is assigned to products outside the category table.
const DefaultCategory = "Other"

var categories = map[string]string{
	"Mouse":    "Accessories",
	"Keyboard": "Accessories",
	"Monitor":  "Electronics",
}

// Product is the per-product aggregate of the sales rows.
type Product struct {
	Name     string  `json:"product"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Sold     int     `json:"sold"`
}

// Inventory is the aggregated sales table, ordered by product name.
type Inventory struct {
	Products []Product `json:"products"`
}

// LoadCSVFile reads the sales CSV at path.
func LoadCSVFile(path string) (*Inventory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadCSV(f)
}

// LoadCSV reads rows with at least product, quantity and price columns
// (any order, extra columns ignored) and aggregates them per product:
// quantities are summed and the first price seen is kept.
func LoadCSV(r io.Reader) (*Inventory, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range []string{"product", "quantity", "price"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}

	byName := make(map[string]*Product)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := cr.FieldPos(0)

		name := strings.TrimSpace(rec[col["product"]])
		if name == "" {
			return nil, fmt.Errorf("line %d: empty product", line)
		}
		qty, err := strconv.Atoi(strings.TrimSpace(rec[col["quantity"]]))
		if err != nil {
			return nil, fmt.Errorf("line %d: quantity: %w", line, err)
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(rec[col["price"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: price: %w", line, err)
		}

		p, ok := byName[name]
		if !ok {
			p = &Product{Name: name, Category: categoryOf(name), Price: price}
			byName[name] = p
		}
		p.Stock += qty
	}

	inv := &Inventory{Products: make([]Product, 0, len(byName))}
	for _, p := range byName {
		inv.Products = append(inv.Products, *p)
	}
	sort.Slice(inv.Products, func(i, j int) bool {
		return inv.Products[i].Name < inv.Products[j].Name
	})
	return inv, nil
}

func categoryOf(product string) string {
	if c, ok := categories[product]; ok {
		return c
	}
	return DefaultCategory
}

// TotalStock sums the stock of every product.
func (inv *Inventory) TotalStock() int {
	total := 0
	for _, p := range inv.Products {
		total += p.Stock
	}
	return total
}

// TotalSold sums the sold counter of every product.
func (inv *Inventory) TotalSold() int {
	total := 0
	for _, p := range inv.Products {
		total += p.Sold
	}
	return total
}

// Table renders the Product,Sold,Stock view sent to the model.
func (inv *Inventory) Table() (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Product", "Sold", "Stock"}); err != nil {
		return "", err
	}
	for _, p := range inv.Products {
		if err := w.Write([]string{p.Name, strconv.Itoa(p.Sold), strconv.Itoa(p.Stock)}); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
