// Package ecommerce implements the e-commerce experiment suite: an
// online-store entity model with generation specs, logical queries, and
// physical-design variants for them.
package ecommerce

import (
	"fmt"

	"github.com/pgEdge/pgedge-bench/internal/schema"
)

// newModel builds the e-commerce entity model. Declaration order is the
// tie-break order for generation, so parents come first.
func newModel() (*schema.Model, error) {
	m := schema.NewModel()

	if _, err := m.Define("category",
		[]schema.Column{
			{Name: "category_id", Type: "INTEGER"},
			{Name: "name", Type: "VARCHAR(100)"},
			{Name: "description", Type: "TEXT"},
		},
		[]string{"category_id"},
		nil,
	); err != nil {
		return nil, err
	}

	if _, err := m.Define("product",
		[]schema.Column{
			{Name: "product_id", Type: "INTEGER"},
			{Name: "sku", Type: "VARCHAR(50)"},
			{Name: "name", Type: "VARCHAR(200)"},
			{Name: "price", Type: "NUMERIC(10,2)", Check: nonNegative("price")},
			{Name: "category_id", Type: "INTEGER"},
		},
		[]string{"product_id"},
		[]schema.ForeignKey{
			{Column: "category_id", RefEntity: "category", RefColumn: "category_id", OnDelete: schema.Restrict},
		},
	); err != nil {
		return nil, err
	}

	if _, err := m.Define("customer",
		[]schema.Column{
			{Name: "customer_id", Type: "INTEGER"},
			{Name: "first_name", Type: "VARCHAR(50)"},
			{Name: "last_name", Type: "VARCHAR(50)"},
			{Name: "email", Type: "VARCHAR(255)"},
			{Name: "city", Type: "VARCHAR(100)"},
			{Name: "created_at", Type: "TIMESTAMP"},
		},
		[]string{"customer_id"},
		nil,
	); err != nil {
		return nil, err
	}

	if _, err := m.Define("orders",
		[]schema.Column{
			{Name: "order_id", Type: "INTEGER"},
			{Name: "customer_id", Type: "INTEGER"},
			{Name: "status", Type: "VARCHAR(20)"},
			{Name: "order_date", Type: "TIMESTAMP"},
		},
		[]string{"order_id"},
		[]schema.ForeignKey{
			{Column: "customer_id", RefEntity: "customer", RefColumn: "customer_id", OnDelete: schema.Restrict},
		},
	); err != nil {
		return nil, err
	}

	if _, err := m.Define("order_details",
		[]schema.Column{
			{Name: "order_detail_id", Type: "INTEGER"},
			{Name: "order_id", Type: "INTEGER"},
			{Name: "product_id", Type: "INTEGER"},
			{Name: "quantity", Type: "INTEGER", Check: nonNegative("quantity")},
			{Name: "unit_price", Type: "NUMERIC(10,2)", Check: nonNegative("unit_price")},
		},
		[]string{"order_detail_id"},
		[]schema.ForeignKey{
			{Column: "order_id", RefEntity: "orders", RefColumn: "order_id", OnDelete: schema.Cascade},
			{Column: "product_id", RefEntity: "product", RefColumn: "product_id", OnDelete: schema.Restrict},
		},
	); err != nil {
		return nil, err
	}

	return m, nil
}

func nonNegative(column string) func(v any) error {
	return func(v any) error {
		var negative bool
		switch n := v.(type) {
		case int:
			negative = n < 0
		case int64:
			negative = n < 0
		case float64:
			negative = n < 0
		default:
			return fmt.Errorf("%s: unexpected value type %T", column, v)
		}
		if negative {
			return fmt.Errorf("%s must not be negative, got %v", column, v)
		}
		return nil
	}
}
