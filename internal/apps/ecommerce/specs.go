//-------------------------------------------------------------------------
//
// pgEdge Benchmarking Harness
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package ecommerce

import (
	"time"

	"github.com/pgEdge/pgedge-bench/internal/datagen"
	"github.com/pgEdge/pgedge-bench/internal/schema"
)

// Row counts per scale unit. The 1:50:20:100:250 ratio keeps the fact
// table (order_details) dominant, like a real store's history.
const (
	categoriesPerScale   = 100
	productsPerScale     = 5000
	customersPerScale    = 2000
	ordersPerScale       = 10000
	orderDetailsPerScale = 25000
)

var orderStatuses = []string{"pending", "processing", "shipped", "delivered", "cancelled"}

// specs builds the per-entity generation specs. With a fixed seed the
// whole dataset is reproducible; per-entity seeds are derived from the
// suite seed so entities stay independent of each other's row counts.
func specs(model *schema.Model, scale int, seed uint64, workers int) []datagen.Spec {
	if scale < 1 {
		scale = 1
	}

	categories := int64(scale) * categoriesPerScale
	products := int64(scale) * productsPerScale
	customers := int64(scale) * customersPerScale
	orders := int64(scale) * ordersPerScale
	orderDetails := int64(scale) * orderDetailsPerScale

	dateStart := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	dateEnd := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	return []datagen.Spec{
		{
			Entity:   model.Entity("category"),
			RowCount: categories,
			Seed:     seed + 1,
			Workers:  workers,
			Rules: []datagen.ColumnRule{
				{Column: "category_id", Rule: datagen.SequentialID(1)},
				{Column: "name", Rule: datagen.TemplatedString("Category")},
				{Column: "description", Rule: datagen.Sentence(8)},
			},
		},
		{
			Entity:   model.Entity("product"),
			RowCount: products,
			Seed:     seed + 2,
			Workers:  workers,
			Rules: []datagen.ColumnRule{
				{Column: "product_id", Rule: datagen.SequentialID(1)},
				{Column: "sku", Rule: datagen.TemplatedString("SKU")},
				{Column: "name", Rule: datagen.ProductName()},
				{Column: "price", Rule: datagen.NumericRange(1, 2000)},
				{Column: "category_id", Rule: datagen.CyclicForeignKey(categories)},
			},
		},
		{
			Entity:   model.Entity("customer"),
			RowCount: customers,
			Seed:     seed + 3,
			Workers:  workers,
			Rules: []datagen.ColumnRule{
				{Column: "customer_id", Rule: datagen.SequentialID(1)},
				{Column: "first_name", Rule: datagen.FirstName()},
				{Column: "last_name", Rule: datagen.LastName()},
				{Column: "email", Rule: datagen.Email("customer")},
				{Column: "city", Rule: datagen.City()},
				{Column: "created_at", Rule: datagen.RangeDate(dateStart, dateEnd)},
			},
		},
		{
			Entity:   model.Entity("orders"),
			RowCount: orders,
			Seed:     seed + 4,
			Workers:  workers,
			Rules: []datagen.ColumnRule{
				{Column: "order_id", Rule: datagen.SequentialID(1)},
				{Column: "customer_id", Rule: datagen.CyclicForeignKey(customers)},
				{Column: "status", Rule: datagen.Choice(orderStatuses)},
				{Column: "order_date", Rule: datagen.RangeDate(dateStart, dateEnd)},
			},
		},
		{
			Entity:   model.Entity("order_details"),
			RowCount: orderDetails,
			Seed:     seed + 5,
			Workers:  workers,
			Rules: []datagen.ColumnRule{
				{Column: "order_detail_id", Rule: datagen.SequentialID(1)},
				{Column: "order_id", Rule: datagen.CyclicForeignKey(orders)},
				{Column: "product_id", Rule: datagen.CyclicForeignKey(products)},
				{Column: "quantity", Rule: datagen.IntRange(1, 5)},
				{Column: "unit_price", Rule: datagen.NumericRange(5, 500)},
			},
		},
	}
}
