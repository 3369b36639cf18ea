package ecommerce

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Base schema only. Primary keys are explicit integers supplied by the
// generator, not backend sequences, so partitioned generation workers
// can own disjoint id ranges. Secondary indexes, clustering, and derived
// objects belong to variants, never to the base schema.
const createSchemaSQL = `
CREATE TABLE IF NOT EXISTS category (
    category_id INTEGER PRIMARY KEY,
    name        VARCHAR(100) NOT NULL,
    description TEXT
);

CREATE TABLE IF NOT EXISTS product (
    product_id  INTEGER PRIMARY KEY,
    sku         VARCHAR(50) NOT NULL,
    name        VARCHAR(200) NOT NULL,
    price       NUMERIC(10,2) NOT NULL CHECK (price >= 0),
    category_id INTEGER NOT NULL REFERENCES category(category_id) ON DELETE RESTRICT
);

CREATE TABLE IF NOT EXISTS customer (
    customer_id INTEGER PRIMARY KEY,
    first_name  VARCHAR(50) NOT NULL,
    last_name   VARCHAR(50) NOT NULL,
    email       VARCHAR(255) NOT NULL,
    city        VARCHAR(100),
    created_at  TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS orders (
    order_id    INTEGER PRIMARY KEY,
    customer_id INTEGER NOT NULL REFERENCES customer(customer_id) ON DELETE RESTRICT,
    status      VARCHAR(20) NOT NULL,
    order_date  TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS order_details (
    order_detail_id INTEGER PRIMARY KEY,
    order_id        INTEGER NOT NULL REFERENCES orders(order_id) ON DELETE CASCADE,
    product_id      INTEGER NOT NULL REFERENCES product(product_id) ON DELETE RESTRICT,
    quantity        INTEGER NOT NULL CHECK (quantity >= 0),
    unit_price      NUMERIC(10,2) NOT NULL CHECK (unit_price >= 0)
);
`

// Drop includes variant-owned objects so a teardown never leaves
// orphaned physical designs behind.
const dropSchemaSQL = `
DROP MATERIALIZED VIEW IF EXISTS mv_category_revenue;
DROP TABLE IF EXISTS category_revenue_agg CASCADE;
DROP TABLE IF EXISTS order_details CASCADE;
DROP TABLE IF EXISTS orders CASCADE;
DROP TABLE IF EXISTS customer CASCADE;
DROP TABLE IF EXISTS product CASCADE;
DROP TABLE IF EXISTS category CASCADE;
`

// CreateSchema creates the e-commerce base tables.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, createSchemaSQL)
	return err
}

// DropSchema drops the e-commerce tables and variant leftovers.
func DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, dropSchemaSQL)
	return err
}
