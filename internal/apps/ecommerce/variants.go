package ecommerce

import (
	"github.com/pgEdge/pgedge-bench/internal/variant"
)

// variants returns fresh variant definitions for the suite's logical
// queries. Every query gets a baseline (no actions) so comparisons have
// an anchor; the others each exercise one physical-design strategy.
func variants() []*variant.Variant {
	return []*variant.Variant{
		// revenue_per_category
		variant.NewVariant("rpc_baseline", QueryRevenuePerCategory, revenuePerCategorySQL, nil),

		variant.NewVariant("rpc_category_idx", QueryRevenuePerCategory, revenuePerCategorySQL,
			[]variant.Action{
				{
					Type:      variant.CreateIndex,
					Statement: "CREATE INDEX idx_product_category ON product(category_id)",
					Reverse:   "DROP INDEX IF EXISTS idx_product_category",
				},
				{
					Type:      variant.CreateIndex,
					Statement: "CREATE INDEX idx_od_product ON order_details(product_id)",
					Reverse:   "DROP INDEX IF EXISTS idx_od_product",
				},
			}),

		variant.NewVariant("rpc_clustered", QueryRevenuePerCategory, revenuePerCategorySQL,
			[]variant.Action{
				{
					Type:      variant.CreateIndex,
					Statement: "CREATE INDEX idx_od_product_cl ON order_details(product_id)",
					Reverse:   "DROP INDEX IF EXISTS idx_od_product_cl",
				},
				{
					Type:      variant.ClusterOn,
					Statement: "CLUSTER order_details USING idx_od_product_cl",
					Reverse:   "ALTER TABLE order_details SET WITHOUT CLUSTER",
				},
			}),

		variant.NewVariant("rpc_matview", QueryRevenuePerCategory,
			"SELECT category_id, name, revenue FROM mv_category_revenue ORDER BY revenue DESC",
			[]variant.Action{
				{
					Type: variant.CreateMaterializedView,
					Statement: `CREATE MATERIALIZED VIEW mv_category_revenue AS ` +
						revenuePerCategorySQL,
					Reverse: "DROP MATERIALIZED VIEW IF EXISTS mv_category_revenue",
					Refresh: "REFRESH MATERIALIZED VIEW mv_category_revenue",
				},
			}),

		variant.NewVariant("rpc_preagg", QueryRevenuePerCategory,
			"SELECT category_id, name, revenue FROM category_revenue_agg ORDER BY revenue DESC",
			[]variant.Action{
				{
					Type: variant.CreateDerivedTable,
					Statement: `CREATE TABLE category_revenue_agg AS ` +
						revenuePerCategorySQL,
					Reverse: "DROP TABLE IF EXISTS category_revenue_agg",
					Refresh: `INSERT INTO category_revenue_agg (category_id, name, revenue)
SELECT c.category_id, c.name, SUM(od.quantity * od.unit_price) AS revenue
FROM order_details od
JOIN product p ON p.product_id = od.product_id
JOIN category c ON c.category_id = p.category_id
GROUP BY c.category_id, c.name
ON CONFLICT (category_id) DO UPDATE SET revenue = EXCLUDED.revenue`,
				},
				{
					Type:      variant.CreateIndex,
					Statement: "CREATE UNIQUE INDEX idx_category_revenue_agg ON category_revenue_agg(category_id)",
					Reverse:   "DROP INDEX IF EXISTS idx_category_revenue_agg",
				},
			}),

		// orders_by_customer
		variant.NewVariant("obc_baseline", QueryOrdersByCustomer, ordersByCustomerSQL, nil),

		variant.NewVariant("obc_customer_idx", QueryOrdersByCustomer, ordersByCustomerSQL,
			[]variant.Action{
				{
					Type:      variant.CreateIndex,
					Statement: "CREATE INDEX idx_orders_customer ON orders(customer_id, status)",
					Reverse:   "DROP INDEX IF EXISTS idx_orders_customer",
				},
			}),

		// top_products
		variant.NewVariant("tp_baseline", QueryTopProducts, topProductsSQL, nil),

		variant.NewVariant("tp_details_idx", QueryTopProducts, topProductsSQL,
			[]variant.Action{
				{
					Type:      variant.CreateIndex,
					Statement: "CREATE INDEX idx_od_product_qty ON order_details(product_id, quantity)",
					Reverse:   "DROP INDEX IF EXISTS idx_od_product_qty",
				},
			}),
	}
}
