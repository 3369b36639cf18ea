package ecommerce

import (
	"github.com/pgEdge/pgedge-bench/internal/apps"
)

// Logical query ids.
const (
	QueryRevenuePerCategory = "revenue_per_category"
	QueryOrdersByCustomer   = "orders_by_customer"
	QueryTopProducts        = "top_products"
)

// Base statement text per logical query. Variants that introduce
// derived objects bind their own statement text instead.
const (
	revenuePerCategorySQL = `
SELECT c.category_id, c.name, SUM(od.quantity * od.unit_price) AS revenue
FROM order_details od
JOIN product p ON p.product_id = od.product_id
JOIN category c ON c.category_id = p.category_id
GROUP BY c.category_id, c.name
ORDER BY revenue DESC`

	ordersByCustomerSQL = `
SELECT o.customer_id, COUNT(*) AS order_count, MAX(o.order_date) AS last_order
FROM orders o
WHERE o.status <> 'cancelled'
GROUP BY o.customer_id
ORDER BY order_count DESC
LIMIT 100`

	topProductsSQL = `
SELECT p.product_id, p.name, SUM(od.quantity) AS units_sold
FROM order_details od
JOIN product p ON p.product_id = od.product_id
GROUP BY p.product_id, p.name
ORDER BY units_sold DESC
LIMIT 25`
)

func queries() []apps.QueryDefinition {
	return []apps.QueryDefinition{
		{ID: QueryRevenuePerCategory, Description: "Total revenue per product category"},
		{ID: QueryOrdersByCustomer, Description: "Most active customers by completed order count"},
		{ID: QueryTopProducts, Description: "Best-selling products by units sold"},
	}
}
