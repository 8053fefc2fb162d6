package cache

// Key builders live in one place so the naming scheme cannot drift between
// the read path and the invalidation path.

const (
	KeyAllOrders = "all-orders"

	// Product and admin-dashboard keys belong to sibling services. This
	// service only deletes them after order writes, it never populates them.
	KeyLatestProducts = "latest-products"
	KeyCategories     = "categories"
	KeyAllProducts    = "all-products"

	KeyAdminStats      = "admin-stats"
	KeyAdminPieCharts  = "admin-pie-charts"
	KeyAdminBarCharts  = "admin-bar-charts"
	KeyAdminLineCharts = "admin-line-charts"
)

func KeyMyOrders(userID string) string { return "my-orders-" + userID }

func KeyOrder(orderID string) string { return "order-" + orderID }

func KeyProduct(productID string) string { return "product-" + productID }
