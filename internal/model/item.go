package model

// StockStatus is the warehouse availability of a catalog item.
type StockStatus string

// Stock statuses.
const (
	StockInStock    StockStatus = "In Stock"
	StockLowStock   StockStatus = "Low Stock"
	StockOutOfStock StockStatus = "Out of Stock"
)

// Item represents a catalog entry keyed by article number.
type Item struct {
	ArticleNumber     string      `json:"articleNumber"`
	Name              string      `json:"name"`
	WarehouseLocation string      `json:"warehouseLocation"`
	StockStatus       StockStatus `json:"stockStatus"`
}
