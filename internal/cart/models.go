package cart

// Line is what the session actually holds: a product reference and a count.
// A line with quantity <= 0 does not exist.
type Line struct {
	ProductID int64
	Quantity  int
}

// Item is a Line joined with the current catalog record. Items are never
// stored; they are recomputed on every render so the displayed price always
// reflects the catalog, not the price at add time.
type Item struct {
	ProductID     int64   `json:"product_id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Category      string  `json:"category"`
	ImageURL      string  `json:"image_url"`
	StockQuantity int     `json:"stock_quantity"`
	Quantity      int     `json:"quantity"`
}
