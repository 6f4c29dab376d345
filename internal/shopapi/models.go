package shopapi

// Product is the catalog record as served by the shop backend. Listing
// endpoints omit description and stock, the product detail endpoint fills
// everything in.
type Product struct {
	ProductID     int64   `json:"product_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Price         float64 `json:"price"`
	Category      string  `json:"category"`
	ImageURL      string  `json:"image_url"`
	StockQuantity int     `json:"stock_quantity,omitempty"`
	QuantitySold  int     `json:"quantity_sold,omitempty"`
}

// RemoteCartLine is one line of the persisted cart. The backend addresses
// lines by its own CartItemID, not by product.
type RemoteCartLine struct {
	CartItemID int64 `json:"cart_item_id"`
	ProductID  int64 `json:"product_id"`
	Quantity   int   `json:"quantity"`
}

type remoteCart struct {
	CartID int64            `json:"cart_id"`
	Items  []RemoteCartLine `json:"items"`
}

// LoginResult is the identity returned by a successful login.
type LoginResult struct {
	UserID  int64  `json:"user_id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// RegisterRequest carries the full registration form.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PhoneNumber     string `json:"phone_number"`
	ShippingAddress string `json:"shipping_address"`
}

// Profile is the mutable account record keyed by email.
type Profile struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phone_number"`
	ShippingAddress string `json:"shipping_address"`
}

// SubscriptionRequest drives the subscription lifecycle endpoints.
type SubscriptionRequest struct {
	Email     string `json:"email"`
	ProductID int64  `json:"product_id"`
	Frequency string `json:"frequency,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
	Status    string `json:"status,omitempty"`
}

// SubscriptionRecord is one entry of a user's subscription history.
type SubscriptionRecord struct {
	SubscriptionID int64  `json:"subscription_id"`
	ProductID      int64  `json:"product_id"`
	Status         string `json:"status"`
}

type ack struct {
	Message string `json:"message"`
}
