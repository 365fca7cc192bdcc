package transport

type OrderItemRequest struct {
	ProductID string   `json:"productId"`
	Name      string   `json:"name"`
	Price     *float64 `json:"price"`
	Quantity  *int     `json:"quantity"`
	Size      string   `json:"size"`
	Color     string   `json:"color"`
	Image     string   `json:"image"`
}

type ShippingRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Phone     string `json:"phone"`
}

type CreateOrderRequest struct {
	Username string             `json:"username"`
	Items    []OrderItemRequest `json:"items"`
	Subtotal *float64           `json:"subtotal"`
	Shipping ShippingRequest    `json:"shipping"`
}

type CreateOrderResponse struct {
	ID                   string `json:"id"`
	OrderNumber          string `json:"orderNumber"`
	ExpectedDeliveryText string `json:"expectedDeliveryText"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type StatsResponse struct {
	Products int64   `json:"products"`
	Orders   int64   `json:"orders"`
	Users    int64   `json:"users"`
	Revenue  float64 `json:"revenue"`
}

type CheckoutValidationResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}
