package transport

type AddCartRequest struct {
	UserName  string   `json:"userName"`
	ProductID string   `json:"productId"`
	Size      string   `json:"size"`
	Color     string   `json:"color"`
	Quantity  *int     `json:"quantity"`
	Name      string   `json:"name,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	Image     string   `json:"image,omitempty"`
}

type UpdateCartRequest struct {
	Quantity *int `json:"quantity"`
}

type AddWishlistRequest struct {
	Username  string `json:"username"`
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}
