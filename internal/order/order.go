package order

// Detail is one product line frozen into an order. ItemPrice is copied from
// the cart line at checkout and never changes afterwards.
type Detail struct {
	ID        string  `json:"orderDetailId"`
	OrderID   string  `json:"orderId"`
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	ItemPrice float64 `json:"itemPrice"`
}

type Order struct {
	ID             string   `json:"orderId"`
	UserID         string   `json:"userId"`
	AddressID      string   `json:"addressId"`
	StatusID       string   `json:"orderStatusId"`
	StatusName     string   `json:"orderStatusName,omitempty"`
	DeliveryMethod string   `json:"deliveryMethod"`
	PaymentMethod  string   `json:"paymentMethod"`
	TotalPrice     float64  `json:"totalPrice"`
	OrderDate      string   `json:"orderDate"`
	DeliveredDate  *string  `json:"deliveredDate,omitempty"`
	Details        []Detail `json:"orderDetails,omitempty"`
	CreatedAt      string   `json:"createdAt,omitempty"`
	UpdatedAt      string   `json:"updatedAt,omitempty"`
}

// ListFilter narrows the admin listing.
type ListFilter struct {
	StatusID string
	UserID   string
	DateFrom string
	DateTo   string
	Page     int
	Limit    int
}
