package cart

// Cart is the per-user ledger row. Line items are separate records that
// reference it; the cart itself stores no totals.
type Cart struct {
	ID        string `json:"cartId"`
	UserID    string `json:"userId"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Item is one product-and-quantity entry in a cart. ItemPrice is the cached
// line total written at mutation time, not a read-time computation: it may
// drift from quantity × current catalog price when the catalog price changes
// after the line was written.
type Item struct {
	ID        string  `json:"cartItemId"`
	CartID    string  `json:"cartId"`
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	ItemPrice float64 `json:"itemPrice"`
	CreatedAt string  `json:"createdAt,omitempty"`
	UpdatedAt string  `json:"updatedAt,omitempty"`
}

// ItemView is an Item with the product display fields resolved from the
// catalog at read time.
type ItemView struct {
	Item
	ProductName      string  `json:"productName,omitempty"`
	UnitPrice        float64 `json:"unitPrice,omitempty"`
	ProductImagePath string  `json:"productImagePath,omitempty"`
}

// View is the response shape of every cart read: the ledger, its items and
// the totals recomputed from the item rows.
type View struct {
	Cart       Cart       `json:"cart"`
	Items      []ItemView `json:"cartItems"`
	TotalPrice float64    `json:"totalPrice"`
	TotalItems int        `json:"totalCartItems"`
}

func totals(items []ItemView) (price float64, count int) {
	for _, it := range items {
		price += it.ItemPrice
		count += it.Quantity
	}
	return price, count
}
