package producttype

// ProductType groups products for the admin catalog screens.
type ProductType struct {
	ID        string `json:"productTypeId"`
	Name      string `json:"productTypeName"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
