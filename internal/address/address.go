package address

// Address is a shipping address owned by one user. At most one address per
// user is the default.
type Address struct {
	ID        string `json:"addressId"`
	UserID    string `json:"userId"`
	Receiver  string `json:"receiverName"`
	Phone     string `json:"phoneNumber"`
	Province  string `json:"province"`
	District  string `json:"district"`
	Ward      string `json:"ward"`
	Detail    string `json:"detailAddress"`
	IsDefault bool   `json:"isDefault"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// sameLocation reports whether two addresses point at the same place for the
// same receiver, which is what the duplicate check cares about.
func sameLocation(a, b Address) bool {
	return a.Receiver == b.Receiver &&
		a.Phone == b.Phone &&
		a.Province == b.Province &&
		a.District == b.District &&
		a.Ward == b.Ward &&
		a.Detail == b.Detail
}
