package user

// User maps to the `users` table. JSON tags follow the camelCase convention
// used across the API. Password and refresh token are never serialized.
type User struct {
	ID           string  `json:"userId"`
	Fullname     string  `json:"fullname"`
	Email        string  `json:"email"`
	Password     string  `json:"-"`
	Phone        string  `json:"phone"`
	Gender       string  `json:"gender"`
	DateOfBirth  string  `json:"dateOfBirth,omitempty"`
	Role         string  `json:"role"`
	AvatarPath   *string `json:"avatarImagePath,omitempty"`
	RefreshToken string  `json:"-"`
	CreatedAt    string  `json:"createdAt,omitempty"`
	UpdatedAt    string  `json:"updatedAt,omitempty"`
}

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// ValidRoles contains the roles accepted at registration.
var ValidRoles = []string{RoleCustomer, RoleAdmin}

// ListFilter narrows the admin user listing.
type ListFilter struct {
	Fullname string
	Email    string
	Role     string
	Page     int
	Limit    int
}
