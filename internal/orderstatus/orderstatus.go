package orderstatus

// Status is a named stage in the order workflow. The well-known names below
// are seeded at startup; admins may add more.
type Status struct {
	ID        string `json:"orderStatusId"`
	Name      string `json:"orderStatusName"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

const (
	StatusPending    = "Pending"
	StatusConfirmed  = "Confirmed"
	StatusDelivering = "Delivering"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
)

// DefaultNames is the seed set written when the table is empty.
var DefaultNames = []string{StatusPending, StatusConfirmed, StatusDelivering, StatusCompleted, StatusCancelled}
