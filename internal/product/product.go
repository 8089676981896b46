package product

// Product maps to the `products` table. A product belongs to at most one
// product type and carries the MBTI metadata the recommendation quiz filters on.
type Product struct {
	ID               string   `json:"productId"`
	Name             string   `json:"productName"`
	ImagePaths       []string `json:"productImagePath"`
	ProductTypeID    *string  `json:"productType,omitempty"`
	ProductTypeName  *string  `json:"productTypeName,omitempty"`
	CountInStock     int      `json:"countInStock"`
	Price            float64  `json:"price"`
	DiscountedPrice  float64  `json:"discountedPrice"`
	Description      string   `json:"description"`
	AvgStar          float64  `json:"avgStar"`
	RecommendedTypes []string `json:"recommendedTypes,omitempty"`
	Keywords         []string `json:"keywords,omitempty"`
	Traits           []string `json:"traits,omitempty"`
	CreatedAt        string   `json:"createdAt,omitempty"`
	UpdatedAt        string   `json:"updatedAt,omitempty"`
}

// UnitPrice is the price the cart charges for one unit: the discounted price
// when one is set, the base price otherwise.
func (p Product) UnitPrice() float64 {
	if p.DiscountedPrice > 0 {
		return p.DiscountedPrice
	}
	return p.Price
}

// FirstImage returns the primary display image, empty when none is set.
func (p Product) FirstImage() string {
	if len(p.ImagePaths) == 0 {
		return ""
	}
	return p.ImagePaths[0]
}

// MBTITypes lists the personality types accepted in recommendedTypes.
var MBTITypes = []string{
	"ISTJ", "ISFJ", "INFJ", "INTJ",
	"ISTP", "ISFP", "INFP", "INTP",
	"ESTP", "ESFP", "ENFP", "ENTP",
	"ESTJ", "ESFJ", "ENFJ", "ENTJ",
}

func ValidMBTIType(t string) bool {
	for _, m := range MBTITypes {
		if m == t {
			return true
		}
	}
	return false
}

// ListFilter narrows and pages the product listing. Traits, MBTI and Search
// are combined with OR logic when more than one is present.
type ListFilter struct {
	Traits []string
	MBTI   []string
	Search string
	SortBy string
	Desc   bool
	Page   int
	Limit  int
}
