package finding

// Category is the coarse-grained classification bucket for a finding.
// The set is closed; event types with no mapping fall into CategoryOther.
type Category string

const (
	CategoryDomain     Category = "domain"
	CategorySubdomain  Category = "subdomain"
	CategoryIP         Category = "ip"
	CategoryContact    Category = "contact"
	CategoryTechnology Category = "technology"
	CategorySecurity   Category = "security"
	CategoryCredential Category = "credential"
	CategorySocial     Category = "social"
	CategoryOther      Category = "other"
)

// Categories returns every category in its fixed enumeration order.
// This order is a correctness requirement: report sections are emitted in
// it, and top-N ties are broken by it.
func Categories() []Category {
	return []Category{
		CategoryDomain,
		CategorySubdomain,
		CategoryIP,
		CategoryContact,
		CategoryTechnology,
		CategorySecurity,
		CategoryCredential,
		CategorySocial,
		CategoryOther,
	}
}

// IsValid reports whether c is a recognized category.
func (c Category) IsValid() bool {
	return c.Position() >= 0
}

// Position returns the category's index in the fixed enumeration order,
// or -1 for an unrecognized category.
func (c Category) Position() int {
	for i, known := range Categories() {
		if c == known {
			return i
		}
	}
	return -1
}

// String returns the category as a string.
func (c Category) String() string {
	return string(c)
}
