package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ProductCategory distinguishes the two product families. The values are the
// business vocabulary carried in the persisted collections.
type ProductCategory string

const (
	CategoryShoes ProductCategory = "zapatos"
	CategoryBags  ProductCategory = "bolsos"
)

// ProductStatus is an informational filter flag; it is not enforced by the
// pricing or ledger engines.
type ProductStatus string

const (
	ProductActive   ProductStatus = "active"
	ProductInactive ProductStatus = "inactive"
)

// Shoe groups and their legal subcategory sets. Group determines which
// subcategories are valid; the pairs form a closed enumeration.
const (
	GroupSandalias    = "Sandalias"
	GroupBotas        = "Botas"
	GroupTenis        = "Tenis"
	GroupTacones      = "Zapatos de tacón"
	GroupOtrosEstilos = "Otros estilos"
)

// Bag groups.
const (
	GroupBolsosManoHombro = "Bolsos de mano y hombro"
	GroupManosLibres      = "Manos libres"
	GroupCarteras         = "Carteras y monederos"
	GroupRinoneras        = "Riñoneras y canguros"
	GroupBolsosOcasiones  = "Bolsos para ocasiones especiales"
)

var shoeSubcategories = map[string][]string{
	GroupSandalias:    {"Sandalia cuña", "Sandalias plataforma", "Sandalias bajas", "Sandalias casuales", "Sandalias de playa"},
	GroupBotas:        {"Bota baja", "Bota tacón alto"},
	GroupTenis:        {"Tenis deportivas", "Tenis casuales"},
	GroupTacones:      {"Tacones altos", "Tacones bajos"},
	GroupOtrosEstilos: {"Mocasines", "Mules", "Zapatillas flat", "Otros estilos de zapatos"},
}

var bagSubcategories = map[string][]string{
	GroupBolsosManoHombro: {"Bolso", "Bolso de hombro", "Bolso grande"},
	GroupManosLibres:      {"Manos libres pequeños", "Manos libres medianos"},
	GroupCarteras:         {"Cartera de mano", "Carteras", "Monederos"},
	GroupRinoneras:        {"Canguros", "Canguro/faja"},
	GroupBolsosOcasiones:  {}, // no subcategories
}

// GroupsFor returns the legal groups for a category, in display order.
func GroupsFor(category ProductCategory) []string {
	switch category {
	case CategoryShoes:
		return []string{GroupSandalias, GroupBotas, GroupTenis, GroupTacones, GroupOtrosEstilos}
	case CategoryBags:
		return []string{GroupBolsosManoHombro, GroupManosLibres, GroupCarteras, GroupRinoneras, GroupBolsosOcasiones}
	default:
		return nil
	}
}

// SubcategoriesFor returns the legal subcategories for a category/group pair.
func SubcategoriesFor(category ProductCategory, group string) []string {
	switch category {
	case CategoryShoes:
		return shoeSubcategories[group]
	case CategoryBags:
		return bagSubcategories[group]
	default:
		return nil
	}
}

// ValidateClassification checks that a group/subcategory pair is legal for
// the given category.
func ValidateClassification(category ProductCategory, group, subcategory string) error {
	subs, ok := map[ProductCategory]map[string][]string{
		CategoryShoes: shoeSubcategories,
		CategoryBags:  bagSubcategories,
	}[category]
	if !ok {
		return fmt.Errorf("unknown product category %q", category)
	}
	legal, ok := subs[group]
	if !ok {
		return fmt.Errorf("unknown group %q for category %q", group, category)
	}
	if len(legal) == 0 {
		if subcategory != "" {
			return fmt.Errorf("group %q does not take a subcategory", group)
		}
		return nil
	}
	for _, s := range legal {
		if s == subcategory {
			return nil
		}
	}
	return fmt.Errorf("subcategory %q is not valid for group %q", subcategory, group)
}

// ShoeSizeVariant is one size of a shoe product. Sizes are labels, not
// necessarily numeric. Shoes discount per size, so each variant carries its
// own offer descriptor.
type ShoeSizeVariant struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
	Offer
}

// Product is a single inventory entry. A shoe with several colors is
// registered as one product per color; sizes are variants within the product.
// Bags have a single stock count and a product-level offer; shoe products
// have no product-level offer.
type Product struct {
	ProductID   string           `json:"id"` // Primary key (UUID)
	SKU         string           `json:"sku,omitempty"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Category    ProductCategory  `json:"category"`
	Price       decimal.Decimal  `json:"price"` // base price, pre-discount
	Cost        *decimal.Decimal `json:"cost,omitempty"`
	Group       string           `json:"group"`
	Subcategory string           `json:"subcategory,omitempty"`
	Status      ProductStatus    `json:"status,omitempty"`

	// Shoe-only fields.
	Color string            `json:"color,omitempty"`
	Sizes []ShoeSizeVariant `json:"sizes,omitempty"`

	// Bag-only field.
	Stock int `json:"stock,omitempty"`

	Offer
	AuditFields
}

// TotalStock sums stock across size variants for shoes, or returns the
// single stock count for bags.
func (p Product) TotalStock() int {
	if p.Category == CategoryShoes {
		total := 0
		for _, v := range p.Sizes {
			total += v.Stock
		}
		return total
	}
	return p.Stock
}

// VariantBySize returns the size variant with the given label.
func (p Product) VariantBySize(size string) (ShoeSizeVariant, bool) {
	for _, v := range p.Sizes {
		if v.Size == size {
			return v, true
		}
	}
	return ShoeSizeVariant{}, false
}

// EffectiveStatus treats a missing status as active, mirroring how the
// collections were historically persisted.
func (p Product) EffectiveStatus() ProductStatus {
	if p.Status == "" {
		return ProductActive
	}
	return p.Status
}
