package models

import "github.com/shopspring/decimal"

type Product struct {
	ID          string          `json:"_id,omitempty"`
	Name        string          `json:"product_name"`
	Category    string          `json:"product_category"`
	Price       decimal.Decimal `json:"product_price"`
	Quantity    int             `json:"product_qty"`
	Description string          `json:"product_description"`
	Image       string          `json:"product_img"`
	CreatedAt   string          `json:"createdAt,omitempty"`
}

func (p Product) RowID() string { return p.ID }

func (p Product) Validate() error {
	if err := requireID("product", p.ID); err != nil {
		return err
	}
	if p.Price.IsNegative() {
		return shapeErr("product %s has negative price", p.ID)
	}
	return nil
}

// InStock is used for display colouring only.
func (p Product) InStock() bool { return p.Quantity > 0 }

type Category struct {
	ID          string `json:"_id,omitempty"`
	Name        string `json:"category_name"`
	Description string `json:"category_description"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

func (c Category) RowID() string { return c.ID }

func (c Category) Validate() error {
	return requireID("category", c.ID)
}

// CategoryName resolves ref against categories. A product may reference its
// category either by id or by name, so both are tried.
func CategoryName(categories []Category, ref string) string {
	for _, c := range categories {
		if c.ID == ref || c.Name == ref {
			return c.Name
		}
	}
	if ref == "" {
		return "Uncategorized"
	}
	return ref
}
