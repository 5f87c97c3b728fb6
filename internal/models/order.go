package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

const StatusPending = "Pending"

type UserDetails struct {
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	UserImg   string `json:"user_img"`
}

func (u UserDetails) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type ProductDetails struct {
	ProductName     string `json:"product_name"`
	ProductCategory string `json:"product_category"`
}

type OrderLine struct {
	ID             string          `json:"_id"`
	ProductID      string          `json:"product_id"`
	ProductDetails ProductDetails  `json:"product_details"`
	Quantity       int             `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
}

func (l OrderLine) RowID() string { return l.ID }

type Order struct {
	ID                   string          `json:"_id"`
	UserDetails          UserDetails     `json:"user_details"`
	Products             []OrderLine     `json:"products"`
	Status               string          `json:"status"`
	TotalPrice           decimal.Decimal `json:"total_price"`
	TransactionReference *string         `json:"transaction_reference"`
	PaymentMethod        string          `json:"payment_method"`
	PaymentDate          *string         `json:"payment_date"`
	PaymentStatus        string          `json:"payment_status"`
	CreatedAt            string          `json:"createdAt"`
}

func (o Order) RowID() string { return o.ID }

// IsPending reports whether the order still waits for approval. Every other
// status is treated as approved.
func (o Order) IsPending() bool {
	return strings.EqualFold(o.Status, StatusPending)
}

func (o Order) Validate() error {
	if err := requireID("order", o.ID); err != nil {
		return err
	}
	if o.TotalPrice.IsNegative() {
		return shapeErr("order %s has negative total_price", o.ID)
	}
	for i, line := range o.Products {
		if line.Quantity < 0 {
			return shapeErr("order %s line %d has negative quantity", o.ID, i)
		}
	}
	return nil
}

// PeriodPoint is one bucket of /order/by_period. ID holds the bucket date.
type PeriodPoint struct {
	ID    string          `json:"_id"`
	Total decimal.Decimal `json:"total"`
}

func (p PeriodPoint) RowID() string { return p.ID }

func (p PeriodPoint) Validate() error {
	return requireID("period point", p.ID)
}

// TopSoldEntry is a read-only aggregate. The backend keys it by product_id,
// which doubles as the row identifier.
type TopSoldEntry struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	TotalSold    int64           `json:"total_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	ProductImg   string          `json:"product_img"`
}

func (t TopSoldEntry) RowID() string { return t.ProductID }

func (t TopSoldEntry) Validate() error {
	if strings.TrimSpace(t.ProductID) == "" {
		return shapeErr("top sold entry without product_id")
	}
	return nil
}

// Revenue is the scalar /order/total_revenue aggregate.
type Revenue struct {
	decimal.Decimal
}

func (r Revenue) RowID() string { return "total_revenue" }

func (r Revenue) Validate() error { return nil }
