package console

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"stonepay_admin/internal/models"
	"stonepay_admin/internal/table"
	"stonepay_admin/pkg/text"
)

// FormatDateTime renders a backend timestamp for tables.
func FormatDateTime(iso string) string {
	if iso == "" {
		return "N/A"
	}
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return "Invalid Date"
	}
	return t.Format("Jan 02, 2006, 03:04:05 PM")
}

func esc(id string) string { return url.PathEscape(id) }

func OrderColumns() []table.Column[models.Order] {
	return []table.Column[models.Order]{
		{Label: "Date", Render: func(o models.Order) string { return FormatDateTime(o.CreatedAt) }},
		{Label: "Customer", Render: func(o models.Order) string { return o.UserDetails.FullName() }},
		{Label: "Product", Render: orderProducts},
		{Label: "Amount", Render: func(o models.Order) string { return text.Naira(o.TotalPrice) }},
		{Label: "Status", Render: func(o models.Order) string { return o.Status }, Class: orderStatusClass},
	}
}

func orderProducts(o models.Order) string {
	switch len(o.Products) {
	case 0:
		return "N/A"
	case 1:
		return o.Products[0].ProductDetails.ProductName
	default:
		return fmt.Sprintf("%s +%d more", o.Products[0].ProductDetails.ProductName, len(o.Products)-1)
	}
}

func orderStatusClass(o models.Order) string {
	if o.IsPending() {
		return "status status-pending"
	}
	return "status status-approved"
}

func OrderActions() []table.Action[models.Order] {
	return []table.Action[models.Order]{
		{Label: "View", Href: func(o models.Order) string { return "/orders/" + esc(o.ID) }},
		{Label: "Update status", Confirm: true, Href: func(o models.Order) string { return "/orders/" + esc(o.ID) + "/status" }},
		{Label: "Delete", Class: "danger", Confirm: true, Href: func(o models.Order) string { return "/orders/" + esc(o.ID) + "/delete" }},
	}
}

// ProductColumns resolves category references against categories.
func ProductColumns(categories []models.Category) []table.Column[models.Product] {
	return []table.Column[models.Product]{
		{Label: "Product name", Render: func(p models.Product) string { return p.Name }},
		{Label: "Product category", Render: func(p models.Product) string {
			return models.CategoryName(categories, p.Category)
		}},
		{Label: "Unit price", Render: func(p models.Product) string { return text.Naira(p.Price) }},
		{Label: "Quantity", Render: func(p models.Product) string { return strconv.Itoa(p.Quantity) }},
		{Label: "Status",
			Render: func(p models.Product) string {
				if p.InStock() {
					return "In stock"
				}
				return "Out of stock"
			},
			Class: func(p models.Product) string {
				if p.InStock() {
					return "status status-approved"
				}
				return "status status-pending"
			}},
	}
}

func ProductActions() []table.Action[models.Product] {
	return []table.Action[models.Product]{
		{Label: "View", Href: func(p models.Product) string { return "/products/" + esc(p.ID) }},
		{Label: "Edit", Href: func(p models.Product) string { return "/products/" + esc(p.ID) + "/edit" }},
		{Label: "Delete", Class: "danger", Confirm: true, Href: func(p models.Product) string { return "/products/" + esc(p.ID) + "/delete" }},
	}
}

func CategoryColumns() []table.Column[models.Category] {
	return []table.Column[models.Category]{
		{Label: "Category Name", Render: func(c models.Category) string { return c.Name }},
		{Label: "Category Description", Render: func(c models.Category) string {
			return text.Preview(c.Description, 60)
		}},
	}
}

func CategoryActions() []table.Action[models.Category] {
	return []table.Action[models.Category]{
		{Label: "View", Href: func(c models.Category) string { return "/categories/" + esc(c.ID) }},
		{Label: "Update", Href: func(c models.Category) string { return "/categories/" + esc(c.ID) + "/edit" }},
		{Label: "Delete", Class: "danger", Confirm: true, Href: func(c models.Category) string { return "/categories/" + esc(c.ID) + "/delete" }},
	}
}

func UserColumns() []table.Column[models.User] {
	return []table.Column[models.User]{
		{Label: "First Name", Render: func(u models.User) string { return u.FirstName }},
		{Label: "Last Name", Render: func(u models.User) string { return u.LastName }},
		{Label: "Email", Render: func(u models.User) string { return u.Email }},
		{Label: "Role", Render: func(u models.User) string { return u.Role }},
		{Label: "Status",
			Render: func(u models.User) string {
				if u.IsActive {
					return "Active"
				}
				return "Inactive"
			},
			Class: func(u models.User) string {
				if u.IsActive {
					return "status status-approved"
				}
				return "status status-pending"
			}},
	}
}

func UserActions() []table.Action[models.User] {
	return []table.Action[models.User]{
		{Label: "View", Href: func(u models.User) string { return "/users/" + esc(u.ID) }},
		{Label: "Edit", Href: func(u models.User) string { return "/users/" + esc(u.ID) + "/edit" }},
		{Label: "Delete", Class: "danger", Confirm: true, Href: func(u models.User) string { return "/users/" + esc(u.ID) + "/delete" }},
	}
}

func TopSoldColumns() []table.Column[models.TopSoldEntry] {
	return []table.Column[models.TopSoldEntry]{
		{Label: "Product Name", Render: func(t models.TopSoldEntry) string {
			if t.ProductName == "" {
				return "N/A"
			}
			return t.ProductName
		}},
		{Label: "Total Sold", Render: func(t models.TopSoldEntry) string { return text.Number(t.TotalSold) }},
		{Label: "Total Revenue", Render: func(t models.TopSoldEntry) string { return text.Naira(t.TotalRevenue) }},
	}
}

func ChartColumns() []table.Column[models.PeriodPoint] {
	return []table.Column[models.PeriodPoint]{
		{Label: "Date", Render: func(p models.PeriodPoint) string { return chartDay(p.ID) }},
		{Label: "Orders", Render: func(p models.PeriodPoint) string { return p.Total.String() }},
	}
}

func chartDay(id string) string {
	if t, err := time.Parse("2006-01-02", id); err == nil {
		return t.Format("01/02/2006")
	}
	return id
}

// SortPoints orders chart points by day, oldest first.
func SortPoints(points []models.PeriodPoint) []models.PeriodPoint {
	out := append([]models.PeriodPoint(nil), points...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
