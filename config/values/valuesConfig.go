package values

// TableValues are the defaults every console table starts from.
type TableValues struct {
	ItemsPerPage []int `yaml:"items_per_page"`
}

// ChartWindow is the default dashboard order-chart window, in days, ending today.
type ChartWindow struct {
	Days int `yaml:"days"`
}

func DefaultItemsPerPage() []int {
	return []int{5, 10, 20}
}
