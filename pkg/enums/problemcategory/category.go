package problemcategory

import (
	"strings"
)

type Category struct {
	Name string
}

func (c Category) Code() string {
	return c.Name
}

func (c Category) Label() string {
	return strings.ToUpper(c.Name[:1]) + c.Name[1:]
}

type Enum struct {
	Orders     Category
	Delivery   Category
	Payment    Category
	Account    Category
	Suggestion Category
}

var Categories = Enum{
	Orders:     Category{Name: "orders"},
	Delivery:   Category{Name: "delivery"},
	Payment:    Category{Name: "payment"},
	Account:    Category{Name: "account"},
	Suggestion: Category{Name: "suggestion"},
}

var All = []Category{
	Categories.Orders,
	Categories.Delivery,
	Categories.Payment,
	Categories.Account,
	Categories.Suggestion,
}

// ByName returns the category for a given name, or nil if not found
func ByName(name string) *Category {
	for _, c := range All {
		if c.Name == name {
			return &c
		}
	}
	return nil
}
