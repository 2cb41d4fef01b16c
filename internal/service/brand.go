package service

import "strings"

// MultiBrand is returned when no product name matches a known brand.
const MultiBrand = "Multi-Brand"

type brandRule struct {
	Substring string
	Brand     string
}

// Order matters: earlier rules win when a name matches several substrings.
var brandTable = []brandRule{
	{"iPhone", "Apple"},
	{"iPad", "Apple"},
	{"MacBook", "Apple"},
	{"AirPods", "Apple"},
	{"Apple Watch", "Apple"},
	{"Galaxy", "Samsung"},
	{"Pixel", "Google"},
	{"Surface", "Microsoft"},
	{"Xbox", "Microsoft"},
	{"PlayStation", "Sony"},
	{"WH-1000", "Sony"},
	{"ThinkPad", "Lenovo"},
	{"XPS", "Dell"},
	{"Kindle", "Amazon"},
	{"Echo", "Amazon"},
	{"OnePlus", "OnePlus"},
	{"Switch", "Nintendo"},
}

// ResolveBrand returns the brand of the first product name matching the brand table,
// testing names in order and table entries in order. Matching is case-sensitive.
func ResolveBrand(productNames []string) string {
	for _, name := range productNames {
		for _, rule := range brandTable {
			if strings.Contains(name, rule.Substring) {
				return rule.Brand
			}
		}
	}
	return MultiBrand
}
