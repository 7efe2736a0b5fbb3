package domain

import "slices"

// Countries is the fixed list of nationalities a member may have.
var Countries = []string{
	"Argentina", "Australia", "Austria", "Belgium", "Brazil", "Canada", "China", "Denmark",
	"Finland", "France", "Germany", "Hungary", "India", "Italy", "Japan", "Mexico", "Monaco",
	"Netherlands", "New Zealand", "Norway", "Poland", "Portugal", "Russia", "Spain", "Sweden",
	"Switzerland", "Thailand", "United Kingdom", "United States", "Venezuela",
}

func IsCountry(name string) bool {
	return slices.Contains(Countries, name)
}
