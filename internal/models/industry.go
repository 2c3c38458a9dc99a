package models

// The five industries teams can belong to. Every team holds one
// inventory row per industry, regardless of its own assignment.
const (
	IndustryCement    = "Cement"
	IndustryEnergy    = "Energy"
	IndustryIron      = "Iron"
	IndustryAluminium = "Aluminium"
	IndustryWood      = "Wood"

	// IndustryAdmin marks the game-master account, which never trades.
	IndustryAdmin = "Admin"
)

// Industries lists the tradeable industries in their canonical order.
var Industries = []string{
	IndustryCement,
	IndustryEnergy,
	IndustryIron,
	IndustryAluminium,
	IndustryWood,
}

// InitialBalance is the starting balance credited to every team.
const InitialBalance = 250000

// Initial raw-unit allocation range per (team, industry) at setup time.
const (
	MinInitialRawUnits = 10
	MaxInitialRawUnits = 50
)

// ValidIndustry reports whether name is one of the five tradeable industries.
func ValidIndustry(name string) bool {
	for _, ind := range Industries {
		if ind == name {
			return true
		}
	}
	return false
}

// OtherIndustries returns every tradeable industry except the given one.
// Producing N units of an industry consumes N raw units from each of these.
func OtherIndustries(industry string) []string {
	others := make([]string, 0, len(Industries)-1)
	for _, ind := range Industries {
		if ind != industry {
			others = append(others, ind)
		}
	}
	return others
}
