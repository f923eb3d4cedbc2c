package scoring

// Criterion names the six scored form slots, in the fixed order they appear
// on the calculator and in result breakdowns.
type Criterion string

const (
	CriterionAge           Criterion = "age"
	CriterionLeaseDuration Criterion = "leaseDuration"
	CriterionInsurance     Criterion = "insurance"
	CriterionBalance       Criterion = "balance"
	CriterionLocation      Criterion = "location"
	CriterionSize          Criterion = "size"
)

// Criteria lists the slots in scoring order.
var Criteria = []Criterion{
	CriterionAge,
	CriterionLeaseDuration,
	CriterionInsurance,
	CriterionBalance,
	CriterionLocation,
	CriterionSize,
}

// Option is one selectable answer for a criterion: a stable code, the label
// shown to users, and the points it contributes.
type Option struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Points int    `json:"points"`
}

// The point tables are fixed. Changing them changes every score the
// calculator has ever reported, so they are treated as data, not tunables.
var (
	ageOptions = []Option{
		{Value: "18-24", Label: "18–24", Points: 2},
		{Value: "25-35", Label: "25–35", Points: 5},
		{Value: "36-50", Label: "36–50", Points: 5},
		{Value: "51-60", Label: "51–60", Points: 3},
		{Value: "61+", Label: "61+", Points: 1},
	}

	leaseDurationOptions = []Option{
		{Value: "5-9", Label: "5–9 years", Points: 5},
		{Value: "10-14", Label: "10–14 years", Points: 4},
		{Value: "15-19", Label: "15–19 years", Points: 3},
		{Value: "20-25", Label: "20–25 years", Points: 2},
		{Value: "25+", Label: "Over 25 years", Points: 1},
	}

	insuranceOptions = []Option{
		{Value: "none", Label: "None", Points: 0},
		{Value: "public", Label: "Public only", Points: 2},
		{Value: "private", Label: "Private only", Points: 3},
		{Value: "both", Label: "Both public and private", Points: 5},
	}

	balanceOptions = []Option{
		{Value: "<24000", Label: "Less than 24,000 PLN", Points: 1},
		{Value: "24000-47999", Label: "24,000 – 47,999 PLN", Points: 2},
		{Value: "48000-71999", Label: "48,000 – 71,999 PLN", Points: 3},
		{Value: "72000-99999", Label: "72,000 – 99,999 PLN", Points: 4},
		{Value: "100000+", Label: "100,000 PLN or more", Points: 5},
	}

	locationOptions = []Option{
		{Value: "A", Label: "Category A (Cities with over 300,000 inhabitants)", Points: 5},
		{Value: "B", Label: "Category B (Cities with 100,000–299,999 inhabitants or towns within 20 km from Category A)", Points: 4},
		{Value: "C", Label: "Category C (Cities with 50,000–99,999 inhabitants or towns with strong transit connection to Category A)", Points: 2},
		{Value: "D", Label: "Category D (Towns under 50,000 inhabitants without direct connection to major cities)", Points: 1},
	}

	sizeOptions = []Option{
		{Value: "<25", Label: "Less than 25 m²", Points: 1},
		{Value: "25-44", Label: "25–44 m²", Points: 3},
		{Value: "45-80", Label: "45–80 m²", Points: 5},
		{Value: "81-120", Label: "81–120 m²", Points: 3},
		{Value: ">120", Label: "More than 120 m²", Points: 1},
	}

	optionTables = map[Criterion][]Option{
		CriterionAge:           ageOptions,
		CriterionLeaseDuration: leaseDurationOptions,
		CriterionInsurance:     insuranceOptions,
		CriterionBalance:       balanceOptions,
		CriterionLocation:      locationOptions,
		CriterionSize:          sizeOptions,
	}
)

// Options returns a copy of the option table for a criterion. Unknown
// criteria yield nil.
func Options(criterion Criterion) []Option {
	table, ok := optionTables[criterion]
	if !ok {
		return nil
	}
	out := make([]Option, len(table))
	copy(out, table)
	return out
}

// AllOptions returns the option tables for all six criteria in slot order,
// for clients rendering the calculator form.
func AllOptions() map[Criterion][]Option {
	out := make(map[Criterion][]Option, len(optionTables))
	for criterion := range optionTables {
		out[criterion] = Options(criterion)
	}
	return out
}

// lookup finds the option with the given code. The zero Option (0 points)
// comes back for unknown codes; ok distinguishes a genuine zero-point match
// from a miss.
func lookup(criterion Criterion, value string) (Option, bool) {
	for _, opt := range optionTables[criterion] {
		if opt.Value == value {
			return opt, true
		}
	}
	return Option{}, false
}
