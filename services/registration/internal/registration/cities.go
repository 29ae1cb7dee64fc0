package registration

// Cities the marketplace currently operates in. Step 1 of the wizard
// only accepts one of these.
var Cities = []string{
	"Amsterdam",
	"Antwerp",
	"Berlin",
	"Brussels",
	"Copenhagen",
	"Hamburg",
	"Lisbon",
	"Madrid",
	"Paris",
	"Rotterdam",
}

func IsKnownCity(city string) bool {
	for _, c := range Cities {
		if c == city {
			return true
		}
	}
	return false
}
