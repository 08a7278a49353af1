package usecase

import "strings"

// Curated brand token lists for tier preference. Matching is a deliberate
// case-insensitive substring check: listing titles embed brand names in
// arbitrary punctuation ("Levi's®", "COACH Outlet"), so whole-word matching
// would miss real hits. Coarse is correct here.

// midRangeBrands are recognizable mainstream fashion brands typically
// priced in the mid bracket.
var midRangeBrands = []string{
	"levi's", "levis", "gap", "banana republic", "j.crew", "j crew",
	"madewell", "everlane", "uniqlo", "zara", "cos ", "massimo dutti",
	"abercrombie", "tommy hilfiger", "calvin klein", "ralph lauren",
	"lacoste", "nike", "adidas", "new balance", "dr. martens", "dr martens",
	"clarks", "steve madden", "sam edelman", "frye", "aritzia",
	"free people", "anthropologie", "reformation", "lululemon",
	"patagonia", "the north face", "columbia", "carhartt",
}

// premiumBrands are designer and luxury labels typically priced in the
// premium bracket.
var premiumBrands = []string{
	"gucci", "prada", "louis vuitton", "chanel", "dior", "hermes", "hermès",
	"burberry", "balenciaga", "bottega veneta", "saint laurent", "ysl",
	"givenchy", "fendi", "valentino", "versace", "celine", "céline",
	"loewe", "miu miu", "alexander mcqueen", "tom ford", "brunello cucinelli",
	"loro piana", "max mara", "moncler", "canada goose", "stone island",
	"off-white", "balmain", "jimmy choo", "christian louboutin",
	"manolo blahnik", "ferragamo", "cartier", "rolex", "omega",
	"acne studios", "the row", "khaite", "toteme", "ganni",
}

// matchesBrand reports whether any brand token appears in the title
func matchesBrand(title string, brands []string) bool {
	lower := strings.ToLower(title)
	for _, brand := range brands {
		if strings.Contains(lower, brand) {
			return true
		}
	}
	return false
}

// HasMidRangeBrand reports whether the listing title names a known
// mid-range brand.
func HasMidRangeBrand(title string) bool {
	return matchesBrand(title, midRangeBrands)
}

// HasPremiumBrand reports whether the listing title names a known
// premium brand.
func HasPremiumBrand(title string) bool {
	return matchesBrand(title, premiumBrands)
}
