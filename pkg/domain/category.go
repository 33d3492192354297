package domain

// Category is an event category tag
type Category string

// known categories, CategoryOther means uncategorized
const (
	CategoryOpera      Category = "OPER"
	CategoryMusical    Category = "MUSICAL"
	CategoryBallet     Category = "BALLETT"
	CategoryTheater    Category = "THEATER"
	CategoryComedy     Category = "KABARETT"
	CategoryReading    Category = "LESUNG"
	CategoryFestival   Category = "FESTIVAL"
	CategoryParty      Category = "PARTY"
	CategoryConcert    Category = "KONZERT"
	CategoryExhibition Category = "AUSSTELLUNG"
	CategoryCinema     Category = "KINO"
	CategoryKids       Category = "KINDER"
	CategoryTour       Category = "FUEHRUNG"
	CategoryMarket     Category = "MARKT"
	CategorySport      Category = "SPORT"
	CategoryTalk       Category = "VORTRAG"
	CategoryWorkshop   Category = "WORKSHOP"
	CategoryOther      Category = "SONSTIGES"
)

// Categories lists every known category in declaration order
var Categories = []Category{
	CategoryOpera, CategoryMusical, CategoryBallet, CategoryTheater, CategoryComedy, CategoryReading,
	CategoryFestival, CategoryParty, CategoryConcert, CategoryExhibition, CategoryCinema, CategoryKids,
	CategoryTour, CategoryMarket, CategorySport, CategoryTalk, CategoryWorkshop, CategoryOther,
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
