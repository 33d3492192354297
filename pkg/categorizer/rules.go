package categorizer

import "github.com/umputun/eventscope/pkg/domain"

// DefaultRules returns the built-in rule table. Order matters: specific categories (opera, musical, ballet)
// come before generic ones (concert, workshop) so they win equal scores.
func DefaultRules() []Rule {
	return []Rule{
		{Category: domain.CategoryOpera, Weight: 5, Patterns: []string{
			`\boper\b`, `\bopern`, `operette`, `\barie\b`, `sopran`, `zauberfl(ö|oe)te`, `traviata`, `\bopera\b`,
		}},
		{Category: domain.CategoryMusical, Weight: 5, Patterns: []string{
			`musical`,
		}},
		{Category: domain.CategoryBallet, Weight: 5, Patterns: []string{
			`ballett`, `\bballet\b`, `tanztheater`, `choreograf`,
		}},
		{Category: domain.CategoryTheater, Weight: 4, Patterns: []string{
			`theater`, `schauspiel`, `b(ü|ue)hne`, `inszenierung`, `premiere`, `\bdrama\b`,
		}},
		{Category: domain.CategoryComedy, Weight: 4, Patterns: []string{
			`kabarett`, `comedy`, `stand-?up`, `satire`, `kleinkunst`, `impro`,
		}},
		{Category: domain.CategoryReading, Weight: 4, Patterns: []string{
			`lesung`, `\bliest\b`, `buchvorstellung`, `poetry.?slam`, `literatur`,
		}},
		{Category: domain.CategoryFestival, Weight: 3, Patterns: []string{
			`festival`, `open.?air`, `festspiele`, `\bfest\b`,
		}},
		{Category: domain.CategoryParty, Weight: 3, Patterns: []string{
			`party`, `\bdj\b`, `clubnacht`, `techno`, `\bdisco`, `tanzabend`, `\brave\b`,
		}},
		{Category: domain.CategoryConcert, Weight: 3, Patterns: []string{
			`konzert`, `live.?musik`, `\bband\b`, `jazz`, `\brock\b`, `\bpop\b`, `orchester`, `sinfonie|symphonie`,
			`\bchor\b`, `\bblues\b`,
		}},
		{Category: domain.CategoryExhibition, Weight: 3, Patterns: []string{
			`ausstellung`, `vernissage`, `galerie`, `museum`, `exhibition`,
		}},
		{Category: domain.CategoryCinema, Weight: 3, Patterns: []string{
			`\bkino\b`, `\bfilm`, `screening`, `vorf(ü|ue)hrung`,
		}},
		{Category: domain.CategoryKids, Weight: 3, Patterns: []string{
			`kinder`, `familie`, `\bjugend`, `puppentheater|figurentheater`, `m(ä|ae)rchen`,
		}},
		{Category: domain.CategoryTour, Weight: 3, Patterns: []string{
			`f(ü|ue)hrung`, `rundgang`, `exkursion`, `wanderung`, `stadtspaziergang`,
		}},
		{Category: domain.CategoryMarket, Weight: 3, Patterns: []string{
			`markt`, `basar`, `\bmesse\b`, `tr(ö|oe)del`,
		}},
		{Category: domain.CategorySport, Weight: 3, Patterns: []string{
			`\bsport`, `marathon`, `turnier`, `fu(ß|ss)ball`, `\byoga\b`, `\blauf\b`,
		}},
		{Category: domain.CategoryTalk, Weight: 2, Patterns: []string{
			`vortrag`, `diskussion`, `podium`, `\btalk\b`, `konferenz`, `seminar`,
		}},
		{Category: domain.CategoryWorkshop, Weight: 2, Patterns: []string{
			`workshop`, `\bkurs(e)?\b`, `mitmach`, `werkstatt`,
		}},
	}
}

// Default returns a categorizer built from DefaultRules
func Default() *Categorizer {
	return MustNew(DefaultRules())
}
