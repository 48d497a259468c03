// Package fallback produces canned MovieBot replies when the relay is
// unavailable. Selection is a pure function of the message text plus one
// random draw; it performs no I/O, which is the point of the degradation
// path: chat failures look like a slightly less capable bot, never an error.
package fallback

import (
	"math/rand"
	"strings"
)

// Category labels one keyword bucket of canned replies.
type Category string

const (
	Recommendation Category = "recommendation"
	Action         Category = "action"
	Drama          Category = "drama"
	Comedy         Category = "comedy"
	Horror         Category = "horror"
	SciFi          Category = "sci-fi"
	None           Category = ""
)

// ClarificationReply is returned when no keyword matches.
const ClarificationReply = "I can help you discover movies and TV shows! Try asking about genres, ratings, or popular titles."

// categoryOrder fixes match priority: the first bucket whose keyword appears
// in the message wins.
var categoryOrder = []Category{Recommendation, Action, Drama, Comedy, Horror, SciFi}

var keywords = map[Category][]string{
	Recommendation: {"recommend", "suggest"},
	Action:         {"action", "fight"},
	Drama:          {"drama", "emotional"},
	Comedy:         {"comedy", "funny"},
	Horror:         {"horror", "scary"},
	SciFi:          {"sci-fi", "science fiction"},
}

var pools = map[Category][]string{
	Recommendation: {
		"Based on your preferences, I recommend:\n\n1. **Inception** (2010) - A mind-bending sci-fi thriller\n2. **The Dark Knight** (2008) - One of the greatest superhero movies\n3. **Interstellar** (2014) - An epic space adventure\n4. **Parasite** (2019) - Oscar-winning social thriller\n5. **Mad Max: Fury Road** (2015) - Spectacular action film",
		"Here are some top-rated movies:\n\n1. **La La Land** (2016) - Beautiful romantic musical\n2. **Get Out** (2017) - Smart horror-thriller\n3. **Spider-Man: Into the Spider-Verse** (2018) - Best superhero animation\n4. **The Grand Budapest Hotel** (2014) - Unique and entertaining comedy\n5. **Whiplash** (2014) - Intense musical drama",
	},
	Action: {
		"Top action movies I recommend:\n\n1. **John Wick** (2014) - Best action choreography\n2. **Mad Max: Fury Road** (2015) - Spectacular and intense\n3. **The Raid** (2011) - Brutal martial arts action\n4. **Mission: Impossible - Fallout** (2018) - Amazing stunts\n5. **Die Hard** (1988) - Timeless classic",
		"Recent action movies worth watching:\n\n1. **Top Gun: Maverick** (2022) - Even better than the original\n2. **The Batman** (2022) - Dark and atmospheric\n3. **Bullet Train** (2022) - Fun action comedy\n4. **Everything Everywhere All at Once** (2022) - Multiverse action\n5. **RRR** (2022) - Epic action from India",
	},
	Drama: {
		"Best drama movies of all time:\n\n1. **The Shawshank Redemption** (1994)\n2. **Forrest Gump** (1994)\n3. **The Green Mile** (1999)\n4. **Schindler's List** (1993)\n5. **Goodfellas** (1990)",
		"Recent must-watch dramas:\n\n1. **Parasite** (2019)\n2. **Joker** (2019)\n3. **Marriage Story** (2019)\n4. **The Irishman** (2019)\n5. **Little Women** (2019)",
	},
	Comedy: {
		"Great comedy films:\n\n1. **The Grand Budapest Hotel** (2014)\n2. **Superbad** (2007)\n3. **Bridesmaids** (2011)\n4. **Shaun of the Dead** (2004)\n5. **The Big Lebowski** (1998)",
		"Romantic comedies you might enjoy:\n\n1. **La La Land** (2016)\n2. **Crazy Rich Asians** (2018)\n3. **The Proposal** (2009)\n4. **500 Days of Summer** (2009)\n5. **About Time** (2013)",
	},
	Horror: {
		"Top horror films:\n\n1. **The Shining** (1980)\n2. **Hereditary** (2018)\n3. **Get Out** (2017)\n4. **A Quiet Place** (2018)\n5. **The Conjuring** (2013)",
		"Modern horror movies:\n\n1. **Midsommar** (2019)\n2. **Us** (2019)\n3. **The Babadook** (2014)\n4. **It Follows** (2014)\n5. **The Witch** (2015)",
	},
	SciFi: {
		"Top sci-fi movies:\n\n1. **Blade Runner 2049** (2017)\n2. **Arrival** (2016)\n3. **Ex Machina** (2014)\n4. **Her** (2013)\n5. **Edge of Tomorrow** (2014)",
		"Classic sci-fi films:\n\n1. **2001: A Space Odyssey** (1968)\n2. **Alien** (1979)\n3. **The Matrix** (1999)\n4. **Back to the Future** (1985)\n5. **E.T.** (1982)",
	},
}

// Categorize returns the first category whose keyword appears in the
// message, checked case-insensitively in fixed priority order, or None.
func Categorize(text string) Category {
	normalized := strings.ToLower(text)
	for _, category := range categoryOrder {
		for _, word := range keywords[category] {
			if strings.Contains(normalized, word) {
				return category
			}
		}
	}
	return None
}

// Reply picks a canned answer for the message: a uniform random draw from
// the matched category's pool, or the fixed clarification prompt when no
// keyword matches.
func Reply(text string) string {
	category := Categorize(text)
	if category == None {
		return ClarificationReply
	}
	pool := pools[category]
	return pool[rand.Intn(len(pool))]
}

// Pool exposes a category's answers so callers can verify membership.
func Pool(category Category) []string {
	return append([]string(nil), pools[category]...)
}
