package tokenizer

// Rules is the exception-rule table consulted while splitting a whitespace
// chunk. Rule priority is fixed: special cases first, then prefixes, then
// suffixes; within the prefix and suffix lists longer pieces are tried
// before shorter ones and the first match wins.
type Rules struct {
	// Specials are chunks emitted intact, exact match, case-sensitive.
	// They protect abbreviations such as "e.g." from suffix splitting;
	// interior punctuation (as in "don't") needs no special entry because
	// edge rules never look inside a chunk.
	Specials map[string]bool

	// Prefixes are pieces split off the front of a chunk.
	Prefixes []string

	// Suffixes are pieces split off the back of a chunk.
	Suffixes []string
}

// DefaultRules returns the built-in English rule table. Model files may
// carry their own table; empty rule tables fall back to these defaults.
func DefaultRules() *Rules {
	return &Rules{
		Specials: map[string]bool{
			"e.g.": true, "i.e.": true, "etc.": true, "vs.": true,
			"Mr.": true, "Mrs.": true, "Ms.": true, "Dr.": true,
			"Prof.": true, "St.": true, "No.": true, "approx.": true,
			"a.m.": true, "p.m.": true, "U.S.": true, "U.K.": true,
		},
		Prefixes: []string{
			"(", "[", "{", `"`, "'", "“", "‘", "«", "¿", "¡",
			"$", "€", "£", "¥",
		},
		Suffixes: []string{
			"...", "…", "'s", "'S", "’s", "’S",
			".", ",", ";", ":", "!", "?", `"`, "'", ")", "]", "}",
			"”", "’", "»", "%",
		},
	}
}
