package bible

import "fmt"

// DefaultTranslation is the translation code used for lookup URLs when a
// session does not pin one.
const DefaultTranslation = "ESV"

// abbreviations maps every canonical book name to its lookup abbreviation.
// "Psalm" is carried as an alias of "Psalms" because models frequently emit
// the singular form.
var abbreviations = map[string]string{
	"Genesis":         "Gen",
	"Exodus":          "Exod",
	"Leviticus":       "Lev",
	"Numbers":         "Num",
	"Deuteronomy":     "Deut",
	"Joshua":          "Josh",
	"Judges":          "Judg",
	"Ruth":            "Ruth",
	"1 Samuel":        "1Sam",
	"2 Samuel":        "2Sam",
	"1 Kings":         "1Kgs",
	"2 Kings":         "2Kgs",
	"1 Chronicles":    "1Chr",
	"2 Chronicles":    "2Chr",
	"Ezra":            "Ezra",
	"Nehemiah":        "Neh",
	"Esther":          "Esth",
	"Job":             "Job",
	"Psalms":          "Ps",
	"Psalm":           "Ps",
	"Proverbs":        "Prov",
	"Ecclesiastes":    "Eccl",
	"Song of Solomon": "Song",
	"Isaiah":          "Isa",
	"Jeremiah":        "Jer",
	"Lamentations":    "Lam",
	"Ezekiel":         "Ezek",
	"Daniel":          "Dan",
	"Hosea":           "Hos",
	"Joel":            "Joel",
	"Amos":            "Amos",
	"Obadiah":         "Obad",
	"Jonah":           "Jonah",
	"Micah":           "Mic",
	"Nahum":           "Nah",
	"Habakkuk":        "Hab",
	"Zephaniah":       "Zeph",
	"Haggai":          "Hag",
	"Zechariah":       "Zech",
	"Malachi":         "Mal",
	"Matthew":         "Matt",
	"Mark":            "Mark",
	"Luke":            "Luke",
	"John":            "John",
	"Acts":            "Acts",
	"Romans":          "Rom",
	"1 Corinthians":   "1Cor",
	"2 Corinthians":   "2Cor",
	"Galatians":       "Gal",
	"Ephesians":       "Eph",
	"Philippians":     "Phil",
	"Colossians":      "Col",
	"1 Thessalonians": "1Thess",
	"2 Thessalonians": "2Thess",
	"1 Timothy":       "1Tim",
	"2 Timothy":       "2Tim",
	"Titus":           "Titus",
	"Philemon":        "Phlm",
	"Hebrews":         "Heb",
	"James":           "Jas",
	"1 Peter":         "1Pet",
	"2 Peter":         "2Pet",
	"1 John":          "1John",
	"2 John":          "2John",
	"3 John":          "3John",
	"Jude":            "Jude",
	"Revelation":      "Rev",
}

// IsCanonicalBook reports whether name is an exact (case-sensitive) match
// for a canonical book. This is what rejects ratio-shaped false positives
// like "Score 3:16".
func IsCanonicalBook(name string) bool {
	_, ok := abbreviations[name]
	return ok
}

// Abbreviation returns the lookup abbreviation for a book, falling back to
// the raw name for anything outside the table.
func Abbreviation(book string) string {
	if abbrev, ok := abbreviations[book]; ok {
		return abbrev
	}
	return book
}

// PassageURL builds a Bible Gateway lookup URL for a single verse.
func PassageURL(book string, chapter, verse int, translation string) string {
	if translation == "" {
		translation = DefaultTranslation
	}
	return fmt.Sprintf(
		"https://www.biblegateway.com/passage/?search=%s+%d%%3A%d&version=%s",
		Abbreviation(book), chapter, verse, translation,
	)
}
