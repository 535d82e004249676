package bible

// crossReferences maps well-known verses to topically related verses.
// Unknown verses yield no cross-references.
var crossReferences = map[string][]string{
	"John 3:16":          {"Romans 5:8", "1 John 4:9", "Ephesians 2:8-9", "Titus 3:5"},
	"Romans 8:28":        {"Genesis 50:20", "Jeremiah 29:11", "Philippians 1:6", "2 Corinthians 4:17"},
	"Matthew 6:9":        {"Luke 11:2", "Matthew 6:10-13", "Luke 11:1-4"},
	"Ephesians 2:8":      {"Romans 3:24", "Titus 3:5", "2 Timothy 1:9"},
	"Romans 3:23":        {"Romans 6:23", "1 John 1:8", "Ecclesiastes 7:20"},
	"Philippians 4:13":   {"2 Corinthians 12:9", "Isaiah 41:10", "Ephesians 3:16"},
	"Jeremiah 29:11":     {"Romans 8:28", "Proverbs 3:5-6", "Isaiah 55:8-9"},
	"Psalms 23:1":        {"John 10:11", "Isaiah 40:11", "Ezekiel 34:11-12"},
	"Genesis 1:1":        {"John 1:1-3", "Hebrews 11:3", "Colossians 1:16"},
	"1 Corinthians 13:4": {"Galatians 5:22", "1 John 4:7-8", "Romans 13:10"},
}

// CrossReferencesFor returns the related verses for a normalized
// "Book Chapter:Verse" reference.
func CrossReferencesFor(reference string) []string {
	return crossReferences[reference]
}
