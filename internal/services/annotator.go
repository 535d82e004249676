package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tangentdigitalagency/mount-sinai-backend/internal/bible"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/logger"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/types"
)

// Citation pattern families, scanned in priority order. The bracketed form
// is what the system prompt mandates; the others catch replies where the
// model dropped the brackets. The ranged form records only the start verse.
var (
	bracketedVersePattern = regexp.MustCompile(`\[([A-Za-z\s]+)\s+(\d+):(\d+)\]`)
	boldVersePattern      = regexp.MustCompile(`\*\*([A-Za-z\s]+)\s+(\d+):(\d+)\*\*`)
	bareVersePattern      = regexp.MustCompile(`([A-Za-z\s]+)\s+(\d+):(\d+)`)
	rangedVersePattern    = regexp.MustCompile(`([A-Za-z\s]+)\s+(\d+):(\d+)-(\d+)`)
)

var versePatterns = []*regexp.Regexp{
	bracketedVersePattern,
	boldVersePattern,
	bareVersePattern,
	rangedVersePattern,
}

// defaultConfidence is a placeholder, not a computed uncertainty estimate.
const defaultConfidence = 0.8

type Annotator interface {
	Annotate(rawText string) (*types.ResponseMetadata, *types.FormattedContent)
}

type annotator struct {
	log *logger.Logger
}

func NewAnnotator(log *logger.Logger) Annotator {
	return &annotator{log: log.With("service", "Annotator")}
}

func (a *annotator) Annotate(rawText string) (*types.ResponseMetadata, *types.FormattedContent) {
	verses := extractCitations(rawText)

	versesCited := make([]string, 0, len(verses))
	for _, v := range verses {
		versesCited = append(versesCited, v.FullReference)
	}

	topics := extractTheologicalTopics(rawText)
	crossRefs := collectCrossReferences(versesCited)
	detailedSources := bible.SourcesForTopics(topics)

	sourcesCited := make([]string, 0, len(detailedSources))
	for _, s := range detailedSources {
		sourcesCited = append(sourcesCited, fmt.Sprintf("%s by %s", s.Title, s.Author))
	}

	metadata := &types.ResponseMetadata{
		VersesCited:       versesCited,
		DetailedVerses:    verses,
		TheologicalTopics: topics,
		CrossReferences:   crossRefs,
		SourcesCited:      sourcesCited,
		DetailedSources:   detailedSources,
		Confidence:        defaultConfidence,
	}

	return metadata, formatResponse(rawText)
}

// extractCitations scans all pattern families and de-duplicates on
// (book, chapter, verse), keeping first-seen order. A match only counts
// when the book name is canonical and chapter/verse are positive, which
// rejects ratios and dates shaped like references.
func extractCitations(text string) []types.DetailedVerse {
	var verses []types.DetailedVerse
	seen := make(map[string]bool)

	for _, pattern := range versePatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			book := strings.TrimSpace(match[1])
			chapter, chErr := strconv.Atoi(match[2])
			verse, vErr := strconv.Atoi(match[3])
			if chErr != nil || vErr != nil {
				continue
			}
			if !bible.IsCanonicalBook(book) || chapter <= 0 || verse <= 0 {
				continue
			}

			key := fmt.Sprintf("%s|%d|%d", book, chapter, verse)
			if seen[key] {
				continue
			}
			seen[key] = true

			verses = append(verses, types.DetailedVerse{
				Book:          book,
				Chapter:       chapter,
				Verse:         verse,
				Version:       bible.DefaultTranslation,
				FullReference: fmt.Sprintf("%s %d:%d", book, chapter, verse),
				URL:           bible.PassageURL(book, chapter, verse, bible.DefaultTranslation),
			})
		}
	}

	return verses
}

func extractTheologicalTopics(text string) []string {
	lower := strings.ToLower(text)
	var topics []string
	for _, term := range bible.TheologicalTerms {
		if strings.Contains(lower, term) {
			topics = append(topics, term)
		}
	}
	return topics
}

func collectCrossReferences(versesCited []string) []string {
	var refs []string
	seen := make(map[string]bool)
	for _, cited := range versesCited {
		for _, ref := range bible.CrossReferencesFor(cited) {
			if seen[ref] {
				continue
			}
			seen[ref] = true
			refs = append(refs, ref)
		}
	}
	return refs
}

// formatResponse wraps a raw markdown reply with a section breakdown so the
// frontend can render headings without re-parsing the text.
func formatResponse(rawText string) *types.FormattedContent {
	return &types.FormattedContent{
		Text:     rawText,
		Format:   "markdown",
		Sections: parseSections(rawText),
	}
}

func parseSections(text string) []types.ContentSection {
	var sections []types.ContentSection
	var current *types.ContentSection

	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "#"):
			if current != nil {
				sections = append(sections, *current)
			}
			current = &types.ContentSection{Type: "heading", Content: line}
		case current != nil && strings.TrimSpace(line) != "":
			if current.Type == "heading" {
				current.Type = "section"
				current.Content = line
			} else {
				current.Content += "\n" + line
			}
		}
	}
	if current != nil {
		sections = append(sections, *current)
	}
	return sections
}
