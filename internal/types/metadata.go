package types

// Structured annotations extracted from a model reply. These are stored as
// JSONB on the assistant ChatMessage and returned to the frontend so it can
// render clickable verse links and citation lists.

type DetailedVerse struct {
	Book          string `json:"book"`
	Chapter       int    `json:"chapter"`
	Verse         int    `json:"verse"`
	Version       string `json:"version,omitempty"`
	FullReference string `json:"fullReference"`
	Text          string `json:"text,omitempty"`
	URL           string `json:"url,omitempty"`
}

type SourceType string

const (
	SourceBook           SourceType = "book"
	SourceCommentary     SourceType = "commentary"
	SourceStudyBible     SourceType = "study_bible"
	SourceOnlineResource SourceType = "online_resource"
)

type DetailedSource struct {
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	Type        SourceType `json:"type"`
	URL         string     `json:"url,omitempty"`
	Description string     `json:"description"`
	Relevance   float64    `json:"relevance"`
}

type ResponseMetadata struct {
	VersesCited       []string         `json:"versesCited,omitempty"`
	DetailedVerses    []DetailedVerse  `json:"detailedVerses,omitempty"`
	TheologicalTopics []string         `json:"theologicalTopics,omitempty"`
	CrossReferences   []string         `json:"crossReferences,omitempty"`
	SourcesCited      []string         `json:"sourcesCited,omitempty"`
	DetailedSources   []DetailedSource `json:"detailedSources,omitempty"`
	Confidence        float64          `json:"confidence,omitempty"`
}

type ContentSection struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type FormattedContent struct {
	Text     string           `json:"text"`
	Format   string           `json:"format"`
	Sections []ContentSection `json:"sections,omitempty"`
}
