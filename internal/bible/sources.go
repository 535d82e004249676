package bible

import (
	"sort"
	"strings"

	"github.com/tangentdigitalagency/mount-sinai-backend/internal/types"
)

// topicSources maps theological topics to citable works. Relevance scores
// drive the sort order of the detailed source list.
var topicSources = map[string][]types.DetailedSource{
	"salvation": {
		{Title: "Systematic Theology", Author: "Wayne Grudem", Type: types.SourceBook, Description: "Comprehensive treatment of the doctrine of salvation", Relevance: 0.95},
		{Title: "The Institutes of the Christian Religion", Author: "John Calvin", Type: types.SourceBook, Description: "Classic Reformed treatment of salvation by grace", Relevance: 0.9},
		{Title: "Christian Theology", Author: "Millard Erickson", Type: types.SourceBook, Description: "Evangelical systematic theology with extensive soteriology", Relevance: 0.85},
	},
	"grace": {
		{Title: "What is Reformed Theology?", Author: "R.C. Sproul", Type: types.SourceBook, Description: "Accessible introduction to the doctrines of grace", Relevance: 0.9},
		{Title: "The Grace of God", Author: "Andy Stanley", Type: types.SourceBook, Description: "Popular-level survey of grace through Scripture", Relevance: 0.75},
		{Title: "Systematic Theology", Author: "Louis Berkhof", Type: types.SourceBook, Description: "Reformed systematic theology on common and special grace", Relevance: 0.85},
	},
	"faith": {
		{Title: "The Christian Faith", Author: "Friedrich Schleiermacher", Type: types.SourceBook, Description: "Influential systematic account of Christian faith", Relevance: 0.7},
		{Title: "Systematic Theology", Author: "Wayne Grudem", Type: types.SourceBook, Description: "Treatment of saving faith and its elements", Relevance: 0.9},
		{Title: "Faith Alone", Author: "R.C. Sproul", Type: types.SourceBook, Description: "Defense of justification by faith alone", Relevance: 0.85},
	},
	"trinity": {
		{Title: "Systematic Theology", Author: "Wayne Grudem", Type: types.SourceBook, Description: "Doctrine of the Trinity in evangelical perspective", Relevance: 0.9},
		{Title: "The Trinity", Author: "St. Augustine", Type: types.SourceBook, Description: "Foundational patristic work on the triune God", Relevance: 0.95},
		{Title: "The Forgotten Trinity", Author: "James White", Type: types.SourceBook, Description: "Modern defense and explanation of trinitarian doctrine", Relevance: 0.85},
	},
	"church": {
		{Title: "Systematic Theology", Author: "Wayne Grudem", Type: types.SourceBook, Description: "Ecclesiology and the marks of the church", Relevance: 0.85},
		{Title: "The Church", Author: "Edmund Clowney", Type: types.SourceBook, Description: "Biblical theology of the people of God", Relevance: 0.9},
		{Title: "The Purpose Driven Church", Author: "Rick Warren", Type: types.SourceBook, Description: "Practical ministry perspective on the local church", Relevance: 0.7},
	},
	"justification": {
		{Title: "Faith Alone", Author: "R.C. Sproul", Type: types.SourceBook, Description: "The doctrine of justification by faith", Relevance: 0.9},
		{Title: "The Future of Justification", Author: "John Piper", Type: types.SourceBook, Description: "Response to new perspectives on justification", Relevance: 0.85},
	},
	"resurrection": {
		{Title: "The Resurrection of the Son of God", Author: "N.T. Wright", Type: types.SourceBook, Description: "Historical study of the resurrection", Relevance: 0.95},
		{Title: "The Case for the Resurrection of Jesus", Author: "Gary Habermas", Type: types.SourceBook, Description: "Apologetic treatment of the resurrection evidence", Relevance: 0.85},
	},
	"prayer": {
		{Title: "Prayer", Author: "Timothy Keller", Type: types.SourceBook, Description: "Experiencing awe and intimacy with God", Relevance: 0.9},
		{Title: "A Praying Life", Author: "Paul Miller", Type: types.SourceBook, Description: "Practical guide to a life of prayer", Relevance: 0.8},
	},
}

// generalResources is always appended to topic-specific results.
var generalResources = []types.DetailedSource{
	{Title: "ESV Study Bible", Author: "Crossway", Type: types.SourceStudyBible, Description: "Study notes, maps, and articles across all of Scripture", Relevance: 0.8},
	{Title: "Blue Letter Bible", Author: "Blue Letter Bible Institute", Type: types.SourceOnlineResource, URL: "https://www.blueletterbible.org", Description: "Free online concordance, lexicons, and commentaries", Relevance: 0.75},
	{Title: "Bible Gateway", Author: "Zondervan", Type: types.SourceOnlineResource, URL: "https://www.biblegateway.com", Description: "Searchable Scripture in many translations", Relevance: 0.7},
	{Title: "Matthew Henry Commentary", Author: "Matthew Henry", Type: types.SourceCommentary, Description: "Classic devotional commentary on the whole Bible", Relevance: 0.7},
}

// SourcesForTopics merges topic-mapped sources with the general resource
// set, deduplicates on (title, author), and sorts by descending relevance.
func SourcesForTopics(topics []string) []types.DetailedSource {
	var merged []types.DetailedSource
	seen := map[string]bool{}

	appendUnique := func(sources []types.DetailedSource) {
		for _, src := range sources {
			key := src.Title + "|" + src.Author
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, src)
		}
	}

	for _, topic := range topics {
		appendUnique(topicSources[strings.ToLower(topic)])
	}
	appendUnique(generalResources)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Relevance > merged[j].Relevance
	})
	return merged
}
