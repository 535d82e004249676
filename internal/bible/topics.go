package bible

// Theological vocabulary grouped thematically. Matching is a
// case-insensitive substring test; any hit contributes the term verbatim.

var coreDoctrineTerms = []string{
	"salvation", "grace", "faith", "justification", "sanctification",
	"trinity", "incarnation", "atonement", "resurrection", "eschatology",
	"baptism", "communion", "church", "ministry", "worship",
	"god", "jesus", "holy spirit", "ascension", "redemption",
	"regeneration", "repentance", "sin", "forgiveness", "righteousness",
	"holiness", "covenant", "law", "gospel", "creation", "fall",
	"original sin", "image of god",
}

var eschatologyTerms = []string{
	"second coming", "rapture", "judgment", "heaven", "hell",
	"new earth", "millennium", "antichrist", "apocalypse", "revelation",
	"tribulation", "kingdom of god",
}

var scriptureTerms = []string{
	"bible", "scripture", "canon", "inspiration", "illumination",
	"hermeneutics", "exegesis", "interpretation", "prophecy", "logos",
	"word of god",
}

var churchAndSacramentTerms = []string{
	"ekklesia", "body of christ", "apostles", "discipleship",
	"ordination", "eucharist", "sacrament", "confirmation", "confession",
	"liturgy", "prayer", "fellowship", "mission", "evangelism",
}

var christologyTerms = []string{
	"christology", "messiah", "son of god", "lord", "redeemer", "savior",
	"hypostatic union", "kenosis", "christ", "immanuel",
}

var pneumatologyTerms = []string{
	"pneumatology", "spiritual gifts", "tongues", "fruit of the spirit",
	"conviction", "baptism of the spirit",
}

var soteriologyTerms = []string{
	"soteriology", "election", "predestination", "propitiation",
	"reconciliation", "new birth",
}

var oldTestamentTerms = []string{
	"law of moses", "tabernacle", "temple", "priesthood", "sacrifice",
	"israel", "abrahamic covenant", "mosaic covenant", "davidic covenant",
	"prophet", "torah", "psalms",
}

var apologeticsTerms = []string{
	"apologetics", "theodicy", "free will", "determinism", "omniscience",
	"omnipotence", "omnibenevolence", "metaphysics", "ontology",
	"epistemology", "existence of god",
}

var traditionTerms = []string{
	"judaism", "islam", "hinduism", "buddhism", "paganism", "gnosticism",
	"heresy", "orthodoxy", "catholicism", "protestantism",
	"eastern orthodoxy", "ecumenism",
}

var historicalTerms = []string{
	"augustine", "aquinas", "calvin", "luther", "reformation",
	"council of nicaea", "creed", "apostles creed", "nicene creed",
	"westminster confession", "scholasticism", "church fathers",
	"patristics",
}

var ethicsTerms = []string{
	"morality", "virtue", "vice", "charity", "humility", "obedience",
	"justice", "mercy", "love", "truth", "righteous living", "beatitudes",
	"commandments", "sermon on the mount",
}

var spiritualPracticeTerms = []string{
	"fasting", "meditation", "scripture reading", "devotion",
	"pilgrimage", "sabbath", "spiritual warfare",
}

var theologyDisciplineTerms = []string{
	"biblical theology", "systematic theology", "practical theology",
	"historical theology", "dogmatics", "ethics",
	"philosophical theology", "comparative theology",
}

// TheologicalTerms is the flattened vocabulary used by both the response
// annotator and the insight extractor.
var TheologicalTerms = flattenTerms(
	coreDoctrineTerms,
	eschatologyTerms,
	scriptureTerms,
	churchAndSacramentTerms,
	christologyTerms,
	pneumatologyTerms,
	soteriologyTerms,
	oldTestamentTerms,
	apologeticsTerms,
	traditionTerms,
	historicalTerms,
	ethicsTerms,
	spiritualPracticeTerms,
	theologyDisciplineTerms,
)

func flattenTerms(groups ...[]string) []string {
	seen := map[string]bool{}
	var out []string
	for _, group := range groups {
		for _, term := range group {
			if seen[term] {
				continue
			}
			seen[term] = true
			out = append(out, term)
		}
	}
	return out
}
