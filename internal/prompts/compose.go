package prompts

import (
	"fmt"
	"strings"

	"github.com/tangentdigitalagency/mount-sinai-backend/internal/types"
)

const (
	maxListedItems  = 5
	maxNoteExcerpt  = 100
	maxAchievements = 3
)

// Compose builds the final system prompt for a chat turn: base persona,
// mode overlay, then the rendered user context. It is pure and
// deterministic - section order is fixed and no clock or randomness is
// consulted.
func Compose(mode types.SessionMode, userContext *types.UserContext) string {
	var b strings.Builder
	b.WriteString(BasePrompt)
	b.WriteString("\n\n")
	b.WriteString(ForMode(mode).SystemPrompt)
	b.WriteString("\n\n## Current User Context\n")
	b.WriteString(RenderContext(userContext))
	b.WriteString("\n## Instructions\nUse the user's context to provide personalized, relevant responses. Reference their notes, highlights, and reading progress when appropriate.")
	return b.String()
}

// RenderContext renders the aggregate into the natural-language block
// embedded in the system prompt. Sections render in a fixed order and
// empty categories are skipped entirely.
func RenderContext(uc *types.UserContext) string {
	if uc == nil {
		return ""
	}
	var b strings.Builder
	firstName := "The user"

	if uc.Profile != nil {
		firstName = uc.Profile.FirstName
		fmt.Fprintf(&b, "### Personal Context\nYou are speaking with %s %s (@%s).\n\n",
			uc.Profile.FirstName, uc.Profile.LastName, uc.Profile.Username)
	}

	b.WriteString("### Current Reading\n")
	book := uc.CurrentBook
	if book == "" {
		book = "Not specified"
	}
	version := uc.CurrentVersion
	if version == "" {
		version = "Not specified"
	}
	if uc.CurrentChapter > 0 {
		fmt.Fprintf(&b, "%s is currently reading %s %d in the %s version.\n\n", firstName, book, uc.CurrentChapter, version)
	} else {
		fmt.Fprintf(&b, "%s is currently reading %s in the %s version.\n\n", firstName, book, version)
	}

	if plan := uc.ReadingPlan; plan != nil && plan.Enabled {
		fmt.Fprintf(&b, "### Reading Plan\n%s is on day %d of a %d-day reading plan and has completed %d days so far.\n\n",
			firstName, plan.CurrentDay, plan.PlanDuration, plan.CompletedDays)
	}

	if stats := uc.ReadingStats; stats != nil {
		b.WriteString("### Reading Progress\n")
		fmt.Fprintf(&b, "- Current level: %d\n", stats.CurrentLevel)
		fmt.Fprintf(&b, "- Reading streak: %d days\n", stats.CurrentStreak)
		fmt.Fprintf(&b, "- Total chapters read: %d\n", stats.TotalChaptersRead)
		fmt.Fprintf(&b, "- Achievements unlocked: %d\n\n", stats.AchievementsUnlocked)
	}

	if settings := uc.ReadingSettings; settings != nil {
		b.WriteString("### Study Preferences\n")
		preferred := settings.PreferredVersionAbbr
		if preferred == "" {
			preferred = "Not specified"
		}
		fmt.Fprintf(&b, "- Preferred Bible version: %s\n", preferred)
		audio := "Manual control"
		if settings.AutoPlayAudio {
			audio = "Auto-play enabled"
		}
		fmt.Fprintf(&b, "- Audio settings: %s\n", audio)
		fmt.Fprintf(&b, "- Display: %s font, %s mode\n\n", settings.FontSize, settings.ReadingMode)
	}

	if len(uc.Notes) > 0 {
		fmt.Fprintf(&b, "### Recent Notes (%d):\n", len(uc.Notes))
		for _, note := range head(uc.Notes) {
			excerpt := "No content"
			if len(note.Content) > 0 {
				excerpt = truncate(string(note.Content), maxNoteExcerpt)
			}
			fmt.Fprintf(&b, "- %s: %s\n", note.Title, excerpt)
		}
		b.WriteString("\n")
	}

	if len(uc.Highlights) > 0 {
		fmt.Fprintf(&b, "### Recent Highlights (%d):\n", len(uc.Highlights))
		for _, h := range head(uc.Highlights) {
			fmt.Fprintf(&b, "- %s %d:%d (%s)\n", h.BookID, h.Chapter, h.Verse, h.Color)
		}
		b.WriteString("\n")
	}

	if len(uc.Bookmarks) > 0 {
		fmt.Fprintf(&b, "### Recent Bookmarks (%d):\n", len(uc.Bookmarks))
		for _, bm := range head(uc.Bookmarks) {
			fmt.Fprintf(&b, "- %s %d:%d\n", bm.BookName, bm.Chapter, bm.Verse)
		}
		b.WriteString("\n")
	}

	if len(uc.LovedVerses) > 0 {
		fmt.Fprintf(&b, "### Loved Verses (%d):\n", len(uc.LovedVerses))
		for _, v := range head(uc.LovedVerses) {
			fmt.Fprintf(&b, "- %s %d:%d\n", v.BookName, v.Chapter, v.Verse)
		}
		b.WriteString("\n")
	}

	if len(uc.LearningProfile) > 0 {
		b.WriteString("### AI Learning Profile:\n")
		for _, insight := range uc.LearningProfile {
			fmt.Fprintf(&b, "- %s: %s = %s (confidence: %.2f)\n",
				insight.Category, insight.InsightKey, insight.Value, insight.Confidence)
		}
		b.WriteString("\n")
	}

	if len(uc.Achievements) > 0 {
		fmt.Fprintf(&b, "### Recent Achievements (%d):\n", len(uc.Achievements))
		listed := uc.Achievements
		if len(listed) > maxAchievements {
			listed = listed[:maxAchievements]
		}
		for _, ua := range listed {
			name := "Achievement"
			if ua.Achievement != nil {
				name = ua.Achievement.Name
			}
			fmt.Fprintf(&b, "- %s\n", name)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// GreetingPrompt builds the user-turn prompt for the auto-generated
// session greeting.
func GreetingPrompt(mode types.SessionMode, book string, chapter int, version string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a personalized greeting for a %s AI chat session.", mode)
	if book != "" && chapter > 0 {
		fmt.Fprintf(&b, " The user is currently reading %s chapter %d", book, chapter)
		if version != "" {
			fmt.Fprintf(&b, " in the %s version", version)
		}
		b.WriteString(". Ask if they need help with this specific reading.")
	} else {
		b.WriteString(" Welcome them and ask how you can help with their biblical study.")
	}
	return b.String()
}

func head[T any](items []T) []T {
	if len(items) > maxListedItems {
		return items[:maxListedItems]
	}
	return items
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
