package types

// UserContext is the per-request aggregate assembled by the context
// builder. It exists only long enough to render a prompt and capture
// session snapshots; it is never persisted as such.
type UserContext struct {
	UserID          string
	Profile         *User
	CurrentBook     string
	CurrentChapter  int
	CurrentVersion  string
	ReadingProgress *ReadingProgress
	ReadingSettings *ReadingSettings
	ReadingPlan     *ReadingPlan
	ReadingStats    *ReadingStats
	Notes           []*Note
	Highlights      []*Highlight
	Bookmarks       []*Bookmark
	LovedVerses     []*VerseLove
	Achievements    []*UserAchievement
	LearningProfile []*LearningInsight
}
