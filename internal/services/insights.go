package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/tangentdigitalagency/mount-sinai-backend/internal/bible"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/logger"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/repos"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/types"
)

// Fixed confidence per heuristic. These are not computed scores, just a
// rough ranking of how much each signal is trusted.
const (
	questionPatternConfidence = 0.7
	topicInterestConfidence   = 0.8
	studyStyleConfidence      = 0.6
)

// minTurnsForStudyStyle is how many user turns the style heuristic needs
// before it stops abstaining.
const minTurnsForStudyStyle = 3

type InsightExtractor interface {
	Extract(messages []*types.ChatMessage, userID uuid.UUID) []*types.LearningInsight
	ExtractAndSave(ctx context.Context, userID uuid.UUID, messages []*types.ChatMessage)
}

type insightExtractor struct {
	log      *logger.Logger
	insights repos.LearningInsightRepo
}

func NewInsightExtractor(log *logger.Logger, insights repos.LearningInsightRepo) InsightExtractor {
	return &insightExtractor{
		log:      log.With("service", "InsightExtractor"),
		insights: insights,
	}
}

// Extract runs three independent heuristics over the conversation. A
// heuristic with nothing to say contributes no insight.
func (ie *insightExtractor) Extract(messages []*types.ChatMessage, userID uuid.UUID) []*types.LearningInsight {
	var out []*types.LearningInsight

	userTurns := make([]*types.ChatMessage, 0, len(messages))
	for _, m := range messages {
		if m.Role == types.RoleUser {
			userTurns = append(userTurns, m)
		}
	}

	if patterns := questionPatterns(userTurns); len(patterns) > 0 {
		out = append(out, &types.LearningInsight{
			UserID:     userID,
			Category:   types.InsightCategoryQuestionPatterns,
			InsightKey: "common_question_types",
			Value:      strings.Join(patterns, ", "),
			Confidence: questionPatternConfidence,
			Source:     types.InsightSourceAuto,
		})
	}

	if topics := conversationTopics(messages); len(topics) > 0 {
		out = append(out, &types.LearningInsight{
			UserID:     userID,
			Category:   types.InsightCategoryTheological,
			InsightKey: "primary_interests",
			Value:      strings.Join(topics, ", "),
			Confidence: topicInterestConfidence,
			Source:     types.InsightSourceAuto,
		})
	}

	if style := studyStyle(userTurns); style != "" {
		out = append(out, &types.LearningInsight{
			UserID:     userID,
			Category:   types.InsightCategoryStudyStyle,
			InsightKey: "preferred_approach",
			Value:      style,
			Confidence: studyStyleConfidence,
			Source:     types.InsightSourceAuto,
		})
	}

	return out
}

// ExtractAndSave is the post-exchange entry point. It never returns an
// error: insight extraction is an enrichment and its failure must not
// fail the chat turn it runs behind.
func (ie *insightExtractor) ExtractAndSave(ctx context.Context, userID uuid.UUID, messages []*types.ChatMessage) {
	insights := ie.Extract(messages, userID)
	for _, insight := range insights {
		if err := ie.insights.Upsert(ctx, nil, insight); err != nil {
			ie.log.Warn("Failed to save learning insight",
				"user_id", userID,
				"category", insight.Category,
				"insight_key", insight.InsightKey,
				"error", err,
			)
		}
	}
}

// questionPatterns classifies user questions by substring rules.
func questionPatterns(userTurns []*types.ChatMessage) []string {
	var patterns []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			patterns = append(patterns, p)
		}
	}

	for _, turn := range userTurns {
		content := strings.ToLower(turn.Content)
		if strings.Contains(content, "what does") || strings.Contains(content, "what is") {
			add("definitional questions")
		}
		if strings.Contains(content, "why") || strings.Contains(content, "how come") {
			add("explanatory questions")
		}
		if strings.Contains(content, "should") || strings.Contains(content, "ought") {
			add("ethical questions")
		}
		if strings.Contains(content, "compare") || strings.Contains(content, "difference") {
			add("comparative questions")
		}
	}
	return patterns
}

// conversationTopics scans the whole conversation, both roles, against the
// theological vocabulary.
func conversationTopics(messages []*types.ChatMessage) []string {
	var topics []string
	seen := make(map[string]bool)
	for _, m := range messages {
		content := strings.ToLower(m.Content)
		for _, term := range bible.TheologicalTerms {
			if seen[term] {
				continue
			}
			if strings.Contains(content, term) {
				seen[term] = true
				topics = append(topics, term)
			}
		}
	}
	return topics
}

// studyStyle infers verbosity preference from mean user-turn length.
// Returns "" (abstain) below the minimum turn count.
func studyStyle(userTurns []*types.ChatMessage) string {
	if len(userTurns) < minTurnsForStudyStyle {
		return ""
	}
	total := 0
	for _, turn := range userTurns {
		total += len(turn.Content)
	}
	avg := float64(total) / float64(len(userTurns))
	switch {
	case avg > 200:
		return "detailed and comprehensive"
	case avg > 100:
		return "moderate depth"
	default:
		return "concise and focused"
	}
}
