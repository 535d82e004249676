package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/tangentdigitalagency/mount-sinai-backend/internal/apierr"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/logger"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/repos"
	"github.com/tangentdigitalagency/mount-sinai-backend/internal/types"
)

// recentActivityLimit bounds how much study activity is pulled into a
// single prompt context.
const recentActivityLimit = 20

type ContextBuilder interface {
	BuildUserContext(ctx context.Context, userID uuid.UUID) (*types.UserContext, error)
}

type contextBuilder struct {
	log          *logger.Logger
	users        repos.UserRepo
	reading      repos.ReadingRepo
	study        repos.StudyActivityRepo
	achievements repos.AchievementRepo
	insights     repos.LearningInsightRepo
}

func NewContextBuilder(
	log *logger.Logger,
	users repos.UserRepo,
	reading repos.ReadingRepo,
	study repos.StudyActivityRepo,
	achievements repos.AchievementRepo,
	insights repos.LearningInsightRepo,
) ContextBuilder {
	return &contextBuilder{
		log:          log.With("service", "ContextBuilder"),
		users:        users,
		reading:      reading,
		study:        study,
		achievements: achievements,
		insights:     insights,
	}
}

// BuildUserContext fans out every per-user read concurrently. The profile
// and reading progress reads are load-bearing: a hard failure there aborts
// the build. Everything else degrades to empty with a logged warning so a
// sparse account still gets a usable prompt.
func (cb *contextBuilder) BuildUserContext(ctx context.Context, userID uuid.UUID) (*types.UserContext, error) {
	uc := &types.UserContext{UserID: userID.String()}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		profile, err := cb.users.GetByID(gctx, nil, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierr.NotFound("user %s not found", userID)
			}
			return apierr.Upstream(fmt.Errorf("load user profile: %w", err))
		}
		uc.Profile = profile
		return nil
	})

	g.Go(func() error {
		progress, err := cb.reading.LatestProgress(gctx, nil, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return apierr.Upstream(fmt.Errorf("load reading progress: %w", err))
		}
		uc.ReadingProgress = progress
		uc.CurrentBook = progress.BookID
		uc.CurrentChapter = progress.Chapter
		uc.CurrentVersion = progress.VersionID
		return nil
	})

	g.Go(func() error {
		settings, err := cb.reading.Settings(gctx, nil, userID)
		if err != nil {
			cb.warnDegraded("reading settings", userID, err)
			return nil
		}
		uc.ReadingSettings = settings
		return nil
	})

	g.Go(func() error {
		plan, err := cb.reading.Plan(gctx, nil, userID)
		if err != nil {
			cb.warnDegraded("reading plan", userID, err)
			return nil
		}
		uc.ReadingPlan = plan
		return nil
	})

	g.Go(func() error {
		stats, err := cb.reading.Stats(gctx, nil, userID)
		if err != nil {
			cb.warnDegraded("reading stats", userID, err)
			return nil
		}
		uc.ReadingStats = stats
		return nil
	})

	g.Go(func() error {
		notes, err := cb.study.RecentNotes(gctx, nil, userID, recentActivityLimit)
		if err != nil {
			cb.warnDegraded("notes", userID, err)
			return nil
		}
		uc.Notes = notes
		return nil
	})

	g.Go(func() error {
		highlights, err := cb.study.RecentHighlights(gctx, nil, userID, recentActivityLimit)
		if err != nil {
			cb.warnDegraded("highlights", userID, err)
			return nil
		}
		uc.Highlights = highlights
		return nil
	})

	g.Go(func() error {
		bookmarks, err := cb.study.RecentBookmarks(gctx, nil, userID, recentActivityLimit)
		if err != nil {
			cb.warnDegraded("bookmarks", userID, err)
			return nil
		}
		uc.Bookmarks = bookmarks
		return nil
	})

	g.Go(func() error {
		loved, err := cb.study.RecentLovedVerses(gctx, nil, userID, recentActivityLimit)
		if err != nil {
			cb.warnDegraded("loved verses", userID, err)
			return nil
		}
		uc.LovedVerses = loved
		return nil
	})

	g.Go(func() error {
		unlocked, err := cb.achievements.UnlockedByUser(gctx, nil, userID)
		if err != nil {
			cb.warnDegraded("achievements", userID, err)
			return nil
		}
		uc.Achievements = unlocked
		return nil
	})

	g.Go(func() error {
		profile, err := cb.insights.ListByUser(gctx, nil, userID)
		if err != nil {
			cb.warnDegraded("learning profile", userID, err)
			return nil
		}
		uc.LearningProfile = profile
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if uc.CurrentVersion == "" && uc.ReadingSettings != nil {
		uc.CurrentVersion = uc.ReadingSettings.PreferredVersionAbbr
	}
	return uc, nil
}

func (cb *contextBuilder) warnDegraded(what string, userID uuid.UUID, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return
	}
	cb.log.Warn("Context read degraded", "what", what, "user_id", userID, "error", err)
}
