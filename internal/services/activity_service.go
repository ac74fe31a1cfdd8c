package services

import (
	"context"

	"donerci/internal/apperr"
	"donerci/internal/events"
	"donerci/internal/models"
	"donerci/internal/repository"

	"go.uber.org/zap"
)

type ActivityService interface {
	// Record stores an activity entry and forwards it to the publisher.
	// Publishing failures are logged, never returned.
	Record(ctx context.Context, activityType models.ActivityType, actor, details string) (*models.Activity, error)
	List(ctx context.Context, limit int) ([]models.Activity, error)
}

type activityService struct {
	activityRepo repository.ActivityRepository
	publisher    events.Publisher
	logger       *zap.Logger
}

func NewActivityService(activityRepo repository.ActivityRepository, publisher events.Publisher, logger *zap.Logger) ActivityService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &activityService{activityRepo: activityRepo, publisher: publisher, logger: logger}
}

func (s *activityService) Record(ctx context.Context, activityType models.ActivityType, actor, details string) (*models.Activity, error) {
	if actor == "" {
		actor = "system"
	}
	activity := &models.Activity{
		Type:    string(activityType),
		Actor:   actor,
		Details: details,
	}
	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return nil, apperr.Persistence("record activity", err)
	}

	if err := s.publisher.PublishActivity(ctx, activity); err != nil {
		s.logger.Warn("activity stored but not published",
			zap.Uint("activity_id", activity.ID), zap.String("type", activity.Type), zap.Error(err))
	}
	return activity, nil
}

func (s *activityService) List(ctx context.Context, limit int) ([]models.Activity, error) {
	activities, err := s.activityRepo.Recent(ctx, limit)
	if err != nil {
		return nil, apperr.Persistence("list activities", err)
	}
	return activities, nil
}
