package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventeditor/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewEventService returns the API server's EventService.
func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) CreateEvent(ctx context.Context, draft domain.Draft) (*domain.Event, error) {
	if errs := domain.ValidateDraft(draft); errs != nil {
		return nil, errs
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	draft.EventDate = strings.TrimSpace(draft.EventDate)
	event := domain.NewEvent(0, draft)
	if err := s.eventRepo.Create(ctx, &event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return &event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
