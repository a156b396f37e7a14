package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"jahayeon_backend/internal/model"
	"jahayeon_backend/internal/repository"
)

// EventService handles business logic for missions: creation with a
// server-generated answer key, the join/complete lifecycle, and list
// reshaping for the client.
type EventService struct {
	repo      repository.EventRepository
	userRepo  repository.UserRepository
	imageRepo repository.ImageRepository
}

func NewEventService(repo repository.EventRepository, userRepo repository.UserRepository, imageRepo repository.ImageRepository) *EventService {
	return &EventService{
		repo:      repo,
		userRepo:  userRepo,
		imageRepo: imageRepo,
	}
}

// generateAnswerKey returns a random 4-digit code, leading zeros included.
func generateAnswerKey() string {
	return fmt.Sprintf("%04d", rand.Intn(10000))
}

// Create stores a new event authored by the caller.
func (s *EventService) Create(ctx context.Context, authorID string, req *model.CreateEventRequest) (*model.EventResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", model.ErrInvalidInput)
	}
	if req.MaxUsers <= 0 {
		return nil, fmt.Errorf("%w: max_users must be positive", model.ErrInvalidInput)
	}
	if req.Expiry.Before(time.Now()) {
		return nil, fmt.Errorf("%w: expiry must be in the future", model.ErrInvalidInput)
	}

	event := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		HostName:    req.HostName,
		Destination: req.Destination,
		AuthorID:    authorID,
		Expiry:      req.Expiry,
		MaxUsers:    req.MaxUsers,
		AnswerKey:   generateAnswerKey(),
		Lat:         req.Lat,
		Lng:         req.Lng,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	resp := model.NewEventResponse(*event)
	return &resp, nil
}

// List returns events that have not expired and still have room, with the
// first attached image as a thumbnail.
func (s *EventService) List(ctx context.Context) ([]model.EventResponse, error) {
	events, err := s.repo.ListOpen(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}

	thumbnails, err := s.imageRepo.FirstByEventIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]model.EventResponse, 0, len(events))
	for _, e := range events {
		resp := model.NewEventResponse(e)
		if url, ok := thumbnails[e.ID]; ok {
			u := url
			resp.ThumbnailURL = &u
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// Detail returns a single event with every attached image URL.
func (s *EventService) Detail(ctx context.Context, id int64) (*model.EventResponse, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	images, err := s.imageRepo.ListByEventID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := model.NewEventResponse(*event)
	resp.ImageURLs = make([]string, 0, len(images))
	for _, img := range images {
		resp.ImageURLs = append(resp.ImageURLs, img.URL)
	}
	return &resp, nil
}

// My returns the events the caller has started or completed.
func (s *EventService) My(ctx context.Context, userID string) ([]model.EventResponse, error) {
	events, err := s.repo.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]model.EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, model.NewEventResponse(e))
	}
	return responses, nil
}

// Join adds the caller to the started list. The append is a conditional
// UPDATE in the repository; the snapshot checks here exist to hand back a
// precise error, and re-run after a rejected guard so a lost race still
// reports its real cause.
func (s *EventService) Join(ctx context.Context, id int64, userID string) (*model.EventResponse, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := diagnoseJoin(event, userID, now); err != nil {
		return nil, err
	}

	updated, ok, err := s.repo.AppendStarted(ctx, id, userID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Guard rejected between snapshot and update: re-read for the cause.
		event, err = s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := diagnoseJoin(event, userID, now); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("failed to join event %d", id)
	}

	resp := model.NewEventResponse(*updated)
	return &resp, nil
}

func diagnoseJoin(event *model.Event, userID string, now time.Time) error {
	switch {
	case event.IsExpired(now):
		return model.ErrEventExpired
	case event.HasStarted(userID) || event.HasCompleted(userID):
		return model.ErrAlreadyJoined
	case len(event.StartedUserIDs) >= event.MaxUsers:
		return model.ErrEventFull
	}
	return nil
}

// Complete validates the submitted answer key and moves the caller from
// started to completed, then grants the level and mission-count reward.
// The award is a separate statement from the list move, so a crash between
// the two can leave a completed user without the reward.
func (s *EventService) Complete(ctx context.Context, id int64, userID, answerKey string) (*model.EventResponse, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if answerKey != event.AnswerKey {
		return nil, model.ErrWrongAnswerKey
	}
	if event.HasCompleted(userID) {
		return nil, model.ErrAlreadyCompleted
	}
	if !event.HasStarted(userID) {
		return nil, model.ErrNotJoined
	}

	updated, ok, err := s.repo.MoveToCompleted(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		event, err = s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if event.HasCompleted(userID) {
			return nil, model.ErrAlreadyCompleted
		}
		return nil, model.ErrNotJoined
	}

	if err := s.userRepo.AwardEventCompletion(ctx, userID); err != nil {
		return nil, err
	}

	resp := model.NewEventResponse(*updated)
	return &resp, nil
}
