package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"jahayeon_backend/internal/model"
	"jahayeon_backend/internal/repository"
)

// PartyPhotoUploader is the slice of MediaService the party lifecycle needs;
// an interface so tests can end parties without object storage.
type PartyPhotoUploader interface {
	UploadPartyPhoto(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*model.UploadResult, error)
}

// PartyService handles the group ride lifecycle: recruiting, the ongoing
// ride, and completion with the framed group photo and rider rewards.
type PartyService struct {
	repo      repository.PartyRepository
	userRepo  repository.UserRepository
	imageRepo repository.ImageRepository
	uploader  PartyPhotoUploader
}

func NewPartyService(repo repository.PartyRepository, userRepo repository.UserRepository, imageRepo repository.ImageRepository, uploader PartyPhotoUploader) *PartyService {
	return &PartyService{
		repo:      repo,
		userRepo:  userRepo,
		imageRepo: imageRepo,
		uploader:  uploader,
	}
}

// Create stores a new party organized by the caller, with the nearest fixed
// parking spot precomputed from the destination coordinates.
func (s *PartyService) Create(ctx context.Context, organizerID string, req *model.CreatePartyRequest) (*model.PartyResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", model.ErrInvalidInput)
	}
	if req.MaxUsers <= 1 {
		return nil, fmt.Errorf("%w: max_users must allow at least one participant", model.ErrInvalidInput)
	}

	spot := model.NearestParkingSpot(req.Lat, req.Lng)

	party := &model.Party{
		Title:       req.Title,
		Description: req.Description,
		OrganizerID: organizerID,
		Destination: req.Destination,
		MeetAt:      req.MeetAt,
		MaxUsers:    req.MaxUsers,
		Lat:         req.Lat,
		Lng:         req.Lng,
		ParkingName: spot.Name,
		ParkingLat:  spot.Lat,
		ParkingLng:  spot.Lng,
		State:       model.PartyRecruiting,
	}

	if err := s.repo.Create(ctx, party); err != nil {
		return nil, err
	}

	resp := model.NewPartyResponse(*party)
	resp.AvailableAction = party.ActionFor(organizerID)
	return &resp, nil
}

// List returns parties that have not completed.
func (s *PartyService) List(ctx context.Context) ([]model.PartyResponse, error) {
	parties, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]model.PartyResponse, 0, len(parties))
	for _, p := range parties {
		responses = append(responses, model.NewPartyResponse(p))
	}
	return responses, nil
}

// Detail returns a party with the viewer's available action and, once
// completed, the framed group photo.
func (s *PartyService) Detail(ctx context.Context, id int64, viewerID string) (*model.PartyResponse, error) {
	party, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := model.NewPartyResponse(*party)
	resp.AvailableAction = party.ActionFor(viewerID)

	if party.State == model.PartyCompleted {
		images, err := s.imageRepo.ListByPartyID(ctx, id)
		if err != nil {
			return nil, err
		}
		if len(images) > 0 {
			url := images[0].URL
			resp.PhotoURL = &url
		}
	}

	return &resp, nil
}

// Join adds the caller as a participant while the party is recruiting.
func (s *PartyService) Join(ctx context.Context, id int64, userID string) (*model.PartyResponse, error) {
	party, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := diagnosePartyJoin(party, userID); err != nil {
		return nil, err
	}

	updated, ok, err := s.repo.AppendParticipant(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		party, err = s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := diagnosePartyJoin(party, userID); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("failed to join party %d", id)
	}

	resp := model.NewPartyResponse(*updated)
	resp.AvailableAction = updated.ActionFor(userID)
	return &resp, nil
}

func diagnosePartyJoin(party *model.Party, userID string) error {
	switch {
	case party.State != model.PartyRecruiting:
		return model.ErrPartyNotRecruiting
	case party.IsMember(userID):
		return model.ErrAlreadyJoined
	case party.IsFull():
		return model.ErrPartyFull
	}
	return nil
}

// Start moves the party to ONGOING. Organizer-only; everyone recruited so
// far becomes "on my way".
func (s *PartyService) Start(ctx context.Context, id int64, userID string) (*model.PartyResponse, error) {
	party, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if party.OrganizerID != userID {
		return nil, model.ErrNotOrganizer
	}
	if party.State != model.PartyRecruiting {
		return nil, model.ErrPartyNotRecruiting
	}

	updated, ok, err := s.repo.Start(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrPartyNotRecruiting
	}

	resp := model.NewPartyResponse(*updated)
	resp.AvailableAction = updated.ActionFor(userID)
	return &resp, nil
}

// FinishRide moves the caller from "on my way" to finished.
func (s *PartyService) FinishRide(ctx context.Context, id int64, userID string) (*model.PartyResponse, error) {
	party, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if party.State != model.PartyOngoing {
		return nil, model.ErrPartyNotOngoing
	}
	if !party.IsOnTheWay(userID) {
		return nil, model.ErrNotOnTheWay
	}

	updated, ok, err := s.repo.FinishRide(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrNotOnTheWay
	}

	resp := model.NewPartyResponse(*updated)
	resp.AvailableAction = updated.ActionFor(userID)
	return &resp, nil
}

// End completes the party. Organizer-only, requires ONGOING and a group
// photo: the photo is framed and stored first so a failed upload leaves the
// party running, then the state flips and every rider is rewarded.
func (s *PartyService) End(ctx context.Context, id int64, userID string, photo multipart.File, header *multipart.FileHeader) (*model.PartyResponse, error) {
	party, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if party.OrganizerID != userID {
		return nil, model.ErrNotOrganizer
	}
	if party.State != model.PartyOngoing {
		return nil, model.ErrPartyNotOngoing
	}

	upload, err := s.uploader.UploadPartyPhoto(ctx, photo, header)
	if err != nil {
		return nil, err
	}

	updated, ok, err := s.repo.End(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrPartyNotOngoing
	}

	img := &model.Image{PartyID: &updated.ID, URL: upload.URL}
	if err := s.imageRepo.Create(ctx, img); err != nil {
		return nil, err
	}

	if err := s.userRepo.AwardPartyCompletion(ctx, updated.Riders()); err != nil {
		return nil, err
	}

	resp := model.NewPartyResponse(*updated)
	resp.AvailableAction = updated.ActionFor(userID)
	resp.PhotoURL = &upload.URL
	return &resp, nil
}
