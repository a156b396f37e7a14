package service

import (
	"context"
	"mime/multipart"
	"time"

	"jahayeon_backend/internal/model"
)

// =============================================================================
// MOCK REPOSITORIES
// =============================================================================
//
// The services depend on the repository INTERFACES, so unit tests swap in
// mocks with per-test function fields instead of hitting a real database.
// Shared here because the user, event and party services cross-depend on
// each other's repositories.

type mockUserRepository struct {
	createFn         func(ctx context.Context, user *model.User) error
	getByIDFn        func(ctx context.Context, userID string) (*model.User, error)
	getByEmailFn     func(ctx context.Context, email string) (*model.User, error)
	getByProviderFn  func(ctx context.Context, userID, provider string) (*model.User, error)
	existsByEmailFn  func(ctx context.Context, email string) (bool, error)
	updateNicknameFn func(ctx context.Context, userID, nickname string) error
	awardEventFn     func(ctx context.Context, userID string) error
	awardPartyFn     func(ctx context.Context, userIDs []string) error

	createCalls     []*model.User
	awardEventCalls []string
	awardPartyCalls [][]string
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls = append(m.createCalls, user)
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, userID string) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, userID)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByProvider(ctx context.Context, userID, provider string) (*model.User, error) {
	if m.getByProviderFn != nil {
		return m.getByProviderFn(ctx, userID, provider)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFn != nil {
		return m.existsByEmailFn(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepository) UpdateNickname(ctx context.Context, userID, nickname string) error {
	if m.updateNicknameFn != nil {
		return m.updateNicknameFn(ctx, userID, nickname)
	}
	return nil
}

func (m *mockUserRepository) AwardEventCompletion(ctx context.Context, userID string) error {
	m.awardEventCalls = append(m.awardEventCalls, userID)
	if m.awardEventFn != nil {
		return m.awardEventFn(ctx, userID)
	}
	return nil
}

func (m *mockUserRepository) AwardPartyCompletion(ctx context.Context, userIDs []string) error {
	m.awardPartyCalls = append(m.awardPartyCalls, userIDs)
	if m.awardPartyFn != nil {
		return m.awardPartyFn(ctx, userIDs)
	}
	return nil
}

type mockEventRepository struct {
	createFn            func(ctx context.Context, event *model.Event) error
	getByIDFn           func(ctx context.Context, id int64) (*model.Event, error)
	listOpenFn          func(ctx context.Context, now time.Time) ([]model.Event, error)
	listByParticipantFn func(ctx context.Context, userID string) ([]model.Event, error)
	listCompletedIDsFn  func(ctx context.Context, userID string) ([]int64, error)
	appendStartedFn     func(ctx context.Context, id int64, userID string, now time.Time) (*model.Event, bool, error)
	moveToCompletedFn   func(ctx context.Context, id int64, userID string) (*model.Event, bool, error)
}

func (m *mockEventRepository) Create(ctx context.Context, event *model.Event) error {
	if m.createFn != nil {
		return m.createFn(ctx, event)
	}
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrEventNotFound
}

func (m *mockEventRepository) ListOpen(ctx context.Context, now time.Time) ([]model.Event, error) {
	if m.listOpenFn != nil {
		return m.listOpenFn(ctx, now)
	}
	return nil, nil
}

func (m *mockEventRepository) ListByParticipant(ctx context.Context, userID string) ([]model.Event, error) {
	if m.listByParticipantFn != nil {
		return m.listByParticipantFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockEventRepository) ListCompletedIDs(ctx context.Context, userID string) ([]int64, error) {
	if m.listCompletedIDsFn != nil {
		return m.listCompletedIDsFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockEventRepository) AppendStarted(ctx context.Context, id int64, userID string, now time.Time) (*model.Event, bool, error) {
	if m.appendStartedFn != nil {
		return m.appendStartedFn(ctx, id, userID, now)
	}
	return nil, false, nil
}

func (m *mockEventRepository) MoveToCompleted(ctx context.Context, id int64, userID string) (*model.Event, bool, error) {
	if m.moveToCompletedFn != nil {
		return m.moveToCompletedFn(ctx, id, userID)
	}
	return nil, false, nil
}

type mockPartyRepository struct {
	createFn            func(ctx context.Context, party *model.Party) error
	getByIDFn           func(ctx context.Context, id int64) (*model.Party, error)
	listActiveFn        func(ctx context.Context) ([]model.Party, error)
	listIDsByMemberFn   func(ctx context.Context, userID string) ([]int64, error)
	appendParticipantFn func(ctx context.Context, id int64, userID string) (*model.Party, bool, error)
	startFn             func(ctx context.Context, id int64, organizerID string) (*model.Party, bool, error)
	finishRideFn        func(ctx context.Context, id int64, userID string) (*model.Party, bool, error)
	endFn               func(ctx context.Context, id int64, organizerID string) (*model.Party, bool, error)

	endCalls int
}

func (m *mockPartyRepository) Create(ctx context.Context, party *model.Party) error {
	if m.createFn != nil {
		return m.createFn(ctx, party)
	}
	return nil
}

func (m *mockPartyRepository) GetByID(ctx context.Context, id int64) (*model.Party, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrPartyNotFound
}

func (m *mockPartyRepository) ListActive(ctx context.Context) ([]model.Party, error) {
	if m.listActiveFn != nil {
		return m.listActiveFn(ctx)
	}
	return nil, nil
}

func (m *mockPartyRepository) ListIDsByMember(ctx context.Context, userID string) ([]int64, error) {
	if m.listIDsByMemberFn != nil {
		return m.listIDsByMemberFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockPartyRepository) AppendParticipant(ctx context.Context, id int64, userID string) (*model.Party, bool, error) {
	if m.appendParticipantFn != nil {
		return m.appendParticipantFn(ctx, id, userID)
	}
	return nil, false, nil
}

func (m *mockPartyRepository) Start(ctx context.Context, id int64, organizerID string) (*model.Party, bool, error) {
	if m.startFn != nil {
		return m.startFn(ctx, id, organizerID)
	}
	return nil, false, nil
}

func (m *mockPartyRepository) FinishRide(ctx context.Context, id int64, userID string) (*model.Party, bool, error) {
	if m.finishRideFn != nil {
		return m.finishRideFn(ctx, id, userID)
	}
	return nil, false, nil
}

func (m *mockPartyRepository) End(ctx context.Context, id int64, organizerID string) (*model.Party, bool, error) {
	m.endCalls++
	if m.endFn != nil {
		return m.endFn(ctx, id, organizerID)
	}
	return nil, false, nil
}

type mockImageRepository struct {
	createFn          func(ctx context.Context, image *model.Image) error
	listByEventIDFn   func(ctx context.Context, eventID int64) ([]model.Image, error)
	firstByEventIDsFn func(ctx context.Context, eventIDs []int64) (map[int64]string, error)
	listByPartyIDFn   func(ctx context.Context, partyID int64) ([]model.Image, error)

	createCalls []*model.Image
}

func (m *mockImageRepository) Create(ctx context.Context, image *model.Image) error {
	m.createCalls = append(m.createCalls, image)
	if m.createFn != nil {
		return m.createFn(ctx, image)
	}
	return nil
}

func (m *mockImageRepository) ListByEventID(ctx context.Context, eventID int64) ([]model.Image, error) {
	if m.listByEventIDFn != nil {
		return m.listByEventIDFn(ctx, eventID)
	}
	return nil, nil
}

func (m *mockImageRepository) FirstByEventIDs(ctx context.Context, eventIDs []int64) (map[int64]string, error) {
	if m.firstByEventIDsFn != nil {
		return m.firstByEventIDsFn(ctx, eventIDs)
	}
	return map[int64]string{}, nil
}

func (m *mockImageRepository) ListByPartyID(ctx context.Context, partyID int64) ([]model.Image, error) {
	if m.listByPartyIDFn != nil {
		return m.listByPartyIDFn(ctx, partyID)
	}
	return nil, nil
}

type mockRefreshTokenRepository struct {
	createFn           func(ctx context.Context, token *model.RefreshToken) error
	findByTokenHashFn  func(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	revokeFn           func(ctx context.Context, id string, replacedBy *string) error
	revokeAllForUserFn func(ctx context.Context, userID string) error

	revokeAllCalls []string
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	if m.createFn != nil {
		return m.createFn(ctx, token)
	}
	token.ID = "rt-1"
	token.CreatedAt = time.Now()
	return nil
}

func (m *mockRefreshTokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	if m.findByTokenHashFn != nil {
		return m.findByTokenHashFn(ctx, tokenHash)
	}
	return nil, model.ErrRefreshTokenNotFound
}

func (m *mockRefreshTokenRepository) Revoke(ctx context.Context, id string, replacedBy *string) error {
	if m.revokeFn != nil {
		return m.revokeFn(ctx, id, replacedBy)
	}
	return nil
}

func (m *mockRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID string) error {
	m.revokeAllCalls = append(m.revokeAllCalls, userID)
	if m.revokeAllForUserFn != nil {
		return m.revokeAllForUserFn(ctx, userID)
	}
	return nil
}

func (m *mockRefreshTokenRepository) DeleteExpired(ctx context.Context, olderThan time.Duration) (int64, error) {
	return 0, nil
}

// mockBlacklist is an in-memory stand-in for the Redis token blacklist.
type mockBlacklist struct {
	tokens map[string]bool
}

func newMockBlacklist() *mockBlacklist {
	return &mockBlacklist{tokens: map[string]bool{}}
}

func (m *mockBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	m.tokens[token] = true
	return nil
}

func (m *mockBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	return m.tokens[token], nil
}

// mockUploader satisfies PartyPhotoUploader without object storage.
type mockUploader struct {
	uploadFn    func(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*model.UploadResult, error)
	uploadCalls int
}

func (m *mockUploader) UploadPartyPhoto(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*model.UploadResult, error) {
	m.uploadCalls++
	if m.uploadFn != nil {
		return m.uploadFn(ctx, file, header)
	}
	return &model.UploadResult{URL: "https://cdn.example.com/parties/test.jpg", Key: "parties/test.jpg"}, nil
}
