package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	latest    *Booking
	latestErr error

	byID map[uuid.UUID]*Booking

	created   []*Booking
	createErr error

	statusUpdates map[uuid.UUID]Status
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byID:          make(map[uuid.UUID]*Booking),
		statusUpdates: make(map[uuid.UUID]Status),
	}
}

func (f *fakeRepository) CreateBooking(ctx context.Context, booking *Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, booking)
	f.byID[booking.ID] = booking
	return nil
}

func (f *fakeRepository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, ok := f.byID[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return booking, nil
}

func (f *fakeRepository) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status Status, cancelledAt *time.Time) error {
	f.statusUpdates[id] = status
	if booking, ok := f.byID[id]; ok {
		booking.Status = status
		if cancelledAt != nil {
			booking.CancelledAt = cancelledAt
		}
	}
	return nil
}

func (f *fakeRepository) GetLatestBooking(ctx context.Context, userID, eventID uuid.UUID, numSeats int) (*Booking, error) {
	return f.latest, f.latestErr
}

func (f *fakeRepository) GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, int64, error) {
	var out []Booking
	for _, b := range f.byID {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepository) GetBookingsByEventID(ctx context.Context, eventID uuid.UUID) ([]Booking, error) {
	return nil, nil
}

type fakeSlotService struct {
	holdOK  bool
	holdMsg string
	holdErr error

	price    float64
	priceErr error

	holds    []string
	releases []string
}

func (f *fakeSlotService) Hold(ctx context.Context, eventID, bookingID, slotName, date string, numSeats int) (bool, string, error) {
	if f.holdErr != nil {
		return false, "", f.holdErr
	}
	if f.holdOK {
		f.holds = append(f.holds, bookingID)
	}
	return f.holdOK, f.holdMsg, nil
}

func (f *fakeSlotService) Release(ctx context.Context, eventID, bookingID string) (bool, string, error) {
	f.releases = append(f.releases, bookingID)
	return true, "released", nil
}

func (f *fakeSlotService) SlotPrice(ctx context.Context, eventID uuid.UUID, date, slotName string) (float64, error) {
	return f.price, f.priceErr
}

func validCreateRequest() CreateBookingRequest {
	return CreateBookingRequest{
		EventID:  uuid.New().String(),
		SlotName: "morning",
		Date:     "2026-09-01",
		NumSeats: 3,
	}
}

func TestCheckExistingBookingGating(t *testing.T) {
	userID := uuid.New()
	eventID := uuid.New()

	tests := []struct {
		name    string
		latest  *Booking
		canBook bool
		reason  string
	}{
		{
			name:    "no previous booking",
			latest:  nil,
			canBook: true,
			reason:  "no existing booking",
		},
		{
			name:    "approved allows more",
			latest:  &Booking{Status: StatusApproved},
			canBook: true,
			reason:  "previous booking approved, can book more tickets",
		},
		{
			name:    "processing blocks",
			latest:  &Booking{Status: StatusProcessing},
			canBook: false,
			reason:  "booking already under processing, wait for approval",
		},
		{
			name:    "failed allows retry",
			latest:  &Booking{Status: StatusFailed},
			canBook: true,
			reason:  "previous booking failed, can create new booking",
		},
		{
			name:    "cancelled allows retry",
			latest:  &Booking{Status: StatusCancelled},
			canBook: true,
			reason:  "previous booking cancelled, can create new booking",
		},
		{
			name:    "unknown status blocks",
			latest:  &Booking{Status: Status("LEGACY")},
			canBook: false,
			reason:  "existing booking with status: LEGACY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			repo.latest = tt.latest
			svc := NewService(repo, &fakeSlotService{})

			canBook, reason, existing, err := svc.CheckExistingBooking(context.Background(), userID, eventID, 3)
			require.NoError(t, err)
			assert.Equal(t, tt.canBook, canBook)
			assert.Equal(t, tt.reason, reason)
			assert.Same(t, tt.latest, existing, "the latest matching booking must be surfaced to the caller")
		})
	}
}

func TestCreateBookingSuccess(t *testing.T) {
	repo := newFakeRepository()
	slotSvc := &fakeSlotService{holdOK: true, holdMsg: "successfully held 3 seats", price: 20.5}
	svc := NewService(repo, slotSvc)

	resp, err := svc.CreateBooking(context.Background(), uuid.New(), validCreateRequest())
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	created := repo.created[0]
	assert.Equal(t, StatusProcessing, created.Status)
	assert.Equal(t, 20.5, created.PricePerSeat)
	assert.Equal(t, 61.5, created.TotalPrice)

	assert.Equal(t, StatusProcessing.String(), resp.Status)
	require.Len(t, slotSvc.holds, 1)
	assert.Equal(t, created.ID.String(), slotSvc.holds[0])
	assert.Empty(t, slotSvc.releases)
}

func TestCreateBookingBlockedWhileProcessing(t *testing.T) {
	repo := newFakeRepository()
	repo.latest = &Booking{Status: StatusProcessing}
	svc := NewService(repo, &fakeSlotService{holdOK: true, price: 10})

	_, err := svc.CreateBooking(context.Background(), uuid.New(), validCreateRequest())
	require.Error(t, err)
	assert.Equal(t, "booking already under processing, wait for approval", err.Error())
	assert.Empty(t, repo.created)
}

func TestCreateBookingHoldDenied(t *testing.T) {
	repo := newFakeRepository()
	slotSvc := &fakeSlotService{holdOK: false, holdMsg: "cannot hold 3 seats, only 1 seats available for holding", price: 10}
	svc := NewService(repo, slotSvc)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), validCreateRequest())
	require.Error(t, err)
	assert.Equal(t, slotSvc.holdMsg, err.Error())
	assert.Empty(t, repo.created)
}

func TestCreateBookingInsertFailureReleasesHold(t *testing.T) {
	repo := newFakeRepository()
	repo.createErr = errors.New("db down")
	slotSvc := &fakeSlotService{holdOK: true, price: 10}
	svc := NewService(repo, slotSvc)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), validCreateRequest())
	require.Error(t, err)

	// The orphaned hold must be released instead of waiting for expiry
	require.Len(t, slotSvc.holds, 1)
	require.Len(t, slotSvc.releases, 1)
	assert.Equal(t, slotSvc.holds[0], slotSvc.releases[0])
}

func TestConfirmBookingApprovesAndReleasesHold(t *testing.T) {
	repo := newFakeRepository()
	slotSvc := &fakeSlotService{}
	svc := NewService(repo, slotSvc)

	booking := &Booking{ID: uuid.New(), UserID: uuid.New(), EventID: uuid.New(), Status: StatusProcessing}
	repo.byID[booking.ID] = booking

	resp, err := svc.ConfirmBooking(context.Background(), booking.ID)
	require.NoError(t, err)

	assert.Equal(t, StatusApproved.String(), resp.Status)
	assert.Equal(t, StatusApproved, repo.statusUpdates[booking.ID])
	require.Len(t, slotSvc.releases, 1)
	assert.Equal(t, booking.ID.String(), slotSvc.releases[0])
}

func TestConfirmBookingRejectsTerminalStates(t *testing.T) {
	for _, status := range []Status{StatusApproved, StatusFailed, StatusCancelled} {
		repo := newFakeRepository()
		svc := NewService(repo, &fakeSlotService{})

		booking := &Booking{ID: uuid.New(), Status: status}
		repo.byID[booking.ID] = booking

		_, err := svc.ConfirmBooking(context.Background(), booking.ID)
		require.Error(t, err, "confirm from %s must fail", status)
		assert.Empty(t, repo.statusUpdates)
	}
}

func TestFailBookingReleasesHold(t *testing.T) {
	repo := newFakeRepository()
	slotSvc := &fakeSlotService{}
	svc := NewService(repo, slotSvc)

	booking := &Booking{ID: uuid.New(), Status: StatusProcessing}
	repo.byID[booking.ID] = booking

	resp, err := svc.FailBooking(context.Background(), booking.ID)
	require.NoError(t, err)

	assert.Equal(t, StatusFailed.String(), resp.Status)
	assert.Len(t, slotSvc.releases, 1)
}

func TestCancelBookingRequiresOwnership(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, &fakeSlotService{})

	owner := uuid.New()
	booking := &Booking{ID: uuid.New(), UserID: owner, Status: StatusProcessing}
	repo.byID[booking.ID] = booking

	err := svc.CancelBooking(context.Background(), booking.ID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, "booking does not belong to user", err.Error())
}

func TestCancelBookingProcessingOnly(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, &fakeSlotService{})

	owner := uuid.New()
	booking := &Booking{ID: uuid.New(), UserID: owner, Status: StatusApproved}
	repo.byID[booking.ID] = booking

	err := svc.CancelBooking(context.Background(), booking.ID, owner)
	require.Error(t, err)
}

func TestCancelBookingSuccess(t *testing.T) {
	repo := newFakeRepository()
	slotSvc := &fakeSlotService{}
	svc := NewService(repo, slotSvc)

	owner := uuid.New()
	booking := &Booking{ID: uuid.New(), UserID: owner, EventID: uuid.New(), Status: StatusProcessing}
	repo.byID[booking.ID] = booking

	require.NoError(t, svc.CancelBooking(context.Background(), booking.ID, owner))
	assert.Equal(t, StatusCancelled, repo.statusUpdates[booking.ID])
	assert.NotNil(t, booking.CancelledAt)
	assert.Len(t, slotSvc.releases, 1)
}
