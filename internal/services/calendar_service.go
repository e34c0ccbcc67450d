package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/venturelink/backend/internal/models"
	"github.com/venturelink/backend/internal/storage"
)

const (
	MeetingsCollection = "meetings"
	SlotsCollection    = "availabilitySlots"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidWindow = errors.New("end time must be after start time")
)

// SlotRequest describes a new availability slot.
// @Description Availability slot request
type SlotRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02" example:"2024-03-15"`
	StartTime string `json:"startTime" validate:"required,datetime=15:04" example:"09:00"`
	EndTime   string `json:"endTime" validate:"required,datetime=15:04" example:"10:00"`
}

// MeetingRequest describes a meeting between an entrepreneur and an investor.
// @Description Meeting request
type MeetingRequest struct {
	Title          string `json:"title" validate:"required,max=200" example:"Seed round intro"`
	Date           string `json:"date" validate:"required,datetime=2006-01-02" example:"2024-03-15"`
	StartTime      string `json:"startTime" validate:"required,datetime=15:04" example:"14:00"`
	EndTime        string `json:"endTime" validate:"required,datetime=15:04" example:"15:00"`
	EntrepreneurID string `json:"entrepreneurId" validate:"required"`
	InvestorID     string `json:"investorId" validate:"required"`
}

type CalendarService struct {
	slots    *storage.Collection[models.AvailabilitySlot]
	meetings *storage.Collection[models.Meeting]
	now      func() time.Time
}

func NewCalendarService(store storage.Store) *CalendarService {
	return &CalendarService{
		slots:    storage.NewCollection[models.AvailabilitySlot](store, SlotsCollection),
		meetings: storage.NewCollection[models.Meeting](store, MeetingsCollection),
		now:      time.Now,
	}
}

func checkWindow(start, end string) error {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return fmt.Errorf("start time: %w", err)
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return fmt.Errorf("end time: %w", err)
	}
	if !e.After(s) {
		return ErrInvalidWindow
	}
	return nil
}

func (s *CalendarService) AddSlot(ctx context.Context, userID string, req SlotRequest) (models.AvailabilitySlot, error) {
	if err := checkWindow(req.StartTime, req.EndTime); err != nil {
		return models.AvailabilitySlot{}, err
	}
	slot := models.AvailabilitySlot{
		ID:        uuid.New().String(),
		UserID:    userID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		CreatedAt: s.now().UTC(),
	}
	if err := s.slots.Put(ctx, slot.ID, slot); err != nil {
		return models.AvailabilitySlot{}, fmt.Errorf("save slot: %w", err)
	}
	log.Printf("[CALENDAR] Slot %s added for user %s on %s", slot.ID, userID, slot.Date)
	return slot, nil
}

func (s *CalendarService) ListSlots(ctx context.Context) ([]models.AvailabilitySlot, error) {
	slots, err := s.slots.All(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Date != slots[j].Date {
			return slots[i].Date < slots[j].Date
		}
		return slots[i].StartTime < slots[j].StartTime
	})
	return slots, nil
}

func (s *CalendarService) SlotsForUser(ctx context.Context, userID string) ([]models.AvailabilitySlot, error) {
	all, err := s.ListSlots(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.AvailabilitySlot, 0, len(all))
	for _, slot := range all {
		if slot.UserID == userID {
			out = append(out, slot)
		}
	}
	return out, nil
}

// DeleteSlot removes a slot owned by userID.
func (s *CalendarService) DeleteSlot(ctx context.Context, userID, id string) error {
	slot, err := s.slots.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && slot.UserID != userID) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return s.slots.Delete(ctx, id)
}

func (s *CalendarService) AddMeeting(ctx context.Context, req MeetingRequest) (models.Meeting, error) {
	if err := checkWindow(req.StartTime, req.EndTime); err != nil {
		return models.Meeting{}, err
	}
	m := models.Meeting{
		ID:             uuid.New().String(),
		Title:          req.Title,
		Date:           req.Date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		EntrepreneurID: req.EntrepreneurID,
		InvestorID:     req.InvestorID,
		Status:         models.MeetingPending,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.meetings.Put(ctx, m.ID, m); err != nil {
		return models.Meeting{}, fmt.Errorf("save meeting: %w", err)
	}
	log.Printf("[CALENDAR] Meeting %s requested between %s and %s", m.ID, m.EntrepreneurID, m.InvestorID)
	return m, nil
}

func (s *CalendarService) ListMeetings(ctx context.Context) ([]models.Meeting, error) {
	meetings, err := s.meetings.All(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(meetings, func(i, j int) bool {
		if meetings[i].Date != meetings[j].Date {
			return meetings[i].Date < meetings[j].Date
		}
		return meetings[i].StartTime < meetings[j].StartTime
	})
	return meetings, nil
}

// MeetingsForUser returns meetings where userID is either participant.
func (s *CalendarService) MeetingsForUser(ctx context.Context, userID string) ([]models.Meeting, error) {
	all, err := s.ListMeetings(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Meeting, 0, len(all))
	for _, m := range all {
		if m.InvestorID == userID || m.EntrepreneurID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

// UpdateMeetingStatus accepts or declines a meeting userID takes part in.
func (s *CalendarService) UpdateMeetingStatus(ctx context.Context, userID, id, status string) (models.Meeting, error) {
	if status != models.MeetingAccepted && status != models.MeetingDeclined {
		return models.Meeting{}, ErrInvalidStatus
	}
	m, err := s.participantMeeting(ctx, userID, id)
	if err != nil {
		return models.Meeting{}, err
	}
	m.Status = status
	if err := s.meetings.Put(ctx, m.ID, m); err != nil {
		return models.Meeting{}, fmt.Errorf("save meeting: %w", err)
	}
	log.Printf("[CALENDAR] Meeting %s %s by %s", m.ID, status, userID)
	return m, nil
}

func (s *CalendarService) DeleteMeeting(ctx context.Context, userID, id string) error {
	if _, err := s.participantMeeting(ctx, userID, id); err != nil {
		return err
	}
	return s.meetings.Delete(ctx, id)
}

func (s *CalendarService) participantMeeting(ctx context.Context, userID, id string) (models.Meeting, error) {
	m, err := s.meetings.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Meeting{}, ErrNotFound
	}
	if err != nil {
		return models.Meeting{}, err
	}
	if m.InvestorID != userID && m.EntrepreneurID != userID {
		return models.Meeting{}, ErrNotFound
	}
	return m, nil
}
