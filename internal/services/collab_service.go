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

const CollaborationCollection = "collaborationRequests"

// CollabRequest is sent by an investor to an entrepreneur.
// @Description Collaboration request
type CollabRequest struct {
	EntrepreneurID string `json:"entrepreneurId" validate:"required"`
	Message        string `json:"message" validate:"required,max=2000" example:"I'd like to learn more about your startup."`
}

type CollabService struct {
	requests *storage.Collection[models.CollaborationRequest]
	now      func() time.Time
}

func NewCollabService(store storage.Store) *CollabService {
	return &CollabService{
		requests: storage.NewCollection[models.CollaborationRequest](store, CollaborationCollection),
		now:      time.Now,
	}
}

func (s *CollabService) Create(ctx context.Context, investorID string, req CollabRequest) (models.CollaborationRequest, error) {
	cr := models.CollaborationRequest{
		ID:             uuid.New().String(),
		InvestorID:     investorID,
		EntrepreneurID: req.EntrepreneurID,
		Message:        req.Message,
		Status:         models.RequestPending,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.requests.Put(ctx, cr.ID, cr); err != nil {
		return models.CollaborationRequest{}, fmt.Errorf("save request: %w", err)
	}
	log.Printf("[COLLAB] %s requested collaboration with %s", investorID, req.EntrepreneurID)
	return cr, nil
}

func (s *CollabService) ForEntrepreneur(ctx context.Context, entrepreneurID string) ([]models.CollaborationRequest, error) {
	return s.filter(ctx, func(cr models.CollaborationRequest) bool {
		return cr.EntrepreneurID == entrepreneurID
	})
}

func (s *CollabService) ForInvestor(ctx context.Context, investorID string) ([]models.CollaborationRequest, error) {
	return s.filter(ctx, func(cr models.CollaborationRequest) bool {
		return cr.InvestorID == investorID
	})
}

func (s *CollabService) Pending(ctx context.Context, entrepreneurID string) ([]models.CollaborationRequest, error) {
	return s.filter(ctx, func(cr models.CollaborationRequest) bool {
		return cr.EntrepreneurID == entrepreneurID && cr.Status == models.RequestPending
	})
}

// UpdateStatus lets the addressed entrepreneur accept or reject a request.
func (s *CollabService) UpdateStatus(ctx context.Context, entrepreneurID, id, status string) (models.CollaborationRequest, error) {
	if status != models.RequestAccepted && status != models.RequestRejected {
		return models.CollaborationRequest{}, ErrInvalidStatus
	}
	cr, err := s.requests.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && cr.EntrepreneurID != entrepreneurID) {
		return models.CollaborationRequest{}, ErrNotFound
	}
	if err != nil {
		return models.CollaborationRequest{}, err
	}

	cr.Status = status
	if err := s.requests.Put(ctx, cr.ID, cr); err != nil {
		return models.CollaborationRequest{}, fmt.Errorf("save request: %w", err)
	}
	log.Printf("[COLLAB] Request %s %s", cr.ID, status)
	return cr, nil
}

// filter returns matching requests, newest first.
func (s *CollabService) filter(ctx context.Context, keep func(models.CollaborationRequest) bool) ([]models.CollaborationRequest, error) {
	all, err := s.requests.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.CollaborationRequest, 0, len(all))
	for _, cr := range all {
		if keep(cr) {
			out = append(out, cr)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
