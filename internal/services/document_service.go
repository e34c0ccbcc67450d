package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"github.com/venturelink/backend/internal/models"
	"github.com/venturelink/backend/internal/storage"
)

const (
	DocumentsCollection = "documents"
	UnknownSize         = "Unknown"
)

var ErrMissingDocumentFields = errors.New("document name and type are required")

// DocumentRequest describes an uploaded document's metadata.
// @Description Document metadata request
type DocumentRequest struct {
	Name string `json:"name" validate:"required,max=255" example:"Pitch Deck 2024.pdf"`
	Type string `json:"type" validate:"required,max=50" example:"PDF"`
	Size string `json:"size,omitempty" example:"2.4 MB"`
	URL  string `json:"url,omitempty" validate:"omitempty,url"`
}

// ShareResult is returned when a document is shared.
// @Description Share link and QR code
type ShareResult struct {
	Document models.Document `json:"document"`
	ShareURL string          `json:"shareUrl"`
	QRImage  string          `json:"qrImage"` // base64 PNG
}

type DocumentService struct {
	docs         *storage.Collection[models.Document]
	shareBaseURL string
	now          func() time.Time
}

func NewDocumentService(store storage.Store, shareBaseURL string) *DocumentService {
	return &DocumentService{
		docs:         storage.NewCollection[models.Document](store, DocumentsCollection),
		shareBaseURL: strings.TrimRight(shareBaseURL, "/"),
		now:          time.Now,
	}
}

func (s *DocumentService) Add(ctx context.Context, ownerID string, req DocumentRequest) (models.Document, error) {
	name, kind := strings.TrimSpace(req.Name), strings.TrimSpace(req.Type)
	if name == "" || kind == "" {
		return models.Document{}, ErrMissingDocumentFields
	}
	size := strings.TrimSpace(req.Size)
	if size == "" {
		size = UnknownSize
	}

	doc := models.Document{
		ID:           uuid.New().String(),
		Name:         name,
		Type:         kind,
		Size:         size,
		LastModified: s.now().UTC(),
		URL:          req.URL,
		OwnerID:      ownerID,
	}
	if err := s.docs.Put(ctx, doc.ID, doc); err != nil {
		return models.Document{}, fmt.Errorf("save document: %w", err)
	}
	log.Printf("[DOCUMENTS] %s added %q (%s, %s)", ownerID, doc.Name, doc.Type, doc.Size)
	return doc, nil
}

// List returns every document, most recently modified first.
func (s *DocumentService) List(ctx context.Context) ([]models.Document, error) {
	docs, err := s.docs.All(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].LastModified.After(docs[j].LastModified)
	})
	return docs, nil
}

func (s *DocumentService) ListForOwner(ctx context.Context, ownerID string) ([]models.Document, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Document, 0, len(all))
	for _, d := range all {
		if d.OwnerID == ownerID {
			out = append(out, d)
		}
	}
	return out, nil
}

// GetShared returns a document only if it has been shared.
func (s *DocumentService) GetShared(ctx context.Context, id string) (models.Document, error) {
	doc, err := s.docs.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && !doc.Shared) {
		return models.Document{}, ErrNotFound
	}
	return doc, err
}

func (s *DocumentService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.owned(ctx, ownerID, id); err != nil {
		return err
	}
	log.Printf("[DOCUMENTS] %s deleted %s", ownerID, id)
	return s.docs.Delete(ctx, id)
}

// Share marks the document shared and returns its public link with a QR
// code encoding that link.
func (s *DocumentService) Share(ctx context.Context, ownerID, id string) (ShareResult, error) {
	doc, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return ShareResult{}, err
	}

	doc.Shared = true
	doc.LastModified = s.now().UTC()
	shareURL := fmt.Sprintf("%s/%s", s.shareBaseURL, doc.ID)
	if doc.URL == "" {
		doc.URL = shareURL
	}

	qrImage, err := qrPNG(shareURL)
	if err != nil {
		return ShareResult{}, fmt.Errorf("generate qr code: %w", err)
	}
	if err := s.docs.Put(ctx, doc.ID, doc); err != nil {
		return ShareResult{}, fmt.Errorf("save document: %w", err)
	}

	log.Printf("[DOCUMENTS] %s shared %s", ownerID, doc.ID)
	return ShareResult{Document: doc, ShareURL: shareURL, QRImage: qrImage}, nil
}

func (s *DocumentService) owned(ctx context.Context, ownerID, id string) (models.Document, error) {
	doc, err := s.docs.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Document{}, ErrNotFound
	}
	if err != nil {
		return models.Document{}, err
	}
	if doc.OwnerID != ownerID {
		return models.Document{}, ErrNotFound
	}
	return doc, nil
}

func qrPNG(content string) (string, error) {
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(256)); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
