package service

import (
	"bytes"
	"errors"
	"time"

	"happy-badge/internal/badge"
	"happy-badge/internal/config"
	"happy-badge/internal/model"
	"happy-badge/internal/storage"
	"happy-badge/internal/ws"
	"github.com/google/uuid"
)

var ErrEmptyUpload = errors.New("empty image upload")

type BadgeService struct {
	cfg       config.Config
	store     *storage.Store
	hub       *ws.Hub
	verifier  *badge.Verifier
	converter *badge.Converter
}

func NewBadgeService(cfg config.Config, store *storage.Store, hub *ws.Hub) *BadgeService {
	return &BadgeService{
		cfg:       cfg,
		store:     store,
		hub:       hub,
		verifier:  badge.NewVerifier(cfg.Badge),
		converter: badge.NewConverter(cfg.Badge),
	}
}

// Verify checks an uploaded image. A rejected badge is not an error: the
// verdict is recorded and returned either way.
func (s *BadgeService) Verify(source string, imageBytes []byte) (model.BadgeRecord, error) {
	if len(imageBytes) == 0 {
		return model.BadgeRecord{}, ErrEmptyUpload
	}
	rec := newRecord(model.OpVerify, source)

	img, format, err := badge.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		rec.Verdict = model.Verdict{Accepted: false, Reason: err.Error(), Err: err}
	} else {
		rec.Format = format
		rec.Width, rec.Height = img.Bounds().Dx(), img.Bounds().Dy()
		rec.Verdict = s.verifier.VerifyImage(img)
	}

	if err := s.store.AddRecord(rec, s.cfg.RecordLimit); err != nil {
		return model.BadgeRecord{}, err
	}
	evtType := ws.EventBadgeVerified
	if !rec.Verdict.Accepted {
		evtType = ws.EventBadgeRejected
	}
	s.hub.BroadcastEvent(model.Event{Type: evtType, Payload: rec, CreatedAt: time.Now().UnixMilli()})
	return rec, nil
}

// Convert fixes an uploaded image into a badge, saves it under OutputDir and
// returns the record with the encoded PNG.
func (s *BadgeService) Convert(source string, imageBytes []byte, addHappyColor bool) (model.BadgeRecord, []byte, error) {
	if len(imageBytes) == 0 {
		return model.BadgeRecord{}, nil, ErrEmptyUpload
	}
	img, format, err := badge.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return model.BadgeRecord{}, nil, err
	}

	rec := newRecord(model.OpConvert, source)
	rec.Format = format
	rec.Width, rec.Height = img.Bounds().Dx(), img.Bounds().Dy()

	conv := s.converter.Convert(img, addHappyColor)
	if !conv.Verdict.Accepted {
		return model.BadgeRecord{}, nil, conv.Verdict.Err
	}
	var buf bytes.Buffer
	if err := badge.EncodePNG(&buf, conv.Image); err != nil {
		return model.BadgeRecord{}, nil, err
	}
	rec.OutputPath = badge.OutputPath(s.cfg.OutputDir, rec.ID+".png")
	if err := badge.WriteFile(rec.OutputPath, buf.Bytes()); err != nil {
		return model.BadgeRecord{}, nil, err
	}

	happy := conv.Happy
	rec.Happy = &happy
	rec.Verdict = conv.Verdict
	rec.Resized = conv.Resized
	rec.Enhanced = conv.Enhanced
	rec.RepairedPixels = conv.Repaired

	if err := s.store.AddRecord(rec, s.cfg.RecordLimit); err != nil {
		return model.BadgeRecord{}, nil, err
	}
	s.hub.BroadcastEvent(model.Event{Type: ws.EventBadgeConverted, Payload: rec, CreatedAt: time.Now().UnixMilli()})
	return rec, buf.Bytes(), nil
}

func (s *BadgeService) Records() []model.BadgeRecord {
	return s.store.ListRecords()
}

func (s *BadgeService) Record(id string) *model.BadgeRecord {
	return s.store.GetRecord(id)
}

func newRecord(op model.Operation, source string) model.BadgeRecord {
	return model.BadgeRecord{
		ID:        uuid.NewString(),
		Operation: op,
		Source:    source,
		CreatedAt: time.Now().UnixMilli(),
	}
}
