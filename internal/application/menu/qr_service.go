package menu

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/qrmenu/backend/internal/domain/identity"
	"github.com/qrmenu/backend/internal/domain/shared"
	"github.com/qrmenu/backend/internal/infrastructure/printing"
	"github.com/qrmenu/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ErrPrintingDisabled is returned by Poster when no poster renderer is configured
var ErrPrintingDisabled = shared.NewDomainError("SERVICE_UNAVAILABLE", "Poster printing is disabled")

// QREncoder encodes text as a PNG data URL
type QREncoder interface {
	DataURL(content string) (string, error)
}

// PosterRenderer renders a printable poster to PDF
type PosterRenderer interface {
	RenderPoster(ctx context.Context, poster printing.Poster) ([]byte, error)
}

// QRService generates the QR code that links to the public menu
type QRService struct {
	encoder    QREncoder
	menuURL    string
	posters    PosterRenderer
	businesses identity.BusinessRepository
	metrics    *telemetry.MenuMetrics
	logger     *zap.Logger
}

// NewQRService creates a QR service for the configured public menu URL.
// posters may be nil, which disables Poster.
func NewQRService(
	encoder QREncoder,
	menuURL string,
	posters PosterRenderer,
	businesses identity.BusinessRepository,
	logger *zap.Logger,
) *QRService {
	return &QRService{
		encoder:    encoder,
		menuURL:    menuURL,
		posters:    posters,
		businesses: businesses,
		logger:     logger,
	}
}

// SetMetrics sets the menu metrics collector
func (s *QRService) SetMetrics(m *telemetry.MenuMetrics) {
	s.metrics = m
}

// Generate encodes the public menu URL
func (s *QRService) Generate(ctx context.Context) (*QRCodeResult, error) {
	var dataURL string
	var err error
	telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels(telemetry.OperationQREncode, ""), func(context.Context) {
		dataURL, err = s.encoder.DataURL(s.menuURL)
	})
	s.metrics.RecordQRGenerated(ctx, err)
	if err != nil {
		s.logger.Error("Failed to generate QR code", zap.String("url", s.menuURL), zap.Error(err))
		return nil, shared.WrapDomainError("QR_GENERATION_FAILED", "Failed to generate QR code", err)
	}
	return &QRCodeResult{MenuURL: s.menuURL, DataURL: dataURL}, nil
}

// PrintingEnabled reports whether posters can be rendered
func (s *QRService) PrintingEnabled() bool {
	return s.posters != nil
}

// Poster renders an A4 poster with the business name and the menu QR code
func (s *QRService) Poster(ctx context.Context, businessID uuid.UUID) (_ *PosterResult, err error) {
	if s.posters == nil {
		return nil, ErrPrintingDisabled
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "qr", "poster",
		telemetry.WithAttribute(telemetry.SpanAttrBusinessID, businessID))
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	business, err := s.businesses.FindByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	code, err := s.Generate(ctx)
	if err != nil {
		return nil, err
	}

	var pdf []byte
	start := time.Now()
	labels := telemetry.OperationLabels(telemetry.OperationPosterRender, businessID.String())
	telemetry.WithProfilingLabels(ctx, labels, func(c context.Context) {
		pdf, err = s.posters.RenderPoster(c, printing.Poster{
			BusinessName:  business.Name,
			MenuURL:       code.MenuURL,
			QRCodeDataURL: code.DataURL,
		})
	})
	s.metrics.RecordPosterRender(ctx, time.Since(start), err)
	if err != nil {
		s.logger.Error("Failed to render QR poster",
			zap.String("business_id", businessID.String()),
			zap.Error(err))
		return nil, shared.WrapDomainError("RENDER_FAILED", "Failed to render poster", err)
	}

	s.logger.Info("QR poster rendered",
		zap.String("business_id", businessID.String()),
		zap.Int("bytes", len(pdf)))

	return &PosterResult{
		Filename: fmt.Sprintf("%s-menu-qr.pdf", business.Slug),
		PDF:      pdf,
	}, nil
}
