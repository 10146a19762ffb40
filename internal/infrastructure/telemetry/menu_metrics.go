package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics collector is built without a meter.
var ErrMeterNil = errors.New("telemetry: meter is nil")

// Image kinds used as the image.kind attribute.
const (
	ImageKindCategory = "category"
	ImageKindMenuItem = "menu_item"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
)

// MenuMetrics records menu traffic and media activity.
// All methods are safe to call on a nil receiver so services can run without metrics.
type MenuMetrics struct {
	menuViews      *Counter
	imageUploads   *Counter
	imageSize      *Histogram
	imageDeletes   *Counter
	qrGenerated    *Counter
	posterDuration *Histogram
}

// NewMenuMetrics creates the menu instruments on meter.
func NewMenuMetrics(meter metric.Meter) (*MenuMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &MenuMetrics{}
	var err error

	if m.menuViews, err = NewCounter(meter,
		"qrmenu_public_menu_views_total",
		"Total number of public menu requests served",
		"{views}",
	); err != nil {
		return nil, err
	}

	if m.imageUploads, err = NewCounter(meter,
		"qrmenu_image_uploads_total",
		"Total number of image uploads by kind and result",
		"{uploads}",
	); err != nil {
		return nil, err
	}

	if m.imageSize, err = NewHistogram(meter, HistogramOpts{
		Name:        "qrmenu_image_upload_size_bytes",
		Description: "Size distribution of stored images",
		Unit:        "By",
		Boundaries:  ImageSizeBuckets,
	}); err != nil {
		return nil, err
	}

	if m.imageDeletes, err = NewCounter(meter,
		"qrmenu_image_deletes_total",
		"Total number of stored images removed by kind and result",
		"{deletes}",
	); err != nil {
		return nil, err
	}

	if m.qrGenerated, err = NewCounter(meter,
		"qrmenu_qr_generated_total",
		"Total number of QR code generations by result",
		"{codes}",
	); err != nil {
		return nil, err
	}

	if m.posterDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "qrmenu_poster_render_duration_seconds",
		Description: "Time spent rendering printable QR posters",
		Unit:        "s",
		Boundaries:  RenderDurationBuckets,
	}); err != nil {
		return nil, err
	}

	return m, nil
}

// RecordMenuView counts a served public menu.
func (m *MenuMetrics) RecordMenuView(ctx context.Context, businessID uuid.UUID) {
	if m == nil {
		return
	}
	m.menuViews.Inc(ctx, AttrBusinessID.String(businessID.String()))
}

// RecordImageUpload counts an upload attempt and, on success, its size.
func (m *MenuMetrics) RecordImageUpload(ctx context.Context, kind string, size int64, err error) {
	if m == nil {
		return
	}
	m.imageUploads.Inc(ctx, AttrImageKind.String(kind), resultAttr(err))
	if err == nil && size > 0 {
		m.imageSize.Record(ctx, float64(size), AttrImageKind.String(kind))
	}
}

// RecordImageDelete counts a stored image removal.
func (m *MenuMetrics) RecordImageDelete(ctx context.Context, kind string, err error) {
	if m == nil {
		return
	}
	m.imageDeletes.Inc(ctx, AttrImageKind.String(kind), resultAttr(err))
}

// RecordQRGenerated counts a QR code generation.
func (m *MenuMetrics) RecordQRGenerated(ctx context.Context, err error) {
	if m == nil {
		return
	}
	m.qrGenerated.Inc(ctx, resultAttr(err))
}

// RecordPosterRender records how long a poster took to render.
func (m *MenuMetrics) RecordPosterRender(ctx context.Context, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.posterDuration.RecordDuration(ctx, d, resultAttr(err))
}

func resultAttr(err error) attribute.KeyValue {
	if err != nil {
		return AttrResult.String(resultFailure)
	}
	return AttrResult.String(resultSuccess)
}
