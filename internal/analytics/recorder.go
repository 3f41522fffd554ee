package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/linkmetry/linkmetry/internal/geo"
	"github.com/linkmetry/linkmetry/internal/useragent"
	"go.uber.org/zap"
)

// GeoResolver resolves an IP to a geolocation record, or nil.
type GeoResolver interface {
	Resolve(ctx context.Context, ip string) *geo.Record
}

// Recorder assembles and persists one ClickEvent per visit. It runs on the
// consumer side of the visit topic, never on the request path, so its
// latency and failures are invisible to the redirecting client.
type Recorder struct {
	store  Store
	geo    GeoResolver
	logger *zap.Logger
}

// NewRecorder creates a click recorder.
func NewRecorder(store Store, geoResolver GeoResolver, logger *zap.Logger) *Recorder {
	return &Recorder{
		store:  store,
		geo:    geoResolver,
		logger: logger,
	}
}

// Record enriches a visit with user-agent classification and geolocation,
// then persists the click. An error means the click was dropped; callers
// only log (or nack) it.
func (r *Recorder) Record(ctx context.Context, visit *LinkVisitedEvent) error {
	classification := useragent.Classify(visit.UserAgent)

	click := &ClickEvent{
		ID:        uuid.NewString(),
		LinkID:    visit.LinkID,
		VisitorID: visit.VisitorID,
		IPAddress: visit.ClientIP,
		UserAgent: visit.UserAgent,
		Referrer:  visit.Referrer,
		Device:    classification.Device,
		Browser:   classification.Browser,
		OS:        classification.OS,
		Timestamp: visit.VisitedAt,
	}

	if click.Timestamp.IsZero() {
		click.Timestamp = time.Now().UTC()
	}

	if record := r.geo.Resolve(ctx, visit.ClientIP); record != nil {
		click.Country = record.Country
		click.CountryName = record.CountryName
		click.Region = record.Region
		click.City = record.City
		click.PostalCode = record.PostalCode
		click.Timezone = record.Timezone
		click.Location = record.Location
		click.Org = record.Org
	}

	if err := r.store.SaveClick(ctx, click); err != nil {
		r.logger.Error("failed to persist click",
			zap.String("linkId", click.LinkID),
			zap.Error(err),
		)

		return fmt.Errorf("save click: %w", err)
	}

	r.logger.Debug("click recorded",
		zap.String("linkId", click.LinkID),
		zap.String("device", click.Device),
		zap.String("country", click.Country),
	)

	return nil
}
