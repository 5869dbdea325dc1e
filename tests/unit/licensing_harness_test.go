package unit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	contentregistry "marlowe/contexts/content-catalog/content-registry"
	contentmemory "marlowe/contexts/content-catalog/content-registry/adapters/memory"
	contenterrors "marlowe/contexts/content-catalog/content-registry/domain/errors"
	licenseregistry "marlowe/contexts/content-catalog/license-registry"
	licensememory "marlowe/contexts/content-catalog/license-registry/adapters/memory"
	licenseerrors "marlowe/contexts/content-catalog/license-registry/domain/errors"
	accessservice "marlowe/contexts/rights-enforcement/access-service"
	accessports "marlowe/contexts/rights-enforcement/access-service/ports"
	"marlowe/internal/shared/events"
)

// fakeClock is a movable clock shared by all three modules so expiry
// scenarios are deterministic.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start.UTC()}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) NewID(_ context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%d", g.n), nil
}

type publishedEvent struct {
	Topic    string
	Envelope events.Envelope
}

type capturePublisher struct {
	mu        sync.Mutex
	published []publishedEvent
}

func (p *capturePublisher) Publish(_ context.Context, topic string, event events.Envelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, publishedEvent{Topic: topic, Envelope: event})
	return nil
}

func (p *capturePublisher) Published() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.published...)
}

// storeOwnership projects the content registry owner for the other
// modules, mirroring the composition root wiring.
type storeOwnership struct {
	contents *contentmemory.Store
}

func (o storeOwnership) OwnerOf(ctx context.Context, contentID uint64) (string, bool, error) {
	content, err := o.contents.GetContent(ctx, contentID)
	if err != nil {
		if errors.Is(err, contenterrors.ErrContentNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return content.Creator, true, nil
}

type storeLicenseSource struct {
	licenses *licensememory.Store
}

func (s storeLicenseSource) LicenseByID(ctx context.Context, licenseID uint64) (accessports.LicenseOffer, bool, error) {
	license, err := s.licenses.GetLicense(ctx, licenseID)
	if err != nil {
		if errors.Is(err, licenseerrors.ErrLicenseNotFound) {
			return accessports.LicenseOffer{}, false, nil
		}
		return accessports.LicenseOffer{}, false, err
	}
	return accessports.LicenseOffer{
		LicenseID:       license.LicenseID,
		ContentID:       license.ContentID,
		Creator:         license.Creator,
		LicenseType:     license.LicenseType,
		Price:           license.Price,
		DurationMinutes: license.DurationMinutes,
		MaxUses:         license.MaxUses,
		Active:          license.Active,
	}, true, nil
}

// licensingStack composes the three modules over in-memory adapters the
// same way the runtime composition root does over postgres.
type licensingStack struct {
	clock     *fakeClock
	contents  contentregistry.Module
	licenses  licenseregistry.Module
	access    accessservice.Module
	publisher *capturePublisher
}

func newLicensingStack() *licensingStack {
	clock := newFakeClock(time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC))
	contents := contentregistry.NewInMemoryModule(clock, nil)
	ownership := storeOwnership{contents: contents.Store}
	licenses := licenseregistry.NewInMemoryModule(ownership, clock, nil)
	publisher := &capturePublisher{}
	access := accessservice.NewInMemoryModule(
		storeLicenseSource{licenses: licenses.Store},
		ownership,
		publisher,
		clock,
		&seqIDs{},
		nil,
	)
	return &licensingStack{
		clock:     clock,
		contents:  contents,
		licenses:  licenses,
		access:    access,
		publisher: publisher,
	}
}

func int64ptr(v int64) *int64 {
	return &v
}
