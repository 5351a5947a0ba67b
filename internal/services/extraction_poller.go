package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/logger"
	"golang.org/x/sync/singleflight"

	"wheeladmin/internal/models"
)

// ExtractionPollInterval is how often the last extraction is checked.
const ExtractionPollInterval = 1500 * time.Millisecond

type LastExtractionClient interface {
	GetLastWheelPrizeExtraction(ctx context.Context) (*models.WheelPrizeExtraction, error)
}

// ExtractionPoller watches the last extraction and spins the wheel once for
// every new completed extraction.
type ExtractionPoller struct {
	client  LastExtractionClient
	prizes  func() []models.WheelPrize
	spinner *Spinner
	group   singleflight.Group

	mu     sync.Mutex
	lastID string
}

func NewExtractionPoller(c LastExtractionClient, prizes func() []models.WheelPrize, spinner *Spinner) *ExtractionPoller {
	return &ExtractionPoller{client: c, prizes: prizes, spinner: spinner}
}

// Poll checks the last extraction. It reports whether the wheel was spun.
// Concurrent calls share one request.
func (p *ExtractionPoller) Poll(ctx context.Context) (bool, error) {
	v, err, _ := p.group.Do("last-extraction", func() (any, error) {
		return p.poll(ctx)
	})
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

func (p *ExtractionPoller) poll(ctx context.Context) (bool, error) {
	if len(p.prizes()) == 0 {
		return false, nil
	}
	e, err := p.client.GetLastWheelPrizeExtraction(ctx)
	if err != nil {
		return false, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if e == nil || e.ID == p.lastID || !e.IsCompleted() || e.WheelAssetID == nil {
		return false, nil
	}
	p.spinner.SpinByWheelAssetID(*e.WheelAssetID)
	p.lastID = e.ID
	logger.Infof("Found new prize extraction %s: %s", e.ID, *e.WheelAssetID)
	return true, nil
}

// LastSeen returns the id of the last extraction the wheel was spun for.
func (p *ExtractionPoller) LastSeen() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastID
}

// Run polls every interval until ctx is done. Failures are only logged.
func (p *ExtractionPoller) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := p.Poll(ctx); err != nil && ctx.Err() == nil {
			logger.Warningf("Polling extraction failed: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
