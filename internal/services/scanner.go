package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/logger"

	"wheeladmin/internal/errorx"
	"wheeladmin/internal/models"
	"wheeladmin/internal/principal"
)

// ScanResultTimeout is how long the outcome of the last extraction stays
// visible.
const ScanResultTimeout = 20 * time.Second

var ErrExtractionInProgress = errors.New("an extraction is already in progress")

type ScanStatus string

const (
	ScanIdle    ScanStatus = "idle"
	ScanPending ScanStatus = "pending"
	ScanSuccess ScanStatus = "success"
	ScanError   ScanStatus = "error"
)

type ScanResult struct {
	Status    ScanStatus `json:"status"`
	Principal string     `json:"principal,omitempty"`
	Error     string     `json:"error,omitempty"`
}

type ExtractionClient interface {
	CreateWheelPrizeExtraction(ctx context.Context, req models.CreateWheelPrizeExtractionRequest) error
}

// Scanner turns scanned QR codes into prize extractions, one at a time.
type Scanner struct {
	client       ExtractionClient
	resetTimeout time.Duration

	mu         sync.Mutex
	result     ScanResult
	timer      *time.Timer
	generation uint64
}

func NewScanner(c ExtractionClient) *Scanner {
	return &Scanner{
		client:       c,
		resetTimeout: ScanResultTimeout,
		result:       ScanResult{Status: ScanIdle},
	}
}

// ParseScan reads a principal from scanned text.
func ParseScan(text string) (principal.Principal, error) {
	p, err := principal.Parse(text)
	if err != nil {
		return principal.Principal{}, errorx.NewInvalidArgument("Invalid principal")
	}
	if p.IsAnonymous() {
		return principal.Principal{}, errorx.NewInvalidArgument("Anonymous principal cannot be extracted for")
	}
	return p, nil
}

// Scan extracts a prize for the principal in text. Invalid scans are
// rejected before any request is made and leave the last result untouched.
func (s *Scanner) Scan(ctx context.Context, text string) (ScanResult, error) {
	p, err := ParseScan(text)
	if err != nil {
		return ScanResult{}, err
	}

	s.mu.Lock()
	if s.result.Status == ScanPending {
		s.mu.Unlock()
		return ScanResult{}, ErrExtractionInProgress
	}
	s.stopTimer()
	s.result = ScanResult{Status: ScanPending, Principal: p.String()}
	s.mu.Unlock()

	err = s.client.CreateWheelPrizeExtraction(ctx, models.CreateWheelPrizeExtractionRequest{ExtractForPrincipal: p.String()})

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		logger.Warningf("Extraction for %s failed: %v", p, err)
		s.result = ScanResult{Status: ScanError, Principal: p.String(), Error: errorx.Render(err)}
	} else {
		s.result = ScanResult{Status: ScanSuccess, Principal: p.String()}
	}
	gen := s.generation
	s.timer = time.AfterFunc(s.resetTimeout, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.generation == gen {
			s.result = ScanResult{Status: ScanIdle}
			s.timer = nil
		}
	})
	return s.result, err
}

func (s *Scanner) Result() ScanResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

func (s *Scanner) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimer()
}

// stopTimer must hold s.mu.
func (s *Scanner) stopTimer() {
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
