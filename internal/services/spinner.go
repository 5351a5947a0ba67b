package services

import (
	"sync"
	"time"

	"wheeladmin/internal/models"
)

// ModalTimeout is how long the winner modal stays open before the current
// prize is cleared.
const ModalTimeout = 15 * time.Second

type CurrentPrize struct {
	Prize models.WheelPrize `json:"prize"`
	Index int               `json:"index"`
}

type SpinState struct {
	CurrentPrize *CurrentPrize `json:"current_prize"`
	IsModalOpen  bool          `json:"is_modal_open"`
}

// Spinner holds the prize the wheel is spinning to and the winner modal.
// Prizes are looked up in the list last fetched from the service, which is
// what the wheel display renders.
type Spinner struct {
	prizes       func() []models.WheelPrize
	modalTimeout time.Duration

	mu         sync.Mutex
	current    *CurrentPrize
	modalOpen  bool
	timer      *time.Timer
	generation uint64
}

func NewSpinner(prizes func() []models.WheelPrize) *Spinner {
	return &Spinner{prizes: prizes, modalTimeout: ModalTimeout}
}

// SpinByIndex spins to the prize at index. Out of range indexes are ignored.
func (s *Spinner) SpinByIndex(index int) bool {
	prizes := s.prizes()
	if index < 0 || index >= len(prizes) {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &CurrentPrize{Prize: prizes[index], Index: index}
	return true
}

// SpinByWheelAssetID spins to the first slice of the given asset.
func (s *Spinner) SpinByWheelAssetID(id string) bool {
	for i, p := range s.prizes() {
		if p.WheelAssetID == id {
			return s.SpinByIndex(i)
		}
	}
	return false
}

// StopSpinning opens the winner modal, which closes by itself after the
// modal timeout.
func (s *Spinner) StopSpinning() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.modalOpen = true
	s.stopTimer()
	gen := s.generation
	s.timer = time.AfterFunc(s.modalTimeout, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.generation == gen {
			s.reset()
		}
	})
}

// ResetCurrentPrize closes the modal and clears the current prize.
func (s *Spinner) ResetCurrentPrize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Spinner) State() SpinState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := SpinState{IsModalOpen: s.modalOpen}
	if s.current != nil {
		c := *s.current
		st.CurrentPrize = &c
	}
	return st
}

// Close stops the pending modal timer.
func (s *Spinner) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimer()
}

// reset must hold s.mu.
func (s *Spinner) reset() {
	s.stopTimer()
	s.modalOpen = false
	s.current = nil
}

// stopTimer must hold s.mu.
func (s *Spinner) stopTimer() {
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
