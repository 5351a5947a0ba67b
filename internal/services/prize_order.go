package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/logger"
	"golang.org/x/sync/errgroup"

	"wheeladmin/internal/models"
)

var (
	ErrSoleInstance    = errors.New("cannot remove the only instance of a prize")
	ErrIndexOutOfRange = errors.New("prize index out of range")
	ErrPrizeNotFound   = errors.New("prize not found")
	ErrSaveInProgress  = errors.New("prize order save already in progress")
)

// PrizeClient is the part of the wheel service the prize order talks to.
type PrizeClient interface {
	ListWheelPrizes(ctx context.Context) ([]models.WheelPrize, error)
	UpdateWheelPrizesOrder(ctx context.Context, req models.UpdateWheelPrizesOrderRequest) error
	UpdateWheelAsset(ctx context.Context, req models.UpdateWheelAssetRequest) error
}

// OrderedWheelPrize is a prize tagged with a local render key. UniqueIndex
// tells duplicate entries apart and is never sent to the service.
type OrderedWheelPrize struct {
	models.WheelPrize
	UniqueIndex float64 `json:"unique_index"`
}

type PrizeOrderState struct {
	OrderedPrizes []OrderedWheelPrize `json:"ordered_prizes"`
	IsDirty       bool                `json:"is_dirty"`
}

// PrizeOrder keeps a locally editable prize list on top of the last list
// fetched from the service. While dirty, local edits survive refreshes
// until they are saved or reset.
type PrizeOrder struct {
	client PrizeClient

	mu       sync.RWMutex
	snapshot []models.WheelPrize
	state    PrizeOrderState
	revision uint64
	saving   bool
	fetching bool
}

// NewPrizeOrder creates an empty, clean prize order.
func NewPrizeOrder(c PrizeClient) *PrizeOrder {
	return &PrizeOrder{
		client: c,
		state:  PrizeOrderState{OrderedPrizes: []OrderedWheelPrize{}},
	}
}

func tag(prizes []models.WheelPrize) []OrderedWheelPrize {
	ordered := make([]OrderedWheelPrize, len(prizes))
	for i, p := range prizes {
		ordered[i] = OrderedWheelPrize{WheelPrize: p, UniqueIndex: rand.Float64()}
	}
	return ordered
}

func untag(ordered []OrderedWheelPrize) []models.WheelPrize {
	prizes := make([]models.WheelPrize, len(ordered))
	for i, p := range ordered {
		prizes[i] = p.WheelPrize
	}
	return prizes
}

// touch marks the list as edited. Must hold o.mu.
func (o *PrizeOrder) touch() {
	o.state.IsDirty = true
	o.revision++
}

// Fetch loads the prize list from the service and reconciles it with the
// local list.
func (o *PrizeOrder) Fetch(ctx context.Context) error {
	o.mu.Lock()
	o.fetching = true
	o.mu.Unlock()

	prizes, err := o.client.ListWheelPrizes(ctx)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.fetching = false
	if err != nil {
		return fmt.Errorf("list wheel prizes: %w", err)
	}

	o.snapshot = prizes
	if !o.state.IsDirty {
		o.state.OrderedPrizes = tag(prizes)
		return nil
	}
	merged := merge(o.state.OrderedPrizes, prizes)
	if !sameIDs(merged, o.state.OrderedPrizes) {
		o.revision++
	}
	o.state.OrderedPrizes = merged
	return nil
}

// merge keeps the local entries whose id the service still returns, with
// their settings and duplicates, and appends ids the local list lacks.
func merge(local []OrderedWheelPrize, fetched []models.WheelPrize) []OrderedWheelPrize {
	byID := make(map[string]models.WheelPrize, len(fetched))
	for _, p := range fetched {
		byID[p.WheelAssetID] = p
	}

	merged := make([]OrderedWheelPrize, 0, len(local)+len(fetched))
	seen := make(map[string]bool, len(local))
	for _, p := range local {
		server, ok := byID[p.WheelAssetID]
		if !ok {
			continue
		}
		settings := p.WheelUISettings
		p.WheelPrize = server
		p.WheelUISettings = settings
		merged = append(merged, p)
		seen[p.WheelAssetID] = true
	}
	for _, p := range fetched {
		if seen[p.WheelAssetID] {
			continue
		}
		merged = append(merged, OrderedWheelPrize{WheelPrize: p, UniqueIndex: rand.Float64()})
		seen[p.WheelAssetID] = true
	}
	return merged
}

func sameIDs(a, b []OrderedWheelPrize) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].WheelAssetID != b[i].WheelAssetID {
			return false
		}
	}
	return true
}

// Reorder replaces the local list wholesale.
func (o *PrizeOrder) Reorder(prizes []OrderedWheelPrize) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.state.OrderedPrizes = append([]OrderedWheelPrize(nil), prizes...)
	o.touch()
}

// ReorderByUniqueIndex reorders the local list to follow indexes, which must
// be a permutation of the current unique indexes.
func (o *PrizeOrder) ReorderByUniqueIndex(indexes []float64) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(indexes) != len(o.state.OrderedPrizes) {
		return fmt.Errorf("%w: expected %d entries, got %d", ErrIndexOutOfRange, len(o.state.OrderedPrizes), len(indexes))
	}
	byIndex := make(map[float64]OrderedWheelPrize, len(indexes))
	for _, p := range o.state.OrderedPrizes {
		byIndex[p.UniqueIndex] = p
	}
	reordered := make([]OrderedWheelPrize, 0, len(indexes))
	for _, idx := range indexes {
		p, ok := byIndex[idx]
		if !ok {
			return fmt.Errorf("%w: unique index %v", ErrPrizeNotFound, idx)
		}
		delete(byIndex, idx)
		reordered = append(reordered, p)
	}
	o.state.OrderedPrizes = reordered
	o.touch()
	return nil
}

// Duplicate inserts a copy of the entry at i right after it.
func (o *PrizeOrder) Duplicate(i int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	prizes := o.state.OrderedPrizes
	if i < 0 || i >= len(prizes) {
		return ErrIndexOutOfRange
	}
	dup := prizes[i]
	dup.UniqueIndex = rand.Float64()

	out := make([]OrderedWheelPrize, 0, len(prizes)+1)
	out = append(out, prizes[:i+1]...)
	out = append(out, dup)
	out = append(out, prizes[i+1:]...)
	o.state.OrderedPrizes = out
	o.touch()
	return nil
}

// Remove drops the entry at i. The last entry of a prize cannot be removed;
// disable the asset instead.
func (o *PrizeOrder) Remove(i int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	prizes := o.state.OrderedPrizes
	if i < 0 || i >= len(prizes) {
		return ErrIndexOutOfRange
	}
	shared := false
	for j, p := range prizes {
		if j != i && p.WheelAssetID == prizes[i].WheelAssetID {
			shared = true
			break
		}
	}
	if !shared {
		return ErrSoleInstance
	}

	out := make([]OrderedWheelPrize, 0, len(prizes)-1)
	out = append(out, prizes[:i]...)
	out = append(out, prizes[i+1:]...)
	o.state.OrderedPrizes = out
	o.touch()
	return nil
}

// UpdatePrize replaces every entry of prize.WheelAssetID, keeping their
// unique indexes.
func (o *PrizeOrder) UpdatePrize(prize models.WheelPrize) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	found := false
	for i := range o.state.OrderedPrizes {
		if o.state.OrderedPrizes[i].WheelAssetID == prize.WheelAssetID {
			o.state.OrderedPrizes[i].WheelPrize = prize
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrPrizeNotFound, prize.WheelAssetID)
	}
	o.touch()
	return nil
}

// Prize returns the first local entry of id.
func (o *PrizeOrder) Prize(id string) (models.WheelPrize, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	for _, p := range o.state.OrderedPrizes {
		if p.WheelAssetID == id {
			return p.WheelPrize, true
		}
	}
	return models.WheelPrize{}, false
}

// orderChanged reports whether local ids differ from the snapshot at any
// position.
func orderChanged(local []OrderedWheelPrize, snapshot []models.WheelPrize) bool {
	if len(local) != len(snapshot) {
		return true
	}
	for i := range local {
		if local[i].WheelAssetID != snapshot[i].WheelAssetID {
			return true
		}
	}
	return false
}

// changedSettings returns the update for every snapshot prize whose local
// background color differs.
func changedSettings(local []OrderedWheelPrize, snapshot []models.WheelPrize) []models.UpdateWheelAssetRequest {
	first := make(map[string]models.WheelAssetUISettings, len(local))
	for _, p := range local {
		if _, ok := first[p.WheelAssetID]; !ok {
			first[p.WheelAssetID] = p.WheelUISettings
		}
	}

	var reqs []models.UpdateWheelAssetRequest
	done := make(map[string]bool, len(snapshot))
	for _, s := range snapshot {
		settings, ok := first[s.WheelAssetID]
		if !ok || done[s.WheelAssetID] {
			continue
		}
		done[s.WheelAssetID] = true
		if settings.BackgroundColorHex == s.WheelUISettings.BackgroundColorHex {
			continue
		}
		reqs = append(reqs, models.UpdateWheelAssetRequest{ID: s.WheelAssetID, WheelUISettings: &settings})
	}
	return reqs
}

// Save sends the local order and settings changes to the service. The calls
// run concurrently; if any fails the list stays dirty and the failures are
// returned joined.
func (o *PrizeOrder) Save(ctx context.Context) error {
	o.mu.Lock()
	if o.saving {
		o.mu.Unlock()
		return ErrSaveInProgress
	}
	if !o.state.IsDirty {
		o.mu.Unlock()
		return nil
	}
	o.saving = true
	local := append([]OrderedWheelPrize(nil), o.state.OrderedPrizes...)
	snapshot := append([]models.WheelPrize(nil), o.snapshot...)
	revision := o.revision
	o.mu.Unlock()

	var tasks []func() error
	if orderChanged(local, snapshot) {
		ids := make([]string, len(local))
		for i, p := range local {
			ids[i] = p.WheelAssetID
		}
		tasks = append(tasks, func() error {
			err := o.client.UpdateWheelPrizesOrder(ctx, models.UpdateWheelPrizesOrderRequest{WheelAssetIDs: ids})
			if err != nil {
				return fmt.Errorf("update wheel prizes order: %w", err)
			}
			return nil
		})
	}
	for _, req := range changedSettings(local, snapshot) {
		tasks = append(tasks, func() error {
			if err := o.client.UpdateWheelAsset(ctx, req); err != nil {
				return fmt.Errorf("update wheel asset %s settings: %w", req.ID, err)
			}
			return nil
		})
	}

	errs := make([]error, len(tasks))
	var g errgroup.Group
	for i, task := range tasks {
		g.Go(func() error {
			errs[i] = task()
			return nil
		})
	}
	_ = g.Wait()
	err := errors.Join(errs...)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.saving = false
	if err != nil {
		return err
	}
	o.snapshot = untag(local)
	if o.revision == revision {
		o.state.IsDirty = false
	}
	logger.Infof("saved wheel prizes: %d entries, %d calls", len(local), len(tasks))
	return nil
}

// Reset discards local edits and restores the last fetched list.
func (o *PrizeOrder) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.state = PrizeOrderState{OrderedPrizes: tag(o.snapshot)}
	o.revision++
}

// State returns a copy of the local list and its dirty flag.
func (o *PrizeOrder) State() PrizeOrderState {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return PrizeOrderState{
		OrderedPrizes: append([]OrderedWheelPrize{}, o.state.OrderedPrizes...),
		IsDirty:       o.state.IsDirty,
	}
}

// Snapshot returns the last list fetched from, or saved to, the service.
func (o *PrizeOrder) Snapshot() []models.WheelPrize {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return append([]models.WheelPrize{}, o.snapshot...)
}

func (o *PrizeOrder) IsDirty() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state.IsDirty
}

func (o *PrizeOrder) IsSaving() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.saving
}

func (o *PrizeOrder) IsFetching() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.fetching
}

// Run fetches immediately and then every interval until ctx is done.
func (o *PrizeOrder) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := o.Fetch(ctx); err != nil && ctx.Err() == nil {
			logger.Errorf("Failed to refresh wheel prizes: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
