// Package sandbox is an in-memory implementation of the wheel service used
// for local development and tests.
package sandbox

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/logger"
	"github.com/google/uuid"

	"wheeladmin/internal/client"
	"wheeladmin/internal/errorx"
	"wheeladmin/internal/models"
	"wheeladmin/internal/principal"
)

const defaultBackgroundColor = "#29ABE2"

// mockTokenBalance is the balance, in whole tokens, reported for every token
// asset by FetchTokensData.
const mockTokenBalance = 10

type storedImage struct {
	contentType string
	content     []byte
}

type transfer struct {
	req        models.TransferTokenRequest
	blockIndex uint64
}

var _ client.Actor = (*Backend)(nil)

// Backend holds the whole service state.
type Backend struct {
	mu          sync.RWMutex
	selfID      string
	assets      map[string]*models.WheelAsset
	prizeOrder  []string
	images      map[string]storedImage
	extractions []*models.WheelPrizeExtraction
	users       map[string]*models.UserProfile
	domains     map[string]*models.CustomDomainRecord
	transfers   []transfer
	rnd         *rand.Rand
	now         func() time.Time
}

// NewBackend creates an empty backend. selfID is the principal of the
// service itself, which can never be extracted for.
func NewBackend(selfID string) *Backend {
	return &Backend{
		selfID:  selfID,
		assets:  make(map[string]*models.WheelAsset),
		images:  make(map[string]storedImage),
		users:   make(map[string]*models.UserProfile),
		domains: make(map[string]*models.CustomDomainRecord),
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
	}
}

func (b *Backend) timestamp() string {
	return b.now().UTC().Format(time.RFC3339Nano)
}

// caller returns the profile of the calling principal. Must hold b.mu.
func (b *Backend) caller(ctx context.Context) (*models.UserProfile, error) {
	p, ok := client.CallerFrom(ctx)
	if !ok {
		return nil, errorx.NewUnauthenticated("Anonymous principals are not allowed")
	}
	for _, u := range b.users {
		if u.PrincipalID == p {
			return u, nil
		}
	}
	return nil, errorx.NewNotFound("User profile for principal %s not found", p)
}

// requireRole checks the caller has one of roles. Must hold b.mu.
func (b *Backend) requireRole(ctx context.Context, roles ...models.UserRole) (*models.UserProfile, error) {
	u, err := b.caller(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		if u.Role == r {
			return u, nil
		}
	}
	return nil, errorx.NewPermissionDenied("Principal %s does not have permission to perform this action", u.PrincipalID)
}

// available returns how many more times the asset can be extracted.
func available(a *models.WheelAsset) uint32 {
	if t, ok := a.AssetType.(models.Token); ok {
		return t.AvailableDrawsCount
	}
	if a.UsedAmount >= a.TotalAmount {
		return 0
	}
	return a.TotalAmount - a.UsedAmount
}

func (b *Backend) view(a *models.WheelAsset) models.WheelAsset {
	v := *a
	v.AvailableAmount = available(a)
	return v
}

func (b *Backend) addToOrder(id string) {
	b.prizeOrder = append(b.prizeOrder, id)
}

func (b *Backend) removeFromOrder(id string) {
	order := b.prizeOrder[:0]
	for _, o := range b.prizeOrder {
		if o != id {
			order = append(order, o)
		}
	}
	b.prizeOrder = order
}

func toPrize(a *models.WheelAsset) models.WheelPrize {
	p := models.WheelPrize{
		WheelAssetID:    a.ID,
		Name:            a.Name,
		WheelImagePath:  a.WheelImagePath,
		ModalImagePath:  a.ModalImagePath,
		WheelUISettings: a.WheelUISettings,
	}
	if t, ok := a.AssetType.(models.Token); ok {
		amount := t.PrizeUsdAmount
		p.PrizeUsdAmount = &amount
	}
	return p
}

func (b *Backend) ListWheelPrizes(ctx context.Context) ([]models.WheelPrize, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	prizes := make([]models.WheelPrize, 0, len(b.prizeOrder))
	for _, id := range b.prizeOrder {
		if a, ok := b.assets[id]; ok {
			prizes = append(prizes, toPrize(a))
		}
	}
	return prizes, nil
}

func (b *Backend) UpdateWheelPrizesOrder(ctx context.Context, req models.UpdateWheelPrizesOrderRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.requireRole(ctx, models.UserRoleAdmin); err != nil {
		return err
	}
	for _, id := range req.WheelAssetIDs {
		a, ok := b.assets[id]
		if !ok {
			return errorx.NewNotFound("Wheel asset with id %s not found", id)
		}
		if a.IsDisabled() {
			return errorx.NewInvalidArgument("Wheel asset with id %s is not enabled", id)
		}
	}
	b.prizeOrder = append([]string(nil), req.WheelAssetIDs...)
	return nil
}

func (b *Backend) ListWheelAssets(ctx context.Context, req models.ListWheelAssetsRequest) ([]models.WheelAsset, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if _, err := b.requireRole(ctx, models.UserRoleAdmin); err != nil {
		return nil, err
	}
	assets := make([]models.WheelAsset, 0, len(b.assets))
	for _, a := range b.assets {
		if req.State != nil && a.State != *req.State {
			continue
		}
		assets = append(assets, b.view(a))
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].ID < assets[j].ID })
	return assets, nil
}

func (b *Backend) createAsset(name string, totalAmount uint32, cfg models.CreateWheelAssetTypeConfig, ui *models.WheelAssetUISettings) (*models.WheelAsset, error) {
	if name == "" {
		return nil, errorx.NewInvalidArgument("Wheel asset name cannot be empty")
	}
	var assetType models.WheelAssetType
	switch c := cfg.(type) {
	case models.CreateToken:
		if _, err := principal.Parse(c.LedgerConfig.LedgerCanisterID); err != nil {
			return nil, err
		}
		assetType = models.Token{
			LedgerConfig:       c.LedgerConfig,
			ExchangeRateSymbol: c.ExchangeRateSymbol,
			PrizeUsdAmount:     c.PrizeUsdAmount,
		}
	case models.Gadget:
		assetType = c
	case models.Jackpot:
		for _, id := range c.WheelAssetIDs {
			if _, ok := b.assets[id]; !ok {
				return nil, errorx.NewNotFound("Wheel asset with id %s not found", id)
			}
		}
		assetType = c
	default:
		return nil, errorx.NewInvalidArgument("Asset type config is required")
	}

	settings := models.WheelAssetUISettings{BackgroundColorHex: defaultBackgroundColor}
	if ui != nil {
		settings = *ui
	}
	a := &models.WheelAsset{
		ID:              uuid.NewString(),
		Name:            name,
		AssetType:       assetType,
		TotalAmount:     totalAmount,
		State:           models.WheelAssetStateEnabled,
		WheelUISettings: settings,
	}
	b.assets[a.ID] = a
	b.addToOrder(a.ID)
	return a, nil
}

func (b *Backend) CreateWheelAsset(ctx context.Context, req models.CreateWheelAssetRequest) (models.WheelAsset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.requireRole(ctx, models.UserRoleAdmin); err != nil {
		return models.WheelAsset{}, err
	}
	a, err := b.createAsset(req.Name, req.TotalAmount, req.AssetTypeConfig, req.WheelUISettings)
	if err != nil {
		return models.WheelAsset{}, err
	}
	return b.view(a), nil
}

func (b *Backend) UpdateWheelAsset(ctx context.Context, req models.UpdateWheelAssetRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.requireRole(ctx, models.UserRoleAdmin); err != nil {
		return err
	}
	a, ok := b.assets[req.ID]
	if !ok {
		return errorx.NewNotFound("Wheel asset with id %s not found", req.ID)
	}
	updated := *a

	if req.Name != nil {
		if *req.Name == "" {
			return errorx.NewInvalidArgument("Wheel asset name cannot be empty")
		}
		updated.Name = *req.Name
	}
	if req.TotalAmount != nil {
		updated.TotalAmount = *req.TotalAmount
	}
	if req.UsedAmount != nil {
		updated.UsedAmount = *req.UsedAmount
	}
	if !updated.IsToken() && updated.UsedAmount > updated.TotalAmount {
		return errorx.NewInvalidArgument("Used amount cannot exceed total amount")
	}
	if req.State != nil {
		updated.State = *req.State
	}
	if req.WheelUISettings != nil {
		updated.WheelUISettings = *req.WheelUISettings
	}
	if req.AssetTypeConfig != nil {
		assetType, err := applyTypeConfig(updated.AssetType, req.AssetTypeConfig)
		if err != nil {
			return err
		}
		updated.AssetType = assetType
	}

	switch {
	case a.State == models.WheelAssetStateEnabled && updated.State == models.WheelAssetStateDisabled:
		b.removeFromOrder(a.ID)
	case a.State == models.WheelAssetStateDisabled && updated.State == models.WheelAssetStateEnabled:
		b.addToOrder(a.ID)
	}
	*a = updated
	return nil
}

func applyTypeConfig(current models.WheelAssetType, cfg models.UpdateWheelAssetTypeConfig) (models.WheelAssetType, error) {
	switch c := cfg.(type) {
	case models.UpdateToken:
		t, ok := current.(models.Token)
		if !ok {
			return nil, errorx.NewInvalidArgument("Cannot change the type of a wheel asset")
		}
		if c.ExchangeRateSymbol != nil {
			t.ExchangeRateSymbol = c.ExchangeRateSymbol
		}
		if c.PrizeUsdAmount != nil {
			t.PrizeUsdAmount = *c.PrizeUsdAmount
		}
		if c.LedgerConfig != nil && c.LedgerConfig.Decimals != nil {
			t.LedgerConfig.Decimals = *c.LedgerConfig.Decimals
		}
		return t, nil
	case models.Gadget:
		if _, ok := current.(models.Gadget); !ok {
			return nil, errorx.NewInvalidArgument("Cannot change the type of a wheel asset")
		}
		return c, nil
	case models.Jackpot:
		if _, ok := current.(models.Jackpot); !ok {
			return nil, errorx.NewInvalidArgument("Cannot change the type of a wheel asset")
		}
		return c, nil
	}
	return current, nil
}

func (b *Backend) DeleteWheelAsset(ctx context.Context, req models.DeleteWheelAssetRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.requireRole(ctx, models.UserRoleAdmin); err != nil {
		return err
	}
	a, ok := b.assets[req.ID]
	if !ok {
		return errorx.NewNotFound("Wheel asset with id %s not found", req.ID)
	}
	if a.IsToken() {
		return errorx.NewInvalidArgument("Token wheel assets cannot be deleted")
	}
	for _, p := range []*string{a.WheelImagePath, a.ModalImagePath} {
		if p != nil {
			delete(b.images, *p)
		}
	}
	delete(b.assets, req.ID)
	b.removeFromOrder(req.ID)
	return nil
}

func imagePath(id string, kind models.ImageKind, contentType string) string {
	ext := ""
	switch contentType {
	case "image/png":
		ext = ".png"
	case "image/jpeg":
		ext = ".jpg"
	case "image/svg+xml":
		ext = ".svg"
	case "image/webp":
		ext = ".webp"
	}
	return "/images/wheel-assets/" + id + "-" + string(kind) + ext
}

func (b *Backend) UpdateWheelAssetImage(ctx context.Context, req models.UpdateWheelAssetImageRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.requireRole(ctx, models.UserRoleAdmin); err != nil {
		return err
	}
	a, ok := b.assets[req.ID]
	if !ok {
		return errorx.NewNotFound("Wheel asset with id %s not found", req.ID)
	}
	cfg := req.ImageConfig
	if len(cfg.ContentBytes) == 0 {
		return errorx.NewInvalidArgument("Image content cannot be empty")
	}

	path := imagePath(a.ID, cfg.Kind, cfg.ContentType)
	target := &a.WheelImagePath
	if cfg.Kind == models.ImageKindModal {
		target = &a.ModalImagePath
	}
	if *target != nil {
		delete(b.images, **target)
	}
	b.images[path] = storedImage{contentType: cfg.ContentType, content: append([]byte(nil), cfg.ContentBytes...)}
	*target = &path
	return nil
}

// Image returns a stored image by the path handed out in asset responses.
func (b *Backend) Image(path string) ([]byte, string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	img, ok := b.images[path]
	return img.content, img.contentType, ok
}

func (b *Backend) SetDefaultWheelAssets(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.requireRole(ctx, models.UserRoleAdmin); err != nil {
		return err
	}
	if len(b.assets) > 0 {
		return errorx.New(errorx.Conflict, "Wheel assets already exist")
	}
	for _, d := range defaultAssets() {
		if _, err := b.createAsset(d.name, 0, d.config, &models.WheelAssetUISettings{BackgroundColorHex: d.color}); err != nil {
			return err
		}
	}
	return nil
}

func (b *Backend) FetchTokensData(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.requireRole(ctx, models.UserRoleAdmin); err != nil {
		return err
	}
	now := b.timestamp()
	for _, a := range b.assets {
		t, ok := a.AssetType.(models.Token)
		if !ok {
			continue
		}
		if t.UsdPrice == nil {
			t.UsdPrice = &models.TokenPrice{UsdPrice: 1}
		}
		t.UsdPrice.LastFetchedAt = now

		raw := uint64(mockTokenBalance)
		for i := uint8(0); i < t.LedgerConfig.Decimals && i < 18; i++ {
			raw *= 10
		}
		t.Balance = &models.TokenBalance{Balance: raw, LastFetchedAt: now}

		t.AvailableDrawsCount = 0
		if t.PrizeUsdAmount > 0 {
			t.AvailableDrawsCount = uint32(mockTokenBalance * t.UsdPrice.UsdPrice / t.PrizeUsdAmount)
		}
		a.AssetType = t
	}
	return nil
}

func (b *Backend) GetLastWheelPrizeExtraction(ctx context.Context) (*models.WheelPrizeExtraction, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.extractions) == 0 {
		return nil, nil
	}
	e := *b.extractions[len(b.extractions)-1]
	return &e, nil
}

func (b *Backend) GetWheelPrizeExtraction(ctx context.Context, req models.GetWheelPrizeExtractionRequest) (models.WheelPrizeExtraction, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if _, err := b.requireRole(ctx, models.UserRoleAdmin, models.UserRoleScanner); err != nil {
		return models.WheelPrizeExtraction{}, err
	}
	for _, e := range b.extractions {
		if e.ID == req.WheelPrizeExtractionID {
			return *e, nil
		}
	}
	return models.WheelPrizeExtraction{}, errorx.NewNotFound("Wheel prize extraction with id %s not found", req.WheelPrizeExtractionID)
}

func (b *Backend) ListWheelPrizeExtractions(ctx context.Context) ([]models.WheelPrizeExtraction, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if _, err := b.requireRole(ctx, models.UserRoleAdmin); err != nil {
		return nil, err
	}
	list := make([]models.WheelPrizeExtraction, 0, len(b.extractions))
	for _, e := range b.extractions {
		list = append(list, *e)
	}
	return list, nil
}

func (b *Backend) GetWheelPrizeExtractionsStats(ctx context.Context) (models.WheelPrizeExtractionsStats, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if _, err := b.requireRole(ctx, models.UserRoleAdmin); err != nil {
		return models.WheelPrizeExtractionsStats{}, err
	}
	var stats models.WheelPrizeExtractionsStats
	for _, e := range b.extractions {
		c, ok := e.State.(models.Completed)
		if !ok {
			continue
		}
		stats.TotalCompletedExtractions++
		if c.PrizeUsdAmount != nil {
			stats.TotalSpentUsd += *c.PrizeUsdAmount
		}
	}
	return stats, nil
}

// eligibleAssets returns the enabled assets that can still be extracted.
// Must hold b.mu.
func (b *Backend) eligibleAssets() []*models.WheelAsset {
	var eligible []*models.WheelAsset
	for _, a := range b.assets {
		if a.State == models.WheelAssetStateEnabled && available(a) > 0 {
			eligible = append(eligible, a)
		}
	}
	sort.Slice(eligible, func(i, j int) bool { return eligible[i].ID < eligible[j].ID })
	return eligible
}

// CreateWheelPrizeExtraction draws a random available prize for a
// participant. Each participant can be extracted for only once.
func (b *Backend) CreateWheelPrizeExtraction(ctx context.Context, req models.CreateWheelPrizeExtractionRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	user, err := b.requireRole(ctx, models.UserRoleAdmin, models.UserRoleScanner)
	if err != nil {
		return err
	}
	target, err := principal.Parse(req.ExtractForPrincipal)
	if err != nil {
		return err
	}
	if target.IsAnonymous() {
		return errorx.NewInvalidArgument("Extract for principal cannot be anonymous")
	}
	if target.String() == b.selfID {
		return errorx.NewInvalidArgument("Extract for principal cannot be this canister's principal")
	}
	for _, e := range b.extractions {
		if e.ExtractedForPrincipal == target.String() {
			return errorx.NewInvalidArgument("This principal has already been extracted")
		}
	}

	eligible := b.eligibleAssets()
	if len(eligible) == 0 {
		return errorx.NewNotFound("No wheel assets available for extraction")
	}
	winner := eligible[b.rnd.Intn(len(eligible))]

	var usd *float64
	if t, ok := winner.AssetType.(models.Token); ok {
		amount := t.PrizeUsdAmount
		usd = &amount
		t.AvailableDrawsCount--
		winner.AssetType = t
	}
	winner.UsedAmount++

	now := b.timestamp()
	id := winner.ID
	b.extractions = append(b.extractions, &models.WheelPrizeExtraction{
		ID:                    uuid.NewString(),
		ExtractedForPrincipal: target.String(),
		ExtractedByUserID:     user.ID,
		WheelAssetID:          &id,
		State:                 models.Completed{PrizeUsdAmount: usd},
		CreatedAt:             now,
		UpdatedAt:             now,
	})
	logger.Infof("extracted %s for %s", winner.Name, target)
	return nil
}

func (b *Backend) TransferToken(ctx context.Context, req models.TransferTokenRequest) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.requireRole(ctx, models.UserRoleAdmin); err != nil {
		return 0, err
	}
	if _, err := principal.Parse(req.LedgerCanisterID); err != nil {
		return 0, err
	}
	if _, err := principal.Parse(req.To); err != nil {
		return 0, err
	}
	if req.Amount == 0 {
		return 0, errorx.NewInvalidArgument("Transfer amount must be greater than zero")
	}
	blockIndex := uint64(len(b.transfers))
	b.transfers = append(b.transfers, transfer{req: req, blockIndex: blockIndex})
	return blockIndex, nil
}

func (b *Backend) GetMyUserProfile(ctx context.Context) (models.UserProfile, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	u, err := b.caller(ctx)
	if err != nil {
		return models.UserProfile{}, err
	}
	return *u, nil
}

// CreateMyUserProfile registers the caller. The first user becomes admin.
func (b *Backend) CreateMyUserProfile(ctx context.Context) (models.UserProfile, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := client.CallerFrom(ctx)
	if !ok {
		return models.UserProfile{}, errorx.NewUnauthenticated("Anonymous principals are not allowed")
	}
	if parsed, err := principal.Parse(p); err != nil || parsed.IsAnonymous() {
		return models.UserProfile{}, errorx.NewUnauthenticated("Anonymous principals are not allowed")
	}
	if _, err := b.caller(ctx); err == nil {
		return models.UserProfile{}, errorx.New(errorx.Conflict, "User profile for principal %s already exists", p)
	}

	role := models.UserRoleUnassigned
	if len(b.users) == 0 {
		role = models.UserRoleAdmin
	}
	u := &models.UserProfile{
		ID:          uuid.NewString(),
		Username:    "Anonymous",
		Role:        role,
		PrincipalID: p,
	}
	b.users[u.ID] = u
	return *u, nil
}

func (b *Backend) UpdateMyUserProfile(ctx context.Context, req models.UpdateMyUserProfileRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	u, err := b.caller(ctx)
	if err != nil {
		return err
	}
	if req.Username != nil {
		u.Username = *req.Username
	}
	return nil
}

func (b *Backend) ListUsers(ctx context.Context) ([]models.UserProfile, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if _, err := b.requireRole(ctx, models.UserRoleAdmin); err != nil {
		return nil, err
	}
	users := make([]models.UserProfile, 0, len(b.users))
	for _, u := range b.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (b *Backend) UpdateUserProfile(ctx context.Context, req models.UpdateUserProfileRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	me, err := b.requireRole(ctx, models.UserRoleAdmin)
	if err != nil {
		return err
	}
	u, ok := b.users[req.UserID]
	if !ok {
		return errorx.NewNotFound("User profile with id %s not found", req.UserID)
	}
	if req.Role != nil && u.ID == me.ID && *req.Role != models.UserRoleAdmin {
		return errorx.NewInvalidArgument("Admins cannot change their own role")
	}
	if req.Username != nil {
		u.Username = *req.Username
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	return nil
}

func (b *Backend) DeleteUserProfile(ctx context.Context, req models.DeleteUserProfileRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	me, err := b.requireRole(ctx, models.UserRoleAdmin)
	if err != nil {
		return err
	}
	if _, ok := b.users[req.UserID]; !ok {
		return errorx.NewNotFound("User profile with id %s not found", req.UserID)
	}
	if req.UserID == me.ID {
		return errorx.NewInvalidArgument("Admins cannot delete themselves")
	}
	delete(b.users, req.UserID)
	return nil
}

func (b *Backend) ListCustomDomainRecords(ctx context.Context) ([]models.CustomDomainRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if _, err := b.requireRole(ctx, models.UserRoleAdmin); err != nil {
		return nil, err
	}
	records := make([]models.CustomDomainRecord, 0, len(b.domains))
	for _, r := range b.domains {
		records = append(records, *r)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].DomainName < records[j].DomainName })
	return records, nil
}

func (b *Backend) CreateCustomDomainRecord(ctx context.Context, req models.CreateCustomDomainRecordRequest) (models.CustomDomainRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.requireRole(ctx, models.UserRoleAdmin); err != nil {
		return models.CustomDomainRecord{}, err
	}
	if req.DomainName == "" {
		return models.CustomDomainRecord{}, errorx.NewInvalidArgument("Domain name cannot be empty")
	}
	for _, r := range b.domains {
		if r.DomainName == req.DomainName {
			return models.CustomDomainRecord{}, errorx.New(errorx.Conflict, "Custom domain %s already exists", req.DomainName)
		}
	}
	now := b.timestamp()
	r := &models.CustomDomainRecord{
		ID:                  uuid.NewString(),
		DomainName:          req.DomainName,
		BnRegistrationState: models.NotStarted{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	b.domains[r.ID] = r
	return *r, nil
}

func (b *Backend) UpdateCustomDomainRecord(ctx context.Context, req models.UpdateCustomDomainRecordRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.requireRole(ctx, models.UserRoleAdmin); err != nil {
		return err
	}
	r, ok := b.domains[req.ID]
	if !ok {
		return errorx.NewNotFound("Custom domain record with id %s not found", req.ID)
	}
	if req.BnRegistrationState == nil {
		return errorx.NewInvalidArgument("Registration state is required")
	}
	r.BnRegistrationState = req.BnRegistrationState
	r.UpdatedAt = b.timestamp()
	return nil
}

func (b *Backend) DeleteCustomDomainRecord(ctx context.Context, req models.DeleteCustomDomainRecordRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.requireRole(ctx, models.UserRoleAdmin); err != nil {
		return err
	}
	if _, ok := b.domains[req.ID]; !ok {
		return errorx.NewNotFound("Custom domain record with id %s not found", req.ID)
	}
	delete(b.domains, req.ID)
	return nil
}

// Bootstrap registers admin as the first user and, when withDefaults is set,
// creates the default token assets with mock balances.
func (b *Backend) Bootstrap(admin string, withDefaults bool) error {
	ctx := client.WithCaller(context.Background(), admin)
	if _, err := b.CreateMyUserProfile(ctx); err != nil {
		return err
	}
	if !withDefaults {
		return nil
	}
	if err := b.SetDefaultWheelAssets(ctx); err != nil {
		return err
	}
	return b.FetchTokensData(ctx)
}
