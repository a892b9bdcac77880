package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yeremiapane/koko-king/catalog"
	"github.com/yeremiapane/koko-king/database"
	"github.com/yeremiapane/koko-king/geo"
	"github.com/yeremiapane/koko-king/models"
	"github.com/yeremiapane/koko-king/utils"
)

// ErrInvalidCredentials is returned by DriverLogin for an unknown phone or a
// wrong passkey.
var ErrInvalidCredentials = errors.New("invalid credentials")

const minDriverPhoneLen = 10

// Registry owns branches, the menu catalog and drivers.
type Registry struct {
	blobs   database.BlobStore
	passkey string
	mu      sync.Mutex
	now     func() time.Time
}

func NewRegistry(blobs database.BlobStore, driverPasskey string) *Registry {
	return &Registry{blobs: blobs, passkey: driverPasskey, now: time.Now}
}

// Seed writes the default branches when none are stored.
func (r *Registry) Seed(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	branches, err := database.LoadList[models.Branch](ctx, r.blobs, database.KeyBranches)
	if err != nil {
		return err
	}
	if len(branches) > 0 {
		return nil
	}
	utils.InfoLogger.Info("Seeding default branches")
	return database.SaveList(ctx, r.blobs, database.KeyBranches, catalog.DefaultBranches(r.now()))
}

// ---- branches ----

type BranchInput struct {
	Name        string              `json:"name"`
	Location    string              `json:"location"`
	Phone       string              `json:"phone"`
	Manager     string              `json:"manager"`
	Image       string              `json:"image"`
	Coordinates *models.Coordinates `json:"coordinates"`
}

func (in BranchInput) validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return &models.ValidationError{Field: "name", Message: "branch name is required"}
	case strings.TrimSpace(in.Location) == "":
		return &models.ValidationError{Field: "location", Message: "branch location is required"}
	case strings.TrimSpace(in.Phone) == "":
		return &models.ValidationError{Field: "phone", Message: "branch phone is required"}
	}
	return nil
}

func (r *Registry) ListBranches(ctx context.Context) ([]models.Branch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return database.LoadList[models.Branch](ctx, r.blobs, database.KeyBranches)
}

func (r *Registry) GetBranch(ctx context.Context, id string) (models.Branch, error) {
	branches, err := r.ListBranches(ctx)
	if err != nil {
		return models.Branch{}, err
	}
	for _, b := range branches {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Branch{}, &models.NotFoundError{Kind: "branch", ID: id}
}

// NearestBranch resolves the closest branch to a customer location.
func (r *Registry) NearestBranch(ctx context.Context, lat, lng float64) (models.Branch, float64, error) {
	branches, err := r.ListBranches(ctx)
	if err != nil {
		return models.Branch{}, 0, err
	}
	b, d, ok := geo.NearestBranch(lat, lng, branches)
	if !ok {
		return models.Branch{}, 0, &models.NotFoundError{Kind: "branch", ID: fmt.Sprintf("near %.4f,%.4f", lat, lng)}
	}
	return b, d, nil
}

func (r *Registry) CreateBranch(ctx context.Context, in BranchInput) (models.Branch, error) {
	if err := in.validate(); err != nil {
		return models.Branch{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	branches, err := database.LoadList[models.Branch](ctx, r.blobs, database.KeyBranches)
	if err != nil {
		return models.Branch{}, err
	}
	b := models.Branch{
		ID:          "branch-" + uuid.NewString()[:8],
		Name:        strings.TrimSpace(in.Name),
		Location:    strings.TrimSpace(in.Location),
		Phone:       strings.TrimSpace(in.Phone),
		Manager:     strings.TrimSpace(in.Manager),
		Image:       in.Image,
		Coordinates: in.Coordinates,
		CreatedAt:   r.now(),
	}
	branches = append(branches, b)
	if err := database.SaveList(ctx, r.blobs, database.KeyBranches, branches); err != nil {
		return models.Branch{}, err
	}
	return b, nil
}

func (r *Registry) UpdateBranch(ctx context.Context, id string, in BranchInput) (models.Branch, error) {
	if err := in.validate(); err != nil {
		return models.Branch{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	branches, err := database.LoadList[models.Branch](ctx, r.blobs, database.KeyBranches)
	if err != nil {
		return models.Branch{}, err
	}
	for i := range branches {
		if branches[i].ID != id {
			continue
		}
		branches[i].Name = strings.TrimSpace(in.Name)
		branches[i].Location = strings.TrimSpace(in.Location)
		branches[i].Phone = strings.TrimSpace(in.Phone)
		branches[i].Manager = strings.TrimSpace(in.Manager)
		branches[i].Image = in.Image
		branches[i].Coordinates = in.Coordinates
		if err := database.SaveList(ctx, r.blobs, database.KeyBranches, branches); err != nil {
			return models.Branch{}, err
		}
		return branches[i], nil
	}
	return models.Branch{}, &models.NotFoundError{Kind: "branch", ID: id}
}

// RemoveBranch deletes the branch record. Orders keep their branchId.
func (r *Registry) RemoveBranch(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	branches, err := database.LoadList[models.Branch](ctx, r.blobs, database.KeyBranches)
	if err != nil {
		return err
	}
	kept := branches[:0]
	for _, b := range branches {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(branches) {
		return &models.NotFoundError{Kind: "branch", ID: id}
	}
	return database.SaveList(ctx, r.blobs, database.KeyBranches, kept)
}

// ---- catalog ----

type MenuItemInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	BranchID    string          `json:"branchId"`
}

func (in MenuItemInput) validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return &models.ValidationError{Field: "name", Message: "item name is required"}
	case in.Price.IsNegative():
		return &models.ValidationError{Field: "price", Message: "price must not be negative"}
	case strings.TrimSpace(in.Category) == "":
		return &models.ValidationError{Field: "category", Message: "category is required"}
	}
	return nil
}

func (r *Registry) loadCatalog(ctx context.Context) ([]models.MenuItem, map[string]bool, error) {
	custom, err := database.LoadList[models.MenuItem](ctx, r.blobs, database.KeyCustomMenuItems)
	if err != nil {
		return nil, nil, err
	}
	excludedIDs, err := database.LoadList[string](ctx, r.blobs, database.KeyDeletedDefaultItems)
	if err != nil {
		return nil, nil, err
	}
	excluded := make(map[string]bool, len(excludedIDs))
	for _, id := range excludedIDs {
		excluded[id] = true
	}
	return custom, excluded, nil
}

// ListMenu returns the items offered at scope (a branch id or "all"):
// non-excluded built-ins for that branch plus custom items for that branch
// or for every branch.
func (r *Registry) ListMenu(ctx context.Context, scope string) ([]models.MenuItem, error) {
	r.mu.Lock()
	custom, excluded, err := r.loadCatalog(ctx)
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}

	out := []models.MenuItem{}
	for _, it := range catalog.BuiltIn() {
		if !excluded[it.ID] && it.AvailableAt(scope) {
			out = append(out, it)
		}
	}
	for _, it := range custom {
		if it.AvailableAt(scope) {
			out = append(out, it)
		}
	}
	return out, nil
}

// AdminMenu lists every built-in, flagged when excluded, followed by custom items.
func (r *Registry) AdminMenu(ctx context.Context) ([]models.MenuItem, error) {
	r.mu.Lock()
	custom, excluded, err := r.loadCatalog(ctx)
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}

	out := catalog.BuiltIn()
	for i := range out {
		out[i].Excluded = excluded[out[i].ID]
	}
	return append(out, custom...), nil
}

// FindItem resolves an item that is currently on the menu.
func (r *Registry) FindItem(ctx context.Context, id string) (models.MenuItem, error) {
	r.mu.Lock()
	custom, excluded, err := r.loadCatalog(ctx)
	r.mu.Unlock()
	if err != nil {
		return models.MenuItem{}, err
	}
	if it, ok := catalog.Lookup(id); ok && !excluded[id] {
		return it, nil
	}
	for _, it := range custom {
		if it.ID == id {
			return it, nil
		}
	}
	return models.MenuItem{}, &models.NotFoundError{Kind: "menu item", ID: id}
}

func (r *Registry) CreateCustomItem(ctx context.Context, in MenuItemInput) (models.MenuItem, error) {
	if err := in.validate(); err != nil {
		return models.MenuItem{}, err
	}
	branchID := strings.TrimSpace(in.BranchID)
	if branchID == "" {
		branchID = models.BranchScopeAll
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	custom, err := database.LoadList[models.MenuItem](ctx, r.blobs, database.KeyCustomMenuItems)
	if err != nil {
		return models.MenuItem{}, err
	}
	it := models.MenuItem{
		ID:          "custom-" + uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Category:    strings.TrimSpace(in.Category),
		Image:       in.Image,
		BranchID:    branchID,
		Provenance:  models.ProvenanceCustom,
		CreatedAt:   r.now(),
	}
	custom = append(custom, it)
	if err := database.SaveList(ctx, r.blobs, database.KeyCustomMenuItems, custom); err != nil {
		return models.MenuItem{}, err
	}
	return it, nil
}

func (r *Registry) UpdateCustomItem(ctx context.Context, id string, in MenuItemInput) (models.MenuItem, error) {
	if catalog.IsBuiltIn(id) {
		return models.MenuItem{}, &models.ValidationError{Field: "id", Message: "built-in items cannot be edited, only excluded"}
	}
	if err := in.validate(); err != nil {
		return models.MenuItem{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	custom, err := database.LoadList[models.MenuItem](ctx, r.blobs, database.KeyCustomMenuItems)
	if err != nil {
		return models.MenuItem{}, err
	}
	for i := range custom {
		if custom[i].ID != id {
			continue
		}
		custom[i].Name = strings.TrimSpace(in.Name)
		custom[i].Description = in.Description
		custom[i].Price = in.Price
		custom[i].Category = strings.TrimSpace(in.Category)
		custom[i].Image = in.Image
		if b := strings.TrimSpace(in.BranchID); b != "" {
			custom[i].BranchID = b
		}
		if err := database.SaveList(ctx, r.blobs, database.KeyCustomMenuItems, custom); err != nil {
			return models.MenuItem{}, err
		}
		return custom[i], nil
	}
	return models.MenuItem{}, &models.NotFoundError{Kind: "menu item", ID: id}
}

func (r *Registry) RemoveCustomItem(ctx context.Context, id string) error {
	if catalog.IsBuiltIn(id) {
		return &models.ValidationError{Field: "id", Message: "built-in items cannot be removed, only excluded"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	custom, err := database.LoadList[models.MenuItem](ctx, r.blobs, database.KeyCustomMenuItems)
	if err != nil {
		return err
	}
	kept := custom[:0]
	for _, it := range custom {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(custom) {
		return &models.NotFoundError{Kind: "menu item", ID: id}
	}
	return database.SaveList(ctx, r.blobs, database.KeyCustomMenuItems, kept)
}

// ExcludeBuiltIn hides a built-in item from every menu. Idempotent.
func (r *Registry) ExcludeBuiltIn(ctx context.Context, id string) error {
	return r.setExcluded(ctx, id, true)
}

// RestoreBuiltIn puts an excluded built-in item back. Idempotent.
func (r *Registry) RestoreBuiltIn(ctx context.Context, id string) error {
	return r.setExcluded(ctx, id, false)
}

func (r *Registry) setExcluded(ctx context.Context, id string, exclude bool) error {
	if !catalog.IsBuiltIn(id) {
		return &models.NotFoundError{Kind: "built-in menu item", ID: id}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	ids, err := database.LoadList[string](ctx, r.blobs, database.KeyDeletedDefaultItems)
	if err != nil {
		return err
	}
	next := make([]string, 0, len(ids)+1)
	for _, existing := range ids {
		if existing != id {
			next = append(next, existing)
		}
	}
	if exclude {
		next = append(next, id)
	}
	return database.SaveList(ctx, r.blobs, database.KeyDeletedDefaultItems, next)
}

// ---- drivers ----

func (r *Registry) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return database.LoadList[models.Driver](ctx, r.blobs, database.KeyDrivers)
}

// RegisterDriver self-registers a driver by phone number.
func (r *Registry) RegisterDriver(ctx context.Context, phone string) (models.Driver, error) {
	phone = strings.TrimSpace(phone)
	if len(phone) < minDriverPhoneLen {
		return models.Driver{}, &models.ValidationError{Field: "phone", Message: "phone must be at least 10 characters"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	drivers, err := database.LoadList[models.Driver](ctx, r.blobs, database.KeyDrivers)
	if err != nil {
		return models.Driver{}, err
	}
	taken := make(map[string]bool, len(drivers))
	for _, d := range drivers {
		if d.Phone == phone {
			return models.Driver{}, &models.ValidationError{Field: "phone", Message: "phone already registered"}
		}
		taken[d.ID] = true
	}

	now := r.now()
	seq := now.UnixMilli() % 1000000
	id := fmt.Sprintf("DRV-%06d", seq)
	for taken[id] {
		seq = (seq + 1) % 1000000
		id = fmt.Sprintf("DRV-%06d", seq)
	}

	d := models.Driver{ID: id, Phone: phone, CreatedAt: now}
	drivers = append(drivers, d)
	if err := database.SaveList(ctx, r.blobs, database.KeyDrivers, drivers); err != nil {
		return models.Driver{}, err
	}
	return d, nil
}

// DriverLogin checks a registered phone against the shared passkey.
func (r *Registry) DriverLogin(ctx context.Context, phone, passkey string) (models.Driver, error) {
	if r.passkey == "" || subtle.ConstantTimeCompare([]byte(passkey), []byte(r.passkey)) != 1 {
		return models.Driver{}, ErrInvalidCredentials
	}
	drivers, err := r.ListDrivers(ctx)
	if err != nil {
		return models.Driver{}, err
	}
	phone = strings.TrimSpace(phone)
	for _, d := range drivers {
		if d.Phone == phone {
			return d, nil
		}
	}
	return models.Driver{}, ErrInvalidCredentials
}
