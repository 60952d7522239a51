package database

//go:generate mockgen -destination=mock_gateway.go -package=database github.com/devsparksuporte-web/PotencialCameras/database Gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/devsparksuporte-web/PotencialCameras/models"
	"gorm.io/gorm"
)

var ErrNoFields = errors.New("no fields to update")

// Gateway is the storage contract the camera service relies on. Update and
// delete report affected rows; a missing id is not an error.
type Gateway interface {
	// Insert stores a new camera and returns its generated id.
	Insert(ctx context.Context, form models.CameraFormData) (uint, error)

	// UpdateByID applies the given columns and refreshes updated_at.
	UpdateByID(ctx context.Context, id uint, fields []models.FieldUpdate) (int64, error)

	// DeleteByID removes the camera permanently.
	DeleteByID(ctx context.Context, id uint) (int64, error)

	// GetByID returns nil, nil when no camera has the id.
	GetByID(ctx context.Context, id uint) (*models.Camera, error)

	// ListAll returns every camera, newest first.
	ListAll(ctx context.Context) ([]models.Camera, error)
}

// updatableColumns are the only columns a partial update may assign.
var updatableColumns = map[string]bool{
	"name":                 true,
	"ip":                   true,
	"serial":               true,
	"location":             true,
	"store":                true,
	"status":               true,
	"channels_total":       true,
	"channels_working":     true,
	"channels_blackscreen": true,
}

type GormGateway struct {
	db    *gorm.DB
	clock func() time.Time
}

type Option func(*GormGateway)

// WithClock replaces time.Now as the source of row timestamps.
func WithClock(clock func() time.Time) Option {
	return func(g *GormGateway) {
		g.clock = clock
	}
}

func NewGormGateway(db *gorm.DB, opts ...Option) *GormGateway {
	g := &GormGateway{
		db:    db,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *GormGateway) now() time.Time {
	return g.clock().UTC().Truncate(time.Microsecond)
}

func (g *GormGateway) Insert(ctx context.Context, form models.CameraFormData) (uint, error) {
	now := g.now()
	camera := models.Camera{
		Name:                form.Name,
		IP:                  form.IP,
		Serial:              form.Serial,
		Location:            form.Location,
		Store:               form.Store,
		Status:              form.Status,
		ChannelsTotal:       form.ChannelsTotal,
		ChannelsWorking:     form.ChannelsWorking,
		ChannelsBlackscreen: form.ChannelsBlackscreen,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := g.db.WithContext(ctx).Create(&camera).Error; err != nil {
		return 0, fmt.Errorf("failed to insert camera: %w", err)
	}
	return camera.ID, nil
}

func (g *GormGateway) UpdateByID(ctx context.Context, id uint, fields []models.FieldUpdate) (int64, error) {
	if len(fields) == 0 {
		return 0, ErrNoFields
	}

	assignments := make(map[string]any, len(fields)+1)
	for _, f := range fields {
		if !updatableColumns[f.Column] {
			return 0, fmt.Errorf("column %q is not updatable", f.Column)
		}
		assignments[f.Column] = f.Value
	}

	var affected int64
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current []models.Camera
		if err := tx.Select("id", "updated_at").Where("id = ?", id).Limit(1).Find(&current).Error; err != nil {
			return err
		}
		if len(current) == 0 {
			return nil
		}

		// updated_at never moves backwards or stands still
		now := g.now()
		if !now.After(current[0].UpdatedAt) {
			now = current[0].UpdatedAt.Add(time.Microsecond)
		}
		assignments["updated_at"] = now

		result := tx.Model(&models.Camera{}).Where("id = ?", id).UpdateColumns(assignments)
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to update camera %d: %w", id, err)
	}
	return affected, nil
}

func (g *GormGateway) DeleteByID(ctx context.Context, id uint) (int64, error) {
	result := g.db.WithContext(ctx).Delete(&models.Camera{}, id)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete camera %d: %w", id, result.Error)
	}
	return result.RowsAffected, nil
}

func (g *GormGateway) GetByID(ctx context.Context, id uint) (*models.Camera, error) {
	var cameras []models.Camera
	if err := g.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&cameras).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch camera %d: %w", id, err)
	}
	if len(cameras) == 0 {
		return nil, nil
	}
	return &cameras[0], nil
}

func (g *GormGateway) ListAll(ctx context.Context) ([]models.Camera, error) {
	var cameras []models.Camera
	if err := g.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&cameras).Error; err != nil {
		return nil, fmt.Errorf("failed to list cameras: %w", err)
	}
	if cameras == nil {
		cameras = []models.Camera{}
	}
	return cameras, nil
}
