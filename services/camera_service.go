package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/devsparksuporte-web/PotencialCameras/dashboard"
	"github.com/devsparksuporte-web/PotencialCameras/database"
	"github.com/devsparksuporte-web/PotencialCameras/logger"
	"github.com/devsparksuporte-web/PotencialCameras/models"
	"github.com/devsparksuporte-web/PotencialCameras/validation"

	"github.com/rs/zerolog"
)

// ErrNoFieldsToUpdate is returned for an update that names no field.
var ErrNoFieldsToUpdate = errors.New("no fields to update")

// StorageError hides a gateway failure behind a generic message. The cause
// is kept for logging and errors.Is, never for clients.
type StorageError struct {
	Message string
	Err     error
}

func (e *StorageError) Error() string { return e.Message }

func (e *StorageError) Unwrap() error { return e.Err }

// CameraService implements the camera operations of the API on top of a
// storage gateway. It keeps no state between calls.
type CameraService struct {
	gateway database.Gateway
	log     zerolog.Logger
}

func NewCameraService(gateway database.Gateway) *CameraService {
	return &CameraService{
		gateway: gateway,
		log:     logger.WithComponent("camera-service"),
	}
}

// ParseID reads a camera id from a path segment.
func ParseID(idParam string) (uint, error) {
	id, err := strconv.ParseUint(idParam, 10, 63)
	if err != nil {
		return 0, &validation.ValidationError{Violations: []validation.FieldViolation{
			{Field: "id", Message: "must be a non-negative integer"},
		}}
	}
	return uint(id), nil
}

func (s *CameraService) storageError(op, message string, err error) error {
	s.log.Error().Err(err).Str("op", op).Msg(message)
	return &StorageError{Message: message, Err: err}
}

// List returns every camera, newest first.
func (s *CameraService) List(ctx context.Context) ([]models.Camera, error) {
	cameras, err := s.gateway.ListAll(ctx)
	if err != nil {
		return nil, s.storageError("list", "Failed to fetch cameras", err)
	}
	return cameras, nil
}

// Get returns the camera with the id, or nil when there is none.
func (s *CameraService) Get(ctx context.Context, idParam string) (*models.Camera, error) {
	id, err := ParseID(idParam)
	if err != nil {
		return nil, err
	}

	camera, err := s.gateway.GetByID(ctx, id)
	if err != nil {
		return nil, s.storageError("get", "Failed to fetch camera", err)
	}
	return camera, nil
}

// Create validates and stores a camera, then returns the stored row. If the
// read back fails the row has still been created.
func (s *CameraService) Create(ctx context.Context, raw []byte) (*models.Camera, error) {
	form, err := validation.ValidateCreate(raw)
	if err != nil {
		return nil, err
	}

	id, err := s.gateway.Insert(ctx, form)
	if err != nil {
		return nil, s.storageError("create", "Failed to create camera", err)
	}

	camera, err := s.gateway.GetByID(ctx, id)
	if err != nil {
		return nil, s.storageError("create", "Failed to create camera", err)
	}

	s.log.Info().Uint("camera_id", id).Str("store", form.Store).Msg("camera created")
	return camera, nil
}

// Update applies the fields present in raw and returns the refreshed row,
// or nil when no camera has the id.
func (s *CameraService) Update(ctx context.Context, idParam string, raw []byte) (*models.Camera, error) {
	id, err := ParseID(idParam)
	if err != nil {
		return nil, err
	}

	patch, err := validation.ValidateUpdate(raw)
	if err != nil {
		return nil, err
	}

	fields := patch.Fields()
	if len(fields) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	affected, err := s.gateway.UpdateByID(ctx, id, fields)
	if err != nil {
		return nil, s.storageError("update", "Failed to update camera", err)
	}
	if affected == 0 {
		s.log.Debug().Uint("camera_id", id).Msg("update matched no camera")
	}

	camera, err := s.gateway.GetByID(ctx, id)
	if err != nil {
		return nil, s.storageError("update", "Failed to update camera", err)
	}
	return camera, nil
}

// Delete removes the camera. Deleting an unknown id succeeds.
func (s *CameraService) Delete(ctx context.Context, idParam string) error {
	id, err := ParseID(idParam)
	if err != nil {
		return err
	}

	affected, err := s.gateway.DeleteByID(ctx, id)
	if err != nil {
		return s.storageError("delete", "Failed to delete camera", err)
	}

	s.log.Info().Uint("camera_id", id).Int64("affected", affected).Msg("camera deleted")
	return nil
}

// Snapshot lists the fleet and derives the dashboard view for the filter.
func (s *CameraService) Snapshot(ctx context.Context, filter dashboard.Filter) (dashboard.Snapshot, error) {
	cameras, err := s.List(ctx)
	if err != nil {
		return dashboard.Snapshot{}, err
	}
	return dashboard.BuildSnapshot(cameras, filter), nil
}

// Export lists the fleet and returns the report rows for the filter.
func (s *CameraService) Export(ctx context.Context, filter dashboard.Filter) ([][]string, error) {
	cameras, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return dashboard.ExportRows(filter.Apply(cameras)), nil
}
