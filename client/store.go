package client

import (
	"context"
	"errors"
	"sync"

	"github.com/devsparksuporte-web/PotencialCameras/dashboard"
	"github.com/devsparksuporte-web/PotencialCameras/models"
)

// ErrUnmounted is returned by a Store that is not mounted.
var ErrUnmounted = errors.New("camera store is not mounted")

// Backend is the subset of API used by Store.
type Backend interface {
	List(ctx context.Context) ([]models.Camera, error)
	Create(ctx context.Context, form models.CameraFormData) (*models.Camera, error)
	Update(ctx context.Context, id uint, patch models.CameraPatch) (*models.Camera, error)
	Delete(ctx context.Context, id uint) error
}

// Store holds the camera list shown by one dashboard. Mutations go to the
// backend first and touch local state only after they succeed.
type Store struct {
	backend Backend

	mu      sync.RWMutex
	mounted bool
	// epoch changes on every Mount and Unmount so results of requests
	// started in an earlier lifetime are dropped.
	epoch   uint64
	cameras []models.Camera
	loading bool
	err     error
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Mount makes the store usable and performs the initial fetch.
func (s *Store) Mount(ctx context.Context) error {
	s.mu.Lock()
	s.mounted = true
	s.epoch++
	s.cameras = nil
	s.err = nil
	s.mu.Unlock()

	return s.Refetch(ctx)
}

// Unmount clears the state. Later calls fail with ErrUnmounted until the
// next Mount.
func (s *Store) Unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mounted = false
	s.epoch++
	s.cameras = nil
	s.loading = false
	s.err = nil
}

func (s *Store) Cameras() []models.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Camera, len(s.cameras))
	copy(out, s.cameras)
	return out
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err is the error of the last list request, or nil.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Snapshot derives dashboard figures and the filtered list from the
// current state.
func (s *Store) Snapshot(filter dashboard.Filter) dashboard.Snapshot {
	return dashboard.BuildSnapshot(s.Cameras(), filter)
}

// begin returns the current epoch, or ErrUnmounted.
func (s *Store) begin() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.mounted {
		return 0, ErrUnmounted
	}
	return s.epoch, nil
}

// Refetch reloads the list. On failure the list is cleared and Err is set.
func (s *Store) Refetch(ctx context.Context) error {
	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return ErrUnmounted
	}
	epoch := s.epoch
	s.loading = true
	s.mu.Unlock()

	cameras, err := s.backend.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch {
		return ErrUnmounted
	}
	s.loading = false
	if err != nil {
		s.cameras = nil
		s.err = err
		return err
	}
	s.cameras = cameras
	s.err = nil
	return nil
}

// Add creates a camera and puts it at the front of the list.
func (s *Store) Add(ctx context.Context, form models.CameraFormData) (*models.Camera, error) {
	epoch, err := s.begin()
	if err != nil {
		return nil, err
	}

	created, err := s.backend.Create(ctx, form)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch {
		return nil, ErrUnmounted
	}
	if created != nil {
		s.cameras = append([]models.Camera{*created}, s.cameras...)
	}
	return created, nil
}

// Update applies patch to the camera with the id and replaces the local
// entry with the server's copy. A nil result leaves the list unchanged.
func (s *Store) Update(ctx context.Context, id uint, patch models.CameraPatch) (*models.Camera, error) {
	epoch, err := s.begin()
	if err != nil {
		return nil, err
	}

	updated, err := s.backend.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch {
		return nil, ErrUnmounted
	}
	if updated != nil {
		next := make([]models.Camera, len(s.cameras))
		for i, c := range s.cameras {
			if c.ID == id {
				c = *updated
			}
			next[i] = c
		}
		s.cameras = next
	}
	return updated, nil
}

// Delete removes the camera on the server and then from the list.
func (s *Store) Delete(ctx context.Context, id uint) error {
	epoch, err := s.begin()
	if err != nil {
		return err
	}

	if err := s.backend.Delete(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch {
		return ErrUnmounted
	}
	next := make([]models.Camera, 0, len(s.cameras))
	for _, c := range s.cameras {
		if c.ID != id {
			next = append(next, c)
		}
	}
	s.cameras = next
	return nil
}
