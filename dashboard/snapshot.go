package dashboard

import (
	"github.com/devsparksuporte-web/PotencialCameras/models"
)

// RecentLimit is how many cameras the recent panel shows.
const RecentLimit = 3

// Snapshot is everything the dashboard page renders. Metrics, stores,
// distribution and recent cameras describe the whole fleet; Cameras is
// the filtered list.
type Snapshot struct {
	Metrics           Metrics         `json:"metrics"`
	Stores            []string        `json:"stores"`
	StoreDistribution []StoreCount    `json:"store_distribution"`
	Recent            []models.Camera `json:"recent"`
	Cameras           []models.Camera `json:"cameras"`
}

func BuildSnapshot(cameras []models.Camera, filter Filter) Snapshot {
	distribution := StoreDistribution(cameras)
	if distribution == nil {
		distribution = []StoreCount{}
	}
	return Snapshot{
		Metrics:           ComputeMetrics(cameras),
		Stores:            Stores(cameras),
		StoreDistribution: distribution,
		Recent:            Recent(cameras, RecentLimit),
		Cameras:           filter.Apply(cameras),
	}
}
