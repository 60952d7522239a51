// Package dashboard derives metrics, store lists, filtered views and CSV
// reports from an in-memory list of cameras. Nothing here does I/O beyond
// writing to a caller-supplied writer.
package dashboard

import (
	"github.com/devsparksuporte-web/PotencialCameras/models"
)

// AllStores is the store selector value that matches every store.
const AllStores = "Todas"

type Metrics struct {
	Total    int             `json:"total"`
	Online   int             `json:"online"`
	Offline  int             `json:"offline"`
	Aviso    int             `json:"aviso"`
	Erro     int             `json:"erro"`
	Reparo   int             `json:"reparo"`
	Channels models.Channels `json:"channels"`
}

// ByStatus returns the counter for one status.
func (m Metrics) ByStatus(status models.Status) int {
	switch status {
	case models.StatusOnline:
		return m.Online
	case models.StatusOffline:
		return m.Offline
	case models.StatusAviso:
		return m.Aviso
	case models.StatusErro:
		return m.Erro
	case models.StatusReparo:
		return m.Reparo
	}
	return 0
}

func ComputeMetrics(cameras []models.Camera) Metrics {
	m := Metrics{Total: len(cameras)}
	for _, c := range cameras {
		switch c.Status {
		case models.StatusOnline:
			m.Online++
		case models.StatusOffline:
			m.Offline++
		case models.StatusAviso:
			m.Aviso++
		case models.StatusErro:
			m.Erro++
		case models.StatusReparo:
			m.Reparo++
		}
		m.Channels.Total += c.ChannelsTotal
		m.Channels.Working += c.ChannelsWorking
		m.Channels.Blackscreen += c.ChannelsBlackscreen
	}
	return m
}

// Stores returns AllStores followed by each distinct store in order of
// first appearance.
func Stores(cameras []models.Camera) []string {
	stores := []string{AllStores}
	seen := make(map[string]bool)
	for _, c := range cameras {
		if seen[c.Store] {
			continue
		}
		seen[c.Store] = true
		stores = append(stores, c.Store)
	}
	return stores
}

type StoreCount struct {
	Store string `json:"store"`
	Count int    `json:"count"`
}

// StoreDistribution counts cameras per store, in order of first appearance.
func StoreDistribution(cameras []models.Camera) []StoreCount {
	index := make(map[string]int)
	var counts []StoreCount
	for _, c := range cameras {
		i, ok := index[c.Store]
		if !ok {
			i = len(counts)
			index[c.Store] = i
			counts = append(counts, StoreCount{Store: c.Store})
		}
		counts[i].Count++
	}
	return counts
}

// Recent returns up to n cameras from the front of a newest-first list.
func Recent(cameras []models.Camera, n int) []models.Camera {
	if n < 0 {
		n = 0
	}
	if n > len(cameras) {
		n = len(cameras)
	}
	recent := make([]models.Camera, n)
	copy(recent, cameras)
	return recent
}
