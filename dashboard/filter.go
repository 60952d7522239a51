package dashboard

import (
	"fmt"
	"strings"

	"github.com/devsparksuporte-web/PotencialCameras/models"
)

// QuickFilter is the filter selected by clicking a metric tile.
type QuickFilter string

const (
	QuickAll         QuickFilter = "all"
	QuickOnline      QuickFilter = "online"
	QuickOffline     QuickFilter = "offline"
	QuickAviso       QuickFilter = "aviso"
	QuickErro        QuickFilter = "erro"
	QuickReparo      QuickFilter = "reparo"
	QuickWorking     QuickFilter = "working"
	QuickBlackscreen QuickFilter = "blackscreen"
	// QuickTotal is the channel total tile; it does not narrow the list.
	QuickTotal QuickFilter = "total"
)

func ParseQuickFilter(s string) (QuickFilter, error) {
	switch q := QuickFilter(s); q {
	case "":
		return QuickAll, nil
	case QuickAll, QuickOnline, QuickOffline, QuickAviso, QuickErro, QuickReparo,
		QuickWorking, QuickBlackscreen, QuickTotal:
		return q, nil
	}
	return "", fmt.Errorf("unknown quick filter %q", s)
}

func (q QuickFilter) matches(c models.Camera) bool {
	switch q {
	case "", QuickAll, QuickTotal:
		return true
	case QuickWorking:
		return c.ChannelsWorking > 0
	case QuickBlackscreen:
		return c.ChannelsBlackscreen > 0
	default:
		return c.Status == models.Status(q)
	}
}

// StatusFilter is the dropdown status selector; StatusAll disables it.
type StatusFilter string

const StatusAll StatusFilter = "all"

func ParseStatusFilter(s string) (StatusFilter, error) {
	if s == "" || s == string(StatusAll) {
		return StatusAll, nil
	}
	if !models.Status(s).Valid() {
		return "", fmt.Errorf("unknown status filter %q", s)
	}
	return StatusFilter(s), nil
}

func (f StatusFilter) matches(c models.Camera) bool {
	if f == "" || f == StatusAll {
		return true
	}
	return c.Status == models.Status(f)
}

// Filter combines every dashboard selector. A camera passes only if it
// satisfies all of them, so a quick filter and a dropdown status that
// disagree select nothing.
type Filter struct {
	Quick  QuickFilter
	Status StatusFilter
	Store  string
	Query  string
}

func (f Filter) Matches(c models.Camera) bool {
	if !f.Quick.matches(c) {
		return false
	}
	if !f.Status.matches(c) {
		return false
	}
	if !storeMatches(f.Store, c) {
		return false
	}
	return queryMatches(f.Query, c)
}

// Apply returns the cameras that pass the filter, in input order.
func (f Filter) Apply(cameras []models.Camera) []models.Camera {
	filtered := make([]models.Camera, 0, len(cameras))
	for _, c := range cameras {
		if f.Matches(c) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

func storeMatches(store string, c models.Camera) bool {
	if store == "" || store == AllStores || store == "all" {
		return true
	}
	return c.Store == store
}

func queryMatches(query string, c models.Camera) bool {
	if query == "" {
		return true
	}
	haystack := strings.ToLower(strings.Join([]string{c.Name, c.IP, c.Serial, c.Location, c.Store}, " "))
	return strings.Contains(haystack, strings.ToLower(query))
}
