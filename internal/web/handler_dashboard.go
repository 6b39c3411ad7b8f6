package web

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"cargo-portal/internal/listing"
	"cargo-portal/internal/model"
)

// recentShipments is how many rows the overview shows.
const recentShipments = 5

// statusCount is one tile on the overview.
type statusCount struct {
	Name  string
	Color string
	Count int
}

// Dashboard shows shipment counts per status and the latest shipments.
func (h *Handler) Dashboard(c *gin.Context) {
	var (
		shipments  []model.Shipment
		statuses   []model.ShipmentStatus
		facilities []model.Facility
	)

	tok := token(c)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		shipments, err = h.backend.ListShipments(ctx, tok)
		return err
	})
	g.Go(func() (err error) {
		statuses, err = h.backend.ListStatuses(ctx, tok)
		return err
	})
	g.Go(func() (err error) {
		facilities, err = h.backend.ListFacilities(ctx, tok)
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(c, err, "Failed to load the dashboard.")
		return
	}

	counts := listing.CountByStatus(shipments)
	listing.SortStatuses(statuses)
	tiles := make([]statusCount, 0, len(statuses))
	seen := make(map[string]bool, len(statuses))
	for _, st := range statuses {
		tiles = append(tiles, statusCount{Name: st.Name, Color: st.Color, Count: counts[st.Name]})
		seen[st.Name] = true
	}
	// Shipments may carry statuses that were since removed from the configuration.
	var orphans []string
	for name := range counts {
		if !seen[name] {
			orphans = append(orphans, name)
		}
	}
	sort.Strings(orphans)
	for _, name := range orphans {
		tiles = append(tiles, statusCount{Name: name, Count: counts[name]})
	}

	recent := make([]model.Shipment, len(shipments))
	copy(recent, shipments)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].CreatedAt.After(recent[j].CreatedAt) })
	if len(recent) > recentShipments {
		recent = recent[:recentShipments]
	}

	active := len(listing.Filter(facilities, func(f model.Facility) bool { return f.Active }))

	h.render(c, http.StatusOK, "dashboard.html", "Dashboard", gin.H{
		"Total":            len(shipments),
		"Tiles":            tiles,
		"Recent":           recent,
		"FacilityCount":    len(facilities),
		"ActiveFacilities": active,
	})
}
