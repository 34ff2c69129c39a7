package jobs

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/chrisdamba/roadatasim/internal/cluster"
	"github.com/chrisdamba/roadatasim/internal/models"
	"github.com/chrisdamba/roadatasim/internal/repositories"
)

// HotspotJob clusters the raw point cloud (independent of any assigned
// zones) and records one row per dense cluster. The whole territory is
// reported under zone 0 pending multi-zone support.
type HotspotJob struct {
	Config   *models.Config
	Requests repositories.RequestRepository
	Hotspots repositories.HotspotRepository
}

func (j *HotspotJob) Run(ctx context.Context) error {
	points, err := j.Requests.GetPoints(ctx)
	if err != nil {
		return fmt.Errorf("loading request points: %w", err)
	}
	if len(points) == 0 {
		log.Printf("no lat/long data found in roadside_requests")
		return nil
	}

	rows := ComputeHotspots(points, j.Config.HotspotEpsKm, j.Config.HotspotMinSamples)
	if len(rows) == 0 {
		log.Printf("no hotspots identified")
		return nil
	}

	if err := j.Hotspots.EnsureTable(ctx); err != nil {
		return err
	}

	switch j.Config.HotspotWriteMode {
	case models.HotspotWriteReplace:
		// All rows in one run share the run-wide as-of-date semantics, but
		// each cluster carries the date of its own latest member; replace
		// per distinct date so a rerun supersedes exactly what it recomputed.
		for _, asOf := range distinctDates(rows) {
			var batch []models.Hotspot
			for _, h := range rows {
				if h.AsOfDate.Equal(asOf) {
					batch = append(batch, h)
				}
			}
			if err := j.Hotspots.ReplaceForDate(ctx, asOf, batch); err != nil {
				return fmt.Errorf("writing hotspots: %w", err)
			}
		}
	case models.HotspotWriteAppend, "":
		if err := j.Hotspots.Append(ctx, rows); err != nil {
			return fmt.Errorf("writing hotspots: %w", err)
		}
	default:
		return fmt.Errorf("unknown hotspot write mode %q", j.Config.HotspotWriteMode)
	}

	log.Printf("hotspots written to roadside_hotspots: %d clusters", len(rows))
	return nil
}

// ComputeHotspots runs DBSCAN over the point cloud and summarizes each
// non-noise cluster: centroid, member count as score, latest member
// request time as the as-of-date. Noise points are dropped entirely.
func ComputeHotspots(points []models.RequestPoint, epsKm float64, minSamples int) []models.Hotspot {
	clusterPoints := make([]cluster.Point, len(points))
	byID := make(map[int64]models.RequestPoint, len(points))
	for i, p := range points {
		clusterPoints[i] = cluster.Point{ID: p.RequestID, Loc: p.Location}
		byID[p.RequestID] = p
	}

	dbscan := cluster.DBSCAN{EpsKm: epsKm, MinSamples: minSamples}
	labels := dbscan.Fit(clusterPoints)

	grouped := cluster.Clusters(clusterPoints, labels)
	clusterIDs := make([]int, 0, len(grouped))
	for id := range grouped {
		clusterIDs = append(clusterIDs, id)
	}
	sort.Ints(clusterIDs)

	var rows []models.Hotspot
	for _, clusterID := range clusterIDs {
		members := grouped[clusterID]
		centroid := cluster.Centroid(members)

		var latest time.Time
		for _, m := range members {
			ts := byID[m.ID].RequestTs
			if ts.After(latest) {
				latest = ts
			}
		}

		rows = append(rows, models.Hotspot{
			AsOfDate:     latest.Truncate(24 * time.Hour),
			ZoneID:       models.NoiseZoneID, // whole territory as a single zone for now
			ClusterID:    clusterID,
			CentroidLat:  centroid.Lat,
			CentroidLng:  centroid.Lon,
			HotspotScore: float64(len(members)),
			Method:       models.ModelDBSCAN,
		})
	}
	return rows
}

func distinctDates(rows []models.Hotspot) []time.Time {
	seen := map[time.Time]bool{}
	var dates []time.Time
	for _, h := range rows {
		if !seen[h.AsOfDate] {
			seen[h.AsOfDate] = true
			dates = append(dates, h.AsOfDate)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
