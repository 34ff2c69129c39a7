package jobs

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/chrisdamba/roadatasim/internal/cluster"
	"github.com/chrisdamba/roadatasim/internal/models"
	"github.com/chrisdamba/roadatasim/internal/repositories"
)

// ZoneAssignmentJob reclusters every request coordinate into zones and
// rewrites the zone labels. Each run recomputes the whole partition from
// scratch; there is no incremental update.
type ZoneAssignmentJob struct {
	Config   *models.Config
	Requests repositories.RequestRepository
}

func (j *ZoneAssignmentJob) Run(ctx context.Context) error {
	points, err := j.Requests.GetPoints(ctx)
	if err != nil {
		return fmt.Errorf("loading request points: %w", err)
	}
	if len(points) == 0 {
		log.Printf("no points with lat/long found")
		return nil
	}

	clusterPoints := make([]cluster.Point, len(points))
	for i, p := range points {
		clusterPoints[i] = cluster.Point{ID: p.RequestID, Loc: p.Location}
	}

	dbscan := cluster.DBSCAN{
		EpsKm:      j.Config.ClusterEpsKm,
		MinSamples: j.Config.ClusterMinSamples,
	}
	zones := cluster.ZoneLabels(dbscan.Fit(clusterPoints))

	assignments := make([]models.ZoneAssignment, len(points))
	sizes := map[int]int{}
	for i, p := range points {
		assignments[i] = models.ZoneAssignment{RequestID: p.RequestID, ZoneID: zones[i]}
		sizes[zones[i]]++
	}
	logZoneSizes(sizes)

	if err := j.Requests.BulkUpdateZones(ctx, assignments); err != nil {
		return fmt.Errorf("updating zone labels: %w", err)
	}

	log.Printf("zone_id updated for %d requests", len(assignments))
	return nil
}

func logZoneSizes(sizes map[int]int) {
	ids := make([]int, 0, len(sizes))
	for id := range sizes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		log.Printf("zone %d: %d requests", id, sizes[id])
	}
}
