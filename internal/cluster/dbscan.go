package cluster

import (
	"sort"

	"github.com/chrisdamba/roadatasim/internal/models"
	"gonum.org/v1/gonum/stat"
)

// Noise is the label DBSCAN gives points that belong to no cluster.
const Noise = -1

// Point is a coordinate tagged with the request row it came from.
type Point struct {
	ID  int64
	Loc models.Location
}

// DBSCAN clusters points by density using great-circle distance. Neighbor
// search is a brute-force scan; the datasets here are a few thousand rows.
type DBSCAN struct {
	EpsKm      float64
	MinSamples int
}

// Fit returns a label per point, parallel to the input: 0..K-1 for cluster
// members, Noise for unclustered points. Fewer points than MinSamples means
// no clustering is attempted and everything is Noise.
func (d DBSCAN) Fit(points []Point) []int {
	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = Noise
	}
	if len(points) < d.MinSamples {
		return labels
	}

	const unvisited = -2
	state := make([]int, len(points))
	for i := range state {
		state[i] = unvisited
	}

	next := 0
	for i := range points {
		if state[i] != unvisited {
			continue
		}
		neighbors := d.regionQuery(points, i)
		if len(neighbors) < d.MinSamples {
			state[i] = Noise
			continue
		}

		state[i] = next
		queue := append([]int(nil), neighbors...)
		for len(queue) > 0 {
			j := queue[0]
			queue = queue[1:]

			if state[j] == Noise {
				state[j] = next // border point reachable from a core point
			}
			if state[j] != unvisited {
				continue
			}
			state[j] = next

			jn := d.regionQuery(points, j)
			if len(jn) >= d.MinSamples {
				queue = append(queue, jn...)
			}
		}
		next++
	}

	copy(labels, state)
	return labels
}

// regionQuery returns the indexes of all points within EpsKm of points[i],
// including i itself.
func (d DBSCAN) regionQuery(points []Point, i int) []int {
	var neighbors []int
	for j := range points {
		if points[i].Loc.HaversineKm(points[j].Loc) <= d.EpsKm {
			neighbors = append(neighbors, j)
		}
	}
	return neighbors
}

// ZoneLabels remaps raw cluster labels to stable zone ids: clusters become
// 1..K in ascending order of their internal label, noise becomes zone 0.
func ZoneLabels(labels []int) []int {
	unique := map[int]bool{}
	for _, l := range labels {
		if l >= 0 {
			unique[l] = true
		}
	}
	ordered := make([]int, 0, len(unique))
	for l := range unique {
		ordered = append(ordered, l)
	}
	sort.Ints(ordered)

	toZone := make(map[int]int, len(ordered))
	for i, l := range ordered {
		toZone[l] = i + 1
	}

	zones := make([]int, len(labels))
	for i, l := range labels {
		if l == Noise {
			zones[i] = models.NoiseZoneID
		} else {
			zones[i] = toZone[l]
		}
	}
	return zones
}

// Clusters groups points by label, dropping noise.
func Clusters(points []Point, labels []int) map[int][]Point {
	out := make(map[int][]Point)
	for i, l := range labels {
		if l == Noise {
			continue
		}
		out[l] = append(out[l], points[i])
	}
	return out
}

// Centroid is the arithmetic mean coordinate of a set of points.
func Centroid(points []Point) models.Location {
	lats := make([]float64, len(points))
	lons := make([]float64, len(points))
	for i, p := range points {
		lats[i] = p.Loc.Lat
		lons[i] = p.Loc.Lon
	}
	return models.Location{
		Lat: stat.Mean(lats, nil),
		Lon: stat.Mean(lons, nil),
	}
}
