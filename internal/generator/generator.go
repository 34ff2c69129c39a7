package generator

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/chrisdamba/roadatasim/internal/cloudwriter"
	"github.com/chrisdamba/roadatasim/internal/factories"
	"github.com/chrisdamba/roadatasim/internal/models"
	"github.com/schollz/progressbar/v3"
)

// Generator produces a synthetic roadside-request dataset: realistic base
// records plus a handful of injected fraud patterns that downstream
// analyses are expected to surface.
type Generator struct {
	Config  *models.Config
	Factory *factories.RequestFactory
	Rng     *rand.Rand
}

func NewGenerator(config *models.Config) *Generator {
	rng := rand.New(rand.NewSource(int64(config.Seed)))
	return &Generator{
		Config:  config,
		Factory: factories.NewRequestFactory(config, rng),
		Rng:     rng,
	}
}

// GenerateRequests builds the configured number of records, injects the
// anomaly patterns, and returns the dataset sorted by request time.
func (g *Generator) GenerateRequests() []*models.Request {
	n := g.Config.GenerateRecords
	requests := make([]*models.Request, n)

	bar := progressbar.Default(int64(n), "generating requests")
	for i := 0; i < n; i++ {
		requests[i] = g.Factory.CreateRequest(g.Config.StartRequestID + int64(i))
		_ = bar.Add(1)
	}

	g.injectDuplicateVINs(requests)
	g.injectOverlappingJobs(requests)
	g.injectImpossibleMiles(requests)

	sort.Slice(requests, func(i, j int) bool {
		return requests[i].RequestTs.Before(requests[j].RequestTs)
	})
	return requests
}

// injectDuplicateVINs reuses 20 fabricated VINs across 5-15 rows each, a
// membership-fraud pattern.
func (g *Generator) injectDuplicateVINs(requests []*models.Request) {
	for i := 0; i < 20; i++ {
		fraudVIN := g.Factory.GenerateVIN()
		uses := 5 + g.Rng.Intn(11)
		for j := 0; j < uses; j++ {
			requests[g.Rng.Intn(len(requests))].VIN = fraudVIN
		}
	}
}

// injectOverlappingJobs forces five trucks to each have five jobs packed
// into a single hour, so the truck appears to be in two places at once.
func (g *Generator) injectOverlappingJobs(requests []*models.Request) {
	byTruck := make(map[int][]*models.Request)
	for _, r := range requests {
		byTruck[r.TruckID] = append(byTruck[r.TruckID], r)
	}

	trucks := make([]int, 0, len(byTruck))
	for id, rows := range byTruck {
		if len(rows) >= 5 {
			trucks = append(trucks, id)
		}
	}
	sort.Ints(trucks)
	g.Rng.Shuffle(len(trucks), func(i, j int) { trucks[i], trucks[j] = trucks[j], trucks[i] })
	if len(trucks) > 5 {
		trucks = trucks[:5]
	}

	for _, truckID := range trucks {
		rows := byTruck[truckID]
		g.Rng.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })

		base := g.Factory.RandomTimestamp()
		for j, r := range rows[:5] {
			r.RequestTs = base.Add(time.Duration(j*5) * time.Minute)
			r.DispatchTs = r.RequestTs.Add(5 * time.Minute)
			r.ArrivalTs = r.DispatchTs.Add(5 * time.Minute)
			r.CompletionTs = r.ArrivalTs.Add(20 * time.Minute)
		}
	}
}

// injectImpossibleMiles sets 30 rows to a tow distance no truck could cover
// in the recorded service window.
func (g *Generator) injectImpossibleMiles(requests []*models.Request) {
	for i := 0; i < 30; i++ {
		requests[g.Rng.Intn(len(requests))].MilesTowed = 200.0
	}
}

// DetermineOutputs builds the configured export destinations: Kafka when
// enabled, otherwise a file export (local or S3-backed) when an output
// path is set, otherwise the console.
func (g *Generator) DetermineOutputs(ctx context.Context) ([]OutputDestination, error) {
	cfg := g.Config

	if cfg.KafkaEnabled {
		out, err := NewKafkaOutput(cfg.KafkaBrokerList, cfg.KafkaTopic)
		if err != nil {
			return nil, err
		}
		return []OutputDestination{out}, nil
	}

	if cfg.OutputPath != "" {
		name := objectName(cfg.OutputFormat, cfg.EndDate)

		if cfg.OutputDestination == "s3" {
			factory, err := cloudwriter.NewS3WriterFactory(ctx, cfg.CloudStorage.Region)
			if err != nil {
				return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
			}
			cw, err := factory.NewWriter(cfg.CloudStorage.BucketName, filepath.Join(cfg.OutputFolder, name))
			if err != nil {
				return nil, err
			}
			switch cfg.OutputFormat {
			case "parquet":
				return []OutputDestination{NewCloudParquetOutput(cw)}, nil
			case "csv":
				return []OutputDestination{NewCSVOutput(cw)}, nil
			default:
				return nil, fmt.Errorf("unsupported output format: %s", cfg.OutputFormat)
			}
		}

		path := filepath.Join(cfg.OutputPath, cfg.OutputFolder, name)
		switch cfg.OutputFormat {
		case "parquet":
			out, err := NewLocalParquetOutput(path)
			if err != nil {
				return nil, err
			}
			return []OutputDestination{out}, nil
		case "csv":
			if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
				return nil, err
			}
			file, err := os.Create(path)
			if err != nil {
				return nil, err
			}
			log.Printf("writing csv export to %s", path)
			return []OutputDestination{NewCSVOutput(file)}, nil
		default:
			return nil, fmt.Errorf("unsupported output format: %s", cfg.OutputFormat)
		}
	}

	return []OutputDestination{&ConsoleOutput{}}, nil
}
