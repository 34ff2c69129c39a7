package factories

import (
	"math/rand"
	"time"

	"github.com/chrisdamba/roadatasim/internal/models"
	"github.com/jaswdr/faker"
)

// vinChars excludes I, O and Q, commonly omitted in real VINs.
const vinChars = "ABCDEFGHJKLMNPRSTUVWXYZ0123456789"

var peakHours = []int{7, 8, 9, 16, 17, 18, 19}

// RequestFactory builds synthetic roadside requests with realistic time
// and location structure: calls scatter around configured zone centers,
// lean into rush hours, and carry a plausible dispatch chain.
type RequestFactory struct {
	config  *models.Config
	rng     *rand.Rand
	fake    faker.Faker
	allZips []string
}

func NewRequestFactory(config *models.Config, rng *rand.Rand) *RequestFactory {
	var allZips []string
	for _, z := range config.Zones {
		allZips = append(allZips, z.ZipCodes...)
	}
	return &RequestFactory{
		config:  config,
		rng:     rng,
		fake:    faker.NewWithSeed(rand.NewSource(int64(config.Seed))),
		allZips: allZips,
	}
}

func (rf *RequestFactory) CreateRequest(requestID int64) *models.Request {
	zone := rf.config.Zones[rf.rng.Intn(len(rf.config.Zones))]
	zipCode := zone.ZipCodes[rf.rng.Intn(len(zone.ZipCodes))]

	// Gaussian scatter around the zone center, ~2km spread.
	latitude := zone.CenterLat + rf.rng.NormFloat64()*0.02
	longitude := zone.CenterLon + rf.rng.NormFloat64()*0.02

	requestTs := rf.biasedTimestamp()

	dispatchTs := requestTs.Add(time.Duration(rf.fake.IntBetween(1, 20)) * time.Minute)
	arrivalTs := dispatchTs.Add(time.Duration(rf.fake.IntBetween(5, 45)) * time.Minute)
	completionTs := arrivalTs.Add(time.Duration(rf.fake.IntBetween(10, 90)) * time.Minute)

	roadType := rf.weightedChoice(models.RoadTypes, models.RoadTypeWeights)
	issueType := rf.weightedChoice(models.IssueTypes, models.IssueTypeWeights)
	callSource := rf.weightedChoice(models.CallSources, models.CallSourceWeights)

	// Member lives where the service happened 70% of the time.
	memberHomeZip := zipCode
	if rf.rng.Float64() >= 0.7 && len(rf.allZips) > 1 {
		for memberHomeZip == zipCode {
			memberHomeZip = rf.allZips[rf.rng.Intn(len(rf.allZips))]
		}
	}

	return &models.Request{
		RequestID:       requestID,
		MemberID:        int64(rf.fake.IntBetween(1000, 9999)),
		RequestTs:       requestTs,
		DispatchTs:      dispatchTs,
		ArrivalTs:       arrivalTs,
		CompletionTs:    completionTs,
		Latitude:        latitude,
		Longitude:       longitude,
		ZipCode:         zipCode,
		City:            zone.City,
		State:           zone.State,
		RoadType:        roadType,
		IssueType:       issueType,
		TruckID:         rf.config.TruckIDMin + rf.rng.Intn(rf.config.TruckIDMax-rf.config.TruckIDMin+1),
		VIN:             rf.GenerateVIN(),
		MilesTowed:      rf.milesTowed(issueType, roadType),
		CallSource:      callSource,
		MembershipStart: requestTs.AddDate(0, 0, -rf.rng.Intn(10*365+1)),
		MemberHomeZip:   memberHomeZip,
	}
}

// RandomTimestamp picks a uniform instant within the configured date range.
func (rf *RequestFactory) RandomTimestamp() time.Time {
	delta := rf.config.EndDate.Sub(rf.config.StartDate)
	return rf.config.StartDate.Add(time.Duration(rf.rng.Int63n(int64(delta) + 1)))
}

// biasedTimestamp resamples 30% of off-peak draws into rush hours and
// nudges weekend draws to simulate clusters.
func (rf *RequestFactory) biasedTimestamp() time.Time {
	ts := rf.RandomTimestamp()

	if !isPeakHour(ts.Hour()) && rf.rng.Float64() < 0.3 {
		newHour := peakHours[rf.rng.Intn(len(peakHours))]
		ts = time.Date(ts.Year(), ts.Month(), ts.Day(), newHour,
			rf.rng.Intn(60), rf.rng.Intn(60), 0, ts.Location())
	}

	if dow := ts.Weekday(); (dow == time.Saturday || dow == time.Sunday) && rf.rng.Float64() < 0.3 {
		ts = ts.Add(time.Duration(rf.rng.Intn(61)-30) * time.Minute)
	}

	return ts
}

// GenerateVIN produces a fake VIN-like string; plausible, not valid.
func (rf *RequestFactory) GenerateVIN() string {
	vin := make([]byte, 17)
	for i := range vin {
		vin[i] = vinChars[rf.rng.Intn(len(vinChars))]
	}
	return string(vin)
}

func (rf *RequestFactory) milesTowed(issueType, roadType string) float64 {
	var miles float64
	switch {
	case issueType == "TOW" && roadType == "HIGHWAY":
		miles = maxFloat(0.5, 15+rf.rng.NormFloat64()*8)
	case issueType == "TOW":
		miles = maxFloat(0.5, 8+rf.rng.NormFloat64()*5)
	case rf.rng.Float64() < 0.7:
		miles = 0.0 // non-tow services are usually zero miles
	default:
		miles = maxFloat(0.5, 5+rf.rng.NormFloat64()*3)
	}
	return float64(int(miles*10+0.5)) / 10
}

func (rf *RequestFactory) weightedChoice(options []string, weights []float64) string {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := rf.rng.Float64() * total
	sum := 0.0
	for i, option := range options {
		sum += weights[i]
		if r <= sum {
			return option
		}
	}
	return options[len(options)-1]
}

func isPeakHour(hour int) bool {
	for _, h := range peakHours {
		if h == hour {
			return true
		}
	}
	return false
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
