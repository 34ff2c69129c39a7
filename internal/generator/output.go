package generator

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/chrisdamba/roadatasim/internal/cloudwriter"
	"github.com/chrisdamba/roadatasim/internal/generator/producers"
	"github.com/chrisdamba/roadatasim/internal/models"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

// tsLayout is the timestamp format used in exported files, chosen to load
// cleanly into SQL bulk-import tooling.
const tsLayout = "2006-01-02 15:04:05"

var csvHeader = []string{
	"request_id", "member_id", "request_ts", "dispatch_ts", "arrival_ts",
	"completion_ts", "latitude", "longitude", "zip_code", "city", "state",
	"road_type", "issue_type", "truck_id", "vin", "miles_towed",
	"call_source", "membership_start", "member_home_zip",
}

// OutputDestination receives the full generated dataset in one call.
type OutputDestination interface {
	WriteRequests(requests []*models.Request) error
	Close() error
}

type CSVOutput struct {
	w      io.Writer
	closer io.Closer
}

// NewCSVOutput writes the dataset as a single CSV into w; if w is also a
// Closer (a file or a cloud writer) it is closed with the output.
func NewCSVOutput(w io.Writer) *CSVOutput {
	out := &CSVOutput{w: w}
	if c, ok := w.(io.Closer); ok {
		out.closer = c
	}
	return out
}

func (c *CSVOutput) WriteRequests(requests []*models.Request) error {
	cw := csv.NewWriter(c.w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range requests {
		row := []string{
			strconv.FormatInt(r.RequestID, 10),
			strconv.FormatInt(r.MemberID, 10),
			r.RequestTs.Format(tsLayout),
			r.DispatchTs.Format(tsLayout),
			r.ArrivalTs.Format(tsLayout),
			r.CompletionTs.Format(tsLayout),
			strconv.FormatFloat(r.Latitude, 'f', 6, 64),
			strconv.FormatFloat(r.Longitude, 'f', 6, 64),
			r.ZipCode,
			r.City,
			r.State,
			r.RoadType,
			r.IssueType,
			strconv.Itoa(r.TruckID),
			r.VIN,
			strconv.FormatFloat(r.MilesTowed, 'f', 1, 64),
			r.CallSource,
			r.MembershipStart.Format(tsLayout),
			r.MemberHomeZip,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (c *CSVOutput) Close() error {
	if c.closer != nil {
		return c.closer.Close()
	}
	return nil
}

// parquetRequest mirrors the CSV columns for the parquet export.
type parquetRequest struct {
	RequestID       int64   `parquet:"name=request_id, type=INT64"`
	MemberID        int64   `parquet:"name=member_id, type=INT64"`
	RequestTs       string  `parquet:"name=request_ts, type=BYTE_ARRAY, convertedtype=UTF8"`
	DispatchTs      string  `parquet:"name=dispatch_ts, type=BYTE_ARRAY, convertedtype=UTF8"`
	ArrivalTs       string  `parquet:"name=arrival_ts, type=BYTE_ARRAY, convertedtype=UTF8"`
	CompletionTs    string  `parquet:"name=completion_ts, type=BYTE_ARRAY, convertedtype=UTF8"`
	Latitude        float64 `parquet:"name=latitude, type=DOUBLE"`
	Longitude       float64 `parquet:"name=longitude, type=DOUBLE"`
	ZipCode         string  `parquet:"name=zip_code, type=BYTE_ARRAY, convertedtype=UTF8"`
	City            string  `parquet:"name=city, type=BYTE_ARRAY, convertedtype=UTF8"`
	State           string  `parquet:"name=state, type=BYTE_ARRAY, convertedtype=UTF8"`
	RoadType        string  `parquet:"name=road_type, type=BYTE_ARRAY, convertedtype=UTF8"`
	IssueType       string  `parquet:"name=issue_type, type=BYTE_ARRAY, convertedtype=UTF8"`
	TruckID         int32   `parquet:"name=truck_id, type=INT32"`
	VIN             string  `parquet:"name=vin, type=BYTE_ARRAY, convertedtype=UTF8"`
	MilesTowed      float64 `parquet:"name=miles_towed, type=DOUBLE"`
	CallSource      string  `parquet:"name=call_source, type=BYTE_ARRAY, convertedtype=UTF8"`
	MembershipStart string  `parquet:"name=membership_start, type=BYTE_ARRAY, convertedtype=UTF8"`
	MemberHomeZip   string  `parquet:"name=member_home_zip, type=BYTE_ARRAY, convertedtype=UTF8"`
}

type ParquetOutput struct {
	file source.ParquetFile
}

// NewLocalParquetOutput writes the dataset as a parquet file on disk.
func NewLocalParquetOutput(path string) (*ParquetOutput, error) {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, err
	}
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create local file writer: %w", err)
	}
	return &ParquetOutput{file: fw}, nil
}

// NewCloudParquetOutput writes the dataset through a cloud writer, which
// uploads the buffered object when the output closes.
func NewCloudParquetOutput(cw cloudwriter.CloudWriter) *ParquetOutput {
	return &ParquetOutput{file: &cloudParquetFile{cloudWriter: cw}}
}

func (p *ParquetOutput) WriteRequests(requests []*models.Request) error {
	pw, err := writer.NewParquetWriter(p.file, new(parquetRequest), 4)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}

	for _, r := range requests {
		row := parquetRequest{
			RequestID:       r.RequestID,
			MemberID:        r.MemberID,
			RequestTs:       r.RequestTs.Format(tsLayout),
			DispatchTs:      r.DispatchTs.Format(tsLayout),
			ArrivalTs:       r.ArrivalTs.Format(tsLayout),
			CompletionTs:    r.CompletionTs.Format(tsLayout),
			Latitude:        r.Latitude,
			Longitude:       r.Longitude,
			ZipCode:         r.ZipCode,
			City:            r.City,
			State:           r.State,
			RoadType:        r.RoadType,
			IssueType:       r.IssueType,
			TruckID:         int32(r.TruckID),
			VIN:             r.VIN,
			MilesTowed:      r.MilesTowed,
			CallSource:      r.CallSource,
			MembershipStart: r.MembershipStart.Format(tsLayout),
			MemberHomeZip:   r.MemberHomeZip,
		}
		if err := pw.Write(row); err != nil {
			return fmt.Errorf("failed to write parquet row: %w", err)
		}
	}

	return pw.WriteStop()
}

func (p *ParquetOutput) Close() error {
	return p.file.Close()
}

// cloudParquetFile adapts a CloudWriter to the parquet source interface.
// Cloud objects are write-only here: reads and seeks from the end are not
// supported.
type cloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func (c *cloudParquetFile) Open(name string) (source.ParquetFile, error)   { return c, nil }
func (c *cloudParquetFile) Create(name string) (source.ParquetFile, error) { return c, nil }

func (c *cloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	case io.SeekEnd:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *cloudParquetFile) Read(p []byte) (n int, err error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *cloudParquetFile) Write(p []byte) (n int, err error) {
	return c.cloudWriter.Write(p)
}

func (c *cloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}

type KafkaOutput struct {
	producer *producers.SaramaProducer
	topic    string
}

func NewKafkaOutput(brokerList, topic string) (*KafkaOutput, error) {
	producer, err := producers.NewSaramaProducer(brokerList)
	if err != nil {
		return nil, err
	}
	return &KafkaOutput{producer: producer, topic: topic}, nil
}

func (k *KafkaOutput) WriteRequests(requests []*models.Request) error {
	for _, r := range requests {
		msg, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to marshal request %d: %w", r.RequestID, err)
		}
		if err := k.producer.WriteMessage(k.topic, msg); err != nil {
			return err
		}
	}
	return nil
}

func (k *KafkaOutput) Close() error {
	return k.producer.Close()
}

type ConsoleOutput struct{}

func (c *ConsoleOutput) WriteRequests(requests []*models.Request) error {
	enc := json.NewEncoder(os.Stdout)
	for _, r := range requests {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}
	}
	return nil
}

func (c *ConsoleOutput) Close() error { return nil }

// objectName builds a date-stamped export object name, e.g.
// synthetic_roadside_requests_2024-03-31.csv.
func objectName(format string, end time.Time) string {
	return fmt.Sprintf("synthetic_roadside_requests_%s.%s", end.Format("2006-01-02"), format)
}
