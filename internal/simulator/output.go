package simulator

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/chrisdamba/surplussim/internal/cloudwriter"
	"github.com/chrisdamba/surplussim/internal/models"
	"github.com/chrisdamba/surplussim/internal/simulator/producers"
)

type OutputDestination interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

type ConsoleOutput struct {
	w io.Writer
}

func NewConsoleOutput(w io.Writer) *ConsoleOutput {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleOutput{w: w}
}

func (c *ConsoleOutput) WriteMessage(topic string, msg []byte) error {
	if _, err := fmt.Fprintf(c.w, "[%s] %s\n", topic, msg); err != nil {
		return fmt.Errorf("failed to write to console: %w", err)
	}
	return nil
}

func (c *ConsoleOutput) Close() error {
	return nil
}

// partitionOf reads the record timestamp and returns the year/month
// partition it belongs to.
func partitionOf(event map[string]interface{}) (string, error) {
	raw, ok := event["timestamp"]
	if !ok {
		return "", fmt.Errorf("missing timestamp")
	}
	var ts int64
	switch v := raw.(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return "", fmt.Errorf("invalid timestamp %q: %w", v, err)
		}
		ts = n
	case float64:
		ts = int64(v)
	default:
		return "", fmt.Errorf("invalid timestamp")
	}
	t := time.Unix(ts, 0).UTC()
	return fmt.Sprintf("year=%d/month=%02d", t.Year(), t.Month()), nil
}

func decodeEvent(msg []byte) (map[string]interface{}, error) {
	var event map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(msg))
	dec.UseNumber()
	if err := dec.Decode(&event); err != nil {
		return nil, err
	}
	return event, nil
}

type JSONOutput struct {
	basePath string
	folder   string
	files    map[string]*os.File
}

func NewJSONOutput(basePath, folder string) *JSONOutput {
	return &JSONOutput{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*os.File),
	}
}

func (j *JSONOutput) WriteMessage(topic string, msg []byte) error {
	event, err := decodeEvent(msg)
	if err != nil {
		return err
	}
	partition, err := partitionOf(event)
	if err != nil {
		return err
	}

	fileKey := topic + "/" + partition
	file, ok := j.files[fileKey]
	if !ok {
		fullPath := filepath.Join(j.basePath, j.folder, topic, filepath.FromSlash(partition))
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return err
		}
		file, err = os.Create(filepath.Join(fullPath, "data.json"))
		if err != nil {
			return err
		}
		j.files[fileKey] = file
	}

	if _, err := file.Write(msg); err != nil {
		return err
	}
	_, err = file.WriteString("\n")
	return err
}

func (j *JSONOutput) Close() error {
	var lastErr error
	for key, file := range j.files {
		if err := file.Close(); err != nil {
			log.Printf("Error closing file for key %s: %v", key, err)
			lastErr = err
		}
	}
	return lastErr
}

type CSVOutput struct {
	basePath string
	folder   string
	files    map[string]*os.File
	writers  map[string]*csv.Writer
	headers  map[string][]string
}

func NewCSVOutput(basePath, folder string) *CSVOutput {
	return &CSVOutput{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*os.File),
		writers:  make(map[string]*csv.Writer),
		headers:  make(map[string][]string),
	}
}

func (c *CSVOutput) WriteMessage(topic string, msg []byte) error {
	event, err := decodeEvent(msg)
	if err != nil {
		return err
	}
	partition, err := partitionOf(event)
	if err != nil {
		return err
	}

	fileKey := topic + "/" + partition
	csvWriter, ok := c.writers[fileKey]
	if !ok {
		fullPath := filepath.Join(c.basePath, c.folder, topic, filepath.FromSlash(partition))
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return err
		}
		file, err := os.Create(filepath.Join(fullPath, "data.csv"))
		if err != nil {
			return err
		}
		csvWriter = csv.NewWriter(file)
		c.files[fileKey] = file
		c.writers[fileKey] = csvWriter

		headers := c.getHeaders(event)
		if err := csvWriter.Write(headers); err != nil {
			return err
		}
		c.headers[fileKey] = headers
	}

	row := make([]string, len(c.headers[fileKey]))
	for i, header := range c.headers[fileKey] {
		value, ok := event[header]
		if !ok || value == nil {
			row[i] = ""
		} else {
			row[i] = fmt.Sprintf("%v", value)
		}
	}

	if err := csvWriter.Write(row); err != nil {
		return err
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

func (c *CSVOutput) getHeaders(event map[string]interface{}) []string {
	headers := make([]string, 0, len(event))
	for key := range event {
		headers = append(headers, key)
	}
	sort.Strings(headers)
	return headers
}

func (c *CSVOutput) Close() error {
	var lastErr error
	for key, csvWriter := range c.writers {
		csvWriter.Flush()
		if err := csvWriter.Error(); err != nil {
			lastErr = err
		}
		if err := c.files[key].Close(); err != nil {
			log.Printf("Error closing file for key %s: %v", key, err)
			lastErr = err
		}
	}
	return lastErr
}

// CloudParquetFile adapts a buffered cloud object writer to the parquet
// writer's file interface. It is write-only.
type CloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func NewCloudParquetFile(cloudWriter cloudwriter.CloudWriter) *CloudParquetFile {
	return &CloudParquetFile{cloudWriter: cloudWriter}
}

func (c *CloudParquetFile) Open(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *CloudParquetFile) Create(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *CloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	default:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *CloudParquetFile) Read(p []byte) (int, error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *CloudParquetFile) Write(p []byte) (int, error) {
	n, err := c.cloudWriter.Write(p)
	c.offset += int64(n)
	return n, err
}

func (c *CloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}

type ParquetOutput struct {
	basePath           string
	folder             string
	mu                 sync.Mutex
	writers            map[string]*writer.ParquetWriter
	files              map[string]source.ParquetFile
	cloudWriterFactory cloudwriter.CloudWriterFactory
	cloudBucketName    string
}

// NewParquetOutput writes parquet files under basePath/folder, or uploads
// them to the configured bucket when the destination is s3.
func NewParquetOutput(ctx context.Context, config *models.Config) (*ParquetOutput, error) {
	p := &ParquetOutput{
		basePath: config.OutputPath,
		folder:   config.OutputFolder,
		writers:  make(map[string]*writer.ParquetWriter),
		files:    make(map[string]source.ParquetFile),
	}

	if config.OutputDestination == models.OutputS3 {
		factory, err := cloudwriter.NewS3WriterFactory(ctx, config.CloudStorage.Region, config.CloudStorage.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
		}
		p.cloudWriterFactory = factory
		p.cloudBucketName = config.CloudStorage.BucketName
		return p, nil
	}

	p.cleanup()
	return p, nil
}

func (p *ParquetOutput) WriteMessage(topic string, msg []byte) error {
	record, err := DecodeRecord(topic, msg)
	if err != nil {
		return err
	}
	event, err := decodeEvent(msg)
	if err != nil {
		return err
	}
	partition, err := partitionOf(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	writerKey := topic + "/" + partition
	pw, ok := p.writers[writerKey]
	if !ok {
		pw, err = p.createNewWriter(writerKey, topic, partition)
		if err != nil {
			return fmt.Errorf("failed to create new writer: %w", err)
		}
	}

	if err := pw.Write(record); err != nil {
		return fmt.Errorf("failed to write %s record: %w", topic, err)
	}
	return nil
}

func (p *ParquetOutput) createNewWriter(writerKey, topic, partition string) (*writer.ParquetWriter, error) {
	var fw source.ParquetFile
	if p.cloudWriterFactory != nil {
		objectPath := path.Join(p.folder, topic, partition, "data.parquet")
		cloudWriter, err := p.cloudWriterFactory.NewWriter(p.cloudBucketName, objectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		fw = NewCloudParquetFile(cloudWriter)
	} else {
		fullPath := filepath.Join(p.basePath, p.folder, topic, filepath.FromSlash(partition))
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return nil, err
		}
		var err error
		fw, err = local.NewLocalFileWriter(filepath.Join(fullPath, "data.parquet"))
		if err != nil {
			return nil, fmt.Errorf("failed to create local file writer: %w", err)
		}
	}

	schema, err := NewRecord(topic)
	if err != nil {
		return nil, err
	}
	pw, err := writer.NewParquetWriter(fw, schema, 4)
	if err != nil {
		return nil, fmt.Errorf("failed to create ParquetWriter: %w", err)
	}

	p.writers[writerKey] = pw
	p.files[writerKey] = fw
	return pw, nil
}

// cleanup removes parquet files left by a previous run so partitions are
// not mixed across runs.
func (p *ParquetOutput) cleanup() {
	fullPath := filepath.Join(p.basePath, p.folder)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return
	}
	err := filepath.Walk(fullPath, func(name string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(name) == ".parquet" {
			return os.Remove(name)
		}
		return nil
	})
	if err != nil {
		log.Printf("Error cleaning up Parquet files: %v", err)
	}
}

func (p *ParquetOutput) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var lastErr error
	for key, pw := range p.writers {
		if err := pw.WriteStop(); err != nil {
			lastErr = err
			log.Printf("Error closing writer for key %s: %v", key, err)
		}
		if f, ok := p.files[key]; ok {
			if err := f.Close(); err != nil {
				lastErr = err
				log.Printf("Error closing file for key %s: %v", key, err)
			}
		}
	}
	return lastErr
}

// NewOutputDestination builds the topic sink named by the config. Postgres
// is not a topic sink and is handled by the output package.
func NewOutputDestination(ctx context.Context, config *models.Config) (OutputDestination, error) {
	switch config.OutputDestination {
	case models.OutputKafka:
		return producers.NewSaramaProducer(config)
	case models.OutputS3:
		return NewParquetOutput(ctx, config)
	case models.OutputLocal:
		switch config.OutputFormat {
		case models.FormatParquet:
			return NewParquetOutput(ctx, config)
		case models.FormatJSON:
			return NewJSONOutput(config.OutputPath, config.OutputFolder), nil
		case models.FormatCSV:
			return NewCSVOutput(config.OutputPath, config.OutputFolder), nil
		default:
			return nil, fmt.Errorf("unsupported output format: %s", config.OutputFormat)
		}
	case models.OutputConsole, "":
		return NewConsoleOutput(os.Stdout), nil
	default:
		return nil, fmt.Errorf("unsupported output destination: %s", config.OutputDestination)
	}
}

// TopicWriter serializes a result into one JSON message per record and sends
// each to its topic on the destination.
type TopicWriter struct {
	dest OutputDestination
}

func NewTopicWriter(dest OutputDestination) *TopicWriter {
	return &TopicWriter{dest: dest}
}

func (t *TopicWriter) WriteResult(ctx context.Context, result *models.SimulationResult) error {
	messages := TopicMessages(result)
	for _, topic := range Topics {
		for _, record := range messages[topic] {
			if err := ctx.Err(); err != nil {
				return err
			}
			msg, err := json.Marshal(record)
			if err != nil {
				return fmt.Errorf("failed to marshal %s record: %w", topic, err)
			}
			if err := t.dest.WriteMessage(topic, msg); err != nil {
				return fmt.Errorf("failed to write to topic %s: %w", topic, err)
			}
		}
		log.Printf("[%s] Wrote %d %s records", result.RunID, len(messages[topic]), topic)
	}
	return nil
}

func (t *TopicWriter) Close() error {
	return t.dest.Close()
}

// TopicMessages converts a result into topic records.
func TopicMessages(result *models.SimulationResult) map[string][]interface{} {
	out := make(map[string][]interface{}, len(Topics))
	asOf := result.ReferenceDate

	for _, v := range result.Vendors {
		out[TopicVendors] = append(out[TopicVendors], NewVendorRecord(v, asOf))
	}
	for _, p := range result.Products {
		out[TopicProducts] = append(out[TopicProducts], NewProductRecord(p, asOf))
	}
	for _, u := range result.Users {
		out[TopicUsers] = append(out[TopicUsers], NewUserRecord(u, asOf))
	}

	bundles := make(map[string]models.Bundle, len(result.Bundles))
	for _, b := range result.Bundles {
		bundles[b.ID] = b
		out[TopicBundles] = append(out[TopicBundles], NewBundleRecord(b))
	}
	for _, bp := range result.BundleProducts {
		out[TopicBundleProducts] = append(out[TopicBundleProducts], NewBundleProductRecord(bp, bundles[bp.BundleID].PostingTime))
	}

	bundleOfReservation := make(map[string]string, len(result.Reservations))
	for _, r := range result.Reservations {
		bundleOfReservation[r.ID] = r.BundleID
		out[TopicReservations] = append(out[TopicReservations], NewReservationRecord(r))
	}
	for _, d := range result.Disputes {
		raisedAt := bundles[bundleOfReservation[d.ReservationID]].CollectionEnd
		out[TopicDisputes] = append(out[TopicDisputes], NewDisputeRecord(d, raisedAt))
	}

	for _, row := range result.Dataset {
		out[TopicDataset] = append(out[TopicDataset], NewDatasetRecord(row, bundles[row.BundleID].PostingTime))
	}
	for _, e := range result.Events {
		out[TopicLifecycleEvents] = append(out[TopicLifecycleEvents], NewLifecycleEventRecord(e))
	}
	return out
}
