//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/parth025sharma/ladybug-comfort/internal/adapter/kafka"
	"github.com/parth025sharma/ladybug-comfort/internal/config"
	"github.com/parth025sharma/ladybug-comfort/internal/domain"
	"github.com/parth025sharma/ladybug-comfort/internal/observability"
	"github.com/parth025sharma/ladybug-comfort/internal/pipeline"
)

const (
	testSourceTopic = "test-source"
	testSinkTopic   = "test-sink"
)

// sinkMessage holds a deserialized message read from the sink topic.
type sinkMessage struct {
	Report  domain.ComfortReport
	Key     string
	Headers map[string]string
}

// readReport reads a single message from the sink consumer and deserializes it.
func readReport(ctx context.Context, t *testing.T, consumer *kafkago.Reader) sinkMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var report domain.ComfortReport
	require.NoError(t, json.Unmarshal(msg.Value, &report), "unmarshal sink message")

	return sinkMessage{
		Report:  report,
		Key:     string(msg.Key),
		Headers: headers,
	}
}

// TestKafkaReaderWriter verifies the adapter layer: kafka.Reader (Extractor) and
// kafka.Writer (Loader) correctly round-trip a message through Kafka.
func TestKafkaReaderWriter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)

	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSourceTopic:   testSourceTopic,
		KafkaSinkTopic:     testSinkTopic,
		KafkaGroupID:       fmt.Sprintf("test-reader-%d", time.Now().UnixNano()),
		BatchFlushInterval: 5 * time.Second,
	}

	// Publish a raw observation to the source topic.
	records := loadMockData(t)
	record := records[0] // KBDU hour 0: mild conditions
	payload, err := json.Marshal(record)
	require.NoError(t, err)

	producer := &kafkago.Writer{
		Addr:  kafkago.TCP(broker),
		Topic: testSourceTopic,
	}
	t.Cleanup(func() { _ = producer.Close() })

	require.NoError(t, producer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte("test-key"),
		Value: payload,
		Time:  time.Now(),
	}))

	// Extract via kafka.Reader.
	// Retry because the consumer group may need time to rebalance before
	// partitions are assigned and messages become available.
	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	var batch []domain.RawEvent
	for {
		var err error
		batch, err = reader.ExtractBatch(ctx, 1)
		require.NoError(t, err)
		if len(batch) > 0 {
			break
		}
		if ctx.Err() != nil {
			t.Fatal("timed out waiting for message from source topic")
		}
	}
	require.Len(t, batch, 1)
	raw := batch[0]
	assert.Equal(t, []byte("test-key"), raw.Key)
	assert.Equal(t, payload, raw.Value)
	assert.Equal(t, testSourceTopic, raw.Topic)
	require.NotNil(t, raw.Commit, "commit callback should be set")

	// Commit the offset.
	require.NoError(t, raw.Commit(ctx))

	// Transform the raw observation into a comfort report.
	transformer := pipeline.NewTransformer(nil, discardLogger())
	report, err := transformer.Transform(ctx, raw)
	require.NoError(t, err)

	// Load via kafka.Writer.
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	require.NoError(t, writer.LoadBatch(ctx, []domain.ComfortReport{report}))

	// Read from the sink topic and verify headers + value.
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	sm := readReport(ctx, t, consumer)
	assert.Equal(t, "0", sm.Headers["category"])
	assert.Contains(t, sm.Headers, "processed_at")
	_, err = time.Parse(time.RFC3339, sm.Headers["processed_at"])
	assert.NoError(t, err, "processed_at should be valid RFC3339")

	assert.Equal(t, "KBDU", sm.Report.Station)
	assert.Equal(t, sm.Report.ID, sm.Key, "message key should be the report ID")
	assert.Equal(t, "no thermal stress", sm.Report.CategoryName)
	assert.True(t, sm.Report.Comfortable)
	assert.InDelta(t, 23.4, sm.Report.UTCIC, 0.5)
}

// TestPipelineEndToEnd wires the full pipeline (Reader → Transformer → Writer) with
// real Kafka and verifies that all mock observations are correctly enriched.
func TestPipelineEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)

	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSourceTopic:   testSourceTopic,
		KafkaSinkTopic:     testSinkTopic,
		KafkaGroupID:       fmt.Sprintf("test-pipeline-%d", time.Now().UnixNano()),
		BatchFlushInterval: 5 * time.Second,
	}

	// Publish all mock observations to the source topic.
	records := loadMockData(t)

	producer := &kafkago.Writer{
		Addr:  kafkago.TCP(broker),
		Topic: testSourceTopic,
	}
	t.Cleanup(func() { _ = producer.Close() })

	msgs := make([]kafkago.Message, 0, len(records))
	for i, rec := range records {
		payload, err := json.Marshal(rec)
		require.NoError(t, err)
		msgs = append(msgs, kafkago.Message{
			Key:   []byte(fmt.Sprintf("record-%d", i)),
			Value: payload,
			Time:  time.Now(),
		})
	}
	require.NoError(t, producer.WriteMessages(ctx, msgs...))

	// Wire up the pipeline.
	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	transformer := pipeline.NewTransformer(nil, discardLogger())

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewMetricsForTesting()
	p := pipeline.New(reader, transformer, writer, discardLogger(), metrics, 50)

	// Run the pipeline in a goroutine.
	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	// Read all enriched messages from the sink topic.
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-sink-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	received := make([]sinkMessage, 0, len(records))
	for len(received) < len(records) {
		sm := readReport(ctx, t, consumer)
		received = append(received, sm)
	}

	pipelineCancel()
	require.NoError(t, <-errCh)

	// Validate counts by station and classification.
	require.Len(t, received, len(records))
	stationCounts := map[string]int{}
	comfortable := 0
	heatStress := 0
	for _, sm := range received {
		stationCounts[sm.Report.Station]++

		// Every message must have category and processed_at headers.
		assert.NotEmpty(t, sm.Headers["category"], "missing category header")
		assert.Contains(t, sm.Headers, "processed_at", "missing processed_at header")
		_, err := time.Parse(time.RFC3339, sm.Headers["processed_at"])
		assert.NoError(t, err, "invalid processed_at format")

		assert.NotEmpty(t, sm.Report.ID, "missing report ID")
		assert.False(t, sm.Report.ProcessedAt.IsZero(), "missing processed_at")

		if sm.Report.Comfortable {
			comfortable++
		}
		if sm.Report.Category > 0 {
			heatStress++
		}
	}

	assert.Equal(t, 24, stationCounts["KBDU"], "KBDU count")
	assert.Equal(t, 24, stationCounts["KPHX"], "KPHX count")
	assert.Equal(t, 24, comfortable, "all KBDU hours are mild")
	assert.Equal(t, 24, heatStress, "all KPHX hours are heat stress")

	// Spot-check a known record: KBDU hour 0.
	var foundMild bool
	for _, sm := range received {
		if sm.Report.Station != "KBDU" || sm.Report.Time.Hour() != 0 {
			continue
		}
		foundMild = true
		assert.InDelta(t, 23.4, sm.Report.UTCIC, 0.5)
		assert.Equal(t, 0, sm.Report.Category)
		assert.Equal(t, "no thermal stress", sm.Report.CategoryName)
		break
	}
	assert.True(t, foundMild, "expected to find the KBDU hour-0 record")
}

// TestPipelineTransformError verifies that an invalid message (poison pill) is
// skipped and the pipeline continues processing valid messages.
func TestPipelineTransformError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)

	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSourceTopic:   testSourceTopic,
		KafkaSinkTopic:     testSinkTopic,
		KafkaGroupID:       fmt.Sprintf("test-poison-%d", time.Now().UnixNano()),
		BatchFlushInterval: 5 * time.Second,
	}

	// Publish: invalid JSON, then a valid observation.
	records := loadMockData(t)
	validPayload, err := json.Marshal(records[0])
	require.NoError(t, err)

	producer := &kafkago.Writer{
		Addr:  kafkago.TCP(broker),
		Topic: testSourceTopic,
	}
	t.Cleanup(func() { _ = producer.Close() })

	require.NoError(t, producer.WriteMessages(ctx,
		kafkago.Message{Key: []byte("bad"), Value: []byte("not-json{{{"), Time: time.Now()},
		kafkago.Message{Key: []byte("good"), Value: validPayload, Time: time.Now()},
	))

	// Wire up the pipeline.
	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	transformer := pipeline.NewTransformer(nil, discardLogger())

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewMetricsForTesting()
	p := pipeline.New(reader, transformer, writer, discardLogger(), metrics, 50)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	// Only the valid message should appear on the sink topic.
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-sink-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	sm := readReport(ctx, t, consumer)
	assert.Equal(t, "KBDU", sm.Report.Station)
	assert.True(t, sm.Report.Comfortable)

	// Verify no second message arrives (the poison pill was skipped).
	readCtx, readCancel := context.WithTimeout(ctx, 5*time.Second)
	_, err = consumer.ReadMessage(readCtx)
	readCancel()
	assert.Error(t, err, "expected no second message on sink topic")

	pipelineCancel()
	require.NoError(t, <-errCh)
}

// --- helpers ---

// startKafka launches a single-node Kafka container and returns its broker address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("test-cluster"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate kafka container: %v", err)
		}
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err, "resolve kafka brokers")
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates a single-partition topic on the broker's controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err, "dial broker")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "resolve controller")

	controllerConn, err := kafkago.Dial("tcp",
		net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err, "dial controller")
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}), "create topic %s", topic)
}

// loadMockData returns a synthetic day of hourly observations: 24 mild hours
// at KBDU (all comfortable) and 24 extreme hours at KPHX (all heat stress).
func loadMockData(t *testing.T) []domain.RawHourlyRecord {
	t.Helper()

	day := time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC)
	records := make([]domain.RawHourlyRecord, 0, 48)
	for hour := 0; hour < 24; hour++ {
		ts := day.Add(time.Duration(hour) * time.Hour).Format(time.RFC3339)
		records = append(records, domain.RawHourlyRecord{
			Station:     "KBDU",
			Time:        ts,
			AirTemp:     "20",
			RelHumidity: "50",
		})
		records = append(records, domain.RawHourlyRecord{
			Station:     "KPHX",
			Time:        ts,
			AirTemp:     "43",
			RelHumidity: "20",
			WindSpeed:   "1",
			RadTemp:     "60",
		})
	}
	return records
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
