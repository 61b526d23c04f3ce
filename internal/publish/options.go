package publish

import (
	"context"
	"fmt"
)

// Options selects the sinks built by FromOptions. Empty fields disable the
// matching sink.
type Options struct {
	Dir          string
	S3Bucket     string
	S3Prefix     string
	KafkaBrokers []string
	KafkaTopic   string
}

// FromOptions builds every sink enabled in opts. The returned MultiSink may
// be empty; callers check Len before wiring it.
func FromOptions(ctx context.Context, opts Options) (*MultiSink, error) {
	var sinks []Sink
	closeAll := func() { _ = Multi(sinks...).Close() }

	if opts.Dir != "" {
		fs, err := NewFileSink(opts.Dir)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, fs)
	}
	if opts.S3Bucket != "" {
		s3s, err := NewS3Sink(ctx, opts.S3Bucket, opts.S3Prefix)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("s3 sink: %w", err)
		}
		sinks = append(sinks, s3s)
	}
	if len(opts.KafkaBrokers) > 0 {
		ks, err := NewKafkaSink(KafkaConfig{Brokers: opts.KafkaBrokers, Topic: opts.KafkaTopic})
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("kafka sink: %w", err)
		}
		sinks = append(sinks, ks)
	}
	return Multi(sinks...), nil
}
