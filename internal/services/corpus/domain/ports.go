package domain

import "context"

// SinkPort persists one split at a time
type SinkPort interface {
	Name() string
	WriteSplit(ctx context.Context, b Batch) error
}

// ManifestSink is implemented by sinks that also record the run manifest
type ManifestSink interface {
	WriteManifest(ctx context.Context, m Manifest) error
}

// RunnerPort generates every split and hands it to the sinks
type RunnerPort interface {
	Run(ctx context.Context, in RunInput) (Manifest, error)
}

// PreviewPort renders records without persisting them
type PreviewPort interface {
	Preview(ctx context.Context, in PreviewInput) ([]Record, error)
	Labels() []LabelInfo
}

// SchemaSink is implemented by sinks that create their tables before the first write
type SchemaSink interface {
	EnsureSchema(ctx context.Context) error
}
