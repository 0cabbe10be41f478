package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldSeries is the standardized structured logging key for series names.
	FieldSeries = "series"
	// FieldRawName is the standardized structured logging key for raw platform names.
	FieldRawName = "raw_name"
	// FieldEpisodeKey is the standardized structured logging key for raw episode keys.
	FieldEpisodeKey = "episode_key"
	// FieldSource is the standardized structured logging key for ingestion source names.
	FieldSource = "source"
	// FieldMethod is the standardized structured logging key for match-resolution methods.
	FieldMethod = "method"
	// FieldConfidence is the standardized structured logging key for match confidence scores.
	FieldConfidence = "confidence"
	// FieldEventType is the standardized structured logging key for machine-greppable event names.
	FieldEventType = "event_type"
	// FieldErrorHint is the standardized structured logging key for operator guidance on failures.
	FieldErrorHint = "error_hint"
)
