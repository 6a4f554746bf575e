package recorder

import "CryptoSentinel/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordScan(_ *ScanRecord) error { return nil }
func (n *NoopRecorder) RecentResults(_ string, _ int) ([]model.AnalysisResult, error) {
	return nil, nil
}
func (n *NoopRecorder) Close() error { return nil }
