package store

import "ScannerLedger/internal/model"

// NoopStore is a no-op implementation used when SQLite is not configured.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) InsertHit(_ *model.HitRecord) error                       { return nil }
func (n *NoopStore) UpsertDailySummary(_ string, _ *model.DailySummary) error { return nil }
func (n *NoopStore) QueryHits(_ Query) ([]HitRow, error)                      { return nil, nil }
func (n *NoopStore) Stats() (*Stats, error)                                   { return &Stats{}, nil }
func (n *NoopStore) Close() error                                             { return nil }
