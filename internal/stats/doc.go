// Package stats derives the full dashboard statistics snapshot from the
// canonical trip set. Aggregation is a single pass over the range-filtered
// trips: classification, tariff cost calculation, temporal bucketing,
// per-bike usage, histogramming and generation counting happen together,
// followed by ranking, gap filling and streak detection over the
// accumulated state. The engine is a pure function of its inputs; callers
// memoize by input identity, the engine holds no cache.
package stats
