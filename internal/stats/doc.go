// Package stats turns raw level counts into percentage-annotated statistics
// and assembles the three-way admin snapshot (filtered, all-time, today).
package stats
