package nmea

// Package nmea implements an incremental NMEA-0183 sentence scanner for
// heading sentences.
//
// It is intentionally small and geared toward a fixed-width repeater display:
// - Consume one byte at a time, never buffering more than one sentence
// - Filter sentences by talker-independent type suffix (HDT, HDM, ...)
// - Surface completed payloads bounded to the display width
//
// Checksums after '*' are not validated; the repeater shows whatever the
// instrument sent.
