// Package model defines shared data types used across seatscout.
//
// Conventions:
//   - Prices: integer cents (1050 = $10.50)
//   - Timestamps: int64 microseconds since Unix epoch, except token issue
//     times which are milliseconds
//   - IDs: string for vendor/game/listing identifiers, uuid.UUID for tracks
package model
