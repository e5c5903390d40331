// Package stream pushes live price updates to WebSocket subscribers.
//
// A single Hub fans updates out to every connected client. Sends are
// non-blocking: a client whose buffer is full misses the update rather
// than stalling the broadcast path.
package stream
