// Package creds provides read-only access to per-vendor OAuth credentials.
//
// Credentials are loaded once from configuration (where secrets arrive via
// environment expansion) and never change for the life of the process.
package creds

import (
	"github.com/jmorales/seatscout/internal/config"
	"github.com/jmorales/seatscout/internal/model"
)

// Store maps vendor IDs to their client credentials.
type Store struct {
	creds map[string]model.VendorCredentials
}

// NewStore creates an empty credential store.
func NewStore() *Store {
	return &Store{creds: make(map[string]model.VendorCredentials)}
}

// FromConfig builds a store from the vendors section of the config.
// Vendors with no client ID configured are simply absent.
func FromConfig(cfg config.VendorsConfig) *Store {
	s := NewStore()
	s.add("stubhub", cfg.StubHub)
	s.add("ticketmaster", cfg.Ticketmaster)
	return s
}

func (s *Store) add(vendorID string, v config.VendorConfig) {
	if v.ClientID == "" {
		return
	}
	s.creds[vendorID] = model.VendorCredentials{
		ClientID:     v.ClientID,
		ClientSecret: v.ClientSecret,
	}
}

// Set registers credentials for a vendor. Used by tests and FromConfig.
func (s *Store) Set(vendorID string, c model.VendorCredentials) {
	s.creds[vendorID] = c
}

// Get returns the credentials for a vendor, and whether they exist.
func (s *Store) Get(vendorID string) (model.VendorCredentials, bool) {
	c, ok := s.creds[vendorID]
	return c, ok
}
