// Package token acquires and caches OAuth client-credential tokens for
// ticket vendors.
//
// One token is retained per vendor at a time. A cached token is reused until
// it enters the safety margin before expiry, then replaced wholesale by a new
// exchange. Concurrent callers asking for the same vendor's token share a
// single in-flight exchange.
package token
