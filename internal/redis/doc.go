// Package redis wraps the go-redis client with connection setup and a
// small JSON cache used by the stats endpoints.
package redis
