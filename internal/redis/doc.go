// Package redis provides the Redis client and the submission debouncer.
//
// Redis is optional: when no REDIS_URL is configured the service runs without
// debouncing. Nothing durable lives here.
package redis
