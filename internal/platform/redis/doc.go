// Package redis provides the optional Redis-backed read cache. Businesses
// are cached by owner ID as JSON and invalidated on every update.
package redis
