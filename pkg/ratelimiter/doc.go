// Package ratelimiter implements token bucket rate limiting with a pluggable
// store and an HTTP middleware.
//
// Example:
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       3,
//		RefillRate:     3,
//		RefillInterval: 10 * time.Minute,
//	})
//
//	router.Use(ratelimiter.Middleware(limiter, ratelimiter.ByClientIP()))
package ratelimiter
