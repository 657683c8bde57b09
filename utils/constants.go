// File: utils/constants.go
package utils

// IdentityContextKey is where the identity middleware stores the caller in the gin context.
const IdentityContextKey = "identity"

// CalendarCachePrefix is the prefix used for Redis unavailable-date cache keys.
const CalendarCachePrefix = "unavailable:"
