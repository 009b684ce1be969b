package contextkeys

// Custom type so keys cannot collide with other packages.
type ContextKey string

// UserIDKey is the key under which middleware stores the authenticated
// user's internal id in the gin context.
const UserIDKey = ContextKey("userID")
