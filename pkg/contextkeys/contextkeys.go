package contextkeys

type contextKey string

// DBContextKey stores the request's *gorm.DB, both in gin.Context and in
// the request context.
const DBContextKey = contextKey("db")
