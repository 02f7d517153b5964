package contextkeys

type contextKey string

const (
	// DBContextKey stores the request-scoped *gorm.DB (pool or transaction).
	DBContextKey = contextKey("db")
	// SubjectKey stores the authenticated token subject.
	SubjectKey = contextKey("subject")
	// AdminKey is set when the request carries a valid admin cookie.
	AdminKey = contextKey("admin")
)
