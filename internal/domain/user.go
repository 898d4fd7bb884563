package domain

type Email = string

// User is a single account record as stored in the users collection.
// Details holds optional schemaless profile fields (first name, last name, role).
type User struct {
	Email     Email          `bson:"email"`
	PassHash  string         `bson:"password"`
	Confirmed bool           `bson:"confirmed"`
	Details   map[string]any `bson:"details,omitempty"`
}

type Credentials struct {
	Email    Email
	Password string
}
