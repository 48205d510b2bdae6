// Package storage wraps key/value and cookie storage behind small boolean
// APIs.
//
// Two key/value scopes exist: ScopeSession, which lives for the process, and
// ScopeLocal, which can be persisted to disk with Open. Values are stored as
// JSON:
//
//	storage.SetStore("profile", Profile{Name: "ada"})
//
//	var p Profile
//	if storage.GetStore("profile", &p) {
//	    ...
//	}
//
// Write operations report success as a bool. The cause of the last failure
// is available from [Store.Err] and is logged at debug level.
//
// Cookies are read and written through a [CookieJar]. The package-level Auth
// helpers operate on an in-memory jar; HTTP handlers use [NewHTTPJar] to read
// request cookies and emit Set-Cookie headers.
package storage
