// Package common contains shared constants and sentinel errors used across
// the files manager server and worker.
package common

// TokenHeaderName is the HTTP header carrying the session token.
const TokenHeaderName = "X-Token"

// SessionKeyPrefix namespaces session tokens in the credential store.
const SessionKeyPrefix = "auth_"

// PageSize is the fixed number of records returned by a file listing page.
const PageSize = 20

// ThumbnailWidths are the target widths derived for every uploaded image,
// in processing order.
var ThumbnailWidths = []int{500, 250, 100}
