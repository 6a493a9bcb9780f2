// Package services holds the server's business logic: validating and storing
// price entries on behalf of an authenticated owner.
package services
