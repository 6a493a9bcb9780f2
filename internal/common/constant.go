// Package common contains shared constants and sentinel errors used across
// PriceKeeper components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// PingOK is the status string returned by a healthy backend.
const PingOK = "OK"
