// Package common contains shared constants and sentinel errors used across
// GymKeeper components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// DayKeyLayout is the reference layout of a day key ("2024-06-10").
const DayKeyLayout = "2006-01-02"
