// Package common contains shared constants and sentinel errors used across
// minimart components.
package common

// SessionCookieName is the name of the HTTP cookie that carries the
// access token between the browser and the server.
const SessionCookieName = "access_token"
