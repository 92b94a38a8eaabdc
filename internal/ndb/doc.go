// Package ndb is the gateway to the Nutanix Database Service REST API.
//
// Every call goes through Gateway.Do, which attaches the configured
// credential, sends a request ID and trace context, and converts any failure
// into an *APIError with a Kind:
//
//	401 Unauthorized, 410 Expired, 403 Forbidden, 404 NotFound,
//	DNS/refused/TLS errors Network, client timeout Timeout, otherwise Unknown.
//
// A 401 whose body reports an expired token is re-issued once after the
// cached session token has been dropped. A second expiry is returned as
// Expired. Nothing else is retried.
package ndb
