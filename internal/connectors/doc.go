// Package connectors holds the HTTP plumbing shared by the remote annotation
// collaborators: a throttled JSON client, rate limiting and API errors.
//
// Each subpackage fetches one upstream service and returns its payload
// untouched; normalisers own the wire format.
package connectors
