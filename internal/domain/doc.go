// Package domain contains the request and result types exchanged by the
// generation pipeline. Every value here lives for a single HTTP request:
// nothing is persisted and nothing is shared between requests.
package domain
