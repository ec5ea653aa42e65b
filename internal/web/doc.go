// Package web serves the browser UI. The HTML documents are embedded in the
// binary; they talk to the JSON API with fetch and keep the user's API key in
// localStorage, never on the server.
package web
