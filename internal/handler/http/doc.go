// Package http implements the REST and websocket transport of the reference
// backend.
//
// Routes cover the to-do collection (list, create, update, delete) and the
// push channel at /ws. Request tracing and access logging are handled here
// before requests are delegated to the service layer; every successful
// mutation is broadcast by the service through the hub.
package http
