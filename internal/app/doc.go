// Package app implements the application layer.
//
// Service is the only component that references multiple domain components.
// It orchestrates all use cases: submit, list, snapshot, export.
package app
