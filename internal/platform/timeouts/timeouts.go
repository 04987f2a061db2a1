// Package timeouts defines shared timeout constants used across commands.
package timeouts

import "time"

// BackendRequest caps a single REST call to the payroll backend.
const BackendRequest = 10 * time.Second

// Upload caps a file upload, including the backend or S3 round trip.
const Upload = 60 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
