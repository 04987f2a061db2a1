// Package storage declares persistence interfaces for web-owned audit data.
//
// The audit log records mutations performed through the web, CLI, and MCP
// surfaces. It never becomes the source of truth for payroll records, which
// live in the REST backend.
package storage
