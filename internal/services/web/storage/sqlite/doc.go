// Package sqlite provides the audit log persistence adapter backed by SQLite.
package sqlite
