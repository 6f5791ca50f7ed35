// Package tracing integrates observability back-ends with the scheduler
// to provide span-level timing of admissions, aging passes and dispatch
// preambles. All instrumentation is kept in a separate package so that
// kernels which do not require tracing can exclude it from their build.
package tracing
