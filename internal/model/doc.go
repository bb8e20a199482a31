package model

// Package model defines domain data structures used across the app: download
// jobs, status enums, and per-job log buffers. Structures are designed for
// direct binding in the UI and explicit state transitions.
