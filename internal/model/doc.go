package model

// Package model defines domain data structures used across the app: the course
// catalog, the user's selection set and the progress record of a download run.
// Structures are designed for direct binding in the UI and explicit state
// transitions.
