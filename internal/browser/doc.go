package browser

// Package browser hides browser automation behind a small interface so the
// download orchestrator can run against a real Chromium through go-rod or
// against a fake in tests.
