package platform

// Package platform contains OS/platform integration: the conventional
// downloads folder, browser download directory scanning and OS reveal/open.
