package download

// Package download implements the download-and-archive pipeline: it logs into
// the learning-management system through an automated browser, requests every
// file of the selected courses, waits for the browser to finish writing them
// and packs the batch into a single zip in the user's downloads folder.
