package models

import "time"

// Release is one published gost version together with its downloadable
// assets. Values come straight from the release API and are never mutated.
type Release struct {
	Tag         string
	Prerelease  bool
	PublishedAt time.Time
	Assets      []Asset
}

// Asset is a single downloadable file belonging to a release, typically a
// compressed archive for one platform/architecture combination.
type Asset struct {
	Name string
	URL  string
	Size int64
}
