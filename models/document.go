package models

// DocumentVersion is bumped whenever the serialized layout changes.
const DocumentVersion = 1

// Document is the serialized form of one editing session.
type Document struct {
	Version     int                          `json:"version" yaml:"version"`
	Captions    []CaptionSegment             `json:"captions" yaml:"captions"`
	Assets      []AssetSegment               `json:"assets" yaml:"assets"`
	Styles      map[CaptionStyle]StyleConfig `json:"styles" yaml:"styles"`
	ActiveStyle CaptionStyle                 `json:"active_style" yaml:"active_style"`
}
