package domain

// BoardKey is the short board identifier used in urls ("b", "g").
type BoardKey = string

// BoardName is the human readable board title.
type BoardName = string

// PostNumber is the per-board sequential post id shown to users.
type PostNumber = int64

// PostUid is the globally unique storage id, never exposed to clients.
type PostUid = int64

// ReportLevel grades report severity, higher is worse.
type ReportLevel = int
