package domain

// File is an attachment materialized in the media store. Never mutated after
// creation; deleted only together with its owning post.
type File struct {
	OwnerPostUid PostUid `json:"-"`
	StoredName   string  `json:"storedName"`
	ThumbName    *string `json:"thumbName,omitempty"`
	MimeType     string  `json:"mimeType"`
	OriginalName string  `json:"originalName"`
	SizeBytes    int64   `json:"sizeBytes"`
	ContentHash  string  `json:"-"`
}

// ArtifactNames lists every media-store object belonging to the file.
func (f *File) ArtifactNames() []string {
	names := []string{f.StoredName}
	if f.ThumbName != nil {
		names = append(names, *f.ThumbName)
	}
	return names
}
