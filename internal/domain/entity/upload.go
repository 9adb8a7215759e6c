package entity

// StoredFile describes a file written by the upload endpoint.
type StoredFile struct {
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
	MIME         string `json:"mime"`
	Folder       string `json:"folder"`
}
