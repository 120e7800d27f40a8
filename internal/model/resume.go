package model

// UploadedFile is a file received in a single request. It is never retained
// beyond that request.
type UploadedFile struct {
	Name        string
	ContentType string
	Content     []byte
}

// StructuredResume is the candidate profile produced by the structurer.
type StructuredResume struct {
	Skills     []string `json:"skills"`
	Education  string   `json:"education"`
	Experience string   `json:"experience"`
}
