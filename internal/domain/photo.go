package domain

// PhotoRef points at photo bytes held by the blob store. Records keep
// references only; embedding image bytes in the record collections
// would hit storage quotas as collections grow.
type PhotoRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PhotoItem is the wire shape for photo upload/forwarding: a file name
// plus base64-encoded content.
type PhotoItem struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}
