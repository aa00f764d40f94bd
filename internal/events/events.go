package events

// Document lifecycle event types recorded in the outbox.
const (
	EventDocumentPublished = "document.published"
	EventDocumentPreviewed = "document.previewed"
)

// DocumentPublishedPayload captures the minimal data downstream consumers
// need to react to a published artifact.
type DocumentPublishedPayload struct {
	URL    string `json:"url"`
	Bytes  int    `json:"bytes"`
	Source string `json:"source,omitempty"`
}

// ToMap converts a payload into an outbox-friendly map.
func (p DocumentPublishedPayload) ToMap() map[string]any {
	payload := map[string]any{
		"url":   p.URL,
		"bytes": p.Bytes,
	}
	if p.Source != "" {
		payload["source"] = p.Source
	}
	return payload
}
