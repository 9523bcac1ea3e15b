package fhir

// Bundle is the collection document assembled for one clinical note.
// It is built fresh per pipeline run and never mutated afterwards.
type Bundle struct {
	ResourceType string        `json:"resourceType"`
	Type         string        `json:"type"`
	Entry        []BundleEntry `json:"entry"`
}

type BundleEntry struct {
	FullURL  string      `json:"fullUrl,omitempty"`
	Resource interface{} `json:"resource"`
}

// NewCollectionBundle creates an empty collection bundle. Entry is
// initialised so an empty bundle still serialises with "entry": [].
func NewCollectionBundle() *Bundle {
	return &Bundle{
		ResourceType: "Bundle",
		Type:         "collection",
		Entry:        []BundleEntry{},
	}
}

// Append adds a resource entry addressed by its urn:uuid.
func (b *Bundle) Append(id string, resource interface{}) {
	b.Entry = append(b.Entry, BundleEntry{
		FullURL:  URN(id),
		Resource: resource,
	})
}

// URN renders a resource id as a urn:uuid reference target.
func URN(id string) string {
	return "urn:uuid:" + id
}
