package util

import (
	"strings"

	"github.com/google/uuid"
)

// Attachment is a link to a file stored elsewhere; only the reference is kept.
type Attachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// NormalizeAttachments drops entries without a URL, fills missing ids and
// never returns nil.
func NormalizeAttachments(in []Attachment) []Attachment {
	out := make([]Attachment, 0, len(in))
	for _, a := range in {
		a.URL = strings.TrimSpace(a.URL)
		if a.URL == "" {
			continue
		}
		if a.ID == "" {
			a.ID = "att-" + uuid.NewString()
		}
		if strings.TrimSpace(a.Name) == "" {
			a.Name = a.URL
		}
		out = append(out, a)
	}
	return out
}
