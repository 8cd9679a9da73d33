package a2a

import "encoding/base64"

/*
Part is a discriminated union over text and file content.  We keep it simple
by embedding all optional fields in a single struct with a Kind
discriminator, which avoids custom JSON marshalling while keeping the wire
shape intact.

Exactly ONE of Text or File should be populated according to Kind.  File
content itself comes in two variants: by reference (URI set) or by value
(Bytes set, base64 encoded).  Conversion boundaries must match on Kind
explicitly rather than sniffing fields.
*/
type Part struct {
	Kind PartKind `json:"kind"`

	Text string       `json:"text,omitempty"`
	File *FileContent `json:"file,omitempty"`

	Metadata map[string]any `json:"metadata,omitempty"`
}

// PartKind is the discriminator for a Part union.
type PartKind string

const (
	PartKindText PartKind = "text"
	PartKindFile PartKind = "file"
)

// FileContent holds a file either by reference or by value.
type FileContent struct {
	Name     string `json:"name,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	Bytes    string `json:"bytes,omitempty"`
	URI      string `json:"uri,omitempty"`
}

// ByReference reports whether the file is carried as a URI rather than
// inline bytes.
func (file *FileContent) ByReference() bool {
	return file.URI != ""
}

func NewTextPart(text string) Part {
	return Part{
		Kind: PartKindText,
		Text: text,
	}
}

func NewFilePart(name string, mimeType string, data []byte) Part {
	return Part{
		Kind: PartKindFile,
		File: &FileContent{
			Name:     name,
			MimeType: mimeType,
			Bytes:    base64.StdEncoding.EncodeToString(data),
		},
	}
}

func NewFileRefPart(name string, mimeType string, uri string) Part {
	return Part{
		Kind: PartKindFile,
		File: &FileContent{
			Name:     name,
			MimeType: mimeType,
			URI:      uri,
		},
	}
}
