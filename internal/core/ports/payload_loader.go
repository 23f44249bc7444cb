package ports

import "io"

// PayloadLoader turns task files into scheduling request payloads.
// Every payload is JSON of the shape {"tasks": [...]} regardless of the source format.
//
//go:generate mockgen -source=payload_loader.go -destination=mocks/mock_payload_loader.go -package=mocks
type PayloadLoader interface {
	// Load reads the task file at path, choosing the decoder by file extension.
	Load(path string) ([]byte, error)
	// Read decodes a task document from r. name is only used in error messages.
	Read(name string, r io.Reader) ([]byte, error)
}
