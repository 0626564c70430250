package yamlmodel

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
	"github.com/OData/odata.net-sub135/pkg/edm/memory"
)

// DefaultMaxFileSize is the largest model description accepted by default.
const DefaultMaxFileSize = 10 * 1024 * 1024

var yamlErrorLine = regexp.MustCompile(`line (\d+)`)

// Parser loads YAML model descriptions into in-memory models.
type Parser struct {
	maxFileSize int64
}

// NewParser creates a parser with default limits.
func NewParser() *Parser {
	return &Parser{maxFileSize: DefaultMaxFileSize}
}

// WithMaxFileSize sets the maximum size of one description.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	p.maxFileSize = size
	return p
}

// Parse loads the model described by the file at path.
func (p *Parser) Parse(path string) (*memory.Model, error) {
	return p.ParseMulti([]string{path})
}

// ParseBytes loads a model from YAML held in memory. sourcePath is used in
// locations only.
func (p *Parser) ParseBytes(data []byte, sourcePath string) (*memory.Model, error) {
	if int64(len(data)) > p.maxFileSize {
		return nil, &Error{
			Type:     ErrorTypeIO,
			Message:  fmt.Sprintf("data size %d exceeds maximum %d bytes", len(data), p.maxFileSize),
			Location: edmErrors.Location{File: sourcePath},
		}
	}
	doc, err := parseYAMLBytes(data, sourcePath)
	if err != nil {
		return nil, syntaxError(sourcePath, err)
	}
	return newBuilder().build([]*yamlDocument{doc})
}

// ParseMulti loads several files into one model. Names resolve across all
// files, so a type may reference one declared in another file.
func (p *Parser) ParseMulti(paths []string) (*memory.Model, error) {
	if len(paths) == 0 {
		return nil, &Error{Type: ErrorTypeIO, Message: "no model files provided"}
	}

	docs := make([]*yamlDocument, 0, len(paths))
	for _, path := range paths {
		doc, err := p.readFile(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return newBuilder().build(docs)
}

func (p *Parser) readFile(path string) (*yamlDocument, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &Error{
			Type:     ErrorTypeIO,
			Message:  fmt.Sprintf("failed to access file: %v", err),
			Location: edmErrors.Location{File: path},
			Err:      err,
		}
	}
	if info.Size() > p.maxFileSize {
		return nil, &Error{
			Type:     ErrorTypeIO,
			Message:  fmt.Sprintf("file size %d exceeds maximum %d bytes", info.Size(), p.maxFileSize),
			Location: edmErrors.Location{File: path},
		}
	}

	doc, err := parseYAMLFile(path)
	if err != nil {
		return nil, syntaxError(path, err)
	}
	return doc, nil
}

func syntaxError(path string, err error) error {
	line := 1
	if m := yamlErrorLine.FindStringSubmatch(err.Error()); m != nil {
		if n, convErr := strconv.Atoi(m[1]); convErr == nil {
			line = n
		}
	}
	return &Error{
		Type:       ErrorTypeSyntax,
		Message:    fmt.Sprintf("YAML parsing failed: %v", err),
		Location:   edmErrors.Location{File: path, Line: line},
		Suggestion: "check YAML syntax (indentation, colons, quotes)",
		Err:        err,
	}
}
