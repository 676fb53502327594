package yamlio

import (
	goyamlparser "github.com/goccy/go-yaml/parser"

	"github.com/goccy/go-yaml/ast"
)

// gocyParser is the default Parser, backed by goccy/go-yaml's own
// parser, the same package magicschema/generator.go uses to obtain an
// *ast.File to walk.
type gocyParser struct{}

// NewParser returns the default Parser.
func NewParser() Parser { return gocyParser{} }

type gocyDocument struct {
	body ast.Node
}

func (gocyDocument) document() {}

func (gocyParser) ParseDocuments(data []byte) ([]Document, error) {
	file, err := goyamlparser.ParseBytes(data, goyamlparser.ParseComments)
	if err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(file.Docs))

	for _, d := range file.Docs {
		docs = append(docs, gocyDocument{body: d.Body})
	}

	return docs, nil
}
