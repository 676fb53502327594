// Command vtreeview is an interactive terminal browser for a YAML or JSON
// value tree: arrow keys descend into sequences and mappings and back out
// again, leaves are shown with their scalar value.
//
// # Usage
//
//	vtreeview <file.yaml|file.json|->
package main

import (
	"fmt"
	"io"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/macropower/vtree/builder"
	"github.com/macropower/vtree/value"
	"github.com/macropower/vtree/yamlio"
)

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: vtreeview <file.yaml|file.json|->\n")

		return 1
	}

	data, err := readInput(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return 1
	}

	b := builder.New(builder.WithDedup())

	root, err := decodeRoot(b, data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return 1
	}

	p := tea.NewProgram(newModel(b, root))

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return 1
	}

	return 0
}

func readInput(arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(arg)
}

func decodeRoot(b *builder.Builder, data []byte) (value.V, error) {
	parser := yamlio.NewParser()

	docs, err := parser.ParseDocuments(data)
	if err != nil {
		return value.Invalid, err
	}

	decoder := yamlio.NewDecoder()

	items := make([]value.V, 0, len(docs))

	for _, doc := range docs {
		v, err := decoder.Decode(b, doc, yamlio.ParseOptions{})
		if err != nil {
			return value.Invalid, err
		}

		items = append(items, v)
	}

	switch len(items) {
	case 0:
		return value.Null, nil
	case 1:
		return items[0], nil
	default:
		return b.Sequence(items), nil
	}
}
