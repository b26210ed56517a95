package debug

import (
	"fmt"
	"os"

	"github.com/mml-format/go-mml/dom"
	"github.com/mml-format/go-mml/encode"
)

// Logf writes to stderr, rendering *dom.Document arguments as MML text.
func Logf(msg string, args ...any) {
	for i := range args {
		if doc, ok := args[i].(*dom.Document); ok {
			s, err := encode.String(doc)
			if err != nil {
				args[i] = fmt.Sprintf("[raw *dom.Document] %v", doc)
				continue
			}
			args[i] = s
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
