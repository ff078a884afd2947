// Package markdown turns post source text into front matter and an ordered
// sequence of typed content blocks.
//
// Parsing is a single forward pass over the body lines. Each block rule is
// tried in a fixed precedence order at the current cursor, and the first
// match consumes one or more lines into exactly one block. Body content
// never produces an error: malformed tables are dropped, unterminated fences
// absorb the rest of the document, and anything else becomes paragraph
// text. Only a missing front matter delimiter fails, with
// ErrMalformedDocument.
package markdown
