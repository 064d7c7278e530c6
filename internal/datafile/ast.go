// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

// Package datafile parses the brace-nested text format used for mob type
// files:
//
//	name = Bulborb
//	script {
//	    idle {
//	        on_enter {
//	            set_animation idle
//	        }
//	    }
//	}
//
// Every line is a node. A node has a name, an optional "= value" and an
// optional block of child nodes. "//" starts a comment.
package datafile

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// fileLexer keeps newlines, which end a node. "=" is only an assignment on
// its own, so comparison words like "<=" and "==" stay whole.
var fileLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "comment", Pattern: `//[^\r\n]*`},
	{Name: "EOL", Pattern: `[\r\n]+`},
	{Name: "whitespace", Pattern: `[ \t]+`},
	{Name: "Open", Pattern: `\{`},
	{Name: "Close", Pattern: `\}`},
	{Name: "Word", Pattern: `(?:[!<>=]=|[^\s{}=])+`},
	{Name: "Eq", Pattern: `=`},
})

// File is a parsed data file.
//
// Grammar: EOL* ( node EOL* )*
type File struct {
	Nodes []*Node `parser:"EOL* ( @@ EOL* )*"`
}

// Node is one line, with its block when it opens one.
//
// Grammar: word+ [ "=" word* ] [ "{" EOL* ( node EOL* )* "}" ]
type Node struct {
	Pos    lexer.Position `parser:""`
	Words  []string       `parser:"@Word+"`
	Assign *Assignment    `parser:"@@?"`
	Body   *Block         `parser:"@@?"`
}

// Assignment is the "= value" part of a node.
type Assignment struct {
	Words []string `parser:"Eq @Word*"`
}

// Block holds child nodes.
type Block struct {
	Children []*Node `parser:"Open EOL* ( @@ EOL* )* Close"`
}

// Name returns the words before "=", space separated.
func (n *Node) Name() string { return strings.Join(n.Words, " ") }

// HasValue reports whether the node has an "=" part.
func (n *Node) HasValue() bool { return n.Assign != nil }

// Value returns the words after "=", space separated.
func (n *Node) Value() string {
	if n.Assign == nil {
		return ""
	}
	return strings.Join(n.Assign.Words, " ")
}

// Text returns the whole line with single spaces, which is how script
// statements are read back.
func (n *Node) Text() string {
	if n.Assign == nil {
		return n.Name()
	}
	if len(n.Assign.Words) == 0 {
		return n.Name() + " ="
	}
	return n.Name() + " = " + n.Value()
}

// Line returns the 1-based line the node starts on.
func (n *Node) Line() int { return n.Pos.Line }

// IsBlock reports whether the node opens a block.
func (n *Node) IsBlock() bool { return n.Body != nil }

// Children returns the nodes inside the block.
func (n *Node) Children() []*Node {
	if n.Body == nil {
		return nil
	}
	return n.Body.Children
}

// Child returns the first child named name.
func (n *Node) Child(name string) *Node {
	return find(n.Children(), name)
}

// Child returns the first top-level node named name.
func (f *File) Child(name string) *Node {
	return find(f.Nodes, name)
}

func find(nodes []*Node, name string) *Node {
	for _, c := range nodes {
		if c.Name() == name {
			return c
		}
	}
	return nil
}
