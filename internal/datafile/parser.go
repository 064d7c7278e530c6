// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package datafile

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/samber/oops"
)

// CodeSyntax marks a data file that does not parse.
const CodeSyntax = "DATAFILE_SYNTAX"

var parser *participle.Parser[File]

func init() {
	var err error
	parser, err = NewParser()
	if err != nil {
		panic(fmt.Sprintf("failed to build data file parser: %v", err))
	}
}

// NewParser builds the data file parser.
func NewParser() (*participle.Parser[File], error) {
	return participle.Build[File](
		participle.Lexer(fileLexer),
		participle.Elide("comment", "whitespace"),
	)
}

// Parse parses src. filename is only used in error positions.
func Parse(filename string, src []byte) (*File, error) {
	f, err := parser.ParseBytes(filename, src)
	if err != nil {
		line := 0
		var perr participle.Error
		if errors.As(err, &perr) {
			line = perr.Position().Line
		}
		return nil, oops.In("datafile").Code(CodeSyntax).
			With("file", filename).
			With("line", line).
			Wrapf(err, "parsing data file")
	}
	return f, nil
}
