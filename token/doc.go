// Package token provides tokenization of ModuleManager style config
// documents.
//
// [Tokenize] splits a document into newlines, comments, braces, statement
// text, assignment operators and values. Statement text is not interpreted;
// package parse gives it structure.
package token
