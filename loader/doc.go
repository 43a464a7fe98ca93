// Package loader adds schema documents stored on disk to a validator.
//
// The validator never performs I/O while resolving references, so every
// document a schema refers to must be added first. A Loader reads single
// files or whole directory trees, parses them as JSON or YAML and registers
// each one under a URI derived from its path:
//
//	v, _ := validator.New()
//	l, _ := loader.New(v, loader.WithBaseURI("https://example.com/schemas/"))
//	n, err := l.LoadDir("./schemas")
//
// Files are added in lexical order. A document whose references point at a
// file sorted after it is retried once the rest of the tree is in, so the
// order of files on disk does not matter.
//
// Reads are capped by WithMaxFileSize and WithMaxDocuments; exceeding a cap
// returns a *schemaerrors.ResourceLimitError.
package loader
