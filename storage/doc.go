// Package storage defines the persistence interfaces of the alignment
// pipeline and the serialization helpers shared by their implementations.
//
// Repositories cover five concerns: source concepts, the translation cache,
// accepted mappings, alias indexes, and precomputed embedding artifacts. The
// storage/badger sub-package implements all of them on a single BadgerDB
// instance with per-concern key prefixes.
//
// Records are serialized with the mus binary format. The wrappers in
// serialization.go pair each record type with its serializer so repository
// code never touches the codecs directly.
package storage
