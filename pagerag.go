// Package pagerag answers natural language questions about a single web
// page using retrieval-augmented generation. It fetches the page, splits
// its text into overlapping chunks, embeds them into an in-memory vector
// index, retrieves the chunks closest to a question and asks a language
// model to answer from them.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., openai/, chromem/, trafilatura/).
package pagerag
