package pagerag

import "strings"

// FormatContext joins retrieved segments into a single context block.
// Segments keep retrieval order and are separated by blank lines.
func FormatContext(segments []string) string {
	return strings.Join(segments, "\n\n")
}

// BuildPrompt builds the user prompt that instructs the model to answer
// strictly from the given segments.
func BuildPrompt(segments []string, question string) string {
	var sb strings.Builder
	sb.WriteString("Answer the question based only on the following context from the web page:\n")
	sb.WriteString("<context>\n")
	sb.WriteString(FormatContext(segments))
	sb.WriteString("\n</context>\n\n")
	sb.WriteString("Question: ")
	sb.WriteString(question)
	sb.WriteString("\n\n")
	sb.WriteString("Provide a clear and concise answer based only on the provided context. ")
	sb.WriteString("If the context doesn't contain enough information to answer the question, say so.")
	return sb.String()
}
