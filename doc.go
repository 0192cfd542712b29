// Package langfuse fetches prompt templates from Langfuse and compiles them.
// Templates use flat {{ name }} placeholders; Compile fails fast with a
// MissingVariablesError naming every placeholder that has no value.
// See package langfusetest for an in-memory PromptClient.
package langfuse
