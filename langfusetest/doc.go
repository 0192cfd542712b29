// Package langfusetest provides Fake, an in-memory langfuse.PromptClient that records
// every lookup so tests can assert which prompts were requested.
// Use NewFake with explicit dependency passing, or Install to swap the process-wide
// default client for the duration of one test.
package langfusetest
