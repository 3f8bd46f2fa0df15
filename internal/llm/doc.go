// Package llm provides language model clients for the conversational
// assistant and entry analysis. It supports multiple providers including
// OpenAI and Anthropic, with retry logic, rate limiting, and a strict
// parse-or-default boundary around responses that claim to carry JSON.
package llm
