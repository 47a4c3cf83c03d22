// Package model defines the provider-agnostic abstractions and concrete
// helpers for interacting with language / reasoning models inside the
// assistant.
//
// Core goals:
//   - Reduce every planning step to a single Decision (final text or one tool call)
//   - Normalize tool / function call representation (ToolDefinition, ToolCall)
//   - Keep request/response shapes minimal and transport independent
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (e.g. OpenAI, Anthropic) implement the Model interface from this
// package so higher layers (router, agent executor) remain decoupled from
// vendor SDKs.
package model
