/*
Package ports defines the driven ports (interfaces) of the tool server.

These interfaces decouple the tool handlers and the dispatcher from concrete
backends, so the same catalog runs against Yahoo Finance, an in-memory fixture
or a test double.

# Key Interfaces

  - QuoteProvider: fetches price history, income statements and company profiles.
  - InvocationJournal: records the outcome of every tool invocation (e.g., in Redis).
*/
package ports
