/*
Package domain holds the core types shared by the tool registry, the dispatcher,
the quote providers and the transport adapters.

# Tools

A ToolSpec describes a named operation and its ordered parameters. A ToolHandler
is bound to exactly one spec at registration time. Invocations arrive as an
InvocationRequest and leave as a Result, which is either a success carrying text
or a failure carrying a FailureKind and a message.

# Errors

Handlers signal the kind of failure by wrapping one of the sentinel errors:
ErrProvider for upstream fetch failures and ErrInvalidArguments for argument
problems detected after schema validation. Any other error is a handler error.
*/
package domain
