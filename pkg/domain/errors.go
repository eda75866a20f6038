package domain

import "errors"

// ErrUnknownTool is returned when a tool name is not registered.
var ErrUnknownTool = errors.New("unknown tool")

// ErrUnknownPrompt is returned when a prompt name is not registered.
var ErrUnknownPrompt = errors.New("unknown prompt")

// ErrDuplicateName is returned when registering a name that is already taken.
var ErrDuplicateName = errors.New("duplicate name")

// ErrRegistryFrozen is returned when registering after the registry was frozen.
var ErrRegistryFrozen = errors.New("registry is frozen")

// ErrInvalidArguments marks arguments that do not satisfy a tool's parameters.
var ErrInvalidArguments = errors.New("invalid arguments")

// ErrProvider marks failures of the upstream quote provider
// (unknown ticker, network fault, malformed payload).
var ErrProvider = errors.New("provider error")
