// Package tool defines the invocation contract shared by the registry and the
// tool handlers.
//
// A [Handler] receives raw arguments and returns a [Result]: either a success
// payload or an error. Errors come in two kinds:
//
//   - [UserError]: a failure with a message safe to show to the calling agent
//     (invalid arguments, a rejected remote request).
//   - [InternalFault]: anything unexpected. Faults never leave a handler as-is;
//     [AsUserError] re-wraps them into a UserError carrying the fault's message.
//
// Handlers obtain their structured logger from the context with [LoggerFrom].
package tool
