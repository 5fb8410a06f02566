// Package lang implements the evaluator for tagl, a small templating language
// embedded in markup.
//
// Authors write nested control tags whose attributes encode literal values,
// variable references and function calls. Evaluating the tree produces an
// output tree (through a [Sink]) plus side effects: diagnostic logs and
// function registration.
//
// # Literals
//
// Attribute text is converted to a [Literal] by [ParseAttr]:
//
//	<V 42>            Number
//	<V $name>         Var (variable reference)
//	<V true>          Bool
//	<V hello>         String
//	<LET n=1>         Binding (named)
//
// # Scoping
//
// Scopes form a parent-linked chain of [Env] values:
//
//   - [Env.Enter] creates an ordinary child scope sharing its parent's
//     operand stack. LET and FOR use it.
//   - [Env.EnterBoundary] creates a boundary scope with a fresh operand stack.
//     Every user function call uses it.
//
// Variable lookup stops at the nearest boundary, so a function body only sees
// its own parameters and locals. Function lookup always walks to the root, so
// every defined function is callable from anywhere.
//
// # Calling convention
//
// Natives with arity 0 read their evaluated arguments directly. Natives with
// arity N>0 ignore their arguments and pop N operands off the current operand
// stack; the first pop is the right-hand operand:
//
//	<DO push 10></DO><DO push 3></DO><DO sub></DO>   leaves 7 on the stack
//
// A user function returns a value by leaving it on top of its own stack. The
// caller receives it on the caller's stack; the function's rendered body is
// the call's output.
//
// # Evaluation
//
// Every [Node] has two evaluation modes. [Eval] produces a [Result] for
// rendering and [EvalValue] produces a scalar. [Flatten] materializes a
// [Result] into the output tree.
package lang
