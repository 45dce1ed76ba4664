// Package quiz provides implementations of the QuizInvoker port.
//
// The command invoker launches a user-configured external program when
// a trigger fires. When no command is configured it falls back to
// printing a prompt on the terminal.
package quiz
