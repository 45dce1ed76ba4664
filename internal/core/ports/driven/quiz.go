package driven

// QuizInvoker starts a recall quiz. The quiz itself is opaque to the
// core: no parameters, no return value, fire-and-forget.
type QuizInvoker interface {
	// InvokeQuiz starts a quiz. Implementations log and swallow their
	// own failures; the core never sees them.
	InvokeQuiz()
}
