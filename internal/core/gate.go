package core

// GateFailureMessage is emitted whenever the wrapped checker exits
// non-zero.
const GateFailureMessage = "End-of-life dependencies detected. Please update the affected dependencies."

type GateResult struct {
	ExitCode int
	Passed   bool
	Message  string
}

// EvaluateExit applies the exit-code contract: zero passes, anything else
// fails with the fixed message.
func EvaluateExit(code int) GateResult {
	if code == 0 {
		return GateResult{ExitCode: 0, Passed: true}
	}
	return GateResult{ExitCode: code, Passed: false, Message: GateFailureMessage}
}
