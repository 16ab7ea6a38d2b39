package httpapi

// JudgeRequest is the wire shape of a single judge request.
type JudgeRequest struct {
	Code          string  `json:"code"`
	Language      string  `json:"language"`
	Stdin         string  `json:"stdin"`
	DesiredStdout string  `json:"desired_stdout"`
	TimeLimit     float64 `json:"time_limit"`
	MemoryLimit   float64 `json:"memory_limit"`
}

// JudgeResponse is the wire shape of a graded judge result.
type JudgeResponse struct {
	Code     int     `json:"code"`
	Status   string  `json:"status"`
	Stdout   string  `json:"stdout"`
	Stderr   string  `json:"stderr"`
	Time     float64 `json:"time"`
	Memory   float64 `json:"memory"`
}

// SandboxStatusResponse reports the current composition of the sandbox pool.
type SandboxStatusResponse struct {
	AvailableSandboxes int `json:"available_sandboxes"`
	IdleSandboxes      int `json:"idle_sandboxes"`
	RunningSandboxes   int `json:"running_sandboxes"`
	ErrorSandboxes     int `json:"error_sandboxes"`
}

// ErrorResponse is the JSON body returned for every failed request; the
// handlers and panic recovery answer failures with 500, matching the judge
// core's convention of treating request-handling failures as internal
// errors rather than distinguishing client/server fault at the edge. The
// rate limiter is the one exception and answers with 429.
type ErrorResponse struct {
	Error string `json:"error"`
}
