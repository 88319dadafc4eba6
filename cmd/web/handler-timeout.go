package main

import (
	"net/http"
	"time"
)

const timeoutBody = `<html lang="en">
<head><title>Timeout</title></head>
<body>
<h1>Timeout</h1>
<p>The request took too long. Your answers are saved.</p>
<p><a href="/">Back to the assessment</a></p>
</body>
</html>
`

// timeoutHandler responds with a 503 Service Unavailable error when the handler does not meet the deadline.
func timeoutHandler(h http.Handler, timeout time.Duration) http.Handler {
	// Shorter than the server's write timeout so that the timeout handler has a chance to respond before the
	// server closes the connection.
	httpHandlerTimeout := timeout - 500*time.Millisecond //nolint:mnd // 500ms
	return http.TimeoutHandler(h, httpHandlerTimeout, timeoutBody)
}
