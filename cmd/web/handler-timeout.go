package main

import (
	"net/http"
	"time"
)

const timeoutBody = `<!doctype html>
<html lang="en">
<head><title>Timeout - FarmSecure</title></head>
<body>
<h1>The farm is busy</h1>
<p>The request took too long. <a href="">Try again</a>.</p>
</body>
</html>
`

// timeoutHandler answers 503 Service Unavailable when h misses the deadline. The deadline is a little
// shorter than the server write timeout so that the response still gets written.
func timeoutHandler(h http.Handler, serverTimeout time.Duration) http.Handler {
	return http.TimeoutHandler(h, serverTimeout-500*time.Millisecond, timeoutBody) //nolint:mnd // 500ms margin
}
