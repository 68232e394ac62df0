package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Debug dumps the request and build information, a convenience endpoint for
// checking what version a deployment is running.
func Debug(repoURL, sha1ver, buildTime string) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		lines := []string{
			fmt.Sprintf("url: %s %s", r.Method, r.RequestURI),
			"Headers:",
		}

		names := make([]string, 0, len(r.Header))
		for k := range r.Header {
			names = append(names, k)
		}
		sort.Strings(names)

		for _, k := range names {
			for _, v := range r.Header[k] {
				lines = append(lines, fmt.Sprintf("  %s: %s", k, v))
			}
		}

		lines = append(lines,
			"",
			fmt.Sprintf("ver: %s/commit/%s", repoURL, sha1ver),
			fmt.Sprintf("built on: %s", buildTime),
		)

		servePlainText(rw, strings.Join(lines, "\n"))
	})
}
