package media

import "regexp"

// Known YouTube URL shapes: canonical watch URLs, youtu.be short
// links and embed URLs.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?(?:[^&\s]*&)*v=([A-Za-z0-9_-]+)`),
	regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]+)`),
	regexp.MustCompile(`youtube\.com/embed/([A-Za-z0-9_-]+)`),
}

// ExtractVideoID pulls the opaque video identifier out of a hosting
// URL. It returns ok == false when no known shape matches; deciding
// whether that is an error is the caller's job.
func ExtractVideoID(url string) (string, bool) {
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(url); m != nil {
			return m[1], true
		}
	}
	return "", false
}
