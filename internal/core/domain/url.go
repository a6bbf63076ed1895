package domain

import (
	"net/url"
	"path"
)

// RedactURL keeps scheme, host and the last path element of raw. Telegram file links carry the
// bot token in the path, so only redacted URLs go into logs and replies.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "<invalid url>"
	}

	redacted := u.Scheme + "://" + u.Host
	if u.Path == "" || u.Path == "/" {
		return redacted
	}

	return redacted + "/.../" + path.Base(u.Path)
}
