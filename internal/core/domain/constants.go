package domain

import "errors"

const JPEGMimeType = "image/jpeg"

var (
	ErrSendingReplyFailed = errors.New("failed to send reply")
	ErrEmptyImageURL      = errors.New("empty image URL")
	ErrEmptyResponse      = errors.New("model returned no content")
	ErrImageTooLarge      = errors.New("image exceeds maximum download size")
)
