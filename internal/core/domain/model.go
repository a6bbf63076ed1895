package domain

import (
	"encoding/base64"
)

// InlineImage is an encoded image sent inline with a prompt.
type InlineImage struct {
	MIMEType string
	Data     []byte
}

// Base64 returns the standard base64 encoding of the image bytes.
func (i InlineImage) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

// DataURL returns the image as a data URL, e.g. data:image/jpeg;base64,....
func (i InlineImage) DataURL() string {
	return "data:" + i.MIMEType + ";base64," + i.Base64()
}

type Prompt struct {
	Prompt string
	Image  InlineImage
	Model  Model
}

type Message struct {
	ID               int
	ChatID           int64
	Username         string
	ReplyToMessageID *int
	ImageURL         string
	Text             string
}

type Action string

const (
	Typing Action = "typing"
)

type ModelResponse struct {
	Response string
	Metadata ResponseMetadata
}

type Model struct {
	Provider   string `json:"provider"`
	Identifier string `json:"identifier"`
}

type ResponseMetadata struct {
	Model            string
	CompletionTokens int
	TotalTokens      int
}
