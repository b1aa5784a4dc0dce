package discordclient

// Embed colors (24-bit RGB) used across outbound messages
const (
	ColorReminder    = 0x5865F2 // blurple
	ColorRosterReady = 0x57F287 // green
	ColorSummary     = 0xFEE75C // yellow
	ColorTest        = 0xEB459E // fuchsia
)

// Message is the webhook POST payload
type Message struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds"`
}

// Embed is a single Discord embed within a webhook message
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Image       *EmbedImage  `json:"image,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"` // ISO-8601
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
}

// EmbedImage references an image by URL
type EmbedImage struct {
	URL string `json:"url"`
}

// EmbedFooter is the embed footer line
type EmbedFooter struct {
	Text string `json:"text"`
}

// EmbedField is a titled field within an embed
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}
