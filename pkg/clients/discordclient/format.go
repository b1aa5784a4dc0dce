package discordclient

import (
	"fmt"
	"strings"
	"time"
)

// TimestampFlag selects the rendering style of a dynamic timestamp token
type TimestampFlag string

const (
	FlagShortTime     TimestampFlag = "t"
	FlagLongTime      TimestampFlag = "T"
	FlagShortDate     TimestampFlag = "d"
	FlagLongDate      TimestampFlag = "D"
	FlagShortDateTime TimestampFlag = "f"
	FlagLongDateTime  TimestampFlag = "F"
	FlagRelative      TimestampFlag = "R"
)

// DynamicTimestamp renders a Discord dynamic timestamp token for t.
// The epoch value is truncated (floored) to whole seconds.
func DynamicTimestamp(t time.Time, flag TimestampFlag) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), flag)
}

// FormatMention renders a resolved handle for inclusion in a message.
// Purely-numeric handles (optionally prefixed with "@") are treated as user
// IDs and rendered as mention tokens; anything else is emitted verbatim.
// An empty handle renders as "Unknown".
func FormatMention(handle string) string {
	if handle == "" {
		return "Unknown"
	}

	id := strings.TrimPrefix(handle, "@")
	if id != "" && isNumeric(id) {
		return fmt.Sprintf("<@%s>", id)
	}

	return handle
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// RoleMention renders a role mention token, or an empty string for no role
func RoleMention(roleID string) string {
	if roleID == "" {
		return ""
	}
	return fmt.Sprintf("<@&%s>", roleID)
}
