package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/voxboard/voxboard/internal/intent"
)

// Time patterns are tried in order of specificity. Spoken-word hours
// ("eight thirty pm") require a meridiem so bare number words elsewhere in
// the utterance are not mistaken for times.
var (
	clockTimePattern = regexp.MustCompile(`(\d{1,2}):(\d{1,2})\s*(am|pm)?\b`)
	spacedPattern    = regexp.MustCompile(`(\d{1,2})\s+(\d{1,2})\s*(am|pm)\b`)
	hourOnlyPattern  = regexp.MustCompile(`(\d{1,2})\s*(am|pm)\b`)
	bareHourPattern  = regexp.MustCompile(`\b(\d{1,2})\b`)
	wordTimePattern  = regexp.MustCompile(`\b(one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve)(?:\s+(thirty|fifteen|forty-five))?\s*(am|pm)\b`)
)

var wordToHour = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
}

var wordToMinute = map[string]int{
	"thirty":     30,
	"fifteen":    15,
	"forty-five": 45,
}

// Alarm locates a time expression and converts it to a 24-hour "HH:MM" value.
// With a meridiem the hour must be 1-12; without one it must be 1-23.
func Alarm(text string) (AlarmPayload, error) {
	lowered := strings.ToLower(text)

	hours, minutes, meridiem, found := matchDigitTime(lowered)
	if !found {
		hours, minutes, meridiem, found = matchWordTime(lowered)
	}
	if !found {
		return AlarmPayload{}, &Error{Intent: intent.Alarm, Reason: ReasonNoTime}
	}

	if meridiem != "" {
		if hours < 1 || hours > 12 {
			return AlarmPayload{}, &Error{Intent: intent.Alarm, Reason: ReasonBadHour}
		}
	} else if hours < 1 || hours > 23 {
		return AlarmPayload{}, &Error{Intent: intent.Alarm, Reason: ReasonBadHour}
	}
	if minutes < 0 || minutes > 59 {
		return AlarmPayload{}, &Error{Intent: intent.Alarm, Reason: ReasonBadMinute}
	}

	if meridiem == "pm" && hours < 12 {
		hours += 12
	}
	if meridiem == "am" && hours == 12 {
		hours = 0
	}

	return AlarmPayload{Time: fmt.Sprintf("%02d:%02d", hours, minutes)}, nil
}

// matchDigitTime tries the digit-bearing patterns most to least specific.
func matchDigitTime(text string) (hours, minutes int, meridiem string, found bool) {
	if m := clockTimePattern.FindStringSubmatch(text); m != nil {
		hours, _ = strconv.Atoi(m[1])
		minutes, _ = strconv.Atoi(m[2])
		return hours, minutes, m[3], true
	}
	if m := spacedPattern.FindStringSubmatch(text); m != nil {
		hours, _ = strconv.Atoi(m[1])
		minutes, _ = strconv.Atoi(m[2])
		return hours, minutes, m[3], true
	}
	if m := hourOnlyPattern.FindStringSubmatch(text); m != nil {
		hours, _ = strconv.Atoi(m[1])
		return hours, 0, m[2], true
	}
	if m := bareHourPattern.FindStringSubmatch(text); m != nil {
		hours, _ = strconv.Atoi(m[1])
		return hours, 0, "", true
	}
	return 0, 0, "", false
}

func matchWordTime(text string) (hours, minutes int, meridiem string, found bool) {
	m := wordTimePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, "", false
	}
	hours = wordToHour[m[1]]
	if m[2] != "" {
		minutes = wordToMinute[m[2]]
	}
	return hours, minutes, m[3], true
}
