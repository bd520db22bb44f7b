package smsdev

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/oggyb/smsdev/internal/dateformat"
)

// Message is a received SMS as returned by Client.Messages.
type Message struct {
	ID     int    `json:"id"`
	Date   string `json:"date"`
	Number string `json:"number"`
	Text   string `json:"message"`

	// ReceivedAt is the same instant as Date, in the client's location.
	ReceivedAt time.Time `json:"-"`
}

// parseMessages projects an inbox result into messages. Anything that is not
// an object carrying id_sms_read is skipped, which also drops the single
// "no messages" record the gateway returns for an empty inbox.
func parseMessages(result any, layout string, loc *time.Location) []Message {
	items, ok := result.([]any)
	if !ok {
		return nil
	}

	var (
		out   []Message
		index = make(map[int]int)
	)

	for _, item := range items {
		rec, ok := item.(map[string]any)
		if !ok {
			continue
		}

		rawID, ok := rec["id_sms_read"]
		if !ok {
			continue
		}

		id, err := intValue(rawID)
		if err != nil {
			log.Printf("[SmsDev] Skipping inbox record with id %v: %v", rawID, err)
			continue
		}

		parsed, err := dateformat.Parse(dateformat.APIDateTime, stringField(rec, "data_read"), apiLocation)
		if err != nil {
			log.Printf("[SmsDev] Skipping inbox record %d: bad data_read: %v", id, err)
			continue
		}

		at := parsed.Time.In(loc)
		msg := Message{
			ID:         id,
			Date:       dateformat.Format(at, layout),
			Number:     stringField(rec, "telefone"),
			Text:       stringField(rec, "descricao"),
			ReceivedAt: at,
		}

		// Duplicate ids keep their first position and the latest record.
		if i, seen := index[id]; seen {
			out[i] = msg
			continue
		}
		index[id] = len(out)
		out = append(out, msg)
	}

	return out
}

// stringField reads a JSON scalar as a string; the gateway is inconsistent
// about quoting numbers.
func stringField(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// intValue coerces a JSON scalar to an int, truncating decimals.
func intValue(v any) (int, error) {
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, err
		}
		return int(f), nil
	default:
		return 0, strconv.ErrSyntax
	}
}
