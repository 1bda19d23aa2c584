package core

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ExpenseType separates planned spending from impulse buys.
type ExpenseType string

const (
	Necessity ExpenseType = "NECESSITY"
	Impulse   ExpenseType = "IMPULSE"
)

// EmotionAfterPurchase is how the user felt right after buying.
type EmotionAfterPurchase string

const (
	Happy       EmotionAfterPurchase = "HAPPY"
	Guilty      EmotionAfterPurchase = "GUILTY"
	Satisfied   EmotionAfterPurchase = "SATISFIED"
	Spontaneous EmotionAfterPurchase = "SPONTANEOUS"
	Pressured   EmotionAfterPurchase = "PRESSURED"
	Indifferent EmotionAfterPurchase = "INDIFFERENT"
)

// EmotionAtRegistration is how the user feels while recording the expense.
type EmotionAtRegistration string

const (
	Proud      EmotionAtRegistration = "PROUD"
	Reflective EmotionAtRegistration = "REFLECTIVE"
	Regretful  EmotionAtRegistration = "REGRETFUL"
	Neutral    EmotionAtRegistration = "NEUTRAL"
	Uncertain  EmotionAtRegistration = "UNCERTAIN"
	Surprised  EmotionAtRegistration = "SURPRISED"
)

var (
	ExpenseTypes           = []ExpenseType{Necessity, Impulse}
	EmotionsAfterPurchase  = []EmotionAfterPurchase{Happy, Guilty, Satisfied, Spontaneous, Pressured, Indifferent}
	EmotionsAtRegistration = []EmotionAtRegistration{Proud, Reflective, Regretful, Neutral, Uncertain, Surprised}
)

// ID is a server-assigned identifier that may arrive as a JSON number or string.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Expense is one tracked purchase.
type Expense struct {
	ID                    ID                    `json:"id,omitempty"`
	ItemName              string                `json:"itemName"`
	Price                 float64               `json:"price"`
	Type                  ExpenseType           `json:"type"`
	EmotionAfterPurchase  EmotionAfterPurchase  `json:"emotionAfterPurchase"`
	EmotionAtRegistration EmotionAtRegistration `json:"emotionAtRegistration"`
	Date                  string                `json:"date"`
}

// Today returns the current date in the wire format. The date is taken in UTC
// so it matches what the API stores for "today".
func Today(now time.Time) string {
	return now.UTC().Format(DateLayout)
}

// Names returns the string form of a set of enum values.
func Names[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// OneOfTag renders allowed values as a space separated list.
func OneOfTag[T ~string](allowed []T) string {
	return strings.Join(Names(allowed), " ")
}
