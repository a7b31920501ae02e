package notion

import "fmt"

// A PropertyValue is one database property of a page. Exactly one field
// is set, matching the property's type.
type PropertyValue struct {
	Title    []RichText   `json:"title,omitempty"`
	RichText []RichText   `json:"rich_text,omitempty"`
	Date     *DateValue   `json:"date,omitempty"`
	Status   *StatusValue `json:"status,omitempty"`
	People   []PersonRef  `json:"people,omitempty"`
}

// A DateValue is a date property payload.
type DateValue struct {
	Start    string  `json:"start"`
	End      *string `json:"end"`
	TimeZone *string `json:"time_zone"`
}

// A StatusValue is a status property payload.
type StatusValue struct {
	Name string `json:"name"`
}

// A PersonRef references a workspace user by id.
type PersonRef struct {
	ID string `json:"id"`
}

// Properties converts loose key/value pairs into typed property values.
// "Title" maps to a title property, "Date" to a date, "Status" to a
// status, a list-valued "Attendees" to people, and everything else to
// rich text. Empty and nil values are skipped.
func Properties(in map[string]interface{}) map[string]PropertyValue {
	out := make(map[string]PropertyValue)
	for key, value := range in {
		if value == nil || value == "" {
			continue
		}
		switch key {
		case "Title":
			out[key] = PropertyValue{Title: []RichText{Text(stringify(value))}}
		case "Date":
			out[key] = PropertyValue{Date: &DateValue{Start: stringify(value)}}
		case "Status":
			out[key] = PropertyValue{Status: &StatusValue{Name: stringify(value)}}
		case "Attendees":
			if ids, ok := value.([]interface{}); ok {
				var people []PersonRef
				for _, id := range ids {
					people = append(people, PersonRef{ID: stringify(id)})
				}
				out[key] = PropertyValue{People: people}
				continue
			}
			out[key] = PropertyValue{RichText: []RichText{Text(stringify(value))}}
		default:
			out[key] = PropertyValue{RichText: []RichText{Text(stringify(value))}}
		}
	}
	return out
}

func stringify(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
