package dashboard

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

// Detail is one labelled value of the detail page, in field order.
type Detail struct {
	Label string
	Value string
}

// recordValues flattens record into the text its form inputs start with, keyed by field name.
func recordValues(record any) map[string]string {

	values := map[string]string{}
	for _, detail := range recordDetails(record) {
		values[detail.Label] = detail.Value
	}

	return values
}

func recordDetails(record any) []Detail {

	body, err := json.Marshal(record)
	if err != nil {
		return nil
	}

	var details []Detail
	gjson.ParseBytes(body).ForEach(func(key, value gjson.Result) bool {

		details = append(details, Detail{Label: key.String(), Value: text(value)})
		return true
	})

	return details
}

func text(value gjson.Result) string {

	if !value.IsArray() {
		return value.String()
	}

	items := value.Array()
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, item.String())
	}

	return strings.Join(parts, ", ")
}

func submittedValues(form url.Values) map[string]string {

	values := make(map[string]string, len(form))
	for key := range form {
		values[key] = form.Get(key)
	}

	return values
}
