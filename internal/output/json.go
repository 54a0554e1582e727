package output

import (
	"encoding/json"
)

// JSONFormatter renders reports as JSON.
type JSONFormatter struct {
	Indent bool
}

type jsonRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

// Format encodes the report payload, or its rows when there is no payload.
func (f *JSONFormatter) Format(report *Report) (string, error) {
	if report == nil {
		return "", nil
	}

	var value any = report.Payload
	if value == nil {
		rows := make([]jsonRow, 0, len(report.Rows))
		for _, r := range report.Rows {
			rows = append(rows, jsonRow(r))
		}
		value = rows
	}

	var (
		data []byte
		err  error
	)

	if f.Indent {
		data, err = json.MarshalIndent(value, "", "  ")
	} else {
		data, err = json.Marshal(value)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}
