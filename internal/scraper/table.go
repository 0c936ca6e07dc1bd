package scraper

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// tableToRecords converts an HTML data table into row-keyed JSON records:
// the first cell of each row is the record key, the remaining cells map
// column header to value. An absent or empty table yields "".
func tableToRecords(table *goquery.Selection) string {
	if table == nil || table.Length() == 0 {
		return ""
	}

	var headers []string
	table.Find("th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(th.Text()))
	})
	if len(headers) == 0 {
		return ""
	}

	records := map[string]map[string]string{}
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return // header row
		}
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return
		}
		key := strings.TrimSpace(cells.Eq(0).Text())
		if key == "" {
			return
		}
		row := map[string]string{}
		cells.Slice(1, cells.Length()).Each(func(j int, td *goquery.Selection) {
			// Column headers are offset by one: the first header labels
			// the row-key column.
			if j+1 < len(headers) {
				row[headers[j+1]] = strings.TrimSpace(td.Text())
			}
		})
		records[key] = row
	})
	if len(records) == 0 {
		return ""
	}

	data, err := json.Marshal(records)
	if err != nil {
		return ""
	}
	return string(data)
}
