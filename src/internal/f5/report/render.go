// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package f5report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// RenderTable renders the report as a formatted markdown table, one line per
// row with certificate, expiration, matched profile, and referencing
// virtual servers.
func RenderTable(rows []Row) string {
	if len(rows) == 0 {
		return "No certificates expiring within the requested horizon"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	headers := []string{"🔢 #", "📛 Certificate", "📅 Expires", "🏷️ Profile", "🌐 Virtual Servers", "📜 Subject"}
	table.Header(headers)

	var data [][]string
	for i, row := range rows {
		profile := "-"
		if row.Profile != nil {
			profile = row.Profile.FullPath()
		}

		virtuals := "-"
		if len(row.Virtuals) > 0 {
			ids := make([]string, 0, len(row.Virtuals))
			for _, v := range row.Virtuals {
				ids = append(ids, v.ID)
			}
			virtuals = strings.Join(ids, ", ")
		}

		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			row.Certificate.FullPath(),
			row.Expiration.Format("2006-01-02"),
			profile,
			virtuals,
			row.Subject,
		})
	}

	table.Bulk(data)
	table.Render()
	return buf.String()
}

// RenderJSON encodes the report as indented JSON for external tooling.
func RenderJSON(rows []Row) ([]byte, error) {
	return json.MarshalIndent(rows, "", "  ")
}
