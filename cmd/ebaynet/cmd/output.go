package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/donaldgifford/ebaynet/pkg/ebay"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printItemDetail(w io.Writer, item *ebay.Item) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%s\n", item.ItemID)
	if item.LegacyItemID != "" {
		tw.writef("Legacy ID:\t%s\n", item.LegacyItemID)
	}
	tw.writef("Title:\t%s\n", item.Title)
	tw.writef("Price:\t%s\n", formatPrice(item.Price))
	if item.Condition != "" {
		tw.writef("Condition:\t%s\n", item.Condition)
	}
	if item.Seller != nil {
		tw.writef("Seller:\t%s (%d, %s%%)\n",
			item.Seller.Username, item.Seller.FeedbackScore, item.Seller.FeedbackPercentage)
	}
	if item.ItemLocation != nil {
		tw.writef("Location:\t%s\n", formatLocation(item.ItemLocation))
	}
	if len(item.BuyingOptions) > 0 {
		tw.writef("Buying:\t%s\n", strings.Join(item.BuyingOptions, ", "))
	}
	if item.PrimaryItemGroup != nil {
		tw.writef("Group:\t%s\n", item.PrimaryItemGroup.ItemGroupID)
	}
	tw.writef("URL:\t%s\n", item.ItemWebURL)
	return tw.finish()
}

func printItemsTable(w io.Writer, items []ebay.Item) error {
	tw := newTabWriter(w)
	tw.writef("ID\tTITLE\tPRICE\tCONDITION\tSELLER\n")
	for i := range items {
		seller := "-"
		if items[i].Seller != nil {
			seller = items[i].Seller.Username
		}
		tw.writef("%s\t%s\t%s\t%s\t%s\n",
			items[i].ItemID,
			truncate(items[i].Title, 40),
			formatPrice(items[i].Price),
			items[i].Condition,
			seller,
		)
	}
	return tw.finish()
}

func printSummaryTable(w io.Writer, resp *ebay.SearchResponse) error {
	tw := newTabWriter(w)
	tw.writef("ID\tTITLE\tPRICE\tCONDITION\tBUYING\n")
	for i := range resp.Items {
		s := &resp.Items[i]
		tw.writef("%s\t%s\t%s\t%s\t%s\n",
			s.ItemID,
			truncate(s.Title, 40),
			formatPrice(s.Price),
			s.Condition,
			strings.Join(s.BuyingOptions, ","),
		)
	}
	if resp.HasMore {
		tw.writef("\n%d of %d shown\n", len(resp.Items), resp.Total)
	}
	return tw.finish()
}

func printRateLimitsTable(w io.Writer, limits []ebay.RateLimit) error {
	tw := newTabWriter(w)
	tw.writef("API\tRESOURCE\tLIMIT\tREMAINING\tRESET\n")
	for i := range limits {
		for j := range limits[i].Resources {
			res := &limits[i].Resources[j]
			for k := range res.Rates {
				r := &res.Rates[k]
				tw.writef("%s.%s\t%s\t%d\t%d\t%s\n",
					limits[i].APIContext,
					limits[i].APIName,
					res.Name,
					r.Limit,
					r.Remaining,
					r.Reset,
				)
			}
		}
	}
	return tw.finish()
}

func printQuotaState(w io.Writer, q *ebay.QuotaState) error {
	tw := newTabWriter(w)
	tw.writef("Limit:\t%d\n", q.Limit)
	tw.writef("Remaining:\t%d\n", q.Remaining)
	tw.writef("Resets:\t%s (in %s)\n",
		q.ResetAt.Format(time.RFC3339), time.Until(q.ResetAt).Round(time.Minute))
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatPrice(p ebay.Price) string {
	if p.Value == "" {
		return "-"
	}
	return p.Value + " " + p.Currency
}

func formatLocation(l *ebay.ItemLocation) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{l.City, l.StateOrProvince, l.Country} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
