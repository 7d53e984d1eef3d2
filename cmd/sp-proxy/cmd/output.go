package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mfigueredo/amazon-sp-proxy/internal/amazon"
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

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func itemTitle(item *amazon.CatalogItem) string {
	for i := range item.Summaries {
		if item.Summaries[i].ItemName != "" {
			return item.Summaries[i].ItemName
		}
	}
	return ""
}

func printSearchTable(resp *amazon.CatalogSearchResponse) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ASIN\tTITLE\n")
	for i := range resp.Items {
		tw.writef("%s\t%s\n", resp.Items[i].ASIN, itemTitle(&resp.Items[i]))
	}
	if err := tw.finish(); err != nil {
		return err
	}

	fmt.Printf("\n%d results\n", resp.NumberOfResults)
	if resp.Pagination != nil {
		if resp.Pagination.NextToken != "" {
			fmt.Println("next page token:", resp.Pagination.NextToken)
		}
		if resp.Pagination.PreviousToken != "" {
			fmt.Println("previous page token:", resp.Pagination.PreviousToken)
		}
	}
	return nil
}

func printProductDetail(item *amazon.CatalogItem) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ASIN:\t%s\n", item.ASIN)
	tw.writef("Title:\t%s\n", itemTitle(item))
	for i := range item.Summaries {
		s := &item.Summaries[i]
		if s.Brand != "" {
			tw.writef("Brand:\t%s\n", s.Brand)
		}
		if s.ReleaseDate != "" {
			tw.writef("Released:\t%s\n", s.ReleaseDate)
		}
	}
	return tw.finish()
}
