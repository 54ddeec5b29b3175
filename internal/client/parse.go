package client

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/JohnDeved/no-spoilers/internal/provider"
)

var ordinalSuffix = regexp.MustCompile(`(\d{1,2})(st|nd|rd|th)\b`)

// parseDocument parses raw HTML into a goquery document.
func parseDocument(r io.Reader) (*goquery.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// parseResults turns a results page into day listings, in page order.
// Blocks without a dated headline (e.g. featured results) are skipped.
func parseResults(r io.Reader, pageURL string, now time.Time) ([]provider.DayListing, error) {
	doc, err := parseDocument(r)
	if err != nil {
		return nil, err
	}

	var days []provider.DayListing
	doc.Find(".results-sublist").Each(func(_ int, sublist *goquery.Selection) {
		headline := strings.TrimSpace(sublist.Find(".standard-headline").First().Text())
		date, err := parseHeadlineDate(headline, now)
		if err != nil {
			slog.Debug("skipping results block", "headline", headline, "err", err)
			return
		}

		listing := provider.DayListing{Date: date}
		sublist.Find(".result-con").Each(func(_ int, row *goquery.Selection) {
			listing.Matches = append(listing.Matches, parseResultRow(row, pageURL))
		})
		days = append(days, listing)
	})

	return days, nil
}

// parseResultRow extracts whatever it can from one result row. Missing
// fields are left empty and rejected later by RawMatch.Validate.
func parseResultRow(row *goquery.Selection, pageURL string) provider.RawMatch {
	var m provider.RawMatch

	row.Find(".team-cell").Each(func(_ int, cell *goquery.Selection) {
		name := cell.Find(".team").First()
		if name.Length() == 0 {
			name = cell
		}
		m.Teams = append(m.Teams, strings.TrimSpace(name.Text()))
	})

	event := row.Find(".event-name").First()
	if event.Length() == 0 {
		event = row.Find(".event").First()
	}
	m.Event = strings.TrimSpace(event.Text())

	link := row.Find("a.a-reset").First()
	if link.Length() == 0 && row.Is("a.a-reset") {
		link = row
	}
	if href, ok := link.Attr("href"); ok && href != "" {
		if full, err := resolveURL(pageURL, href); err == nil {
			m.URL = full
		}
	}

	return m
}

// parseHeadlineDate reads dates like "Results for October 18th 2026".
// A headline without a year takes the latest such date not after now.
func parseHeadlineDate(headline string, now time.Time) (time.Time, error) {
	text := strings.TrimSpace(headline)
	if i := strings.Index(strings.ToLower(text), "results for"); i >= 0 {
		text = text[i+len("results for"):]
	}
	text = ordinalSuffix.ReplaceAllString(text, "$1")
	text = strings.Join(strings.Fields(strings.ReplaceAll(text, ",", " ")), " ")
	if text == "" {
		return time.Time{}, fmt.Errorf("no date in headline %q", headline)
	}

	for _, layout := range []string{"January 2 2006", "Jan 2 2006", "2006-01-02"} {
		if t, err := time.Parse(layout, text); err == nil {
			return t, nil
		}
	}
	for _, layout := range []string{"January 2", "Jan 2"} {
		if t, err := time.Parse(layout, text); err == nil {
			d := time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			if d.After(now) {
				d = d.AddDate(-1, 0, 0)
			}
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", text)
}

// parseVods extracts stream boxes from a match page, in page order.
func parseVods(r io.Reader) ([]provider.RawVod, error) {
	doc, err := parseDocument(r)
	if err != nil {
		return nil, err
	}

	var vods []provider.RawVod
	doc.Find(".stream-box[data-stream-embed]").Each(func(_ int, box *goquery.Selection) {
		label := ""
		if fields := strings.Fields(box.Text()); len(fields) > 0 {
			label = fields[0]
		}

		flag := box.Find("img[alt]").First()
		country := strings.TrimSpace(flag.AttrOr("alt", ""))
		if country == "" {
			country = strings.TrimSpace(box.Find("img[title]").First().AttrOr("title", ""))
		}

		vods = append(vods, provider.RawVod{
			Label:     label,
			Country:   country,
			StreamURL: strings.TrimSpace(box.AttrOr("data-stream-embed", "")),
		})
	})

	return vods, nil
}

func resolveURL(base, ref string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	relURL, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return baseURL.ResolveReference(relURL).String(), nil
}
