package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/mario-agban/CarpeMed/internal"
	"github.com/mario-agban/CarpeMed/internal/config"
	"github.com/mario-agban/CarpeMed/internal/util"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// Scraper is the narrow interface every site adapter satisfies.
type Scraper interface {
	Scrape(ctx context.Context) ([]internal.RawProviderRecord, error)
}

// NewScraper picks the adapter for a source descriptor.
func NewScraper(cfg config.Config, src Source) (Scraper, error) {
	client := &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutMs) * time.Millisecond}
	limiter := util.NewRateLimiter(cfg.ScrapeRateRPS)

	switch src.Strategy {
	case "static":
		return &StaticScraper{src: src, client: client, limiter: limiter}, nil
	case "hospiten":
		if src.Hospiten == nil {
			return nil, fmt.Errorf("source %s: hospiten strategy without hospiten settings", src.ShortName)
		}
		return &HospitenScraper{src: src, client: client, limiter: limiter}, nil
	default:
		return nil, fmt.Errorf("source %s: unsupported strategy %q", src.ShortName, src.Strategy)
	}
}

// StaticScraper walks a directory index page, collects per-provider
// links, and extracts record fields from each page with the source's
// css selectors. A failing provider page is logged and skipped; the
// batch continues.
type StaticScraper struct {
	src     Source
	client  *http.Client
	limiter *util.RateLimiter
}

func (s *StaticScraper) Scrape(ctx context.Context) ([]internal.RawProviderRecord, error) {
	urls, err := s.providerURLs(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("collected provider pages", "source", s.src.ShortName, "count", len(urls))

	records := make([]internal.RawProviderRecord, 0, len(urls))
	for _, pageURL := range urls {
		rec, err := s.scrapePage(ctx, pageURL)
		if err != nil {
			slog.Warn("skipping provider page", "source", s.src.ShortName, "url", pageURL, "err", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// providerURLs walks every index page of the directory and collects
// provider links, deduplicated across pages. A failing index page is
// logged and skipped so one empty alphabet page does not sink the walk;
// a walk where every page failed is an error.
func (s *StaticScraper) providerURLs(ctx context.Context) ([]string, error) {
	pages := s.src.Pagination.PageURLs(s.src.IndexURL)

	seen := map[string]struct{}{}
	var urls []string
	fetched := 0
	for _, page := range pages {
		doc, err := s.fetch(ctx, page)
		if err != nil {
			slog.Warn("skipping index page", "source", s.src.ShortName, "url", page, "err", err)
			continue
		}
		fetched++
		doc.Find(s.src.LinkSelector).Each(func(_ int, sel *goquery.Selection) {
			href, ok := sel.Attr("href")
			href = strings.TrimSpace(href)
			if !ok || href == "" || href == "#" {
				return
			}
			if _, dup := seen[href]; dup {
				return
			}
			seen[href] = struct{}{}
			urls = append(urls, absoluteURL(page, href))
		})
	}
	if fetched == 0 {
		return nil, fmt.Errorf("index walk: no page of %d reachable", len(pages))
	}
	return urls, nil
}

func (s *StaticScraper) scrapePage(ctx context.Context, pageURL string) (internal.RawProviderRecord, error) {
	rec := internal.RawProviderRecord{Country: s.src.Country}
	rec.Website = &pageURL
	if s.src.City != "" {
		city := s.src.City
		rec.City = &city
	}
	loc := s.src.Name
	rec.Location = &loc

	doc, err := s.fetch(ctx, pageURL)
	if err != nil {
		return rec, err
	}

	for field, selector := range s.src.Selectors {
		var values []string
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			text := strings.TrimSpace(sel.Text())
			if text == "" {
				// Image and link selectors carry their value in an attribute.
				if src, ok := sel.Attr("src"); ok {
					text = absoluteURL(pageURL, strings.TrimSpace(src))
				} else if href, ok := sel.Attr("href"); ok {
					text = strings.TrimSpace(href)
				}
			}
			if text != "" {
				values = append(values, text)
			}
		})
		if len(values) == 0 {
			continue
		}
		// Multiple matches keep the '|' delimiter the cleaner splits on.
		setRawField(&rec, field, strings.Join(values, "|"))
	}
	return rec, nil
}

func (s *StaticScraper) fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	s.limiter.WaitTurn()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

func setRawField(rec *internal.RawProviderRecord, field, value string) {
	v := value
	switch field {
	case "name":
		rec.Name = &v
	case "provider":
		rec.Provider = &v
	case "spokenLanguages":
		rec.SpokenLanguages = &v
	case "education":
		rec.Education = &v
	case "otherActivities":
		rec.OtherActivities = &v
	case "additionalInformation":
		rec.AdditionalInformation = &v
	case "email":
		rec.Email = &v
	case "photoUrl":
		rec.PhotoURL = &v
	case "location":
		rec.Location = &v
	case "city":
		rec.City = &v
	}
}

func absoluteURL(base, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	req, err := http.NewRequest(http.MethodGet, base, nil)
	if err != nil {
		return href
	}
	resolved, err := req.URL.Parse(href)
	if err != nil {
		return href
	}
	return resolved.String()
}
