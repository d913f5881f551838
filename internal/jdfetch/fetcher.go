// Package jdfetch downloads a job posting page and extracts its title,
// company and description text.
package jdfetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"
	"time"

	"resume-tailor/internal/logger"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

var ErrNoDescription = errors.New("no job description found")

const (
	defaultTimeout  = 20 * time.Second
	defaultMinChars = 200
	userAgent       = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"
)

type Posting struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
}

type Options struct {
	// Headless enables a chromedp fallback for pages whose static HTML has
	// too little text, such as client-rendered job boards.
	Headless bool
	Timeout  time.Duration
	MinChars int
}

type Fetcher struct {
	opts   Options
	logger *zap.Logger

	headlessFetch func(ctx context.Context, rawURL string) (Posting, error)
}

func New(opts Options, log *zap.Logger) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MinChars <= 0 {
		opts.MinChars = defaultMinChars
	}
	f := &Fetcher{opts: opts, logger: logger.OrNop(log).Named("jdfetch")}
	f.headlessFetch = f.fetchHeadless
	return f
}

// Fetch tries a static fetch first and falls back to a headless browser when
// enabled and the static page yields less than MinChars of description.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Posting, error) {
	p, err := f.fetchStatic(ctx, rawURL)
	if err == nil && len([]rune(p.Description)) >= f.opts.MinChars {
		return p, nil
	}
	if !f.opts.Headless {
		if err != nil {
			return Posting{}, err
		}
		if p.Description == "" {
			return Posting{}, ErrNoDescription
		}
		return p, nil
	}

	f.logger.Debug("static fetch insufficient, using headless browser", zap.String("url", rawURL), zap.Error(err))
	hp, herr := f.headlessFetch(ctx, rawURL)
	if herr != nil {
		if err == nil && p.Description != "" {
			return p, nil
		}
		return Posting{}, fmt.Errorf("headless fetch: %w", herr)
	}
	hp.Title = pickNonEmpty(p.Title, hp.Title)
	hp.Company = pickNonEmpty(p.Company, hp.Company)
	if hp.Description == "" {
		return Posting{}, ErrNoDescription
	}
	return hp, nil
}

func (f *Fetcher) fetchStatic(ctx context.Context, rawURL string) (Posting, error) {
	var c *colly.Collector
	if host := hostFromURL(rawURL); host != "" {
		c = colly.NewCollector(colly.AllowedDomains(host), colly.UserAgent(userAgent))
	} else {
		c = colly.NewCollector(colly.UserAgent(userAgent))
	}
	c.SetRequestTimeout(f.opts.Timeout)

	out := Posting{URL: rawURL}
	var reqErr error

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
	})

	c.OnHTML("html", func(e *colly.HTMLElement) {
		out = extract(e.DOM, rawURL)
	})

	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 {
			reqErr = fmt.Errorf("fetch %s: status %d: %w", rawURL, r.StatusCode, err)
			return
		}
		reqErr = err
	})

	if ctx.Err() != nil {
		return Posting{}, ctx.Err()
	}
	if err := c.Visit(rawURL); err != nil {
		return Posting{}, err
	}
	c.Wait()
	if reqErr != nil {
		return Posting{}, reqErr
	}
	return out, nil
}

func (f *Fetcher) fetchHeadless(ctx context.Context, rawURL string) (Posting, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(userAgent),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, f.opts.Timeout+5*time.Second)
	defer reqCancel()

	var html string
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return Posting{}, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Posting{}, err
	}
	return extract(doc.Selection, rawURL), nil
}

var descriptionSelectors = []string{
	`[itemprop="description"]`,
	`[class*="job-description"]`,
	`[id*="job-description"]`,
	`[class*="description"]`,
	`article`,
	`main`,
	`body`,
}

func extract(doc *goquery.Selection, rawURL string) Posting {
	out := Posting{URL: rawURL}

	if ld, ok := jobPostingLD(doc); ok {
		out.Title = ld.Title
		out.Company = ld.HiringOrganization.Name
		if ld.Description != "" {
			if d, err := goquery.NewDocumentFromReader(strings.NewReader(ld.Description)); err == nil {
				out.Description = cleanText(d.Text())
			} else {
				out.Description = cleanText(ld.Description)
			}
		}
	}

	if out.Title == "" {
		out.Title = pickNonEmpty(
			attr(doc, `meta[property="og:title"]`, "content"),
			doc.Find("h1").First().Text(),
			doc.Find("title").First().Text(),
		)
	}
	if out.Company == "" {
		out.Company = attr(doc, `meta[property="og:site_name"]`, "content")
	}

	if out.Description == "" {
		doc.Find("script, style, noscript, nav, header, footer, svg").Remove()
		for _, sel := range descriptionSelectors {
			if text := cleanText(doc.Find(sel).First().Text()); text != "" {
				out.Description = text
				break
			}
		}
	}

	out.Title = cleanText(out.Title)
	out.Company = cleanText(out.Company)
	return out
}

type jobPosting struct {
	Type               any    `json:"@type"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	HiringOrganization struct {
		Name string `json:"name"`
	} `json:"hiringOrganization"`
}

func jobPostingLD(doc *goquery.Selection) (jobPosting, bool) {
	var found jobPosting
	ok := false
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw := strings.TrimSpace(s.Text())
		var candidates []jobPosting
		if strings.HasPrefix(raw, "[") {
			_ = json.Unmarshal([]byte(raw), &candidates)
		} else {
			var single jobPosting
			if json.Unmarshal([]byte(raw), &single) == nil {
				candidates = append(candidates, single)
			}
		}
		for _, c := range candidates {
			if isJobPostingType(c.Type) {
				found, ok = c, true
				return false
			}
		}
		return true
	})
	return found, ok
}

func isJobPostingType(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "JobPosting"
	case []any:
		for _, x := range v {
			if s, ok := x.(string); ok && s == "JobPosting" {
				return true
			}
		}
	}
	return false
}

func attr(doc *goquery.Selection, sel, name string) string {
	v, _ := doc.Find(sel).First().Attr(name)
	return strings.TrimSpace(v)
}

var (
	spaceRe   = regexp.MustCompile(`[ \t\f\v\r]+`)
	newlineRe = regexp.MustCompile(`\s*\n\s*(\n\s*)+`)
)

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = spaceRe.ReplaceAllString(s, " ")
	s = newlineRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

func pickNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func hostFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(u.Host); err == nil {
		return h
	}
	return u.Host
}
